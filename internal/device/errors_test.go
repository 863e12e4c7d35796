package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

func TestClassifyNetworkError_Timeout(t *testing.T) {
	err := &url.Error{
		Op:  "Post",
		URL: "http://192.168.4.1/turnOn",
		Err: &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: &timeoutError{},
		},
	}

	devErr := ClassifyNetworkError(err, "192.168.4.1")

	if devErr == nil {
		t.Fatal("Expected DeviceError, got nil")
	}

	if devErr.Type != ErrTypeTimeout {
		t.Errorf("Expected error type %v, got %v", ErrTypeTimeout, devErr.Type)
	}

	if devErr.NetworkSubtype != NetworkErrorTimeout {
		t.Errorf("Expected network subtype %v, got %v", NetworkErrorTimeout, devErr.NetworkSubtype)
	}
}

func TestClassifyNetworkError_DeadlineExceeded(t *testing.T) {
	err := fmt.Errorf("request: %w", context.DeadlineExceeded)

	if got := ClassifyNetworkError(err, "").Type; got != ErrTypeTimeout {
		t.Errorf("Expected error type %v, got %v", ErrTypeTimeout, got)
	}
}

func TestClassifyNetworkError_Canceled(t *testing.T) {
	err := &url.Error{Op: "Post", URL: "http://x/turnOn", Err: context.Canceled}

	if got := ClassifyNetworkError(err, "").Type; got != ErrTypeCanceled {
		t.Errorf("Expected error type %v, got %v", ErrTypeCanceled, got)
	}
}

func TestClassifyNetworkError_ConnectionRefused(t *testing.T) {
	err := &url.Error{
		Op:  "Post",
		URL: "http://192.168.4.1/turnOn",
		Err: &net.OpError{
			Op:  "dial",
			Net: "tcp",
			Err: syscall.ECONNREFUSED,
		},
	}

	devErr := ClassifyNetworkError(err, "192.168.4.1")

	if devErr.Type != ErrTypeConnectionRefused {
		t.Errorf("Expected error type %v, got %v", ErrTypeConnectionRefused, devErr.Type)
	}

	if devErr.NetworkSubtype != NetworkErrorConnectionRefused {
		t.Errorf("Expected network subtype %v, got %v", NetworkErrorConnectionRefused, devErr.NetworkSubtype)
	}

	if devErr.Address != "192.168.4.1" {
		t.Errorf("Address = %q, want 192.168.4.1", devErr.Address)
	}
}

func TestClassifyNetworkError_DNS(t *testing.T) {
	err := &net.DNSError{
		Err:        "no such host",
		Name:       "ledstrip.local",
		IsNotFound: true,
	}

	devErr := ClassifyNetworkError(err, "ledstrip.local")

	if devErr.Type != ErrTypeDNS {
		t.Errorf("Expected error type %v, got %v", ErrTypeDNS, devErr.Type)
	}

	if !strings.Contains(devErr.Message, "ledstrip.local") {
		t.Errorf("Message should name the host, got %q", devErr.Message)
	}
}

func TestClassifyNetworkError_Unreachable(t *testing.T) {
	tests := []struct {
		name    string
		errno   syscall.Errno
		subtype NetworkErrorSubtype
	}{
		{name: "host", errno: syscall.EHOSTUNREACH, subtype: NetworkErrorHostUnreachable},
		{name: "network", errno: syscall.ENETUNREACH, subtype: NetworkErrorNetworkUnreachable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &url.Error{
				Op:  "Post",
				URL: "http://192.168.4.1/turnOn",
				Err: &net.OpError{Op: "dial", Net: "tcp", Err: tt.errno},
			}

			devErr := ClassifyNetworkError(err, "192.168.4.1")

			if devErr.Type != ErrTypeNetwork {
				t.Errorf("Expected error type %v, got %v", ErrTypeNetwork, devErr.Type)
			}
			if devErr.NetworkSubtype != tt.subtype {
				t.Errorf("Expected network subtype %v, got %v", tt.subtype, devErr.NetworkSubtype)
			}
		})
	}
}

func TestClassifyNetworkError_Nil(t *testing.T) {
	if ClassifyNetworkError(nil, "") != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestErrorPredicates(t *testing.T) {
	wrapped := fmt.Errorf("set color: %w", NewNoAddressError())

	if !IsNoAddress(wrapped) {
		t.Error("IsNoAddress should see through wrapping")
	}
	if IsNetworkError(wrapped) {
		t.Error("missing address is not a network error")
	}
	if !IsHTTPError(NewHTTPError(500, "boom")) {
		t.Error("IsHTTPError(NewHTTPError) = false")
	}
	if IsHTTPError(errors.New("plain")) {
		t.Error("IsHTTPError(plain error) = true")
	}
	if !IsNetworkError(&DeviceError{Type: ErrTypeDNS}) {
		t.Error("DNS failures count as network errors")
	}
}

func TestGetShortErrorMessage(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedText string
	}{
		{
			name:         "No address",
			err:          NewNoAddressError(),
			expectedText: "Device address required",
		},
		{
			name:         "Timeout error",
			err:          &DeviceError{Type: ErrTypeTimeout},
			expectedText: "Device not responding (timeout)",
		},
		{
			name:         "Connection refused",
			err:          &DeviceError{Type: ErrTypeConnectionRefused},
			expectedText: "Device refused connection",
		},
		{
			name: "Host unreachable",
			err: &DeviceError{
				Type:           ErrTypeNetwork,
				NetworkSubtype: NetworkErrorHostUnreachable,
			},
			expectedText: "Device unreachable - check network connection",
		},
		{
			name:         "HTTP 500",
			err:          NewHTTPError(500, "x"),
			expectedText: "Device error (HTTP 500)",
		},
		{
			name:         "Encode error",
			err:          NewEncodeError("failed to encode request body", nil),
			expectedText: "failed to encode request body",
		},
		{
			name:         "Plain error",
			err:          errors.New("something else"),
			expectedText: "something else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetShortErrorMessage(tt.err)
			if got != tt.expectedText {
				t.Errorf("GetShortErrorMessage() = %q, want %q", got, tt.expectedText)
			}
		})
	}
}

func TestGetTroubleshootingHint(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedTexts []string
	}{
		{
			name:          "No address",
			err:           NewNoAddressError(),
			expectedTexts: []string{"Troubleshooting:", "IP address", "ledctl scan"},
		},
		{
			name:          "Timeout error",
			err:           &DeviceError{Type: ErrTypeTimeout},
			expectedTexts: []string{"powered on", "--timeout"},
		},
		{
			name: "Host unreachable strips port",
			err: &DeviceError{
				Type:           ErrTypeNetwork,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Address:        "192.168.4.1:8080",
			},
			expectedTexts: []string{"ping 192.168.4.1"},
		},
		{
			name:          "HTTP 404",
			err:           NewHTTPError(404, "x"),
			expectedTexts: []string{"does not provide this endpoint"},
		},
		{
			name:          "Unknown",
			err:           errors.New("x"),
			expectedTexts: []string{"check the error message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := GetTroubleshootingHint(tt.err)

			for _, expectedText := range tt.expectedTexts {
				if !strings.Contains(hint, expectedText) {
					t.Errorf("GetTroubleshootingHint() missing expected text %q\nGot: %s", expectedText, hint)
				}
			}
		})
	}
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrTypeNoAddress, "No Device Address"},
		{ErrTypeNetwork, "Network Error"},
		{ErrTypeHTTP, "HTTP Error"},
		{ErrTypeTimeout, "Timeout"},
		{ErrTypeConnectionRefused, "Connection Refused"},
		{ErrTypeDNS, "DNS Error"},
		{ErrTypeCanceled, "Canceled"},
		{ErrTypeEncode, "Encode Error"},
		{ErrorType(99), "ErrorType(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.errorType.String(); got != tt.expected {
				t.Errorf("ErrorType.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDeviceError_Error(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := &DeviceError{Type: ErrTypeNetwork, Message: "POST failed", Err: cause}

	if !strings.Contains(err.Error(), "caused by: dial tcp: refused") {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the cause")
	}
}

// timeoutError is a mock error that implements timeout behavior
type timeoutError struct{}

func (e *timeoutError) Error() string   { return "i/o timeout" }
func (e *timeoutError) Timeout() bool   { return true }
func (e *timeoutError) Temporary() bool { return true }
