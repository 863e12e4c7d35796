package device

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNoAddress indicates no device address is configured; nothing was sent
	ErrTypeNoAddress ErrorType = iota
	// ErrTypeNetwork indicates a network-level error (unreachable, reset, etc.)
	ErrTypeNetwork
	// ErrTypeHTTP indicates the device answered with a non-2xx status
	ErrTypeHTTP
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the device refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeCanceled indicates the caller canceled the request
	ErrTypeCanceled
	// ErrTypeEncode indicates the request body could not be serialized
	ErrTypeEncode
)

// NetworkErrorSubtype provides more specific network error classification
type NetworkErrorSubtype int

const (
	NetworkErrorGeneral NetworkErrorSubtype = iota
	NetworkErrorTimeout
	NetworkErrorConnectionRefused
	NetworkErrorDNS
	NetworkErrorHostUnreachable
	NetworkErrorNetworkUnreachable
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNoAddress:
		return "No Device Address"
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeCanceled:
		return "Canceled"
	case ErrTypeEncode:
		return "Encode Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// DeviceError represents an error that occurred during device communication
type DeviceError struct {
	Type           ErrorType           // Category of error
	Message        string              // Human-readable error message
	StatusCode     int                 // HTTP status code (if applicable)
	Err            error               // Underlying error (if any)
	NetworkSubtype NetworkErrorSubtype // More specific network error type
	Address        string              // Device address (for context)
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a DeviceError
// with the most specific type it can determine.
func ClassifyNetworkError(err error, address string) *DeviceError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &DeviceError{
			Type:    ErrTypeCanceled,
			Message: "Request canceled",
			Err:     err,
			Address: address,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &DeviceError{
			Type:           ErrTypeTimeout,
			Message:        "Request timed out",
			Err:            err,
			NetworkSubtype: NetworkErrorTimeout,
			Address:        address,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &DeviceError{
			Type:           ErrTypeDNS,
			Message:        fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:            err,
			NetworkSubtype: NetworkErrorDNS,
			Address:        address,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
			return &DeviceError{
				Type:           ErrTypeConnectionRefused,
				Message:        "Device refused connection",
				Err:            err,
				NetworkSubtype: NetworkErrorConnectionRefused,
				Address:        address,
			}
		}
		if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
			return &DeviceError{
				Type:           ErrTypeNetwork,
				Message:        "Host unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorHostUnreachable,
				Address:        address,
			}
		}
		if errors.Is(opErr.Err, syscall.ENETUNREACH) {
			return &DeviceError{
				Type:           ErrTypeNetwork,
				Message:        "Network unreachable",
				Err:            err,
				NetworkSubtype: NetworkErrorNetworkUnreachable,
				Address:        address,
			}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return ClassifyNetworkError(urlErr.Err, address)
	}

	return &DeviceError{
		Type:           ErrTypeNetwork,
		Message:        "Network error occurred",
		Err:            err,
		NetworkSubtype: NetworkErrorGeneral,
		Address:        address,
	}
}

// NewNoAddressError creates the error returned when no address is configured
func NewNoAddressError() *DeviceError {
	return &DeviceError{
		Type:    ErrTypeNoAddress,
		Message: "device address is not set",
	}
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *DeviceError {
	return &DeviceError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewEncodeError creates a body serialization error
func NewEncodeError(message string, err error) *DeviceError {
	return &DeviceError{
		Type:    ErrTypeEncode,
		Message: message,
		Err:     err,
	}
}

func asDeviceError(err error) (*DeviceError, bool) {
	var devErr *DeviceError
	if errors.As(err, &devErr) {
		return devErr, true
	}
	return nil, false
}

// IsNoAddress checks if an error reports a missing device address
func IsNoAddress(err error) bool {
	devErr, ok := asDeviceError(err)
	return ok && devErr.Type == ErrTypeNoAddress
}

// IsHTTPError checks if an error is a non-success device response
func IsHTTPError(err error) bool {
	devErr, ok := asDeviceError(err)
	return ok && devErr.Type == ErrTypeHTTP
}

// IsTimeout checks if an error is a request timeout
func IsTimeout(err error) bool {
	devErr, ok := asDeviceError(err)
	return ok && devErr.Type == ErrTypeTimeout
}

// IsNetworkError checks if an error is a transport failure (including timeout, connection refused, DNS, etc.)
func IsNetworkError(err error) bool {
	devErr, ok := asDeviceError(err)
	if !ok {
		return false
	}
	switch devErr.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS, ErrTypeCanceled:
		return true
	}
	return false
}

// GetTroubleshootingHint returns user-friendly troubleshooting advice for an error
func GetTroubleshootingHint(err error) string {
	lines := TroubleshootingSteps(err)
	if len(lines) == 0 {
		return "An error occurred. Please check the error message for details."
	}
	return strings.Join(append([]string{"Troubleshooting:"}, prefixBullets(lines)...), "\n")
}

// TroubleshootingSteps returns the individual troubleshooting suggestions for an error
func TroubleshootingSteps(err error) []string {
	devErr, ok := asDeviceError(err)
	if !ok {
		return nil
	}

	switch devErr.Type {
	case ErrTypeNoAddress:
		return []string{
			"Enter the controller's IP address (e.g. 192.168.4.1)",
			"Use 'ledctl scan' to find controllers on the network",
		}

	case ErrTypeTimeout:
		return []string{
			"Check that the controller is powered on",
			"Verify you're on the same network as the controller",
			"Try increasing --timeout",
		}

	case ErrTypeConnectionRefused:
		return []string{
			"The controller's HTTP server may not be running - try power cycling it",
			"Check the port if the address includes one",
		}

	case ErrTypeDNS:
		return []string{
			"Use the IP address instead of a hostname",
			"Check your network DNS settings",
		}

	case ErrTypeNetwork:
		switch devErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return []string{
				"Verify the controller address is correct",
				"Ensure the controller is connected to WiFi",
				"Try pinging the controller: ping " + hostOnly(devErr.Address),
			}
		case NetworkErrorNetworkUnreachable:
			return []string{
				"Connect to the network the controller is on",
				"Check your network adapter settings",
			}
		default:
			return []string{
				"Check your network connection",
				"Verify the controller is powered on",
			}
		}

	case ErrTypeHTTP:
		if devErr.StatusCode == 404 {
			return []string{
				"The controller firmware does not provide this endpoint",
				"Check the firmware version on the controller",
			}
		}
		return []string{
			"The controller rejected the request",
			"Try power cycling the controller",
		}
	}

	return nil
}

// GetShortErrorMessage returns a concise, user-friendly error message
func GetShortErrorMessage(err error) string {
	devErr, ok := asDeviceError(err)
	if !ok {
		return err.Error()
	}

	switch devErr.Type {
	case ErrTypeNoAddress:
		return "Device address required"
	case ErrTypeTimeout:
		return "Device not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Device refused connection"
	case ErrTypeDNS:
		return "Cannot resolve device hostname"
	case ErrTypeCanceled:
		return "Request canceled"
	case ErrTypeNetwork:
		switch devErr.NetworkSubtype {
		case NetworkErrorHostUnreachable:
			return "Device unreachable - check network connection"
		case NetworkErrorNetworkUnreachable:
			return "Network unreachable - check WiFi connection"
		default:
			return "Network error - check connection"
		}
	case ErrTypeHTTP:
		return fmt.Sprintf("Device error (HTTP %d)", devErr.StatusCode)
	default:
		return devErr.Message
	}
}

func prefixBullets(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "  • " + l
	}
	return out
}

func hostOnly(address string) string {
	if host, _, err := net.SplitHostPort(address); err == nil {
		return host
	}
	return address
}
