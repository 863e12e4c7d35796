package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ledctl/ledctl/internal/logging"
)

const (
	// DefaultTimeout bounds a single request so a dead controller surfaces as timed out
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of a failed response is kept in the error message
	maxErrorBody = 256
)

// Client sends commands to an LED controller's HTTP API.
// Each command is a single attempt; there is no retry.
type Client struct {
	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	mu       sync.RWMutex
	address  string
	observer Observer
}

// NewClient creates a new client for the controller at address.
// address is a host or host:port (e.g. "192.168.4.1"); it may be empty and set later.
func NewClient(address string) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		address:    strings.TrimSpace(address),
	}
}

// SetAddress replaces the controller address. Surrounding whitespace is trimmed;
// no other validation is done.
func (c *Client) SetAddress(address string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.address = strings.TrimSpace(address)
}

// Address returns the current controller address
func (c *Client) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// SetTimeout sets the per-request timeout. Zero disables it.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Observe registers fn to receive request lifecycle events, replacing any previous observer
func (c *Client) Observe(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observer = fn
}

// requestURL builds the URL for endpoint on the controller at address
func requestURL(address, endpoint string) string {
	return "http://" + address + endpoint
}

func (c *Client) emit(ev RequestEvent) {
	c.mu.RLock()
	fn := c.observer
	c.mu.RUnlock()
	if fn != nil {
		fn(ev)
	}
}

// Send issues one request to the controller.
// body is JSON-encoded when non-nil. Any 2xx status is success; the response
// body is not interpreted.
func (c *Client) Send(ctx context.Context, endpoint, method string, body any) error {
	address := c.Address()
	if address == "" {
		return NewNoAddressError()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return NewEncodeError("failed to encode request body", err)
		}
	}

	ev := RequestEvent{
		ID:        uuid.NewString(),
		Method:    method,
		Endpoint:  endpoint,
		URL:       requestURL(address, endpoint),
		State:     RequestPending,
		StartedAt: time.Now(),
	}
	c.emit(ev)
	logging.LogRequestStart(ev.ID, method, ev.URL, payload)

	statusCode, err := c.do(ctx, ev.URL, method, payload, address)

	ev.State = stateFor(err)
	ev.StatusCode = statusCode
	ev.Err = err
	ev.Elapsed = time.Since(ev.StartedAt)
	c.emit(ev)
	logging.LogRequestEnd(ev.ID, ev.State.String(), statusCode, ev.Elapsed, err)

	return err
}

// do performs the HTTP exchange and returns the status code (0 if none was received)
func (c *Client) do(ctx context.Context, url, method string, payload []byte, address string) (int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, &DeviceError{
			Type:    ErrTypeNetwork,
			Message: "failed to create request",
			Err:     err,
			Address: address,
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, ClassifyNetworkError(err, address)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("%s %s returned status %d", method, url, resp.StatusCode)
		if s := strings.TrimSpace(string(snippet)); s != "" {
			msg += ": " + s
		}
		return resp.StatusCode, NewHTTPError(resp.StatusCode, msg)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}
