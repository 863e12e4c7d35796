package device

import (
	"fmt"
	"time"
)

// RequestState is the lifecycle state of a single device request
type RequestState int

const (
	RequestPending RequestState = iota
	RequestSucceeded
	RequestFailed
	RequestTimedOut
)

// String returns the log/display name of the state
func (s RequestState) String() string {
	switch s {
	case RequestPending:
		return "pending"
	case RequestSucceeded:
		return "succeeded"
	case RequestFailed:
		return "failed"
	case RequestTimedOut:
		return "timed_out"
	default:
		return fmt.Sprintf("RequestState(%d)", s)
	}
}

// Done reports whether the state is terminal
func (s RequestState) Done() bool {
	return s != RequestPending
}

// RequestEvent describes a transition in a request's lifecycle.
// Every request produces one Pending event followed by exactly one terminal event.
type RequestEvent struct {
	ID         string
	Method     string
	Endpoint   string
	URL        string
	State      RequestState
	StatusCode int
	Err        error
	StartedAt  time.Time
	Elapsed    time.Duration
}

// Observer receives request lifecycle events.
// It is called synchronously from the goroutine issuing the request and must not block.
type Observer func(RequestEvent)

func stateFor(err error) RequestState {
	switch {
	case err == nil:
		return RequestSucceeded
	case IsTimeout(err):
		return RequestTimedOut
	default:
		return RequestFailed
	}
}
