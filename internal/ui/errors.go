package ui

import "errors"

// ReportedError wraps an error whose failure box was already printed.
// Callers should exit non-zero without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Reported marks err as already shown to the user. nil stays nil.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}

// IsReported checks if err, or anything it wraps, was already shown
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}
