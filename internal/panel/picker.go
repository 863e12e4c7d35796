package panel

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// PickStatus tells whether the user chose a color
type PickStatus int

const (
	PickAbandoned PickStatus = iota
	PickChosen
)

// String returns the status name
func (s PickStatus) String() string {
	if s == PickChosen {
		return "chosen"
	}
	return "abandoned"
}

// PickResult is the outcome of a color pick
type PickResult struct {
	Status PickStatus
	Color  string
}

// Chosen returns a result carrying hex
func Chosen(hex string) PickResult {
	return PickResult{Status: PickChosen, Color: hex}
}

// Abandoned returns a result with no color
func Abandoned() PickResult {
	return PickResult{Status: PickAbandoned}
}

// Picked returns the chosen color and true, or "" and false if abandoned
func (r PickResult) Picked() (string, bool) {
	return r.Color, r.Status == PickChosen
}

// ColorPicker asks the user for a color.
// PickColor blocks until the user chooses or abandons, or ctx is done
// (which counts as abandoned). initial is the color to start from.
type ColorPicker interface {
	PickColor(ctx context.Context, initial string) PickResult
}

// PickerFunc adapts a function to ColorPicker
type PickerFunc func(ctx context.Context, initial string) PickResult

// PickColor calls f
func (f PickerFunc) PickColor(ctx context.Context, initial string) PickResult {
	return f(ctx, initial)
}

// PickRequest is one pending pick handed to the UI.
// It must be settled with Resolve or Abandon; later calls are ignored.
type PickRequest struct {
	ID      string
	Initial string

	reply chan PickResult
	once  sync.Once
}

// Resolve settles the request with hex
func (r *PickRequest) Resolve(hex string) {
	r.settle(Chosen(hex))
}

// Abandon settles the request without a color
func (r *PickRequest) Abandon() {
	r.settle(Abandoned())
}

func (r *PickRequest) settle(res PickResult) {
	r.once.Do(func() {
		r.reply <- res
	})
}

// PickerBroker is a ColorPicker backed by a UI loop.
// PickColor publishes a *PickRequest on Requests and waits for the UI to settle it.
type PickerBroker struct {
	requests chan *PickRequest
}

// NewPickerBroker creates a broker
func NewPickerBroker() *PickerBroker {
	return &PickerBroker{requests: make(chan *PickRequest)}
}

// Requests is the channel the UI reads pick requests from
func (b *PickerBroker) Requests() <-chan *PickRequest {
	return b.requests
}

// PickColor implements ColorPicker
func (b *PickerBroker) PickColor(ctx context.Context, initial string) PickResult {
	req := &PickRequest{
		ID:      uuid.NewString(),
		Initial: initial,
		reply:   make(chan PickResult, 1),
	}

	select {
	case b.requests <- req:
	case <-ctx.Done():
		return Abandoned()
	}

	select {
	case res := <-req.reply:
		return res
	case <-ctx.Done():
		req.Abandon()
		return Abandoned()
	}
}
