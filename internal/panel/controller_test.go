package panel

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ledctl/ledctl/internal/device"
)

// deviceStub records requests sent to a fake LED controller
type deviceStub struct {
	mu     sync.Mutex
	paths  []string
	bodies []string
	status int
}

func newDeviceStub(t *testing.T, status int) (*deviceStub, string) {
	t.Helper()
	stub := &deviceStub{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		stub.mu.Lock()
		stub.paths = append(stub.paths, r.URL.Path)
		stub.bodies = append(stub.bodies, string(body))
		stub.mu.Unlock()
		w.WriteHeader(stub.status)
	}))
	t.Cleanup(server.Close)
	return stub, strings.TrimPrefix(server.URL, "http://")
}

func (s *deviceStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

func (s *deviceStub) last() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.paths) == 0 {
		return "", ""
	}
	return s.paths[len(s.paths)-1], s.bodies[len(s.bodies)-1]
}

// noticeLog collects notices
type noticeLog struct {
	mu      sync.Mutex
	notices []Notice
}

func (l *noticeLog) Notify(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notices = append(l.notices, n)
}

func (l *noticeLog) kinds() []NoticeKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []NoticeKind
	for _, n := range l.notices {
		out = append(out, n.Kind)
	}
	return out
}

// fixedPicker answers every pick the same way and counts calls
type fixedPicker struct {
	result PickResult
	calls  int
	seen   []string
}

func (p *fixedPicker) PickColor(_ context.Context, initial string) PickResult {
	p.calls++
	p.seen = append(p.seen, initial)
	return p.result
}

func newTestController(t *testing.T, status int) (*Controller, *deviceStub, *noticeLog) {
	t.Helper()
	stub, address := newDeviceStub(t, status)
	notices := &noticeLog{}
	state := NewState(nil)
	state.Address = address
	return NewController(state, device.NewClient(""), notices), stub, notices
}

func TestNewState_Defaults(t *testing.T) {
	s := NewState(nil)

	if s.Color != "#ffffff" {
		t.Errorf("Color = %s, want #ffffff", s.Color)
	}
	if s.Brightness != 255 {
		t.Errorf("Brightness = %d, want 255", s.Brightness)
	}
	if !s.Power {
		t.Error("Power should default to on")
	}
	if s.Address != "" {
		t.Errorf("Address = %q, want empty", s.Address)
	}
	if len(s.Presets) != 6 || s.Presets[0].ID != "blade_runner" || s.Presets[5].ID != "white" {
		t.Errorf("unexpected default presets: %+v", s.Presets)
	}
	if s.Tabs.Active() != TabControl {
		t.Errorf("active tab = %s, want control", s.Tabs.Active())
	}
	if len(s.Segments.Assigned()) != 0 {
		t.Error("segments should start unset")
	}
}

func TestController_NoAddress(t *testing.T) {
	stub, _ := newDeviceStub(t, http.StatusOK)
	notices := &noticeLog{}
	ctrl := NewController(NewState(nil), device.NewClient(""), notices)
	ctx := context.Background()
	picker := &fixedPicker{result: Chosen("#00ff00")}

	actions := map[string]func() error{
		"brightness": func() error { return ctrl.SetBrightness(ctx, 10) },
		"power":      func() error { return ctrl.TogglePower(ctx) },
		"color": func() error {
			_, err := ctrl.PickColor(ctx, picker)
			return err
		},
		"preset":   func() error { return ctrl.ApplyPreset(ctx, 0) },
		"segments": func() error { return ctrl.ApplySegments(ctx) },
	}

	for name, run := range actions {
		t.Run(name, func(t *testing.T) {
			if err := run(); !device.IsNoAddress(err) {
				t.Errorf("error = %v, want no-address", err)
			}
		})
	}

	if stub.count() != 0 {
		t.Errorf("device received %d requests, want 0", stub.count())
	}
	for _, k := range notices.kinds() {
		if k != NoticeAddressRequired {
			t.Errorf("notice kind = %s, want address_required", k)
		}
	}
	if len(notices.kinds()) != len(actions) {
		t.Errorf("got %d notices, want %d", len(notices.kinds()), len(actions))
	}
}

func TestController_SetAddressTrims(t *testing.T) {
	stub, address := newDeviceStub(t, http.StatusOK)
	ctrl := NewController(NewState(nil), device.NewClient(""), nil)

	ctrl.SetAddress("  " + address + "\n")

	if got := ctrl.Snapshot().Address; got != address {
		t.Errorf("Address = %q, want %q", got, address)
	}
	if err := ctrl.SetPower(context.Background(), true); err != nil {
		t.Fatalf("SetPower() error = %v", err)
	}
	if path, _ := stub.last(); path != "/turnOn" {
		t.Errorf("path = %s, want /turnOn", path)
	}
}

func TestController_Commands(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		run      func(c *Controller) error
		wantPath string
		wantBody string
	}{
		{
			name: "pick color",
			run: func(c *Controller) error {
				_, err := c.PickColor(ctx, &fixedPicker{result: Chosen("#102030")})
				return err
			},
			wantPath: "/setColor",
			wantBody: `{"r":16,"g":32,"b":48}`,
		},
		{
			name:     "brightness",
			run:      func(c *Controller) error { return c.SetBrightness(ctx, 42) },
			wantPath: "/setBrightness",
			wantBody: `{"brightness":42}`,
		},
		{
			name:     "toggle power off",
			run:      func(c *Controller) error { return c.TogglePower(ctx) },
			wantPath: "/turnOff",
		},
		{
			name:     "apply preset",
			run:      func(c *Controller) error { return c.ApplyPreset(ctx, 1) },
			wantPath: "/setPreset",
			wantBody: `{"preset":"blink"}`,
		},
		{
			name:     "apply no segments",
			run:      func(c *Controller) error { return c.ApplySegments(ctx) },
			wantPath: "/setCustomLeds",
			wantBody: `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, stub, notices := newTestController(t, http.StatusOK)

			if err := tt.run(ctrl); err != nil {
				t.Fatalf("error = %v", err)
			}
			if stub.count() != 1 {
				t.Fatalf("device received %d requests, want 1", stub.count())
			}
			path, body := stub.last()
			if path != tt.wantPath {
				t.Errorf("path = %s, want %s", path, tt.wantPath)
			}
			if body != tt.wantBody {
				t.Errorf("body = %s, want %s", body, tt.wantBody)
			}
			if len(notices.kinds()) != 0 {
				t.Errorf("unexpected notices: %v", notices.kinds())
			}
		})
	}
}

func TestController_PickColorAbandoned(t *testing.T) {
	ctrl, stub, _ := newTestController(t, http.StatusOK)

	res, err := ctrl.PickColor(context.Background(), &fixedPicker{result: Abandoned()})
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if res.Status != PickAbandoned {
		t.Errorf("Status = %s", res.Status)
	}
	if ctrl.Snapshot().Color != "#ffffff" {
		t.Error("abandoned pick changed the current color")
	}
	if stub.count() != 0 {
		t.Errorf("device received %d requests, want 0", stub.count())
	}
}

func TestController_AddPresetEmptyName(t *testing.T) {
	ctrl, stub, notices := newTestController(t, http.StatusOK)
	picker := &fixedPicker{result: Chosen("#ff0000")}
	before := ctrl.Snapshot()

	for _, name := range []string{"", "   ", "\t\n"} {
		preset, err := ctrl.AddPreset(context.Background(), name, picker)
		if !errors.Is(err, ErrNameRequired) {
			t.Errorf("AddPreset(%q) error = %v, want ErrNameRequired", name, err)
		}
		if preset != nil {
			t.Errorf("AddPreset(%q) returned %+v", name, preset)
		}
	}

	after := ctrl.Snapshot()
	if len(after.Presets) != len(before.Presets) {
		t.Errorf("presets changed: %d -> %d", len(before.Presets), len(after.Presets))
	}
	if after.Color != before.Color {
		t.Error("current color changed")
	}
	if picker.calls != 0 {
		t.Errorf("picker called %d times, want 0", picker.calls)
	}
	if stub.count() != 0 {
		t.Errorf("device received %d requests, want 0", stub.count())
	}
	for _, k := range notices.kinds() {
		if k != NoticeNameRequired {
			t.Errorf("notice = %s, want name_required", k)
		}
	}
}

func TestController_AddPresetAbandoned(t *testing.T) {
	ctrl, stub, notices := newTestController(t, http.StatusOK)
	picker := &fixedPicker{result: Abandoned()}

	preset, err := ctrl.AddPreset(context.Background(), "Sunset", picker)
	if err != nil || preset != nil {
		t.Fatalf("AddPreset() = %+v, %v; want nil, nil", preset, err)
	}
	if picker.calls != 1 {
		t.Errorf("picker called %d times, want 1", picker.calls)
	}
	if n := len(ctrl.Snapshot().Presets); n != 6 {
		t.Errorf("len(Presets) = %d, want 6", n)
	}
	if stub.count() != 0 {
		t.Errorf("device received %d requests, want 0", stub.count())
	}
	if len(notices.kinds()) != 0 {
		t.Errorf("unexpected notices: %v", notices.kinds())
	}
}

func TestController_AddPresetChosen(t *testing.T) {
	ctrl, stub, _ := newTestController(t, http.StatusOK)

	preset, err := ctrl.AddPreset(context.Background(), "  Sunset ", &fixedPicker{result: Chosen("#ff8000")})
	if err != nil {
		t.Fatalf("AddPreset() error = %v", err)
	}

	want := Preset{Name: "Sunset", ID: "custom_7", Color: "#ff8000"}
	if preset == nil || *preset != want {
		t.Fatalf("preset = %+v, want %+v", preset, want)
	}

	snap := ctrl.Snapshot()
	if snap.Presets[len(snap.Presets)-1] != want {
		t.Errorf("last preset = %+v", snap.Presets[len(snap.Presets)-1])
	}
	if snap.Color != "#ff8000" {
		t.Errorf("Color = %s, want #ff8000", snap.Color)
	}

	path, body := stub.last()
	if path != "/setColor" || body != `{"r":255,"g":128,"b":0}` {
		t.Errorf("request = %s %s", path, body)
	}

	// The next custom preset is numbered from the new count
	second, _ := ctrl.AddPreset(context.Background(), "Dusk", &fixedPicker{result: Chosen("#000080")})
	if second == nil || second.ID != "custom_8" {
		t.Errorf("second preset = %+v, want custom_8", second)
	}
	if err := ctrl.ApplyPreset(context.Background(), 6); err != nil {
		t.Fatalf("ApplyPreset() error = %v", err)
	}
	if _, body := stub.last(); body != `{"preset":"custom_7"}` {
		t.Errorf("body = %s", body)
	}
}

func TestController_ApplyPresetOutOfRange(t *testing.T) {
	ctrl, stub, _ := newTestController(t, http.StatusOK)

	for _, i := range []int{-1, 6, 100} {
		if err := ctrl.ApplyPreset(context.Background(), i); !errors.Is(err, ErrPresetIndex) {
			t.Errorf("ApplyPreset(%d) error = %v", i, err)
		}
	}
	if stub.count() != 0 {
		t.Errorf("device received %d requests, want 0", stub.count())
	}
}

func TestController_Segments(t *testing.T) {
	ctrl, stub, _ := newTestController(t, http.StatusOK)
	ctx := context.Background()

	if _, err := ctrl.AssignSegment(ctx, 0, &fixedPicker{result: Chosen("#ff0000")}); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.AssignSegment(ctx, 5, &fixedPicker{result: Chosen("#0a141e")}); err != nil {
		t.Fatal(err)
	}
	// Abandoned picks leave the segment unset
	if _, err := ctrl.AssignSegment(ctx, 7, &fixedPicker{result: Abandoned()}); err != nil {
		t.Fatal(err)
	}

	if stub.count() != 0 {
		t.Fatalf("assigning segments sent %d requests, want 0", stub.count())
	}

	if err := ctrl.ApplySegments(ctx); err != nil {
		t.Fatalf("ApplySegments() error = %v", err)
	}

	_, body := stub.last()
	var got []device.SegmentColor
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("payload has %d entries, want 2: %s", len(got), body)
	}
	if got[0].Segment != 0 || got[0].R != 255 || got[0].G != 0 || got[0].B != 0 {
		t.Errorf("entry 0 = %+v", got[0])
	}
	if got[1].Segment != 5 || got[1].R != 10 || got[1].G != 20 || got[1].B != 30 {
		t.Errorf("entry 1 = %+v", got[1])
	}

	snap := ctrl.Snapshot()
	if snap.Segments.Display(7) != "#808080" {
		t.Errorf("unset segment displays %s, want neutral", snap.Segments.Display(7))
	}
}

func TestController_AssignSegmentOutOfRange(t *testing.T) {
	ctrl, _, _ := newTestController(t, http.StatusOK)
	picker := &fixedPicker{result: Chosen("#ffffff")}

	for _, i := range []int{-1, 12} {
		if _, err := ctrl.AssignSegment(context.Background(), i, picker); !errors.Is(err, ErrSegmentIndex) {
			t.Errorf("AssignSegment(%d) error = %v", i, err)
		}
	}
	if picker.calls != 0 {
		t.Errorf("picker called %d times for invalid segments", picker.calls)
	}
}

func TestController_AssignSegmentInitialColor(t *testing.T) {
	ctrl, _, _ := newTestController(t, http.StatusOK)
	picker := &fixedPicker{result: Chosen("#123456")}

	_, _ = ctrl.AssignSegment(context.Background(), 3, picker)
	_, _ = ctrl.AssignSegment(context.Background(), 3, picker)

	if picker.seen[0] != "#ffffff" {
		t.Errorf("first pick started at %s, want current color", picker.seen[0])
	}
	if picker.seen[1] != "#123456" {
		t.Errorf("second pick started at %s, want assigned color", picker.seen[1])
	}
}

func TestController_CommunicationFailures(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		ctrl, stub, notices := newTestController(t, http.StatusInternalServerError)

		if err := ctrl.SetBrightness(context.Background(), 1); !device.IsHTTPError(err) {
			t.Errorf("error = %v, want HTTP error", err)
		}
		if stub.count() != 1 {
			t.Errorf("attempts = %d, want exactly 1", stub.count())
		}
		kinds := notices.kinds()
		if len(kinds) != 1 || kinds[0] != NoticeDeviceError || !kinds[0].IsCommunicationFailure() {
			t.Errorf("notices = %v", kinds)
		}
	})

	t.Run("connection failure", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		address := strings.TrimPrefix(server.URL, "http://")
		server.Close()

		notices := &noticeLog{}
		state := NewState(nil)
		state.Address = address
		ctrl := NewController(state, device.NewClient(""), notices)

		if err := ctrl.SetPower(context.Background(), false); err == nil {
			t.Fatal("expected error")
		}
		kinds := notices.kinds()
		if len(kinds) != 1 || kinds[0] != NoticeConnectionFailed || !kinds[0].IsCommunicationFailure() {
			t.Errorf("notices = %v", kinds)
		}
	})
}

func TestController_StateKeptOnFailure(t *testing.T) {
	ctrl, _, _ := newTestController(t, http.StatusInternalServerError)

	_ = ctrl.SetBrightness(context.Background(), 17)
	_ = ctrl.TogglePower(context.Background())

	snap := ctrl.Snapshot()
	if snap.Brightness != 17 || snap.Power {
		t.Errorf("state = brightness %d power %v", snap.Brightness, snap.Power)
	}
}

func TestController_SelectTab(t *testing.T) {
	ctrl, _, _ := newTestController(t, http.StatusOK)

	for _, tab := range Tabs() {
		if err := ctrl.SelectTab(tab); err != nil {
			t.Fatalf("SelectTab(%s) error = %v", tab, err)
		}
		snap := ctrl.Snapshot()
		visible := snap.Tabs.Visible()
		if len(visible) != 1 || visible[0] != tab {
			t.Errorf("visible = %v, want [%s]", visible, tab)
		}
		for _, other := range Tabs() {
			if other != tab && snap.Tabs.IsActive(other) {
				t.Errorf("%s still active after selecting %s", other, tab)
			}
		}
	}

	if err := ctrl.SelectTab("settings"); !errors.Is(err, ErrUnknownTab) {
		t.Errorf("SelectTab(settings) error = %v", err)
	}
	if ctrl.Snapshot().Tabs.Active() != TabSegments {
		t.Error("unknown tab changed the active tab")
	}
}

func TestController_SnapshotIsCopy(t *testing.T) {
	ctrl, _, _ := newTestController(t, http.StatusOK)

	snap := ctrl.Snapshot()
	snap.Presets[0].Name = "changed"
	snap.Segments[0] = "#000000"

	again := ctrl.Snapshot()
	if again.Presets[0].Name != "Blade Runner" {
		t.Error("snapshot shares the preset slice")
	}
	if _, ok := again.Segments.Get(0); ok {
		t.Error("snapshot shares segments")
	}
}

func TestController_ConcurrentCommands(t *testing.T) {
	ctrl, stub, _ := newTestController(t, http.StatusOK)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(level int) {
			defer wg.Done()
			_ = ctrl.SetBrightness(context.Background(), level)
			_ = ctrl.Snapshot()
		}(i)
	}
	wg.Wait()

	if stub.count() != 20 {
		t.Errorf("device received %d requests, want 20", stub.count())
	}
}

func TestController_PickWithBroker(t *testing.T) {
	ctrl, stub, _ := newTestController(t, http.StatusOK)
	broker := NewPickerBroker()

	go func() {
		req := <-broker.Requests()
		if req.Initial != "#ffffff" {
			t.Errorf("Initial = %s", req.Initial)
		}
		req.Resolve("#00ff00")
	}()

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.PickColor(context.Background(), broker)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("PickColor() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("PickColor did not return")
	}

	if _, body := stub.last(); body != `{"r":0,"g":255,"b":0}` {
		t.Errorf("body = %s", body)
	}
}
