package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/ledctl/ledctl/internal/color"
	"github.com/ledctl/ledctl/internal/device"
	"github.com/ledctl/ledctl/internal/logging"
	"github.com/ledctl/ledctl/internal/panel"
)

// Mode is what currently receives key presses
type Mode string

const (
	ModePanel     Mode = "panel"
	ModeAddress   Mode = "address"
	ModeName      Mode = "name"
	ModePicker    Mode = "picker"
	ModeDiscovery Mode = "discovery"
)

// Rows of the control tab
const (
	rowAddress = iota
	rowPower
	rowBrightness
	controlRows
)

const (
	brightnessStep = 5
	maxBrightness  = 255
)

// Model is the control panel program.
// Device commands run as tea.Cmds; their lifecycle events, notices and
// picker requests come back through the bridge and the broker.
type Model struct {
	Mode  Mode
	State panel.State

	ctx    context.Context
	ctrl   *panel.Controller
	broker *panel.PickerBroker
	bridge *bridge

	addressInput textinput.Model
	nameInput    textinput.Model
	nameError    string
	picker       pickerModel
	pickTitle    string
	discovery    discoveryModel
	scanTimeout  time.Duration

	controlCursor int
	presetCursor  int
	segmentCursor int

	pending   map[string]device.RequestEvent
	lastEvent *device.RequestEvent
	notice    *panel.Notice

	spinner    spinner.Model
	brightness progress.Model
	help       help.Model
	keys       panelKeyMap
	modalKeys  modalKeyMap

	width  int
	height int
}

// New creates the panel model around client. Request events from client are
// routed into the model; the previous observer is replaced.
func New(ctx context.Context, opts Options) Model {
	b := newBridge()
	opts.Client.Observe(b.observe)

	state := panel.NewState(opts.Presets)
	state.Address = opts.Address

	ctrl := panel.NewController(state, opts.Client, b)

	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = SpinnerStyle

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 30

	addr := textinput.New()
	addr.Prompt = "› "
	addr.Placeholder = "192.168.4.1"
	addr.CharLimit = 253
	addr.Width = 30

	name := textinput.New()
	name.Prompt = "› "
	name.Placeholder = "Preset name"
	name.CharLimit = 32
	name.Width = 30

	m := Model{
		Mode:         ModePanel,
		State:        ctrl.Snapshot(),
		ctx:          ctx,
		ctrl:         ctrl,
		broker:       panel.NewPickerBroker(),
		bridge:       b,
		addressInput: addr,
		nameInput:    name,
		scanTimeout:  opts.ScanTimeout,
		pending:      make(map[string]device.RequestEvent),
		spinner:      s,
		brightness:   bar,
		help:         help.New(),
		modalKeys:    newModalKeyMap(),
	}
	m.keys = newPanelKeyMap()
	m.keys.tab = m.activeTab
	return m
}

// activeTab reads the controller, so it stays correct across model copies
func (m Model) activeTab() string {
	return string(m.ctrl.Snapshot().Tabs.Active())
}

// Controller returns the controller driving this model
func (m Model) Controller() *panel.Controller {
	return m.ctrl
}

// Init starts the background listeners
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.ctx, m.bridge.events),
		waitForNotice(m.ctx, m.bridge.notices),
		waitForPick(m.ctx, m.broker),
		m.spinner.Tick,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.discovery = m.discovery.setSize(msg.Width, msg.Height)
		return m, nil

	case requestEventMsg:
		m.trackEvent(device.RequestEvent(msg))
		return m, waitForEvent(m.ctx, m.bridge.events)

	case noticeMsg:
		n := panel.Notice(msg)
		m.notice = &n
		return m, waitForNotice(m.ctx, m.bridge.notices)

	case pickRequestMsg:
		m = m.openPicker(msg.req)
		return m, waitForPick(m.ctx, m.broker)

	case commandDoneMsg:
		if msg.err != nil {
			logging.Debug("panel command failed",
				zap.String("action", msg.action),
				zap.Error(msg.err),
			)
		}
		m.State = m.ctrl.Snapshot()
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.Mode == ModeDiscovery {
			m.discovery, cmd = m.discovery.update(m.ctx, msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case scanCompleteMsg:
		if m.Mode != ModeDiscovery {
			return m, nil
		}
		var cmd tea.Cmd
		m.discovery, cmd = m.discovery.update(m.ctx, msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Mode {
	case ModePicker:
		var cmd tea.Cmd
		var done bool
		m.picker, cmd, done = m.picker.update(msg)
		if done {
			m.Mode = ModePanel
		}
		return m, cmd

	case ModeAddress:
		return m.updateAddress(msg)

	case ModeName:
		return m.updateName(msg)

	case ModeDiscovery:
		var cmd tea.Cmd
		m.discovery, cmd = m.discovery.update(m.ctx, msg)
		if m.discovery.Closed {
			m.Mode = ModePanel
			if dev := m.discovery.Chosen; dev != nil {
				m.ctrl.SetAddress(dev.Address())
				m.State = m.ctrl.Snapshot()
				n := panel.Info("Using %s", dev.Address())
				m.notice = &n
			}
		}
		return m, cmd
	}

	return m.updatePanel(msg)
}

func (m Model) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.selectTab(m.State.Tabs.Next())
	case key.Matches(msg, m.keys.PrevTab):
		return m.selectTab(m.State.Tabs.Prev())
	case key.Matches(msg, m.keys.GotoTab):
		i := int(msg.String()[0] - '1')
		return m.selectTab(panel.Tabs()[i])
	}

	switch m.State.Tabs.Active() {
	case panel.TabControl:
		return m.updateControl(msg)
	case panel.TabColor:
		if key.Matches(msg, m.keys.Enter) {
			return m.pickCurrentColor()
		}
	case panel.TabPresets:
		return m.updatePresets(msg)
	case panel.TabSegments:
		return m.updateSegments(msg)
	}
	return m, nil
}

func (m Model) selectTab(tab panel.Tab) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SelectTab(tab); err != nil {
		return m, nil
	}
	m.State = m.ctrl.Snapshot()
	return m, nil
}

func (m Model) updateControl(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.controlCursor > 0 {
			m.controlCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.controlCursor < controlRows-1 {
			m.controlCursor++
		}
	case key.Matches(msg, m.keys.Discover):
		m.Mode = ModeDiscovery
		m.discovery = newDiscoveryModel(m.scanTimeout).setSize(m.width, m.height)
		var cmd tea.Cmd
		m.discovery, cmd = m.discovery.start(m.ctx)
		return m, cmd
	case key.Matches(msg, m.keys.Power):
		return m.togglePower()
	case key.Matches(msg, m.keys.Left):
		if m.controlCursor == rowBrightness {
			return m.stepBrightness(-brightnessStep)
		}
	case key.Matches(msg, m.keys.Right):
		if m.controlCursor == rowBrightness {
			return m.stepBrightness(brightnessStep)
		}
	case key.Matches(msg, m.keys.Enter):
		switch m.controlCursor {
		case rowAddress:
			m.Mode = ModeAddress
			m.addressInput.SetValue(m.State.Address)
			m.addressInput.CursorEnd()
			return m, m.addressInput.Focus()
		case rowPower:
			return m.togglePower()
		}
	}
	return m, nil
}

func (m Model) togglePower() (tea.Model, tea.Cmd) {
	m.State.Power = !m.State.Power
	return m, runCommand("toggle power", func() error {
		return m.ctrl.TogglePower(m.ctx)
	})
}

// stepBrightness moves the slider within 0..255 and sends the new level
func (m Model) stepBrightness(delta int) (tea.Model, tea.Cmd) {
	level := m.State.Brightness + delta
	if level < 0 {
		level = 0
	}
	if level > maxBrightness {
		level = maxBrightness
	}
	if level == m.State.Brightness {
		return m, nil
	}
	m.State.Brightness = level
	return m, runCommand("set brightness", func() error {
		return m.ctrl.SetBrightness(m.ctx, level)
	})
}

func (m Model) pickCurrentColor() (tea.Model, tea.Cmd) {
	m.pickTitle = "Current color"
	return m, runCommand("pick color", func() error {
		_, err := m.ctrl.PickColor(m.ctx, m.broker)
		return err
	})
}

func (m Model) updatePresets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.presetCursor < len(m.State.Presets)-1 {
			m.presetCursor++
		}
	case key.Matches(msg, m.keys.Enter):
		i := m.presetCursor
		return m, runCommand("apply preset", func() error {
			return m.ctrl.ApplyPreset(m.ctx, i)
		})
	case key.Matches(msg, m.keys.New):
		m.Mode = ModeName
		m.nameError = ""
		m.nameInput.Reset()
		return m, m.nameInput.Focus()
	}
	return m, nil
}

func (m Model) updateSegments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		if m.segmentCursor%SegmentColumns > 0 {
			m.segmentCursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.segmentCursor%SegmentColumns < SegmentColumns-1 && m.segmentCursor < device.SegmentCount-1 {
			m.segmentCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.segmentCursor >= SegmentColumns {
			m.segmentCursor -= SegmentColumns
		}
	case key.Matches(msg, m.keys.Down):
		if m.segmentCursor+SegmentColumns < device.SegmentCount {
			m.segmentCursor += SegmentColumns
		}
	case key.Matches(msg, m.keys.Enter):
		i := m.segmentCursor
		m.pickTitle = "Color for " + panel.SegmentLabel(i)
		return m, runCommand("assign segment", func() error {
			_, err := m.ctrl.AssignSegment(m.ctx, i, m.broker)
			return err
		})
	case key.Matches(msg, m.keys.Apply):
		return m, runCommand("apply segments", func() error {
			return m.ctrl.ApplySegments(m.ctx)
		})
	}
	return m, nil
}

func (m Model) updateAddress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.modalKeys.Cancel):
		m.Mode = ModePanel
		m.addressInput.Blur()
		return m, nil
	case key.Matches(msg, m.modalKeys.Confirm):
		m.ctrl.SetAddress(m.addressInput.Value())
		m.State = m.ctrl.Snapshot()
		m.Mode = ModePanel
		m.addressInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.addressInput, cmd = m.addressInput.Update(msg)
	return m, cmd
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.modalKeys.Cancel):
		m.Mode = ModePanel
		m.nameInput.Blur()
		return m, nil

	case key.Matches(msg, m.modalKeys.Confirm):
		name := m.nameInput.Value()
		if strings.TrimSpace(name) == "" {
			// Rejected before any picker is shown, so this returns at once
			_, err := m.ctrl.AddPreset(m.ctx, name, m.broker)
			m.nameError = panel.NoticeFor(err).Message
			return m, nil
		}
		m.Mode = ModePanel
		m.nameInput.Blur()
		m.pickTitle = "Color for " + strings.TrimSpace(name)
		return m, runCommand("add preset", func() error {
			_, err := m.ctrl.AddPreset(m.ctx, name, m.broker)
			return err
		})
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// openPicker shows the picker for req. The picker only opens over the panel
// itself; a request arriving while another picker, modal or the discovery
// screen is open is abandoned so that screen keeps its input.
func (m Model) openPicker(req *panel.PickRequest) Model {
	if m.Mode != ModePanel {
		req.Abandon()
		m.pickTitle = ""
		n := panel.Info("Color picker skipped while the %s screen is open", m.Mode)
		m.notice = &n
		return m
	}
	m.picker = newPickerModel(req, m.pickTitle)
	m.pickTitle = ""
	m.Mode = ModePicker
	return m
}

func (m *Model) trackEvent(ev device.RequestEvent) {
	if !ev.State.Done() {
		m.pending[ev.ID] = ev
		return
	}
	delete(m.pending, ev.ID)
	m.lastEvent = &ev
}

// Pending returns the number of requests in flight
func (m Model) Pending() int {
	return len(m.pending)
}

// View renders the panel
func (m Model) View() string {
	switch m.Mode {
	case ModePicker:
		return RenderModal(m.picker.view(m.width), m.width, m.height)
	case ModeAddress:
		return RenderModal(m.renderInputModal("Device address", m.addressInput, ""), m.width, m.height)
	case ModeName:
		return RenderModal(m.renderInputModal("New preset", m.nameInput, m.nameError), m.width, m.height)
	case ModeDiscovery:
		return RenderApplicationContainer(
			m.discovery.view(m.width),
			m.help.View(m.discovery.Keys),
			m.State.Address,
			m.width, m.height,
		)
	}

	var b strings.Builder
	b.WriteString(RenderTabBar(m.State.Tabs))
	b.WriteString("\n\n")

	switch m.State.Tabs.Active() {
	case panel.TabControl:
		b.WriteString(m.renderControl())
	case panel.TabColor:
		b.WriteString(m.renderColor())
	case panel.TabPresets:
		b.WriteString(m.renderPresets())
	case panel.TabSegments:
		b.WriteString(m.renderSegments())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatus())

	return RenderApplicationContainer(b.String(), m.help.View(m.keys), m.State.Address, m.width, m.height)
}

func (m Model) renderControl() string {
	address := m.State.Address
	if address == "" {
		address = HintStyle.Render("not set (enter to edit, d to discover)")
	}
	power := StatusErrorStyle.Render("OFF")
	if m.State.Power {
		power = StatusOKStyle.Render("ON")
	}
	level := float64(m.State.Brightness) / maxBrightness
	brightness := fmt.Sprintf("%s %3d", m.brightness.ViewAs(level), m.State.Brightness)

	rows := []string{
		field("Address", address),
		field("Power", power),
		field("Brightness", brightness),
	}
	for i := range rows {
		rows[i] = RenderMenuItem(rows[i], i == m.controlCursor)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderColor() string {
	rgb := color.ParseHex(m.State.Color).String()

	var b strings.Builder
	b.WriteString(RenderSwatch(m.State.Color, m.State.Color, 30))
	b.WriteString("\n")
	b.WriteString(RenderSwatch(m.State.Color, "", 30))
	b.WriteString("\n\n")
	b.WriteString(field("RGB", rgb))
	b.WriteString("\n\n")
	b.WriteString(HintStyle.Render("Press enter to choose a new color"))
	return b.String()
}

func (m Model) renderPresets() string {
	var b strings.Builder
	for i, p := range m.State.Presets {
		label := p.Name
		if p.Color != "" {
			label = RenderSwatch(p.Color, "  ", 2) + " " + p.Name
		}
		b.WriteString(RenderMenuItem(label, i == m.presetCursor))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(HintStyle.Render("enter applies • n creates a preset from a color"))
	return b.String()
}

func (m Model) renderSegments() string {
	var rows []string
	for r := 0; r*SegmentColumns < device.SegmentCount; r++ {
		var cells []string
		for c := 0; c < SegmentColumns; c++ {
			i := r*SegmentColumns + c
			if i >= device.SegmentCount {
				break
			}
			cell := RenderSwatch(m.State.Segments.Display(i), panel.SegmentLabel(i), SegmentCellWidth)
			border := lipgloss.HiddenBorder()
			if i == m.segmentCursor {
				border = lipgloss.RoundedBorder()
			}
			cells = append(cells, lipgloss.NewStyle().
				Border(border).
				BorderForeground(HighlightColor).
				Render(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	assigned := len(m.State.Segments.Assigned())
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		HintStyle.Render(fmt.Sprintf("%d of %d assigned • enter picks • a sends to the device", assigned, device.SegmentCount)),
	)
}

func (m Model) renderStatus() string {
	var lines []string

	switch {
	case len(m.pending) > 0:
		lines = append(lines, m.spinner.View()+" "+StatusPendingStyle.Render(pendingLabel(m.pending)))
	case m.lastEvent != nil:
		lines = append(lines, describeEvent(*m.lastEvent))
	default:
		lines = append(lines, HintStyle.Render("No requests sent yet"))
	}

	if n := m.notice; n != nil {
		if n.Kind.IsError() {
			lines = append(lines, StatusErrorStyle.Render("✗ "+n.Message))
			if n.Hint != "" {
				lines = append(lines, indent(HintStyle.Render(n.Hint), 2))
			}
		} else {
			lines = append(lines, StatusOKStyle.Render("• "+n.Message))
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderInputModal(title string, input textinput.Model, errText string) string {
	var b strings.Builder
	b.WriteString(RenderTitle(title))
	b.WriteString("\n")
	b.WriteString(FocusedInputStyle.Render(input.View()))
	b.WriteString("\n")
	if errText != "" {
		b.WriteString("\n")
		b.WriteString(StatusErrorStyle.Render(errText))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.modalKeys))

	return ModalStyle.
		Width(SafeModalWidth(50, m.width)).
		Render(b.String())
}

// pendingLabel names the endpoints of in-flight requests, oldest first
func pendingLabel(pending map[string]device.RequestEvent) string {
	events := make([]device.RequestEvent, 0, len(pending))
	for _, ev := range pending {
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].StartedAt.Before(events[j].StartedAt)
	})
	names := make([]string, len(events))
	for i, ev := range events {
		names[i] = ev.Endpoint
	}
	noun := "requests"
	if len(events) == 1 {
		noun = "request"
	}
	return fmt.Sprintf("%d %s pending: %s", len(events), noun, strings.Join(names, ", "))
}

// describeEvent renders a terminal event, e.g. "POST /setColor succeeded (12ms)"
func describeEvent(ev device.RequestEvent) string {
	text := fmt.Sprintf("%s %s %s (%s)", ev.Method, ev.Endpoint, ev.State, ev.Elapsed.Round(time.Millisecond))
	switch ev.State {
	case device.RequestSucceeded:
		return StatusOKStyle.Render("✓ " + text)
	case device.RequestTimedOut:
		return StatusPendingStyle.Render("⏱ " + text)
	default:
		if ev.StatusCode != 0 {
			text += fmt.Sprintf(" HTTP %d", ev.StatusCode)
		}
		return StatusErrorStyle.Render("✗ " + text)
	}
}
