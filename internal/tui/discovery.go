package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ledctl/ledctl/internal/discovery"
)

// deviceItem wraps a Device for use with bubbles/list
type deviceItem struct {
	device *discovery.Device
}

// FilterValue implements list.Item
func (d deviceItem) FilterValue() string {
	return d.device.Name + " " + d.device.Hostname + " " + d.device.IP
}

// Title returns the device name for list display
func (d deviceItem) Title() string {
	return d.device.Name
}

// Description returns device details for list display
func (d deviceItem) Description() string {
	return fmt.Sprintf("%s • %s", d.device.Address(), strings.TrimSuffix(d.device.Hostname, "."))
}

// discoveryModel is the screen that scans for controllers.
// Selecting a device hands its address back to the panel.
type discoveryModel struct {
	Scanning      bool
	DeviceList    list.Model
	Err           error
	ScanStartTime time.Time
	Timeout       time.Duration

	// Chosen is set once the user picked a device
	Chosen *discovery.Device
	// Closed is set when the user leaves the screen
	Closed bool

	Spinner     spinner.Model
	ProgressBar progress.Model
	Keys        discoveryKeyMap
}

func newDiscoveryModel(timeout time.Duration) discoveryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	progressBar := progress.New(progress.WithDefaultGradient())
	progressBar.Width = 40

	deviceList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	deviceList.Title = "Discovered Controllers"
	deviceList.SetShowStatusBar(false)
	deviceList.SetShowHelp(false)
	deviceList.SetFilteringEnabled(false)
	deviceList.Styles.Title = TitleStyle

	if timeout <= 0 {
		timeout = discovery.DefaultScanTimeout
	}

	return discoveryModel{
		DeviceList:  deviceList,
		Timeout:     timeout,
		Spinner:     s,
		ProgressBar: progressBar,
		Keys:        newDiscoveryKeyMap(),
	}
}

// start begins a scan
func (m discoveryModel) start(ctx context.Context) (discoveryModel, tea.Cmd) {
	m.Scanning = true
	m.Err = nil
	m.ScanStartTime = time.Now()
	m.DeviceList.SetItems([]list.Item{})
	return m, tea.Batch(scanDevices(ctx, m.Timeout), m.Spinner.Tick)
}

func (m discoveryModel) setSize(width, height int) discoveryModel {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < 20 {
		height = 20
	}
	m.DeviceList.SetWidth(width - 6)
	m.DeviceList.SetHeight(height - 10)
	return m
}

func (m discoveryModel) update(ctx context.Context, msg tea.Msg) (discoveryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case scanCompleteMsg:
		m.Scanning = false
		m.Err = msg.err
		items := make([]list.Item, len(msg.devices))
		for i, dev := range msg.devices {
			items[i] = deviceItem{device: dev}
		}
		m.DeviceList.SetItems(items)
		return m, nil

	case spinner.TickMsg:
		if !m.Scanning {
			return m, nil
		}
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Back):
			m.Closed = true
			return m, nil
		case m.Scanning:
			return m, nil
		case key.Matches(msg, m.Keys.Rescan):
			return m.start(ctx)
		case key.Matches(msg, m.Keys.Select):
			if item, ok := m.DeviceList.SelectedItem().(deviceItem); ok {
				m.Chosen = item.device
				m.Closed = true
			}
			return m, nil
		}
	}

	if !m.Scanning {
		m.DeviceList, cmd = m.DeviceList.Update(msg)
	}
	return m, cmd
}

func (m discoveryModel) view(width int) string {
	if m.Scanning {
		return m.renderScanning(width)
	}
	return m.renderResults()
}

func (m discoveryModel) renderScanning(width int) string {
	elapsed := time.Since(m.ScanStartTime)
	percent := elapsed.Seconds() / m.Timeout.Seconds()
	if percent > 1 {
		percent = 1
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		"",
		TitleStyle.Render(m.Spinner.View()+" SEARCHING FOR CONTROLLERS"),
		SubtitleStyle.Render("Listening for mDNS announcements on the local network..."),
		"",
		m.ProgressBar.ViewAs(percent),
		"",
		SubtitleStyle.Render(fmt.Sprintf("Elapsed: %ds", int(elapsed.Seconds()))),
	)

	return lipgloss.Place(width-6, 0, lipgloss.Center, lipgloss.Top, content)
}

func (m discoveryModel) renderResults() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.Err != nil {
		b.WriteString(StatusErrorStyle.Render("✗ Scan failed: " + m.Err.Error()))
		b.WriteString("\n\n")
		b.WriteString(HintStyle.Render("  • Check that multicast (UDP 5353) is allowed\n  • Press r to rescan"))
		return b.String()
	}

	if len(m.DeviceList.Items()) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(WarningColor).Bold(true).Render("⚠ No controllers found"))
		b.WriteString("\n\n")
		b.WriteString(HintStyle.Render(strings.Join([]string{
			"  • Ensure the controller is powered on and joined to WiFi",
			"  • Verify you're on the same network as the controller",
			"  • Press r to rescan, or esc to enter the address by hand",
		}, "\n")))
		return b.String()
	}

	b.WriteString(m.DeviceList.View())
	return b.String()
}
