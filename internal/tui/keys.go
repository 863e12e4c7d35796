package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// panelKeyMap defines key bindings for the main panel
type panelKeyMap struct {
	NextTab  key.Binding
	PrevTab  key.Binding
	GotoTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Enter    key.Binding
	Power    key.Binding
	Discover key.Binding
	New      key.Binding
	Apply    key.Binding
	Help     key.Binding
	Quit     key.Binding

	tab func() string
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k panelKeyMap) ShortHelp() []key.Binding {
	bindings := []key.Binding{k.NextTab}
	switch k.currentTab() {
	case "control":
		bindings = append(bindings, k.Up, k.Left, k.Enter, k.Power, k.Discover)
	case "color":
		bindings = append(bindings, k.Enter)
	case "presets":
		bindings = append(bindings, k.Up, k.Enter, k.New)
	case "segments":
		bindings = append(bindings, k.Left, k.Enter, k.Apply)
	}
	return append(bindings, k.Help, k.Quit)
}

// FullHelp returns keybindings for the expanded help view
func (k panelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.GotoTab},
		{k.Up, k.Down, k.Left, k.Right, k.Enter},
		{k.Power, k.Discover, k.New, k.Apply},
		{k.Help, k.Quit},
	}
}

func (k panelKeyMap) currentTab() string {
	if k.tab == nil {
		return ""
	}
	return k.tab()
}

// modalKeyMap defines key bindings for text entry modals
type modalKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k modalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns keybindings for the expanded help view
func (k modalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

// pickerKeyMap defines key bindings for the color picker
type pickerKeyMap struct {
	Hue       key.Binding
	Lightness key.Binding
	Choose    key.Binding
	Abandon   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k pickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hue, k.Lightness, k.Choose, k.Abandon}
}

// FullHelp returns keybindings for the expanded help view
func (k pickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Hue, k.Lightness}, {k.Choose, k.Abandon}}
}

// discoveryKeyMap defines key bindings for the discovery screen
type discoveryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Rescan key.Binding
	Back   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k discoveryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Rescan, k.Back}
}

// FullHelp returns keybindings for the expanded help view
func (k discoveryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Select}, {k.Rescan, k.Back}}
}

func newPanelKeyMap() panelKeyMap {
	return panelKeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		GotoTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "jump to tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "move"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "adjust"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Power: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "power"),
		),
		Discover: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "discover"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new preset"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func newModalKeyMap() modalKeyMap {
	return modalKeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func newPickerKeyMap() pickerKeyMap {
	return pickerKeyMap{
		Hue: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "hue"),
		),
		Lightness: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "lightness"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Abandon: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func newDiscoveryKeyMap() discoveryKeyMap {
	return discoveryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "use device"),
		),
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "back"),
		),
	}
}
