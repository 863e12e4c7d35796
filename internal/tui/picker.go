package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ledctl/ledctl/internal/color"
	"github.com/ledctl/ledctl/internal/panel"
)

const (
	hueStep       = 15
	lightnessStep = 0.05
)

// pickerModel is the color picker modal. It settles exactly one PickRequest.
type pickerModel struct {
	Title   string
	Current string
	Invalid bool

	req   *panel.PickRequest
	input textinput.Model
	keys  pickerKeyMap
}

func newPickerModel(req *panel.PickRequest, title string) pickerModel {
	initial, ok := color.Normalize(req.Initial)
	if !ok {
		initial = color.Default
	}

	in := textinput.New()
	in.Prompt = "# "
	in.Placeholder = "rrggbb"
	in.CharLimit = 7
	in.Width = 10
	in.SetValue(strings.TrimPrefix(initial, "#"))
	in.Focus()

	if title == "" {
		title = "Pick a color"
	}

	return pickerModel{
		Title:   title,
		Current: initial,
		req:     req,
		input:   in,
		keys:    newPickerKeyMap(),
	}
}

// update handles a key press. done reports that the request was settled.
func (p pickerModel) update(msg tea.KeyMsg) (pickerModel, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, p.keys.Abandon):
		p.req.Abandon()
		return p, nil, true

	case key.Matches(msg, p.keys.Choose):
		hex, ok := color.Normalize(p.input.Value())
		if !ok {
			p.Invalid = true
			return p, nil, false
		}
		p.req.Resolve(hex)
		p.Current = hex
		return p, nil, true

	case msg.Type == tea.KeyLeft:
		p.setCurrent(color.Shift(p.Current, -hueStep, 0))
		return p, nil, false
	case msg.Type == tea.KeyRight:
		p.setCurrent(color.Shift(p.Current, hueStep, 0))
		return p, nil, false
	case msg.Type == tea.KeyUp:
		p.setCurrent(color.Shift(p.Current, 0, lightnessStep))
		return p, nil, false
	case msg.Type == tea.KeyDown:
		p.setCurrent(color.Shift(p.Current, 0, -lightnessStep))
		return p, nil, false
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if hex, ok := color.Normalize(p.input.Value()); ok {
		p.Current = hex
		p.Invalid = false
	}
	return p, cmd, false
}

func (p *pickerModel) setCurrent(hex string) {
	p.Current = hex
	p.Invalid = false
	p.input.SetValue(strings.TrimPrefix(hex, "#"))
	p.input.CursorEnd()
}

func (p pickerModel) view(width int) string {
	rgb := color.ParseHex(p.Current)

	var b strings.Builder
	b.WriteString(RenderTitle(p.Title))
	b.WriteString("\n")
	b.WriteString(RenderSwatch(p.Current, p.Current, 24))
	b.WriteString("\n")
	b.WriteString(RenderSwatch(p.Current, "", 24))
	b.WriteString("\n\n")
	b.WriteString(field("Hex", p.input.View()))
	b.WriteString("\n")
	b.WriteString(field("RGB", rgb.String()))
	b.WriteString("\n")
	if p.Invalid {
		b.WriteString("\n")
		b.WriteString(StatusErrorStyle.Render("Enter a color as #rgb or #rrggbb"))
		b.WriteString("\n")
	}

	return ModalStyle.
		Width(SafeModalWidth(48, width)).
		Render(b.String())
}
