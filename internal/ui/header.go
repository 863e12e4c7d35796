package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled value in a header or result box. Fields render in
// the order given.
type Field struct {
	Key   string
	Value string
}

// F is shorthand for building a Field
func F(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Header represents a command header with title, command, and parameters.
// Printed at the start of each one-shot command to show what is about to be sent.
type Header struct {
	Title   string  // e.g., "SET COLOR"
	Command string  // e.g., "ledctl color #ff0000"
	Params  []Field // e.g., Device, Endpoint, Body
	Width   int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params ...Field) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := clampWidth(h.Width)

	titleLine := HeaderTitleStyle.Render(strings.ToUpper(h.Title))
	commandLine := HeaderCommandStyle.Render(h.Command)
	topSection := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	if len(h.Params) == 0 {
		return HeaderBorderStyle(width).Render(topSection)
	}

	dividerWidth := width - 6 // Account for border and padding
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := RenderHorizontalDivider(dividerWidth, "─")

	keyWidth := 0
	for _, p := range h.Params {
		if w := lipgloss.Width(p.Key) + 1; w > keyWidth {
			keyWidth = w
		}
	}

	paramLines := make([]string, len(h.Params))
	for i, p := range h.Params {
		key := HeaderParamKeyStyle.Render(padRight(p.Key+":", keyWidth))
		paramLines[i] = key + " " + HeaderParamValueStyle.Render(p.Value)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, topSection, divider, strings.Join(paramLines, "\n"))
	return HeaderBorderStyle(width).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
