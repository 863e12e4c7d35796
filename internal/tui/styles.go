package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ledctl/ledctl/internal/color"
	"github.com/ledctl/ledctl/internal/panel"
	"github.com/ledctl/ledctl/internal/version"
)

// Application branding constants
const (
	AppName = "LEDCTL CONTROL PANEL"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72 // Minimum supported terminal width
	MinModalWidth    = 40
	SegmentColumns   = 4
	SegmentCellWidth = 10
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#00B4D8") // Cyan
	SecondaryColor = lipgloss.Color("#2ECC71") // Green
	WarningColor   = lipgloss.Color("#F4A261") // Amber
	ErrorColor     = lipgloss.Color("#E5534B") // Red

	TextColor      = lipgloss.Color("#F5F5F5")
	SubtleColor    = lipgloss.Color("#6C7A89")
	BorderColor    = lipgloss.Color("#0096C7")
	HighlightColor = lipgloss.Color("#90E0EF")
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(14)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Padding(0, 2)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	StatusOKStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	StatusPendingStyle = lipgloss.NewStyle().
				Foreground(WarningColor)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(SubtleColor).
			Padding(0, 2)

	SelectedButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(PrimaryColor).
				Bold(true).
				Padding(0, 2)
)

// RenderTitle renders a title with consistent styling
func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

// RenderMenuItem renders a menu item with selection indicator
func RenderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("→ " + text)
	}
	return MenuItemStyle.Render("  " + text)
}

// RenderSwatch draws a block of width cells filled with hex, with label on top
func RenderSwatch(hex, label string, width int) string {
	if width < lipgloss.Width(label)+2 {
		width = lipgloss.Width(label) + 2
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(color.TextOn(hex))).
		Width(width).
		Align(lipgloss.Center).
		Render(label)
}

// RenderTabBar renders the tab strip with the active tab highlighted
func RenderTabBar(tabs panel.TabSet) string {
	var parts []string
	for i, t := range panel.Tabs() {
		label := string(rune('1'+i)) + " " + t.Title()
		if tabs.IsActive(t) {
			parts = append(parts, ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, InactiveTabStyle.Render(label))
		}
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(SubtleColor).
		Render(bar)
}

// BuildHeaderContent creates header content with app name and device address
func BuildHeaderContent(address string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	if address == "" {
		address = "no device"
	}
	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render("● " + address)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// BuildFooterContent creates footer content with help text
func BuildFooterContent(helpText string) string {
	return lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(helpText)
}

// RenderApplicationContainer wraps every screen: header, content, footer and
// an outer border sized to the terminal.
//
// A zero width or height (before the first tea.WindowSizeMsg) renders at
// MinTerminalWidth with no fixed height.
func RenderApplicationContainer(content, footerText, address string, terminalWidth, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(0, 1)

	innerContent := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(BuildHeaderContent(address)),
		contentStyle.Render(content),
		footerStyle.Render(BuildFooterContent(footerText)),
	)

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(terminalWidth - 2).
		AlignVertical(lipgloss.Top)
	if terminalHeight > 2 {
		borderStyle = borderStyle.Height(terminalHeight - 2)
	}

	bordered := borderStyle.Render(innerContent)
	if terminalHeight <= 0 {
		return bordered
	}

	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Left,
		lipgloss.Top,
		bordered,
	)
}

// SafeModalWidth returns the smaller of requestedWidth and what fits in the terminal
func SafeModalWidth(requestedWidth, terminalWidth int) int {
	maxWidth := terminalWidth - 4
	if maxWidth < MinModalWidth {
		maxWidth = MinModalWidth
	}
	if requestedWidth < maxWidth {
		return requestedWidth
	}
	return maxWidth
}

// RenderModal centers modalContent on a dimmed background
func RenderModal(modalContent string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= 0 || terminalHeight <= 0 {
		return modalContent
	}
	return lipgloss.Place(
		terminalWidth,
		terminalHeight,
		lipgloss.Center,
		lipgloss.Center,
		modalContent,
		lipgloss.WithWhitespaceChars("░"),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("240")),
	)
}

// field renders "Label   value"
func field(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

// indent prefixes every line of s with n spaces
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
