package styles

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha color palette
var (
	Base     = lipgloss.Color("#1e1e2e") // Dark background
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Overlay0 = lipgloss.Color("#6c7086")
	Subtext0 = lipgloss.Color("#a6adc8")
	Text     = lipgloss.Color("#cdd6f4") // Main text

	Blue   = lipgloss.Color("#89b4fa")
	Sky    = lipgloss.Color("#89dceb")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Peach  = lipgloss.Color("#fab387")
	Red    = lipgloss.Color("#f38ba8")
	Mauve  = lipgloss.Color("#cba6f7")
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Base).
			Background(Sky).
			Padding(0, 1)

	HintStyle = lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 1)

	BaudStyle = lipgloss.NewStyle().
			Foreground(Yellow).
			Padding(0, 1)

	PortStyle = lipgloss.NewStyle().
			Foreground(Green).
			Padding(0, 1)

	// Status styles
	StatusOpenStyle = lipgloss.NewStyle().
			Foreground(Base).
			Background(Green).
			Bold(true).
			Padding(0, 1)

	StatusClosedStyle = lipgloss.NewStyle().
				Foreground(Base).
				Background(Red).
				Bold(true).
				Padding(0, 1)

	// Pane borders; the focused pane is highlighted
	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Surface2)

	FocusedPaneStyle = PaneStyle.
				BorderForeground(Mauve)

	PaneTitleStyle = lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true)

	// Port list
	PortRowStyle = lipgloss.NewStyle().
			Foreground(Text)

	PortLabelStyle = lipgloss.NewStyle().
			Foreground(Overlay0)

	SelectedPortStyle = lipgloss.NewStyle().
				Foreground(Text).
				Background(Blue).
				Bold(true)

	// Output lines
	ErrorLineStyle = lipgloss.NewStyle().
			Foreground(Red)

	StatusLineStyle = lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true)

	SentLineStyle = lipgloss.NewStyle().
			Foreground(Peach)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Padding(0, 1)

	FocusedInputStyle = InputStyle.
				BorderForeground(Yellow)

	HexPromptStyle = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)

	TextPromptStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)
)

// StatusStyle returns the badge style for the connection state
func StatusStyle(open bool) lipgloss.Style {
	if open {
		return StatusOpenStyle
	}
	return StatusClosedStyle
}
