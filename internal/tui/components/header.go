package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serialterm/internal/tui/styles"
)

// HeaderInfo is the session state shown in the header
type HeaderInfo struct {
	BaudRate int
	Port     string // empty when nothing is selected
	Open     bool
	Display  DisplayMode
	Sending  SendingMode
}

const headerHint = "q:quit  tab:focus  r:refresh  b/B:baud  enter:open/close  ?:help"

// Header renders the top bar
type Header struct {
	title string
	width int
}

func NewHeader(title string) *Header {
	return &Header{title: title}
}

func (h *Header) SetWidth(width int) {
	h.width = width
}

func (h *Header) View(info HeaderInfo) string {
	width := h.width
	if width <= 0 {
		width = 80
	}

	status := "CLOSED"
	if info.Open {
		status = "OPEN"
	}

	left := []string{
		styles.TitleStyle.Render(h.title),
		styles.HintStyle.Render(headerHint),
	}
	right := []string{
		styles.HintStyle.Render(fmt.Sprintf("rx:%s tx:%s", info.Display, info.Sending)),
		styles.BaudStyle.Render(fmt.Sprintf("[baud:%d]", info.BaudRate)),
	}
	if info.Port != "" {
		right = append(right, styles.PortStyle.Render("port:"+info.Port))
	}
	right = append(right, styles.StatusStyle(info.Open).Render(status))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, left...)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, right...)

	// Drop the key hint first when the terminal is narrow
	if lipgloss.Width(leftSide)+lipgloss.Width(rightSide) > width {
		leftSide = left[0]
	}

	spacerWidth := max(width-lipgloss.Width(leftSide)-lipgloss.Width(rightSide), 1)
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Background(styles.Surface0).
		Width(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
