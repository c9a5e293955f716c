package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serialterm/internal/tui/styles"
)

// Output shows the tail of an OutputLog. The scroll offset counts lines
// back from the newest one; zero follows new output.
type Output struct {
	viewport viewport.Model
	scroll   int
}

func NewOutput(width, height int) *Output {
	return &Output{viewport: viewport.New(width, height)}
}

// SetSize sets the inner size, excluding the pane border
func (o *Output) SetSize(width, height int) {
	o.viewport.Width = max(width, 1)
	o.viewport.Height = max(height, 1)
}

func (o *Output) Height() int {
	return o.viewport.Height
}

func (o *Output) Offset() int {
	return o.scroll
}

// maxScroll is the offset that puts the oldest line at the top
func (o *Output) maxScroll(total int) int {
	return max(total-o.viewport.Height, 0)
}

func (o *Output) ScrollUp(n, total int) {
	o.scroll = min(o.scroll+n, o.maxScroll(total))
}

func (o *Output) ScrollDown(n int) {
	o.scroll = max(o.scroll-n, 0)
}

func (o *Output) GotoTop(total int) {
	o.scroll = o.maxScroll(total)
}

func (o *Output) GotoBottom() {
	o.scroll = 0
}

// Visible returns the window of log lines currently on screen
func (o *Output) Visible(log *OutputLog) []string {
	total := log.Len()
	scroll := min(o.scroll, o.maxScroll(total))
	end := total - scroll
	start := max(end-o.viewport.Height, 0)
	return log.Lines(start, end)
}

func (o *Output) View(log *OutputLog, title string, focused bool) string {
	lines := o.Visible(log)
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = RenderLine(line)
	}
	o.viewport.SetContent(strings.Join(rendered, "\n"))

	pane := styles.PaneStyle
	if focused {
		pane = styles.FocusedPaneStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.PaneTitleStyle.Render(" "+title+" "),
		pane.Width(o.viewport.Width).Render(o.viewport.View()))
}
