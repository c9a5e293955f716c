package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/tui/styles"
)

const (
	columnKeyMarker = "marker"
	columnKeyName   = "name"
	columnKeyLabel  = "label"
)

// PortList is the device pane. Selection is an index into the device
// list, or -1 when nothing is selected.
type PortList struct {
	devices  []serial.PortInfo
	selected int
	width    int
	height   int
}

func NewPortList() *PortList {
	return &PortList{selected: -1}
}

// SetDevices replaces the list. Any previous selection is meaningless
// afterwards, so the first device is selected, or none when empty.
func (p *PortList) SetDevices(devices []serial.PortInfo) {
	p.devices = devices
	if len(devices) == 0 {
		p.selected = -1
	} else {
		p.selected = 0
	}
}

func (p *PortList) Devices() []serial.PortInfo {
	return p.devices
}

func (p *PortList) SelectedIndex() int {
	return p.selected
}

// ClearSelection keeps the devices but selects none of them
func (p *PortList) ClearSelection() {
	p.selected = -1
}

// Selected returns the selected device, if any
func (p *PortList) Selected() (serial.PortInfo, bool) {
	if p.selected < 0 || p.selected >= len(p.devices) {
		return serial.PortInfo{}, false
	}
	return p.devices[p.selected], true
}

// Select selects the device with the given path or name
func (p *PortList) Select(device string) bool {
	for i, d := range p.devices {
		if d.Path == device || d.Name == device {
			p.selected = i
			return true
		}
	}
	return false
}

// Move shifts the selection by delta, clamped to the list. With no
// selection it moves from the first entry.
func (p *PortList) Move(delta int) {
	if len(p.devices) == 0 {
		p.selected = -1
		return
	}
	next := max(p.selected, 0) + delta
	p.selected = min(max(next, 0), len(p.devices)-1)
}

// SetSize sets the inner size, excluding the pane border
func (p *PortList) SetSize(width, height int) {
	p.width = max(width, 10)
	p.height = max(height, 1)
}

// window returns the range of rows that fits the pane and keeps the
// selection visible
func (p *PortList) window() (int, int) {
	rows := max(p.height-2, 1) // table header and its border
	start := 0
	if p.selected >= rows {
		start = p.selected - rows + 1
	}
	return start, min(start+rows, len(p.devices))
}

func (p *PortList) View(title string, focused bool) string {
	nameWidth := 14
	labelWidth := max(p.width-nameWidth-6, 4)

	columns := []table.Column{
		table.NewColumn(columnKeyMarker, "", 2),
		table.NewColumn(columnKeyName, "Port", nameWidth),
		table.NewColumn(columnKeyLabel, "Device", labelWidth).
			WithStyle(styles.PortLabelStyle),
	}

	start, end := p.window()
	rows := make([]table.Row, 0, end-start)
	for i := start; i < end; i++ {
		d := p.devices[i]
		marker := ""
		if i == p.selected {
			marker = ">"
		}
		rows = append(rows, table.NewRow(table.RowData{
			columnKeyMarker: marker,
			columnKeyName:   d.Name,
			columnKeyLabel:  d.Label(),
		}))
	}

	t := table.New(columns).
		WithRows(rows).
		WithBaseStyle(styles.PortRowStyle).
		HighlightStyle(styles.SelectedPortStyle).
		Focused(p.selected >= 0)
	if p.selected >= 0 {
		t = t.WithHighlightedRow(p.selected - start)
	}

	body := t.View()
	if len(p.devices) == 0 {
		body = styles.StatusLineStyle.Render("no serial ports found (r to refresh)")
	}

	pane := styles.PaneStyle
	if focused {
		pane = styles.FocusedPaneStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.PaneTitleStyle.Render(" "+title+" "),
		pane.Width(p.width).Height(p.height).Render(body))
}
