package models

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/serialterm"
	"github.com/allbin/serialterm/internal/tui/components"
	"github.com/allbin/serialterm/internal/tui/keys"
)

// Focus is the pane that receives pane-specific keys
type Focus int

const (
	FocusPorts Focus = iota
	FocusOutput
	FocusInput
)

func (f Focus) String() string {
	switch f {
	case FocusOutput:
		return "Output"
	case FocusInput:
		return "Input"
	default:
		return "Ports"
	}
}

// BaudRates is the cycle walked by the baud keys
var BaudRates = []int{9600, 19200, 38400, 57600, 115200, 230400}

const (
	scrollStep          = 5
	defaultTickInterval = 100 * time.Millisecond
	defaultBaudRate     = 115200
)

// Options configures a SessionModel
type Options struct {
	BaudRate       int
	MaxOutputLines int
	TickInterval   time.Duration

	// Device is selected and opened on start when set
	Device string

	// SessionOptions are passed to every session. The baud rate is
	// appended from the model's current setting.
	SessionOptions []serial.Option

	// ListDevices defaults to serial.ListDevices
	ListDevices func() ([]serial.PortInfo, error)

	Logger *slog.Logger
}

type tickMsg time.Time

// SessionModel coordinates the terminal. It owns at most one session,
// folds the session's events into the output log on every tick and maps
// keys onto session operations.
type SessionModel struct {
	ctx    context.Context
	cancel context.CancelFunc

	listDevices  func() ([]serial.PortInfo, error)
	sessionOpts  []serial.Option
	tickInterval time.Duration
	logger       *slog.Logger

	session   *serial.Session
	events    *serial.EventQueue
	sawOpened bool
	open      bool

	baudRate int
	focus    Focus
	display  components.DisplayMode

	log    *components.OutputLog
	ports  *components.PortList
	output *components.Output
	input  *components.Input
	header *components.Header
	help   help.Model
	keys   keys.AppKeys

	width int
	ready bool
}

func NewSessionModel(opts Options) *SessionModel {
	ctx, cancel := context.WithCancel(context.Background())

	m := &SessionModel{
		ctx:          ctx,
		cancel:       cancel,
		listDevices:  opts.ListDevices,
		sessionOpts:  opts.SessionOptions,
		tickInterval: opts.TickInterval,
		logger:       opts.Logger,
		baudRate:     opts.BaudRate,
		focus:        FocusPorts,
		log:          components.NewOutputLog(opts.MaxOutputLines),
		ports:        components.NewPortList(),
		output:       components.NewOutput(40, 10),
		input:        components.NewInput(),
		header:       components.NewHeader("serialterm"),
		help:         help.New(),
		keys:         keys.NewAppKeys(),
	}
	if m.listDevices == nil {
		m.listDevices = serial.ListDevices
	}
	if m.tickInterval <= 0 {
		m.tickInterval = defaultTickInterval
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if m.baudRate <= 0 {
		m.baudRate = defaultBaudRate
	}

	m.refreshDevices()
	m.ports.ClearSelection()

	if opts.Device != "" {
		if m.ports.Select(opts.Device) {
			m.openSelected()
		} else {
			// Not enumerated (a pty, say); open it by path anyway
			m.openDevice(opts.Device)
		}
	}
	return m
}

func (m *SessionModel) Init() tea.Cmd {
	return m.tick()
}

func (m *SessionModel) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.drainEvents()
		return m, m.tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

// drainEvents folds every queued session event into the model
func (m *SessionModel) drainEvents() {
	if m.events == nil {
		return
	}

	for _, ev := range m.events.Drain() {
		switch ev := ev.(type) {
		case serial.Opened:
			m.open = true
			m.sawOpened = true
			m.appendLine(components.LineOpened)
		case serial.Data:
			for _, line := range components.FormatData(ev.Bytes, m.display) {
				m.appendLine(line)
			}
		case serial.Error:
			m.appendLine(components.FormatError(ev.Message))
			// An open failure is final without a Closed event
			if !m.sawOpened {
				m.logger.Warn("session failed to open", "error", ev.Message)
				m.dropSession()
			}
		case serial.Closed:
			m.open = false
			m.appendLine(components.LineClosed)
			m.dropSession()
		}
	}
}

func (m *SessionModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.quit()
	case key.Matches(msg, m.keys.NextFocus):
		m.setFocus((m.focus + 1) % 3)
		return nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.setFocus((m.focus + 2) % 3)
		return nil
	}

	// The input box takes printable keys, so global letter keys only
	// apply to the other panes
	if m.focus == FocusInput {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Refresh):
		m.refreshDevices()
	case key.Matches(msg, m.keys.BaudUp):
		m.cycleBaud(1)
	case key.Matches(msg, m.keys.BaudDown):
		m.cycleBaud(-1)
	case m.focus == FocusPorts:
		m.handlePortsKey(msg)
	case m.focus == FocusOutput:
		m.handleOutputKey(msg)
	}
	return nil
}

func (m *SessionModel) handlePortsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.ports.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.ports.Move(1)
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSession()
	}
}

func (m *SessionModel) handleOutputKey(msg tea.KeyMsg) {
	total := m.log.Len()
	switch {
	case key.Matches(msg, m.keys.PageUp):
		m.output.ScrollUp(scrollStep, total)
	case key.Matches(msg, m.keys.PageDown):
		m.output.ScrollDown(scrollStep)
	case key.Matches(msg, m.keys.GotoTop):
		m.output.GotoTop(total)
	case key.Matches(msg, m.keys.GotoBottom):
		m.output.GotoBottom()
	case key.Matches(msg, m.keys.Clear):
		m.log.Clear()
		m.output.GotoBottom()
	case key.Matches(msg, m.keys.ToggleHex):
		if m.display == components.DisplayText {
			m.display = components.DisplayHex
		} else {
			m.display = components.DisplayText
		}
	}
}

func (m *SessionModel) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Send):
		m.sendInput()
		return nil
	case key.Matches(msg, m.keys.HistoryPrev):
		m.input.NavigateHistoryUp()
		return nil
	case key.Matches(msg, m.keys.HistoryNext):
		m.input.NavigateHistoryDown()
		return nil
	case key.Matches(msg, m.keys.ToggleSendMode):
		m.input.ToggleSendingMode()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *SessionModel) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *SessionModel) refreshDevices() {
	devices, err := m.listDevices()
	if err != nil {
		m.logger.Error("device enumeration failed", "error", err)
		m.appendLine(components.FormatError(err.Error()))
		devices = nil
	}
	m.ports.SetDevices(devices)
}

func (m *SessionModel) cycleBaud(step int) {
	idx := max(slices.Index(BaudRates, m.baudRate), 0)
	next := (idx + step + len(BaudRates)) % len(BaudRates)
	m.baudRate = BaudRates[next]
}

// toggleSession closes the current session, or opens the selected device
// when there is none
func (m *SessionModel) toggleSession() {
	if m.session != nil {
		m.closeSession()
		return
	}
	m.openSelected()
}

func (m *SessionModel) openSelected() {
	device, ok := m.ports.Selected()
	if !ok {
		m.appendLine(components.FormatError("no port selected"))
		return
	}
	m.openDevice(device.Path)
}

func (m *SessionModel) openDevice(path string) {
	opts := append(slices.Clone(m.sessionOpts), serial.WithBaudRate(m.baudRate))
	session, events, err := serial.OpenSession(m.ctx, path, opts...)
	if err != nil {
		m.appendLine(components.FormatError(err.Error()))
		return
	}

	m.logger.Info("opening session", "device", path, "baud", m.baudRate)
	m.session = session
	m.events = events
	m.sawOpened = false
}

// closeSession asks the worker to stop and forgets it. Events still in
// flight, including the final Closed, are discarded.
func (m *SessionModel) closeSession() {
	m.logger.Info("closing session", "device", m.session.Device())
	m.session.Close()
	m.dropSession()
	m.open = false
	m.appendLine(components.LineClosing)
}

func (m *SessionModel) dropSession() {
	m.session = nil
	m.events = nil
}

func (m *SessionModel) sendInput() {
	value := m.input.Value()
	if value == "" {
		return
	}
	if m.session == nil {
		m.appendLine(components.LineNotOpen)
		return
	}

	mode := m.input.SendingMode()
	var payload []byte
	if mode == components.SendingModeHex {
		data, err := components.ParseHex(value)
		if err != nil {
			m.appendLine(components.FormatError(err.Error()))
			return
		}
		payload = data
	} else {
		payload = []byte(value + "\n")
	}

	if err := m.session.Write(payload); err != nil {
		m.appendLine(components.FormatError(err.Error()))
		if errors.Is(err, serial.ErrDisconnected) {
			m.logger.Debug("write after session ended", "device", m.session.Device())
		}
		return
	}
	m.logger.Debug("queued write", "bytes", len(payload))

	m.appendLine(components.FormatSent(value, mode))
	m.input.AddToHistory(value)
	m.input.SetValue("")
}

func (m *SessionModel) appendLine(line string) {
	m.log.Append(line)
}

func (m *SessionModel) quit() tea.Cmd {
	m.Shutdown()
	return tea.Quit
}

// Shutdown closes any session and stops its worker. It is safe to call
// more than once.
func (m *SessionModel) Shutdown() {
	if m.session != nil {
		m.session.Close()
		m.dropSession()
		m.open = false
	}
	m.cancel()
}

// Layout: one header line, the body, the titled input box and the help line
const (
	headerHeight = 1
	footerHeight = 4
	helpHeight   = 1
	paneChrome   = 3 // title line plus top and bottom border
)

func (m *SessionModel) resize(width, height int) {
	m.width = width
	m.header.SetWidth(width)
	m.help.Width = width
	m.input.SetWidth(width)

	body := max(height-headerHeight-footerHeight-helpHeight, paneChrome+1)
	portsWidth := width * 30 / 100
	m.ports.SetSize(portsWidth-2, body-paneChrome)
	m.output.SetSize(width-portsWidth-2, body-paneChrome)
	m.ready = true
}

func (m *SessionModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	port := ""
	if m.session != nil {
		port = filepath.Base(m.session.Device())
	} else if d, ok := m.ports.Selected(); ok {
		port = d.Name
	}

	header := m.header.View(components.HeaderInfo{
		BaudRate: m.baudRate,
		Port:     port,
		Open:     m.open,
		Display:  m.display,
		Sending:  m.input.SendingMode(),
	})

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.ports.View(FocusPorts.String(), m.focus == FocusPorts),
		m.output.View(m.log, FocusOutput.String(), m.focus == FocusOutput),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		m.input.View(m.focus.String(), m.focus == FocusInput),
		m.help.View(m.keys),
	)
}

// IsOpen reports whether the current session has been confirmed open
func (m *SessionModel) IsOpen() bool {
	return m.open
}

// HasSession reports whether a session is held, opened or not yet
func (m *SessionModel) HasSession() bool {
	return m.session != nil
}

func (m *SessionModel) BaudRate() int {
	return m.baudRate
}

func (m *SessionModel) Focus() Focus {
	return m.focus
}

func (m *SessionModel) DisplayMode() components.DisplayMode {
	return m.display
}

func (m *SessionModel) SelectedIndex() int {
	return m.ports.SelectedIndex()
}

func (m *SessionModel) Devices() []serial.PortInfo {
	return m.ports.Devices()
}

func (m *SessionModel) InputValue() string {
	return m.input.Value()
}

func (m *SessionModel) ScrollOffset() int {
	return m.output.Offset()
}

// Lines returns the output log, oldest first
func (m *SessionModel) Lines() []string {
	return m.log.Lines(0, m.log.Len())
}
