package keys

import "github.com/charmbracelet/bubbles/key"

// AppKeys are the bindings of the interactive terminal. Global keys work
// in every pane except where the input box needs the character.
type AppKeys struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	NextFocus key.Binding
	PrevFocus key.Binding
	Refresh   key.Binding
	BaudUp    key.Binding
	BaudDown  key.Binding

	// Ports pane
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding

	// Output pane
	PageUp     key.Binding
	PageDown   key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding
	Clear      key.Binding
	ToggleHex  key.Binding

	// Input pane
	Send           key.Binding
	HistoryPrev    key.Binding
	HistoryNext    key.Binding
	ToggleSendMode key.Binding
}

func NewAppKeys() AppKeys {
	return AppKeys{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh ports"),
		),
		BaudUp: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "next baud"),
		),
		BaudDown: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "previous baud"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open/close"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "oldest"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "follow"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear output"),
		),
		ToggleHex: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "toggle hex view"),
		),
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous command"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next command"),
		),
		ToggleSendMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle hex input"),
		),
	}
}

func (k AppKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextFocus, k.Toggle, k.BaudUp, k.Quit}
}

func (k AppKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus, k.Refresh, k.BaudUp, k.BaudDown},
		{k.Up, k.Down, k.Toggle},
		{k.PageUp, k.PageDown, k.GotoTop, k.GotoBottom, k.Clear, k.ToggleHex},
		{k.Send, k.HistoryPrev, k.HistoryNext, k.ToggleSendMode},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
