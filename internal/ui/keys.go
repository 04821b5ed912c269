package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	Quit     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Refresh  key.Binding
	Search   key.Binding
	Rerun    key.Binding
	Cancel   key.Binding
	Logs     key.Binding
	Open     key.Binding
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
}

var Keys = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	Rerun:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "rerun")),
	Cancel:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "cancel run")),
	Logs:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logs")),
	Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	NextPage: key.NewBinding(key.WithKeys("right", "n"), key.WithHelp("n", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("left", "p"), key.WithHelp("p", "prev page")),
}

// Action is a view-independent input intent.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionEnter
	ActionBack
	ActionRefresh
	ActionSearch
	ActionRerun
	ActionCancel
	ActionLogs
	ActionOpen
	ActionUp
	ActionDown
	ActionNextPage
	ActionPrevPage
)

// ActionFor translates a key press into its intent. Views decide what
// the intent means in their own context.
func ActionFor(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, Keys.Quit):
		return ActionQuit
	case key.Matches(msg, Keys.Enter):
		return ActionEnter
	case key.Matches(msg, Keys.Back):
		return ActionBack
	case key.Matches(msg, Keys.Refresh):
		return ActionRefresh
	case key.Matches(msg, Keys.Search):
		return ActionSearch
	case key.Matches(msg, Keys.Rerun):
		return ActionRerun
	case key.Matches(msg, Keys.Cancel):
		return ActionCancel
	case key.Matches(msg, Keys.Logs):
		return ActionLogs
	case key.Matches(msg, Keys.Open):
		return ActionOpen
	case key.Matches(msg, Keys.Up):
		return ActionUp
	case key.Matches(msg, Keys.Down):
		return ActionDown
	case key.Matches(msg, Keys.NextPage):
		return ActionNextPage
	case key.Matches(msg, Keys.PrevPage):
		return ActionPrevPage
	}
	return ActionNone
}
