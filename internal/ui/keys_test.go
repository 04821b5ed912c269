package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestActionForMapsBindings(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, ActionQuit},
		{tea.KeyMsg{Type: tea.KeyEnter}, ActionEnter},
		{tea.KeyMsg{Type: tea.KeyEsc}, ActionBack},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, ActionRefresh},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}}, ActionRerun},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'C'}}, ActionCancel},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, ActionSearch},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, ActionUp},
		{tea.KeyMsg{Type: tea.KeyUp}, ActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, ActionDown},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, ActionNextPage},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, ActionPrevPage},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}}, ActionOpen},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}}, ActionLogs},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, ActionNone},
	}

	for _, tc := range cases {
		if got := ActionFor(tc.msg); got != tc.want {
			t.Errorf("ActionFor(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}
