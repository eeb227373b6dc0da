package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		binding key.Binding
		name    string
		msg     tea.KeyMsg
	}{
		{name: "up", binding: keys.Up, msg: tea.KeyMsg{Type: tea.KeyUp}},
		{name: "down j", binding: keys.Down, msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}},
		{name: "left h", binding: keys.Left, msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}},
		{name: "move left H", binding: keys.MoveLeft, msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("H")}},
		{name: "move right shift+right", binding: keys.MoveRight, msg: tea.KeyMsg{Type: tea.KeyShiftRight}},
		{name: "quit ctrl+c", binding: keys.Quit, msg: tea.KeyMsg{Type: tea.KeyCtrlC}},
		{name: "confirm enter", binding: keys.Confirm, msg: tea.KeyMsg{Type: tea.KeyEnter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestDefaultKeyMap_ColumnMovesDoNotOverlap(t *testing.T) {
	keys := DefaultKeyMap()
	h := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")}
	shiftH := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("H")}

	assert.False(t, key.Matches(h, keys.MoveLeft))
	assert.False(t, key.Matches(shiftH, keys.Left))
}

func TestKeyMap_Help(t *testing.T) {
	keys := DefaultKeyMap()

	assert.Contains(t, keys.ShortHelp(), keys.Help)
	full := keys.FullHelp()
	assert.Len(t, full, 3)
	for _, group := range full {
		for _, b := range group {
			assert.NotEmpty(t, b.Help().Key)
			assert.NotEmpty(t, b.Help().Desc)
		}
	}
}
