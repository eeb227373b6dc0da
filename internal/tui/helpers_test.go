package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/testutil"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

// newTestModel returns a model over an in-memory loaded container.
func newTestModel(t *testing.T) (*Model, *app.Container) {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	cfg.Members = []domain.Member{
		{ID: "1", Name: "Alex Morgan"},
		{ID: "2", Name: "Morgan Chen"},
	}
	c := app.NewWithDeps(
		app.Config{DataDir: t.TempDir()},
		cfg,
		testutil.NewMockStore(),
		&testutil.MockStoreInitializer{Initialized: true},
		&testutil.MockClock{NowTime: testNow},
		&testutil.SequenceIDs{},
		nil,
	)
	require.NoError(t, c.Load(context.Background()))

	m := New(c)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, c
}

// addTask creates a task through the use case.
func addTask(t *testing.T, c *app.Container, in usecase.NewTaskInput) *domain.Task {
	t.Helper()
	out, err := c.NewTaskUseCase().Execute(context.Background(), in)
	require.NoError(t, err)
	return out.Task
}

// reload feeds a fresh board snapshot into the model.
func reload(t *testing.T, m *Model) {
	t.Helper()
	msg := m.loadBoard()()
	require.IsType(t, MsgBoardLoaded{}, msg)
	m.Update(msg)
}

// press sends a key to the model and returns the resulting command.
func press(m *Model, k string) tea.Cmd {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

// settle runs cmd and feeds its result back until the model is idle.
func settle(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	for i := 0; cmd != nil && i < 5; i++ {
		msg := cmd()
		if err, ok := msg.(MsgError); ok {
			t.Fatalf("unexpected error: %v", err.Err)
		}
		_, cmd = m.Update(msg)
	}
}
