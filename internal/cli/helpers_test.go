package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/testutil"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

// newTestContainer creates an app.Container over in-memory stores.
// The acting user is member 1 (Alex Morgan); member 2 is Morgan Chen.
func newTestContainer(t *testing.T) (*app.Container, *testutil.MockStore) {
	t.Helper()
	cfg := domain.NewDefaultConfig()
	cfg.Members = []domain.Member{
		{ID: "1", Name: "Alex Morgan"},
		{ID: "2", Name: "Morgan Chen"},
	}
	store := testutil.NewMockStore()
	c := app.NewWithDeps(
		app.Config{DataDir: t.TempDir()},
		cfg,
		store,
		&testutil.MockStoreInitializer{Initialized: true},
		&testutil.MockClock{NowTime: testNow},
		&testutil.SequenceIDs{},
		nil,
	)
	c.ConfigLoader = &testutil.MockConfigLoader{Config: cfg}
	c.ConfigManager = &testutil.MockConfigManager{}
	return c, store
}

// runCommand executes cmd with args and returns what it wrote.
func runCommand(cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// seedTask creates a task through the use case.
func seedTask(t *testing.T, c *app.Container, in usecase.NewTaskInput) *domain.Task {
	t.Helper()
	require.NoError(t, c.Load(context.Background()))
	out, err := c.NewTaskUseCase().Execute(context.Background(), in)
	require.NoError(t, err)
	return out.Task
}

// indexIn returns the position of sub in s, or -1.
func indexIn(s, sub string) int {
	return strings.Index(s, sub)
}
