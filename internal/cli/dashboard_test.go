package cli

import (
	"testing"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDashboardCommand_PrintsSections(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Done", Column: "done", Priority: "high", AssigneeID: "2"})
	seedTask(t, c, usecase.NewTaskInput{Title: "Open", AssigneeID: "2"})
	seedTask(t, c, usecase.NewTaskInput{Title: "Late", Due: time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)})

	// Execute
	out, _, err := runCommand(newDashboardCommand(c), "--days", "7")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "[Summary]")
	assert.Regexp(t, `Total\s+3`, out)
	assert.Regexp(t, `Completion\s+33% \(↓9%\)`, out)
	assert.Regexp(t, `Past due\s+1`, out)
	assert.Contains(t, out, "[Completed, last 7 days]")
	assert.Contains(t, out, "Mar 10")
	assert.Contains(t, out, "[By priority]")
	assert.Contains(t, out, "[By assignee]")
	assert.Regexp(t, `Morgan Chen\s+2\s+1`, out)
}

func TestNewDashboardCommand_Baseline(t *testing.T) {
	c, _ := newTestContainer(t)
	seedTask(t, c, usecase.NewTaskInput{Title: "Done", Column: "done"})

	out, _, err := runCommand(newDashboardCommand(c), "--baseline", "60")

	require.NoError(t, err)
	assert.Regexp(t, `Completion\s+100% \(↑40%\)`, out)
}

func TestNewDashboardCommand_InvalidBaseline(t *testing.T) {
	c, _ := newTestContainer(t)

	_, _, err := runCommand(newDashboardCommand(c), "--baseline", "140")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(0, 5))
	assert.Equal(t, "", bar(3, 0))
	assert.Len(t, []rune(bar(5, 5)), barWidth)
	assert.Len(t, []rune(bar(1, 1000)), 1)
}
