package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Execute(t *testing.T) {
	// Setup
	f := newFixture(t)
	ctx := context.Background()
	done := f.createTask(t, "Done", morgan.ID)
	f.createTask(t, "Open", morgan.ID)
	_, err := NewMoveTask(f.board, f.notifier, alex.ID).Execute(ctx, MoveTaskInput{TaskID: done.ID, Column: "done"})
	require.NoError(t, err)
	uc := NewDashboard(f.board, f.clock, domain.DashboardConfig{BaselineRate: 42, TimelineDays: 14})

	// Execute
	out, err := uc.Execute(ctx, DashboardInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, out.Summary.Total)
	assert.Equal(t, 1, out.Summary.Done)
	assert.Equal(t, 50, out.Summary.CompletionRate)
	assert.Equal(t, 8, out.Summary.Trend.Value)
	assert.True(t, out.Summary.Trend.Up)
	assert.Equal(t, 0, out.PastDue)

	require.Len(t, out.Timeline, 14)
	assert.Equal(t, 1, out.Timeline[13].Count, "completed today")

	require.Len(t, out.ByAssignee, 1)
	assert.Equal(t, morgan.Name, out.ByAssignee[0].Name)
	assert.Equal(t, 1, out.ByAssignee[0].Completed)
}

func TestDashboard_Execute_Overrides(t *testing.T) {
	f := newFixture(t)
	uc := NewDashboard(f.board, f.clock, domain.DashboardConfig{BaselineRate: 42, TimelineDays: 14})

	out, err := uc.Execute(context.Background(), DashboardInput{TimelineDays: 7, BaselineRate: 80})
	require.NoError(t, err)
	assert.Len(t, out.Timeline, 7)
	assert.Equal(t, 80, out.Summary.Trend.Value)
	assert.False(t, out.Summary.Trend.Up)

	_, err = uc.Execute(context.Background(), DashboardInput{BaselineRate: 120})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
