package usecase

import (
	"context"
	"time"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/metrics"
)

// DashboardInput contains the parameters for the dashboard.
// Zero values fall back to the configured defaults.
type DashboardInput struct {
	TimelineDays int
	BaselineRate int
}

// DashboardOutput contains the derived board metrics.
// Fields are ordered to minimize memory padding.
type DashboardOutput struct {
	Now        time.Time
	Timeline   []metrics.TimelinePoint
	ByPriority []metrics.GroupCount
	ByAssignee []metrics.AssigneeStats
	Summary    metrics.Summary
	PastDue    int
}

// Dashboard is the use case for computing board metrics.
type Dashboard struct {
	board    *board.Engine
	clock    domain.Clock
	defaults domain.DashboardConfig
}

// NewDashboard creates a new Dashboard use case.
func NewDashboard(b *board.Engine, clock domain.Clock, defaults domain.DashboardConfig) *Dashboard {
	return &Dashboard{
		board:    b,
		clock:    clock,
		defaults: defaults,
	}
}

// Execute computes every dashboard metric from one snapshot of the board.
func (uc *Dashboard) Execute(_ context.Context, in DashboardInput) (*DashboardOutput, error) {
	days := in.TimelineDays
	if days == 0 {
		days = uc.defaults.TimelineDays
	}
	if days <= 0 {
		days = domain.DefaultTimelineDays
	}
	baseline := in.BaselineRate
	if baseline == 0 {
		baseline = uc.defaults.BaselineRate
	}
	if baseline < 0 || baseline > 100 {
		return nil, domain.NewValidationError("baseline", "must be between 0 and 100", nil)
	}

	tasks := uc.board.ListTasks(domain.TaskFilter{})
	now := uc.clock.Now()

	return &DashboardOutput{
		Now:        now,
		Summary:    metrics.ComputeSummary(tasks, baseline),
		PastDue:    metrics.CountPastDue(tasks, now),
		Timeline:   metrics.BuildCompletionTimeline(tasks, days, now),
		ByPriority: metrics.GroupByPriority(tasks),
		ByAssignee: metrics.GroupByAssignee(tasks),
	}, nil
}
