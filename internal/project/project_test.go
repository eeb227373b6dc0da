package project

import (
	"testing"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func sampleProjects() []*domain.Project {
	return []*domain.Project{
		{ID: "p-1", Name: "Website Redesign", Description: "New landing pages", Status: domain.ProjectActive,
			Updated: testNow.AddDate(0, 0, -2), Tasks: domain.ProjectTotals{Total: 4, Completed: 1}},
		{ID: "p-2", Name: "mobile App", Description: "iOS and Android release", Status: domain.ProjectOnHold,
			Updated: testNow, Progress: intPtr(80)},
		{ID: "p-3", Name: "Marketing Campaign", Description: "Spring launch for the website", Status: domain.ProjectCompleted,
			Updated: testNow.AddDate(0, 0, -1), Tasks: domain.ProjectTotals{Total: 3, Completed: 3}},
	}
}

func ids(projects []*domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		project domain.Project
		want    int
	}{
		{"no tasks", domain.Project{}, 0},
		{"rounded ratio", domain.Project{Tasks: domain.ProjectTotals{Total: 3, Completed: 2}}, 67},
		{"all done", domain.Project{Tasks: domain.ProjectTotals{Total: 5, Completed: 5}}, 100},
		{"explicit wins", domain.Project{Progress: intPtr(25), Tasks: domain.ProjectTotals{Total: 2, Completed: 2}}, 25},
		{"explicit zero", domain.Project{Progress: intPtr(0), Tasks: domain.ProjectTotals{Total: 2, Completed: 1}}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Progress(&tt.project))
		})
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"everything", Query{}, []string{"p-1", "p-2", "p-3"}},
		{"name is case-insensitive", Query{Search: "MOBILE"}, []string{"p-2"}},
		{"description matches", Query{Search: "website"}, []string{"p-1", "p-3"}},
		{"status", Query{Status: domain.ProjectOnHold}, []string{"p-2"}},
		{"status and search", Query{Status: domain.ProjectActive, Search: "launch"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sampleProjects(), tt.query)))
		})
	}
}

func TestSort(t *testing.T) {
	tests := []struct {
		key  SortKey
		want []string
	}{
		{SortRecent, []string{"p-2", "p-3", "p-1"}},
		{SortName, []string{"p-3", "p-2", "p-1"}},
		{SortProgress, []string{"p-3", "p-2", "p-1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			in := sampleProjects()

			got := Sort(in, tt.key)

			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"p-1", "p-2", "p-3"}, ids(in))
		})
	}
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortRecent, key)

	key, err = ParseSortKey("Progress")
	require.NoError(t, err)
	assert.Equal(t, SortProgress, key)

	_, err = ParseSortKey("due")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTally(t *testing.T) {
	// Setup
	projects := []*domain.Project{{ID: "p-1", Tasks: domain.ProjectTotals{Total: 9}}, {ID: "p-2"}}
	tasks := []*domain.Task{
		{ID: "t-1", ProjectID: "p-1", Column: domain.ColumnDone},
		{ID: "t-2", ProjectID: "p-1", Column: domain.ColumnTodo},
		{ID: "t-3", ProjectID: "p-1", Column: domain.ColumnInProgress},
		{ID: "t-4", Column: domain.ColumnDone},
		{ID: "t-5", ProjectID: "p-9", Column: domain.ColumnDone},
	}

	// Execute
	got := Tally(projects, tasks)

	// Assert
	require.Len(t, got, 2)
	assert.Equal(t, domain.ProjectTotals{Total: 3, Completed: 1}, got[0].Tasks)
	assert.Equal(t, 33, Progress(got[0]))
	assert.Equal(t, domain.ProjectTotals{}, got[1].Tasks)
	assert.Equal(t, 0, Progress(got[1]))
	assert.Equal(t, 9, projects[0].Tasks.Total)
}
