package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_Execute(t *testing.T) {
	// Setup
	f := newFixture(t)
	uc := NewCreateProject(f.projects)
	progress := 30
	due := testNow.AddDate(0, 2, 0)

	// Execute
	out, err := uc.Execute(context.Background(), CreateProjectInput{
		Name:        "Mobile App",
		Description: "iOS and Android",
		Status:      "on-hold",
		Priority:    "high",
		Due:         due,
		Progress:    &progress,
		MemberIDs:   []string{"1", " 2 ", ""},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Mobile App", out.Project.Name)
	assert.Equal(t, domain.ProjectOnHold, out.Project.Status)
	assert.Equal(t, domain.PriorityHigh, out.Project.Priority)
	assert.Equal(t, due, out.Project.Due)
	assert.Equal(t, []domain.Member{alex, morgan}, out.Project.Members)
	assert.Equal(t, 30, *out.Project.Progress)
	assert.NoError(t, out.Warning)
	assert.Equal(t, 1, f.projs.SaveCalls)
}

func TestCreateProject_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateProjectInput
		wantErr error
	}{
		{"empty name", CreateProjectInput{}, domain.ErrEmptyProjectName},
		{"bad status", CreateProjectInput{Name: "x", Status: "archived"}, domain.ErrInvalidStatus},
		{"bad priority", CreateProjectInput{Name: "x", Priority: "urgent"}, domain.ErrInvalidPriority},
		{"unknown member", CreateProjectInput{Name: "x", MemberIDs: []string{"9"}}, domain.ErrUnknownMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			out, err := NewCreateProject(f.projects).Execute(context.Background(), tt.in)

			assert.Nil(t, out)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, f.projects.Len())
		})
	}
}

func TestCreateProject_Execute_SaveFailureIsWarning(t *testing.T) {
	f := newFixture(t)
	f.projs.SaveErr = errors.New("disk full")

	out, err := NewCreateProject(f.projects).Execute(context.Background(), CreateProjectInput{Name: "Mobile App"})

	require.NoError(t, err)
	assert.ErrorIs(t, out.Warning, domain.ErrPersistence)
	assert.Equal(t, 1, f.projects.Len())
}

// seedProjects creates three projects with tasks: Website Redesign at 1/2
// done, Mobile App on hold with no tasks, Marketing Campaign at 2/2 done.
func seedProjects(t *testing.T, f *fixture) (web, mobile, marketing *domain.Project) {
	t.Helper()
	ctx := context.Background()
	newTask := NewNewTask(f.board, f.notifier, f.clock, alex.ID).WithProjects(f.projects)
	add := func(p *domain.Project, title, column string) {
		_, err := newTask.Execute(ctx, NewTaskInput{Title: title, ProjectID: p.ID, Column: column})
		require.NoError(t, err)
	}

	web = f.createProject(t, "Website Redesign")
	f.clock.NowTime = testNow.Add(time.Hour)
	mobile = f.createProject(t, "Mobile App")
	_, err := NewSetProjectStatus(f.projects).Execute(ctx, SetProjectStatusInput{ID: mobile.ID, Status: "on-hold"})
	require.NoError(t, err)
	f.clock.NowTime = testNow.Add(2 * time.Hour)
	marketing = f.createProject(t, "Marketing Campaign")
	add(marketing, "Launch email", "done")
	add(marketing, "Social posts", "done")
	f.clock.NowTime = testNow.Add(3 * time.Hour)
	add(web, "Wireframes", "done")
	add(web, "Landing copy", "todo")
	_ = f.createTask(t, "Unfiled", "")
	return web, mobile, marketing
}

func projectNames(out *ListProjectsOutput) []string {
	names := make([]string, 0, len(out.Projects))
	for _, v := range out.Projects {
		names = append(names, v.Project.Name)
	}
	return names
}

func TestListProjects_Execute(t *testing.T) {
	// Setup
	f := newFixture(t)
	seedProjects(t, f)
	uc := NewListProjects(f.projects, f.board, f.clock)

	// Execute
	out, err := uc.Execute(context.Background(), ListProjectsInput{})

	// Assert: most recently updated first
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	assert.Equal(t, []string{"Website Redesign", "Marketing Campaign", "Mobile App"}, projectNames(out))
	assert.Equal(t, 50, out.Projects[0].Progress)
	assert.Equal(t, domain.ProjectTotals{Total: 2, Completed: 1}, out.Projects[0].Project.Tasks)
	assert.Equal(t, 100, out.Projects[1].Progress)
	assert.Equal(t, 0, out.Projects[2].Progress)
}

func TestListProjects_Execute_FilterAndSort(t *testing.T) {
	tests := []struct {
		name string
		in   ListProjectsInput
		want []string
	}{
		{"by name", ListProjectsInput{Sort: "name"}, []string{"Marketing Campaign", "Mobile App", "Website Redesign"}},
		{"by progress", ListProjectsInput{Sort: "progress"}, []string{"Marketing Campaign", "Website Redesign", "Mobile App"}},
		{"status", ListProjectsInput{Status: "on-hold"}, []string{"Mobile App"}},
		{"all statuses", ListProjectsInput{Status: "All", Sort: "name"}, []string{"Marketing Campaign", "Mobile App", "Website Redesign"}},
		{"search", ListProjectsInput{Search: "m", Sort: "name"}, []string{"Marketing Campaign", "Mobile App"}},
		{"no match", ListProjectsInput{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			seedProjects(t, f)

			out, err := NewListProjects(f.projects, f.board, f.clock).Execute(context.Background(), tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, projectNames(out))
			assert.Equal(t, 3, out.Total)
		})
	}
}

func TestListProjects_Execute_Errors(t *testing.T) {
	f := newFixture(t)
	uc := NewListProjects(f.projects, f.board, f.clock)

	_, err := uc.Execute(context.Background(), ListProjectsInput{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.Execute(context.Background(), ListProjectsInput{Sort: "due"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListProjects_Execute_Overdue(t *testing.T) {
	f := newFixture(t)
	_, err := NewCreateProject(f.projects).Execute(context.Background(), CreateProjectInput{
		Name: "Mobile App",
		Due:  testNow.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	f.clock.NowTime = testNow.AddDate(0, 0, 2)

	out, err := NewListProjects(f.projects, f.board, f.clock).Execute(context.Background(), ListProjectsInput{})

	require.NoError(t, err)
	require.Len(t, out.Projects, 1)
	assert.True(t, out.Projects[0].Overdue)
}

func TestSetProjectStatus_Execute(t *testing.T) {
	// Setup
	f := newFixture(t)
	p := f.createProject(t, "Mobile App")
	uc := NewSetProjectStatus(f.projects)

	// Execute
	out, err := uc.Execute(context.Background(), SetProjectStatusInput{ID: p.ID, Status: "completed"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectCompleted, out.Project.Status)
	assert.NoError(t, out.Warning)
}

func TestSetProjectStatus_Execute_Errors(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t, "Mobile App")
	uc := NewSetProjectStatus(f.projects)

	_, err := uc.Execute(context.Background(), SetProjectStatusInput{ID: p.ID, Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = uc.Execute(context.Background(), SetProjectStatusInput{ID: "p-404", Status: "completed"})
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
