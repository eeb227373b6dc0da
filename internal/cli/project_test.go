package cli

import (
	"context"
	"testing"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedProject creates a project through the use case.
func seedProject(t *testing.T, c *app.Container, in usecase.CreateProjectInput) *domain.Project {
	t.Helper()
	require.NoError(t, c.Load(context.Background()))
	out, err := c.CreateProjectUseCase().Execute(context.Background(), in)
	require.NoError(t, err)
	return out.Project
}

func TestNewProjectsCommand_Empty(t *testing.T) {
	c, _ := newTestContainer(t)

	out, _, err := runCommand(newProjectsCommand(c))

	require.NoError(t, err)
	assert.Contains(t, out, "No projects")
}

func TestNewProjectsCommand_ShowsProgress(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	web := seedProject(t, c, usecase.CreateProjectInput{Name: "Website Redesign", MemberIDs: []string{"1", "2"}})
	seedTask(t, c, usecase.NewTaskInput{Title: "Wireframes", ProjectID: web.ID, Column: "done"})
	seedTask(t, c, usecase.NewTaskInput{Title: "Landing copy", ProjectID: web.ID})
	seedTask(t, c, usecase.NewTaskInput{Title: "Sitemap", ProjectID: web.ID})

	// Execute
	out, _, err := runCommand(newProjectsCommand(c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "PROGRESS")
	assert.Contains(t, out, "33%")
	assert.Contains(t, out, "1/3")
	assert.Contains(t, out, "Website Redesign")
}

func TestNewProjectsCommand_FilterAndSort(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	seedProject(t, c, usecase.CreateProjectInput{Name: "Website Redesign", Description: "New landing pages"})
	seedProject(t, c, usecase.CreateProjectInput{Name: "Mobile App", Status: "on-hold", Progress: intPtr(80)})
	seedProject(t, c, usecase.CreateProjectInput{Name: "Marketing Campaign", Status: "completed", Progress: intPtr(100)})

	tests := []struct {
		name     string
		args     []string
		ordered  []string
		excluded []string
	}{
		{"by name", []string{"--sort", "name"}, []string{"Marketing Campaign", "Mobile App", "Website Redesign"}, nil},
		{"by progress", []string{"--sort", "progress"}, []string{"Marketing Campaign", "Mobile App", "Website Redesign"}, nil},
		{"status", []string{"--status", "on-hold"}, []string{"Mobile App"}, []string{"Website Redesign", "Marketing Campaign"}},
		{"search description", []string{"--search", "LANDING"}, []string{"Website Redesign"}, []string{"Mobile App", "Marketing Campaign"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Execute
			out, _, err := runCommand(newProjectsCommand(c), tt.args...)

			// Assert
			require.NoError(t, err)
			for i := 1; i < len(tt.ordered); i++ {
				assert.Less(t, indexIn(out, tt.ordered[i-1]), indexIn(out, tt.ordered[i]))
			}
			for _, name := range tt.ordered {
				assert.Contains(t, out, name)
			}
			for _, name := range tt.excluded {
				assert.NotContains(t, out, name)
			}
		})
	}
}

func TestNewProjectsCommand_NoMatch(t *testing.T) {
	c, _ := newTestContainer(t)
	seedProject(t, c, usecase.CreateProjectInput{Name: "Mobile App"})

	out, _, err := runCommand(newProjectsCommand(c), "--search", "zzz")

	require.NoError(t, err)
	assert.Contains(t, out, "No matching projects")
}

func TestNewProjectsCommand_InvalidFlags(t *testing.T) {
	c, _ := newTestContainer(t)

	_, _, err := runCommand(newProjectsCommand(c), "--sort", "due")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, _, err = runCommand(newProjectsCommand(c), "--status", "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestNewProjectNewCommand(t *testing.T) {
	// Setup
	c, store := newTestContainer(t)

	// Execute
	out, _, err := runCommand(newProjectCommand(c), "new", "Website Redesign",
		"--body", "New landing pages", "--due", "2025-06-30", "--members", "1,2", "--priority", "high")

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Created project p-1: Website Redesign")
	require.Len(t, store.Projects, 1)
	p := store.Projects[0]
	assert.Equal(t, "New landing pages", p.Description)
	assert.Equal(t, domain.PriorityHigh, p.Priority)
	assert.Equal(t, "2025-06-30", p.Due.Format(dateLayout))
	assert.Len(t, p.Members, 2)
	assert.Nil(t, p.Progress)
}

func TestNewProjectNewCommand_Progress(t *testing.T) {
	c, store := newTestContainer(t)

	_, _, err := runCommand(newProjectCommand(c), "new", "Mobile App", "--progress", "0")

	require.NoError(t, err)
	require.Len(t, store.Projects, 1)
	require.NotNil(t, store.Projects[0].Progress)
	assert.Equal(t, 0, *store.Projects[0].Progress)
}

func TestNewProjectNewCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"blank name", []string{"new", " "}, domain.ErrEmptyProjectName},
		{"bad status", []string{"new", "x", "--status", "archived"}, domain.ErrInvalidStatus},
		{"unknown member", []string{"new", "x", "--members", "9"}, domain.ErrUnknownMember},
		{"bad date", []string{"new", "x", "--due", "June"}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, store := newTestContainer(t)

			_, _, err := runCommand(newProjectCommand(c), tt.args...)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.Projects)
		})
	}
}

func TestNewProjectStatusCommand(t *testing.T) {
	c, store := newTestContainer(t)
	p := seedProject(t, c, usecase.CreateProjectInput{Name: "Mobile App"})

	out, _, err := runCommand(newProjectCommand(c), "status", p.ID, "on-hold")

	require.NoError(t, err)
	assert.Contains(t, out, "is now On Hold")
	assert.Equal(t, domain.ProjectOnHold, store.Projects[0].Status)
}

func TestNewProjectStatusCommand_UnknownProject(t *testing.T) {
	c, _ := newTestContainer(t)

	_, _, err := runCommand(newProjectCommand(c), "status", "p-404", "completed")

	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestNewNewCommand_Project(t *testing.T) {
	// Setup
	c, store := newTestContainer(t)
	p := seedProject(t, c, usecase.CreateProjectInput{Name: "Website Redesign"})

	// Execute
	_, _, err := runCommand(newNewCommand(c), "--title", "Draft sitemap", "--project", p.ID)

	// Assert
	require.NoError(t, err)
	require.Len(t, store.Tasks, 1)
	assert.Equal(t, p.ID, store.Tasks[0].ProjectID)
}

func TestNewNewCommand_UnknownProject(t *testing.T) {
	c, store := newTestContainer(t)

	_, _, err := runCommand(newNewCommand(c), "--title", "Draft sitemap", "--project", "p-404")

	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	assert.Empty(t, store.Tasks)
}

func TestNewListCommand_Project(t *testing.T) {
	// Setup
	c, _ := newTestContainer(t)
	p := seedProject(t, c, usecase.CreateProjectInput{Name: "Website Redesign"})
	seedTask(t, c, usecase.NewTaskInput{Title: "Draft sitemap", ProjectID: p.ID})
	seedTask(t, c, usecase.NewTaskInput{Title: "Unfiled chore"})

	// Execute
	out, _, err := runCommand(newListCommand(c), "--project", p.ID)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "Draft sitemap")
	assert.NotContains(t, out, "Unfiled chore")
}

func intPtr(v int) *int { return &v }
