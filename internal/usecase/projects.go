package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/project"
)

// CreateProjectInput contains the parameters for creating a project.
// Fields are ordered to minimize memory padding.
type CreateProjectInput struct {
	Start       time.Time // Zero defaults to now
	Due         time.Time
	Progress    *int // Explicit progress; nil derives it from tasks
	Name        string
	Description string
	Status      string // Empty defaults to active
	Priority    string // Empty defaults to medium
	MemberIDs   []string
}

// CreateProjectOutput contains the created project.
type CreateProjectOutput struct {
	Project *domain.Project
	Warning error
}

// CreateProject is the use case for creating a project.
type CreateProject struct {
	projects *project.Registry
}

// NewCreateProject creates a new CreateProject use case.
func NewCreateProject(projects *project.Registry) *CreateProject {
	return &CreateProject{projects: projects}
}

// Execute validates the input and registers the project.
func (uc *CreateProject) Execute(ctx context.Context, in CreateProjectInput) (*CreateProjectOutput, error) {
	p := domain.ProjectInput{
		Name:        in.Name,
		Description: in.Description,
		Start:       in.Start,
		Due:         in.Due,
		Progress:    in.Progress,
	}
	if in.Status != "" {
		status, err := domain.ParseProjectStatus(in.Status)
		if err != nil {
			return nil, err
		}
		p.Status = status
	}
	if in.Priority != "" {
		priority, err := domain.ParsePriority(in.Priority)
		if err != nil {
			return nil, err
		}
		p.Priority = priority
	}
	for _, id := range in.MemberIDs {
		if id = strings.TrimSpace(id); id != "" {
			p.Members = append(p.Members, domain.Member{ID: id})
		}
	}

	created, err := uc.projects.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	return &CreateProjectOutput{Project: created, Warning: uc.projects.Warning()}, nil
}

// ListProjectsInput contains the parameters for listing projects.
type ListProjectsInput struct {
	Search string // Case-insensitive match on name or description
	Status string // Empty or "all" lists every status
	Sort   string // recent (default), name or progress
}

// ProjectView is a project with its derived figures.
// Fields are ordered to minimize memory padding.
type ProjectView struct {
	Project  *domain.Project
	Progress int  // Percent
	Overdue  bool // Due date passed while still open
}

// ListProjectsOutput contains the matching projects in display order.
type ListProjectsOutput struct {
	Projects []ProjectView
	Total    int // Projects before filtering
}

// ListProjects is the use case for listing projects with their progress.
type ListProjects struct {
	projects *project.Registry
	board    *board.Engine
	clock    domain.Clock
}

// NewListProjects creates a new ListProjects use case.
func NewListProjects(projects *project.Registry, b *board.Engine, clock domain.Clock) *ListProjects {
	return &ListProjects{projects: projects, board: b, clock: clock}
}

// Execute counts each project's tasks on the board, then filters and sorts.
func (uc *ListProjects) Execute(_ context.Context, in ListProjectsInput) (*ListProjectsOutput, error) {
	q := project.Query{Search: in.Search}
	if s := strings.TrimSpace(in.Status); s != "" && !strings.EqualFold(s, "all") {
		status, err := domain.ParseProjectStatus(s)
		if err != nil {
			return nil, err
		}
		q.Status = status
	}
	key, err := project.ParseSortKey(in.Sort)
	if err != nil {
		return nil, err
	}

	all := project.Tally(uc.projects.List(), uc.board.ListTasks(domain.TaskFilter{}))
	selected := project.Sort(project.Filter(all, q), key)

	now := uc.clock.Now()
	views := make([]ProjectView, 0, len(selected))
	for _, p := range selected {
		views = append(views, ProjectView{
			Project:  p,
			Progress: project.Progress(p),
			Overdue:  p.IsOverdue(now),
		})
	}
	return &ListProjectsOutput{Projects: views, Total: len(all)}, nil
}

// SetProjectStatusInput contains the parameters for changing a status.
type SetProjectStatusInput struct {
	ID     string // Project ID or unique prefix
	Status string
}

// SetProjectStatusOutput contains the updated project.
type SetProjectStatusOutput struct {
	Project *domain.Project
	Warning error
}

// SetProjectStatus is the use case for moving a project through its lifecycle.
type SetProjectStatus struct {
	projects *project.Registry
}

// NewSetProjectStatus creates a new SetProjectStatus use case.
func NewSetProjectStatus(projects *project.Registry) *SetProjectStatus {
	return &SetProjectStatus{projects: projects}
}

// Execute resolves the project and applies the new status.
func (uc *SetProjectStatus) Execute(ctx context.Context, in SetProjectStatusInput) (*SetProjectStatusOutput, error) {
	status, err := domain.ParseProjectStatus(in.Status)
	if err != nil {
		return nil, err
	}
	id, err := uc.projects.Resolve(in.ID)
	if err != nil {
		return nil, err
	}
	p, err := uc.projects.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return &SetProjectStatusOutput{Project: p, Warning: uc.projects.Warning()}, nil
}
