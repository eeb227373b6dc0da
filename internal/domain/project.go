package domain

import (
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
)

// AllProjectStatuses returns the statuses in lifecycle order.
func AllProjectStatuses() []ProjectStatus {
	return []ProjectStatus{ProjectActive, ProjectOnHold, ProjectCompleted}
}

// IsValid returns true if s is a known status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectOnHold:
		return true
	default:
		return false
	}
}

// Display returns a human-readable label.
func (s ProjectStatus) Display() string {
	switch s {
	case ProjectActive:
		return "Active"
	case ProjectCompleted:
		return "Completed"
	case ProjectOnHold:
		return "On Hold"
	default:
		return string(s)
	}
}

// ParseProjectStatus converts user input into a ProjectStatus.
// "onhold" and "on_hold" are accepted for on-hold.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "onhold" || v == "on_hold" {
		v = string(ProjectOnHold)
	}
	status := ProjectStatus(v)
	if !status.IsValid() {
		return "", NewValidationError("status", "unknown project status "+s, ErrInvalidStatus)
	}
	return status, nil
}

// ProjectTotals counts the tasks filed under a project.
type ProjectTotals struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
}

// Project groups tasks toward a shared goal.
// Fields are ordered to minimize memory padding.
type Project struct {
	Start       time.Time     `json:"startDate" yaml:"startDate"`
	Due         time.Time     `json:"dueDate" yaml:"dueDate"`
	Updated     time.Time     `json:"lastUpdated" yaml:"lastUpdated"`
	Progress    *int          `json:"progress,omitempty" yaml:"progress,omitempty"` // Explicit progress overrides the task ratio
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	Status      ProjectStatus `json:"status" yaml:"status"`
	Priority    Priority      `json:"priority" yaml:"priority"`
	Members     []Member      `json:"members" yaml:"members"`
	Tasks       ProjectTotals `json:"-" yaml:"-"` // Derived from the board on read
}

// ProjectInput holds the caller-provided fields of a new project.
// Fields are ordered to minimize memory padding.
type ProjectInput struct {
	Start       time.Time // Zero defaults to now
	Due         time.Time
	Progress    *int
	Name        string
	Description string
	Status      ProjectStatus // Empty defaults to active
	Priority    Priority      // Empty defaults to medium
	Members     []Member
}

// NewProject validates in and builds a project.
func NewProject(id string, in ProjectInput, now time.Time) (*Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be empty", ErrEmptyProjectName)
	}

	status := in.Status
	if status == "" {
		status = ProjectActive
	}
	if !status.IsValid() {
		return nil, NewValidationError("status", "unknown project status "+string(status), ErrInvalidStatus)
	}

	priority := in.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !IsValidPriority(priority) {
		return nil, NewValidationError("priority", "unknown priority "+string(priority), ErrInvalidPriority)
	}

	if in.Progress != nil && (*in.Progress < 0 || *in.Progress > 100) {
		return nil, NewValidationError("progress", "must be between 0 and 100", nil)
	}

	start := in.Start
	if start.IsZero() {
		start = now
	}
	if !in.Due.IsZero() && in.Due.Before(start) {
		return nil, NewValidationError("due", "cannot be before the start date", nil)
	}

	members := append([]Member(nil), in.Members...)
	if members == nil {
		members = []Member{}
	}

	return &Project{
		ID:          id,
		Name:        name,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		Progress:    in.Progress,
		Start:       start,
		Due:         in.Due,
		Updated:     now,
		Members:     members,
	}, nil
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	c := *p
	c.Members = append([]Member(nil), p.Members...)
	if c.Members == nil {
		c.Members = []Member{}
	}
	if p.Progress != nil {
		v := *p.Progress
		c.Progress = &v
	}
	return &c
}

// IsOverdue returns true if the due date has passed and the project is
// still open.
func (p *Project) IsOverdue(now time.Time) bool {
	return p.Status != ProjectCompleted && !p.Due.IsZero() && p.Due.Before(now)
}
