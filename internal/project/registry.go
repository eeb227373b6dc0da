package project

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/runoshun/flowsync/internal/domain"
)

const projectIDPrefix = "p"

// Registry holds the projects in creation order.
// Fields are ordered to minimize memory padding.
type Registry struct {
	store       domain.ProjectStore // nil keeps projects in memory only
	ids         domain.IDGenerator
	clock       domain.Clock
	logger      domain.Logger
	lastSaveErr error
	items       []*domain.Project
	members     domain.Directory
	mu          sync.Mutex
}

// New creates an empty Registry.
func New(store domain.ProjectStore, ids domain.IDGenerator, clock domain.Clock, logger domain.Logger) *Registry {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Registry{
		store:  store,
		ids:    ids,
		clock:  clock,
		logger: logger,
	}
}

// WithMembers sets the directory used to resolve project members.
func (r *Registry) WithMembers(dir domain.Directory) *Registry {
	r.members = dir
	return r
}

// Load replaces the in-memory registry with the persisted one.
func (r *Registry) Load(ctx context.Context) error {
	if r.store == nil {
		return nil
	}
	items, err := r.store.LoadProjects(ctx)
	if err != nil {
		return domain.NewPersistenceError("load", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make([]*domain.Project, 0, len(items))
	for _, p := range items {
		r.items = append(r.items, p.Clone())
	}
	return nil
}

// Create validates in, resolves its members and appends the project.
func (r *Registry) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	in.Members = append([]domain.Member(nil), in.Members...)
	if len(r.members) > 0 {
		for i, m := range in.Members {
			full, ok := r.members.Lookup(m.ID)
			if !ok {
				return nil, domain.NewValidationError("member", "unknown member "+m.ID, domain.ErrUnknownMember)
			}
			in.Members[i] = full
		}
	}

	p, err := domain.NewProject(r.ids.NewID(projectIDPrefix), in, r.clock.Now())
	if err != nil {
		return nil, err
	}

	r.items = append(r.items, p)
	r.logger.Info("", "project", fmt.Sprintf("created %s: %q", p.ID, p.Name))
	r.persist(ctx)
	return p.Clone(), nil
}

// SetStatus changes the status of a project. Setting the current status
// is a no-op.
func (r *Registry) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) (*domain.Project, error) {
	if !status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown project status "+string(status), domain.ErrInvalidStatus)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.get(id)
	if err != nil {
		return nil, err
	}
	if p.Status == status {
		return p.Clone(), nil
	}

	from := p.Status
	p.Status = status
	p.Updated = r.clock.Now()
	r.logger.Info("", "project", fmt.Sprintf("%s: %s -> %s", p.ID, from, status))
	r.persist(ctx)
	return p.Clone(), nil
}

// Touch marks a project as updated now, e.g. when a task is filed under it.
func (r *Registry) Touch(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.get(id)
	if err != nil {
		return err
	}
	p.Updated = r.clock.Now()
	r.persist(ctx)
	return nil
}

// List returns snapshots of all projects in creation order.
func (r *Registry) List() []*domain.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Project, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p.Clone())
	}
	return out
}

// Get returns a snapshot of one project.
func (r *Registry) Get(id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, err := r.get(id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Resolve expands a project ID prefix. An exact match always wins.
func (r *Registry) Resolve(ref string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.get(ref); err == nil {
		return ref, nil
	}
	if ref == "" {
		return "", domain.NewNotFoundError("project", ref, domain.ErrProjectNotFound)
	}

	var match string
	for _, p := range r.items {
		if !strings.HasPrefix(p.ID, ref) {
			continue
		}
		if match != "" {
			return "", domain.NewValidationError("project id", fmt.Sprintf("%q matches more than one project", ref), domain.ErrAmbiguousID)
		}
		match = p.ID
	}
	if match == "" {
		return "", domain.NewNotFoundError("project", ref, domain.ErrProjectNotFound)
	}
	return match, nil
}

// Len returns the number of projects.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Warning returns the last persistence failure, or nil once a later save
// has succeeded. A nil Registry has no warning.
func (r *Registry) Warning() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastSaveErr
}

func (r *Registry) get(id string) (*domain.Project, error) {
	for _, p := range r.items {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("project", id, domain.ErrProjectNotFound)
}

func (r *Registry) persist(ctx context.Context) {
	if r.store == nil {
		return
	}
	snapshot := make([]*domain.Project, 0, len(r.items))
	for _, p := range r.items {
		snapshot = append(snapshot, p.Clone())
	}
	if err := r.store.SaveProjects(ctx, snapshot); err != nil {
		r.lastSaveErr = domain.NewPersistenceError("save", err)
		r.logger.Warn("", "store", fmt.Sprintf("save projects failed: %v", err))
		return
	}
	r.lastSaveErr = nil
}
