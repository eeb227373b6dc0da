// Package board owns the in-memory task collection and every command
// that mutates it.
package board

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/markup"
)

// ID prefixes for generated entities.
const (
	taskIDPrefix       = "t"
	commentIDPrefix    = "c"
	replyIDPrefix      = "r"
	attachmentIDPrefix = "att"
)

// Engine is the authoritative task collection.
// Every mutating command replaces the affected task with a modified copy,
// so snapshots handed out earlier never change.
// Fields are ordered to minimize memory padding.
type Engine struct {
	store       domain.TaskStore
	ids         domain.IDGenerator
	clock       domain.Clock
	logger      domain.Logger
	lastSaveErr error
	tasks       map[string]*domain.Task
	order       []string
	members     domain.Directory
	mu          sync.RWMutex
}

// New creates an empty Engine. Call Load to read the persisted collection.
func New(store domain.TaskStore, ids domain.IDGenerator, clock domain.Clock, logger domain.Logger) *Engine {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Engine{
		store:  store,
		ids:    ids,
		clock:  clock,
		logger: logger,
		tasks:  make(map[string]*domain.Task),
	}
}

// WithMembers sets the directory used to resolve assignee IDs.
func (e *Engine) WithMembers(dir domain.Directory) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.members = dir
	return e
}

// Load replaces the in-memory collection with the persisted one.
func (e *Engine) Load(ctx context.Context) error {
	tasks, err := e.store.LoadTasks(ctx)
	if err != nil {
		return domain.NewPersistenceError("load", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.tasks = make(map[string]*domain.Task, len(tasks))
	e.order = e.order[:0]
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if _, dup := e.tasks[t.ID]; dup {
			e.logger.Warn(t.ID, "store", "duplicate task id in store, keeping first")
			continue
		}
		c := t.Clone()
		c.Normalize()
		e.tasks[c.ID] = c
		e.order = append(e.order, c.ID)
	}
	return nil
}

// Warning returns the last persistence failure, or nil once a later save
// has succeeded.
func (e *Engine) Warning() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSaveErr
}

// CreateTask validates in, assigns a fresh ID and appends the task.
func (e *Engine) CreateTask(ctx context.Context, in domain.TaskInput) (*domain.Task, *domain.Event, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if in.Assignee.ID != "" && len(e.members) > 0 {
		m, ok := e.members.Lookup(in.Assignee.ID)
		if !ok {
			return nil, nil, domain.NewValidationError("assignee", "unknown member "+in.Assignee.ID, domain.ErrUnknownMember)
		}
		in.Assignee = m
	}

	task, err := domain.NewTask(e.newTaskID(), in, e.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	e.tasks[task.ID] = task
	e.order = append(e.order, task.ID)
	e.logger.Info(task.ID, "task", fmt.Sprintf("created: %q", task.Title))
	e.persist(ctx)

	return task.Clone(), e.event(domain.EventTaskCreated, task), nil
}

func (e *Engine) newTaskID() string {
	for {
		id := e.ids.NewID(taskIDPrefix)
		if _, exists := e.tasks[id]; !exists {
			return id
		}
	}
}

// MoveTask puts the task into column. Moving to the current column is a
// no-op that yields no event.
func (e *Engine) MoveTask(ctx context.Context, taskID string, column domain.Column) (*domain.Task, *domain.Event, error) {
	if !column.IsValid() {
		return nil, nil, domain.NewValidationError("column", "unknown column "+string(column), domain.ErrInvalidColumn)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.get(taskID)
	if err != nil {
		return nil, nil, err
	}
	if current.Column == column {
		return current.Clone(), nil, nil
	}
	if !current.Column.CanTransitionTo(column) {
		return nil, nil, domain.NewValidationError("column",
			fmt.Sprintf("cannot move from %s to %s", current.Column, column), domain.ErrInvalidColumn)
	}

	from := current.Column
	task := current.Clone()
	task.Column = column
	if column == domain.ColumnDone {
		task.Completed = e.clock.Now()
	} else {
		task.Completed = time.Time{}
	}

	e.tasks[task.ID] = task
	e.logger.Info(task.ID, "task", fmt.Sprintf("moved: %s -> %s", from, column))
	e.persist(ctx)

	ev := e.event(domain.EventTaskMoved, task)
	ev.From = from
	return task.Clone(), ev, nil
}

// DeleteTask removes the task and everything nested under it.
func (e *Engine) DeleteTask(ctx context.Context, taskID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.get(taskID); err != nil {
		return err
	}

	delete(e.tasks, taskID)
	for i, id := range e.order {
		if id == taskID {
			e.order = append(e.order[:i:i], e.order[i+1:]...)
			break
		}
	}
	e.logger.Info(taskID, "task", "deleted")
	e.persist(ctx)
	return nil
}

// AddComment appends a top-level comment.
func (e *Engine) AddComment(ctx context.Context, taskID string, in domain.CommentInput) (*domain.Task, *domain.Event, error) {
	return e.comment(ctx, taskID, "", in)
}

// AddReply appends a reply under the comment parentID, at any depth.
func (e *Engine) AddReply(ctx context.Context, taskID, parentID string, in domain.CommentInput) (*domain.Task, *domain.Event, error) {
	return e.comment(ctx, taskID, parentID, in)
}

func (e *Engine) comment(ctx context.Context, taskID, parentID string, in domain.CommentInput) (*domain.Task, *domain.Event, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, nil, domain.NewValidationError("text", "cannot be empty", domain.ErrEmptyMessage)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.get(taskID)
	if err != nil {
		return nil, nil, err
	}

	prefix := commentIDPrefix
	if parentID != "" {
		prefix = replyIDPrefix
	}
	formatted := markup.HasMarkup(text)
	if in.Formatted != nil {
		formatted = *in.Formatted
	}
	c := domain.Comment{
		ID:          e.ids.NewID(prefix),
		Author:      in.Author.Name,
		Avatar:      in.Author.Avatar,
		Text:        text,
		Time:        e.clock.Now(),
		Replies:     []domain.Comment{},
		IsFormatted: formatted,
	}

	var comments []domain.Comment
	if parentID == "" {
		comments, err = domain.AppendComment(current.Comments, c)
	} else {
		comments, err = domain.AppendReply(current.Comments, parentID, c)
	}
	if err != nil {
		return nil, nil, err
	}

	task := current.Clone()
	task.Comments = comments
	e.tasks[task.ID] = task
	if parentID == "" {
		e.logger.Info(task.ID, "comment", "added "+c.ID)
	} else {
		e.logger.Info(task.ID, "comment", fmt.Sprintf("reply %s to %s", c.ID, parentID))
	}
	e.persist(ctx)

	ev := e.event(domain.EventTaskCommented, task)
	ev.CommentID = c.ID
	return task.Clone(), ev, nil
}

// AddAttachments validates every file and then appends them all in one
// update. The first invalid file aborts the batch.
func (e *Engine) AddAttachments(ctx context.Context, taskID string, files []domain.FileUpload) (*domain.Task, *domain.Event, error) {
	if len(files) == 0 {
		return nil, nil, domain.NewValidationError("files", "no files given", domain.ErrNoFiles)
	}
	for _, f := range files {
		if err := f.Validate(); err != nil {
			return nil, nil, err
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.get(taskID)
	if err != nil {
		return nil, nil, err
	}

	task := current.Clone()
	now := e.clock.Now()
	for _, f := range files {
		task.Attachments = append(task.Attachments, domain.Attachment{
			ID:       e.ids.NewID(attachmentIDPrefix),
			Name:     f.Name,
			Type:     f.Type,
			URL:      f.URL,
			Size:     f.Size,
			Uploaded: now,
		})
	}

	e.tasks[task.ID] = task
	e.logger.Info(task.ID, "attachment", fmt.Sprintf("attached %d file(s)", len(files)))
	e.persist(ctx)

	return task.Clone(), e.event(domain.EventTaskAttached, task), nil
}

// DeleteAttachment removes one attachment.
func (e *Engine) DeleteAttachment(ctx context.Context, taskID, attachmentID string) (*domain.Task, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.get(taskID)
	if err != nil {
		return nil, err
	}
	idx := current.FindAttachment(attachmentID)
	if idx < 0 {
		return nil, domain.NewNotFoundError("attachment", attachmentID, domain.ErrAttachmentNotFound)
	}

	task := current.Clone()
	task.Attachments = append(task.Attachments[:idx:idx], task.Attachments[idx+1:]...)
	e.tasks[task.ID] = task
	e.logger.Info(task.ID, "attachment", "deleted "+attachmentID)
	e.persist(ctx)

	return task.Clone(), nil
}

// ListTasks returns snapshots of the tasks matching filter in insertion order.
func (e *Engine) ListTasks(filter domain.TaskFilter) []*domain.Task {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]*domain.Task, 0, len(e.order))
	for _, id := range e.order {
		t := e.tasks[id]
		if filter.Matches(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// GetTask returns a snapshot of one task.
func (e *Engine) GetTask(taskID string) (*domain.Task, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, err := e.get(taskID)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

// Resolve expands an ID prefix to the full task ID.
// An exact match always wins over prefix matches.
func (e *Engine) Resolve(ref string) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.tasks[ref]; ok {
		return ref, nil
	}
	if ref == "" {
		return "", domain.NewNotFoundError("task", ref, domain.ErrTaskNotFound)
	}

	var match string
	for _, id := range e.order {
		if !strings.HasPrefix(id, ref) {
			continue
		}
		if match != "" {
			return "", domain.NewValidationError("task id", fmt.Sprintf("%q matches more than one task", ref), domain.ErrAmbiguousID)
		}
		match = id
	}
	if match == "" {
		return "", domain.NewNotFoundError("task", ref, domain.ErrTaskNotFound)
	}
	return match, nil
}

// Len returns the number of tasks.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.order)
}

func (e *Engine) get(taskID string) (*domain.Task, error) {
	t, ok := e.tasks[taskID]
	if !ok {
		return nil, domain.NewNotFoundError("task", taskID, domain.ErrTaskNotFound)
	}
	return t, nil
}

func (e *Engine) event(kind domain.EventKind, task *domain.Task) *domain.Event {
	return &domain.Event{Kind: kind, Task: task.Clone()}
}

// persist saves the whole collection. Failures never reach the caller:
// the in-memory state stays authoritative and the error is kept for Warning.
func (e *Engine) persist(ctx context.Context) {
	snapshot := make([]*domain.Task, 0, len(e.order))
	for _, id := range e.order {
		snapshot = append(snapshot, e.tasks[id].Clone())
	}
	if err := e.store.SaveTasks(ctx, snapshot); err != nil {
		e.lastSaveErr = domain.NewPersistenceError("save", err)
		e.logger.Warn("", "store", fmt.Sprintf("save failed: %v", err))
		return
	}
	e.lastSaveErr = nil
}
