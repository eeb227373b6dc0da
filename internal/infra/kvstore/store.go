// Package kvstore persists the task collection, the notification log and
// the project registry as versioned documents in a KeyValueStore.
package kvstore

import (
	"context"
	"fmt"

	"github.com/runoshun/flowsync/internal/domain"
)

// SchemaVersion is the current document layout version.
const SchemaVersion = 1

// taskDocument is the persisted task collection.
type taskDocument struct {
	Tasks         []*domain.Task `json:"tasks" yaml:"tasks"`
	SchemaVersion int            `json:"schemaVersion" yaml:"schemaVersion"`
}

// notificationDocument is the persisted notification log.
type notificationDocument struct {
	Notifications []domain.Notification `json:"notifications" yaml:"notifications"`
	SchemaVersion int                   `json:"schemaVersion" yaml:"schemaVersion"`
}

// projectDocument is the persisted project registry.
type projectDocument struct {
	Projects      []*domain.Project `json:"projects" yaml:"projects"`
	SchemaVersion int               `json:"schemaVersion" yaml:"schemaVersion"`
}

// versionHeader reads only the version of a document.
type versionHeader struct {
	SchemaVersion *int `json:"schemaVersion" yaml:"schemaVersion"`
}

// Store implements domain.TaskStore, domain.NotificationStore and
// domain.ProjectStore.
// Fields are ordered to minimize memory padding.
type Store struct {
	kv              domain.KeyValueStore
	codec           Codec
	taskKey         string
	notificationKey string
	projectKey      string
}

// New creates a Store writing tasks under taskKey and notifications under
// notificationKey. Projects go to taskKey + "-projects" unless
// WithProjectKey says otherwise.
func New(kv domain.KeyValueStore, codec Codec, taskKey, notificationKey string) *Store {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Store{
		kv:              kv,
		codec:           codec,
		taskKey:         taskKey,
		notificationKey: notificationKey,
		projectKey:      taskKey + "-projects",
	}
}

// WithProjectKey sets the key of the project registry.
func (s *Store) WithProjectKey(key string) *Store {
	s.projectKey = key
	return s
}

// LoadTasks returns the persisted tasks, or an empty slice if nothing has
// been saved. Documents without a version (a bare task array) are read as
// the legacy layout.
func (s *Store) LoadTasks(ctx context.Context) ([]*domain.Task, error) {
	data, ok, err := s.kv.Get(ctx, s.taskKey)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.taskKey, err)
	}
	if !ok || len(data) == 0 {
		return []*domain.Task{}, nil
	}

	var tasks []*domain.Task
	version, err := s.version(data)
	switch {
	case err != nil:
		return nil, err
	case version == 0:
		if err := s.codec.Unmarshal(data, &tasks); err != nil {
			return nil, fmt.Errorf("decode legacy tasks: %w", err)
		}
	default:
		var doc taskDocument
		if err := s.codec.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode tasks: %w", err)
		}
		tasks = doc.Tasks
	}

	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		t.Normalize()
		out = append(out, t)
	}
	return out, nil
}

// SaveTasks writes the whole collection. Attachment URLs only live for the
// session and are not written.
func (s *Store) SaveTasks(ctx context.Context, tasks []*domain.Task) error {
	doc := taskDocument{SchemaVersion: SchemaVersion, Tasks: make([]*domain.Task, 0, len(tasks))}
	for _, t := range tasks {
		c := t.Clone()
		for i := range c.Attachments {
			c.Attachments[i].URL = ""
		}
		doc.Tasks = append(doc.Tasks, c)
	}

	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Put(ctx, s.taskKey, data); err != nil {
		return fmt.Errorf("put %s: %w", s.taskKey, err)
	}
	return nil
}

// LoadNotifications returns the persisted notification log.
func (s *Store) LoadNotifications(ctx context.Context) ([]domain.Notification, error) {
	data, ok, err := s.kv.Get(ctx, s.notificationKey)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.notificationKey, err)
	}
	if !ok || len(data) == 0 {
		return []domain.Notification{}, nil
	}

	version, err := s.version(data)
	if err != nil {
		return nil, err
	}
	if version == 0 {
		var items []domain.Notification
		if err := s.codec.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("decode legacy notifications: %w", err)
		}
		return items, nil
	}

	var doc notificationDocument
	if err := s.codec.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	if doc.Notifications == nil {
		doc.Notifications = []domain.Notification{}
	}
	return doc.Notifications, nil
}

// SaveNotifications writes the whole notification log.
func (s *Store) SaveNotifications(ctx context.Context, notifications []domain.Notification) error {
	doc := notificationDocument{SchemaVersion: SchemaVersion, Notifications: notifications}
	if doc.Notifications == nil {
		doc.Notifications = []domain.Notification{}
	}

	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode notifications: %w", err)
	}
	if err := s.kv.Put(ctx, s.notificationKey, data); err != nil {
		return fmt.Errorf("put %s: %w", s.notificationKey, err)
	}
	return nil
}

// LoadProjects returns the persisted projects, or an empty slice if nothing
// has been saved.
func (s *Store) LoadProjects(ctx context.Context) ([]*domain.Project, error) {
	data, ok, err := s.kv.Get(ctx, s.projectKey)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.projectKey, err)
	}
	if !ok || len(data) == 0 {
		return []*domain.Project{}, nil
	}

	var projects []*domain.Project
	version, err := s.version(data)
	switch {
	case err != nil:
		return nil, err
	case version == 0:
		if err := s.codec.Unmarshal(data, &projects); err != nil {
			return nil, fmt.Errorf("decode legacy projects: %w", err)
		}
	default:
		var doc projectDocument
		if err := s.codec.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode projects: %w", err)
		}
		projects = doc.Projects
	}

	out := make([]*domain.Project, 0, len(projects))
	for _, p := range projects {
		if p == nil {
			continue
		}
		if p.Members == nil {
			p.Members = []domain.Member{}
		}
		out = append(out, p)
	}
	return out, nil
}

// SaveProjects writes the whole registry.
func (s *Store) SaveProjects(ctx context.Context, projects []*domain.Project) error {
	doc := projectDocument{SchemaVersion: SchemaVersion, Projects: projects}
	if doc.Projects == nil {
		doc.Projects = []*domain.Project{}
	}

	data, err := s.codec.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode projects: %w", err)
	}
	if err := s.kv.Put(ctx, s.projectKey, data); err != nil {
		return fmt.Errorf("put %s: %w", s.projectKey, err)
	}
	return nil
}

// version returns the schema version of data, or 0 for the legacy layout.
func (s *Store) version(data []byte) (int, error) {
	var header versionHeader
	if err := s.codec.Unmarshal(data, &header); err != nil || header.SchemaVersion == nil {
		// Not an object with a version: a legacy bare array
		return 0, nil
	}
	v := *header.SchemaVersion
	if v < 1 || v > SchemaVersion {
		return 0, fmt.Errorf("schema version %d: %w", v, domain.ErrUnsupportedSchema)
	}
	return v, nil
}

// Ensure Store implements the persistence ports.
var (
	_ domain.TaskStore         = (*Store)(nil)
	_ domain.NotificationStore = (*Store)(nil)
	_ domain.ProjectStore      = (*Store)(nil)
)
