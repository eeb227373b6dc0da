package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStore persists the task collection.
// Load returns an empty slice when nothing has been saved yet.
type TaskStore interface {
	LoadTasks(ctx context.Context) ([]*Task, error)
	SaveTasks(ctx context.Context, tasks []*Task) error
}

// NotificationStore persists the notification log.
type NotificationStore interface {
	LoadNotifications(ctx context.Context) ([]Notification, error)
	SaveNotifications(ctx context.Context, notifications []Notification) error
}

// ProjectStore persists the project registry.
type ProjectStore interface {
	LoadProjects(ctx context.Context) ([]*Project, error)
	SaveProjects(ctx context.Context, projects []*Project) error
}

// KeyValueStore is a blob store addressed by string keys.
type KeyValueStore interface {
	// Get returns the value for key. ok is false if the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store if it doesn't exist.
	// Returns true if the store was created by this call.
	Initialize() (bool, error)

	// IsInitialized reports whether the store exists. An error means the
	// store could not be reached, not that it is missing.
	IsInitialized() (bool, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (global + data dir + env).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// GetDataConfigInfo returns the config file in the data directory.
	GetDataConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitDataConfig writes a commented config file rendered from cfg.
	// Returns ErrConfigExists if the file exists.
	InitDataConfig(cfg *Config) error

	// InitGlobalConfig writes the global config file.
	InitGlobalConfig(cfg *Config) error
}

// Logger writes categorized log entries. taskID may be empty.
type Logger interface {
	Info(taskID, category, msg string)
	Debug(taskID, category, msg string)
	Warn(taskID, category, msg string)
	Error(taskID, category, msg string)
}

// NopLogger discards all entries.
type NopLogger struct{}

func (NopLogger) Info(string, string, string)  {}
func (NopLogger) Debug(string, string, string) {}
func (NopLogger) Warn(string, string, string)  {}
func (NopLogger) Error(string, string, string) {}

// IDGenerator creates unique opaque IDs.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator implements IDGenerator with random UUIDs.
type UUIDGenerator struct{}

// NewID returns prefix followed by a random UUID, e.g. "c-9b2e...".
func (UUIDGenerator) NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return prefix + "-" + uuid.NewString()
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
