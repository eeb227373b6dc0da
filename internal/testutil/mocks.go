// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// SequenceIDs is a deterministic domain.IDGenerator: "<prefix>-1", "<prefix>-2", ...
type SequenceIDs struct {
	n int
}

// NewID returns the next ID in the sequence.
func (s *SequenceIDs) NewID(prefix string) string {
	s.n++
	if prefix == "" {
		return fmt.Sprintf("%d", s.n)
	}
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

// FixedIDs returns IDs from a fixed list, then falls back to a sequence.
type FixedIDs struct {
	IDs  []string
	next SequenceIDs
}

// NewID returns the next configured ID.
func (f *FixedIDs) NewID(prefix string) string {
	if len(f.IDs) > 0 {
		id := f.IDs[0]
		f.IDs = f.IDs[1:]
		return id
	}
	return f.next.NewID(prefix)
}

// MockTaskStore is a test double for domain.TaskStore.
// Fields are ordered to minimize memory padding.
type MockTaskStore struct {
	Tasks     []*domain.Task
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

// NewMockTaskStore creates a MockTaskStore holding tasks.
func NewMockTaskStore(tasks ...*domain.Task) *MockTaskStore {
	return &MockTaskStore{Tasks: tasks}
}

// LoadTasks returns the stored tasks.
func (m *MockTaskStore) LoadTasks(_ context.Context) ([]*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Tasks, nil
}

// SaveTasks records the saved tasks.
func (m *MockTaskStore) SaveTasks(_ context.Context, tasks []*domain.Task) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Tasks = tasks
	return nil
}

// MockNotificationStore is a test double for domain.NotificationStore.
// Fields are ordered to minimize memory padding.
type MockNotificationStore struct {
	Notifications []domain.Notification
	LoadErr       error
	SaveErr       error
	SaveCalls     int
}

// LoadNotifications returns the stored notifications.
func (m *MockNotificationStore) LoadNotifications(_ context.Context) ([]domain.Notification, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Notifications, nil
}

// SaveNotifications records the saved notifications.
func (m *MockNotificationStore) SaveNotifications(_ context.Context, notifications []domain.Notification) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Notifications = append([]domain.Notification(nil), notifications...)
	return nil
}

// MockProjectStore is a test double for domain.ProjectStore.
// Fields are ordered to minimize memory padding.
type MockProjectStore struct {
	Projects  []*domain.Project
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

// LoadProjects returns the stored projects.
func (m *MockProjectStore) LoadProjects(_ context.Context) ([]*domain.Project, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Projects, nil
}

// SaveProjects records the saved projects.
func (m *MockProjectStore) SaveProjects(_ context.Context, projects []*domain.Project) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Projects = append([]*domain.Project(nil), projects...)
	return nil
}

// MockStore combines the task, notification and project mocks for code
// that takes one store for all of them.
type MockStore struct {
	*MockTaskStore
	*MockNotificationStore
	*MockProjectStore
}

// NewMockStore creates an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		MockTaskStore:         NewMockTaskStore(),
		MockNotificationStore: &MockNotificationStore{},
		MockProjectStore:      &MockProjectStore{},
	}
}

// MockKeyValueStore is an in-memory domain.KeyValueStore.
// Fields are ordered to minimize memory padding.
type MockKeyValueStore struct {
	Data   map[string][]byte
	GetErr error
	PutErr error
	mu     sync.Mutex
}

// NewMockKeyValueStore creates an empty MockKeyValueStore.
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{Data: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (m *MockKeyValueStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.Data[key]
	return v, ok, nil
}

// Put stores value under key.
func (m *MockKeyValueStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Data[key] = append([]byte(nil), value...)
	return nil
}

// LogEntry is a single captured log call.
type LogEntry struct {
	Level    string
	TaskID   string
	Category string
	Msg      string
}

// MockLogger captures log calls for assertions.
type MockLogger struct {
	Entries []LogEntry
}

func (m *MockLogger) add(level, taskID, category, msg string) {
	m.Entries = append(m.Entries, LogEntry{Level: level, TaskID: taskID, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(taskID, category, msg string) { m.add("INFO", taskID, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(taskID, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(taskID, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(taskID, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Count returns the number of entries with the given level.
func (m *MockLogger) Count(level string) int {
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	CheckErr    error
	Initialized bool
	InitCalls   int
}

// Initialize marks the store initialized.
func (m *MockStoreInitializer) Initialize() (bool, error) {
	m.InitCalls++
	if m.InitErr != nil {
		return false, m.InitErr
	}
	created := !m.Initialized
	m.Initialized = true
	return created, nil
}

// IsInitialized returns the configured value.
func (m *MockStoreInitializer) IsInitialized() (bool, error) {
	if m.CheckErr != nil {
		return false, m.CheckErr
	}
	return m.Initialized, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config or defaults.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal behaves like Load.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	return m.Load()
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	DataConfig   *domain.Config // Last config written by InitDataConfig
	GlobalConfig *domain.Config // Last config written by InitGlobalConfig
	InitErr      error
	DataInfo     domain.ConfigInfo
	GlobalInfo   domain.ConfigInfo
}

// GetDataConfigInfo returns the configured info.
func (m *MockConfigManager) GetDataConfigInfo() domain.ConfigInfo { return m.DataInfo }

// GetGlobalConfigInfo returns the configured info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo { return m.GlobalInfo }

// InitDataConfig records cfg. It returns ErrConfigExists once a data config exists.
func (m *MockConfigManager) InitDataConfig(cfg *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.DataInfo.Exists {
		return domain.ErrConfigExists
	}
	m.DataConfig = cfg
	m.DataInfo = domain.ConfigInfo{Path: "config.toml", Content: domain.RenderConfigTemplate(cfg), Exists: true}
	return nil
}

// InitGlobalConfig records cfg.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.GlobalInfo.Exists {
		return domain.ErrConfigExists
	}
	m.GlobalConfig = cfg
	m.GlobalInfo = domain.ConfigInfo{Path: "global/config.toml", Content: domain.RenderConfigTemplate(cfg), Exists: true}
	return nil
}
