package domain

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultStoreBackend  = StoreBackendJSON
	DefaultStoreKey      = "flowsync-tasks"
	DefaultNamespace     = "flowsync"
	DefaultRedisAddr     = "localhost:6379"
	DefaultBaselineRate  = 42
	DefaultTimelineDays  = 14
	DefaultDueInDays     = 7
	DefaultCurrentUserID = "1"
)

// Storage backends.
const (
	StoreBackendJSON  = "json"
	StoreBackendGit   = "git"
	StoreBackendRedis = "redis"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Members   []Member        `toml:"members"`
	Warnings  []string        `toml:"-"`
	User      Member          `toml:"user"`
	Store     StoreConfig     `toml:"store"`
	Log       LogConfig       `toml:"log"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

// StoreConfig holds persistence settings from [store] section.
// Fields are ordered to minimize memory padding.
type StoreConfig struct {
	// Backend is "json" (default), "git" or "redis".
	Backend string `toml:"backend,omitempty" env:"STORE"`
	// Path of the JSON store file (default: <dataDir>/store.json).
	Path string `toml:"path,omitempty" env:"STORE_PATH"`
	// Repo is the git repository used by the git backend.
	Repo string `toml:"repo,omitempty" env:"STORE_REPO"`
	// Namespace is the ref namespace (git) or key prefix (redis).
	Namespace string `toml:"namespace,omitempty" env:"STORE_NAMESPACE"`
	// Key is the storage key of the task collection.
	Key       string `toml:"key,omitempty" env:"STORE_KEY"`
	RedisAddr string `toml:"redis_addr,omitempty" env:"REDIS_ADDR"`
	// EncryptionKey enables AES-256-GCM encryption of stored values
	// when set to 64 hex characters.
	EncryptionKey string `toml:"encryption_key,omitempty" env:"ENCRYPTION_KEY"`
	RedisDB       int    `toml:"redis_db,omitempty" env:"REDIS_DB"`
}

// NotificationsKey returns the storage key of the notification log.
func (s StoreConfig) NotificationsKey() string {
	key := s.Key
	if key == "" {
		key = DefaultStoreKey
	}
	return key + "-notifications"
}

// ProjectsKey returns the storage key of the project registry.
func (s StoreConfig) ProjectsKey() string {
	key := s.Key
	if key == "" {
		key = DefaultStoreKey
	}
	return key + "-projects"
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty" env:"LOG_LEVEL"` // Log level: debug, info, warn, error
}

// DashboardConfig holds metric settings from [dashboard] section.
type DashboardConfig struct {
	BaselineRate int `toml:"baseline_rate,omitempty" env:"BASELINE_RATE"` // Completion rate (%) the trend compares against
	TimelineDays int `toml:"timeline_days,omitempty" env:"TIMELINE_DAYS"` // Days shown in the completion timeline
}

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() *Config {
	return &Config{
		User: Member{ID: DefaultCurrentUserID, Name: "Alex Morgan"},
		Store: StoreConfig{
			Backend:   DefaultStoreBackend,
			Key:       DefaultStoreKey,
			Namespace: DefaultNamespace,
			RedisAddr: DefaultRedisAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Dashboard: DashboardConfig{
			BaselineRate: DefaultBaselineRate,
			TimelineDays: DefaultTimelineDays,
		},
	}
}

// Directory returns the configured members plus the acting user.
func (c *Config) Directory() Directory {
	dir := make(Directory, 0, len(c.Members)+1)
	dir = append(dir, c.Members...)
	if _, ok := dir.Lookup(c.User.ID); !ok && c.User.ID != "" {
		dir = append(dir, c.User)
	}
	return dir
}

// templateData holds the values rendered into the config template.
type templateData struct {
	Backend      string
	Key          string
	Namespace    string
	RedisAddr    string
	LogLevel     string
	UserID       string
	UserName     string
	BaselineRate int
	TimelineDays int
}

// RenderConfigTemplate renders a commented config file from cfg.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		Backend:      cfg.Store.Backend,
		Key:          cfg.Store.Key,
		Namespace:    cfg.Store.Namespace,
		RedisAddr:    cfg.Store.RedisAddr,
		LogLevel:     cfg.Log.Level,
		UserID:       cfg.User.ID,
		UserName:     cfg.User.Name,
		BaselineRate: cfg.Dashboard.BaselineRate,
		TimelineDays: cfg.Dashboard.TimelineDays,
	}

	tmpl := template.Must(template.New("config").Parse(configTemplateContent))
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return configTemplateContent
	}
	return buf.String()
}
