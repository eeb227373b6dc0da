// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/flowsync/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. FLOWSYNC_STORE.
const EnvPrefix = "FLOWSYNC_"

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	environ       map[string]string // nil reads the process environment
	dataDir       string            // Path to the flowsync data directory
	globalConfDir string            // Path to global config directory (e.g., ~/.config/flowsync)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// WithEnviron replaces the process environment. This is useful for testing.
func (l *Loader) WithEnviron(environ map[string]string) *Loader {
	l.environ = environ
	return l
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: environment > data dir config > global config > defaults.
func (l *Loader) Load() (*domain.Config, error) {
	// Load global config first
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Load data dir config
	local, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- local (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}

	if err := l.applyEnv(base); err != nil {
		return nil, err
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// userEnv holds the environment overrides of the [user] section.
type userEnv struct {
	ID     string `env:"USER_ID"`
	Name   string `env:"USER_NAME"`
	Avatar string `env:"USER_AVATAR"`
}

// applyEnv overrides cfg with FLOWSYNC_* variables. Unset variables keep
// the file values.
func (l *Loader) applyEnv(cfg *domain.Config) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: l.environ}

	user := userEnv(cfg.User)
	targets := []any{&cfg.Store, &cfg.Log, &cfg.Dashboard, &user}
	for _, target := range targets {
		if err := env.ParseWithOptions(target, opts); err != nil {
			return fmt.Errorf("parse env: %w", err)
		}
	}
	cfg.User = domain.Member(user)
	return nil
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		switch section {
		case "user":
			if m, ok := value.(map[string]any); ok {
				member, unknown := parseMember(m)
				res.User = member
				for _, k := range unknown {
					warnings = append(warnings, fmt.Sprintf("unknown key in [user]: %s", k))
				}
			}
		case "members":
			items, ok := value.([]any)
			if !ok {
				warnings = append(warnings, "[[members]] must be an array of tables")
				continue
			}
			for i, item := range items {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				member, unknown := parseMember(m)
				if member.ID == "" {
					warnings = append(warnings, fmt.Sprintf("[[members]] entry %d has no id", i+1))
					continue
				}
				res.Members = append(res.Members, member)
				for _, k := range unknown {
					warnings = append(warnings, fmt.Sprintf("unknown key in [[members]]: %s", k))
				}
			}
		case "store":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "backend":
						res.Store.Backend = str(v)
					case "path":
						res.Store.Path = str(v)
					case "repo":
						res.Store.Repo = str(v)
					case "namespace":
						res.Store.Namespace = str(v)
					case "key":
						res.Store.Key = str(v)
					case "redis_addr":
						res.Store.RedisAddr = str(v)
					case "redis_db":
						res.Store.RedisDB = integer(v)
					case "encryption_key":
						res.Store.EncryptionKey = str(v)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [store]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "level":
						res.Log.Level = str(v)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		case "dashboard":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					switch k {
					case "baseline_rate":
						res.Dashboard.BaselineRate = integer(v)
					case "timeline_days":
						res.Dashboard.TimelineDays = integer(v)
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [dashboard]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseMember reads a member table and returns the keys it did not recognize.
func parseMember(m map[string]any) (domain.Member, []string) {
	var (
		member  domain.Member
		unknown []string
	)
	for k, v := range m {
		switch k {
		case "id":
			member.ID = str(v)
		case "name":
			member.Name = str(v)
		case "avatar":
			member.Avatar = str(v)
		default:
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return member, unknown
}

// str converts a TOML string value; ids may also be written as integers.
func str(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return fmt.Sprintf("%d", x)
	default:
		return ""
	}
}

func integer(v any) int {
	if n, ok := v.(int64); ok {
		return int(n)
	}
	return 0
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		Members:   append([]domain.Member{}, base.Members...),
		User:      base.User,
		Store:     base.Store,
		Log:       base.Log,
		Dashboard: base.Dashboard,
		Warnings:  append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.User.ID != "" {
		result.User = override.User
	}
	if len(override.Members) > 0 {
		result.Members = append([]domain.Member{}, override.Members...)
	}
	if override.Store.Backend != "" {
		result.Store.Backend = override.Store.Backend
	}
	if override.Store.Path != "" {
		result.Store.Path = override.Store.Path
	}
	if override.Store.Repo != "" {
		result.Store.Repo = override.Store.Repo
	}
	if override.Store.Namespace != "" {
		result.Store.Namespace = override.Store.Namespace
	}
	if override.Store.Key != "" {
		result.Store.Key = override.Store.Key
	}
	if override.Store.RedisAddr != "" {
		result.Store.RedisAddr = override.Store.RedisAddr
	}
	if override.Store.RedisDB != 0 {
		result.Store.RedisDB = override.Store.RedisDB
	}
	if override.Store.EncryptionKey != "" {
		result.Store.EncryptionKey = override.Store.EncryptionKey
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Dashboard.BaselineRate != 0 {
		result.Dashboard.BaselineRate = override.Dashboard.BaselineRate
	}
	if override.Dashboard.TimelineDays != 0 {
		result.Dashboard.TimelineDays = override.Dashboard.TimelineDays
	}

	return result
}
