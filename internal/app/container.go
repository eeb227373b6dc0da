// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/infra/config"
	"github.com/runoshun/flowsync/internal/infra/crypto"
	"github.com/runoshun/flowsync/internal/infra/gitstore"
	"github.com/runoshun/flowsync/internal/infra/jsonstore"
	"github.com/runoshun/flowsync/internal/infra/kvstore"
	"github.com/runoshun/flowsync/internal/infra/logging"
	"github.com/runoshun/flowsync/internal/infra/redisstore"
	"github.com/runoshun/flowsync/internal/notify"
	"github.com/runoshun/flowsync/internal/project"
	"github.com/runoshun/flowsync/internal/usecase"
)

// DataDirEnv overrides the data directory.
const DataDirEnv = "FLOWSYNC_DATA_DIR"

// Config holds the application paths.
type Config struct {
	DataDir   string // Directory holding config.toml, logs and the JSON store
	StorePath string // JSON store file
	GitRepo   string // Repository used by the git backend
}

// newConfig derives the paths from the data dir and the store settings.
func newConfig(dataDir string, store domain.StoreConfig) Config {
	cfg := Config{
		DataDir:   dataDir,
		StorePath: store.Path,
		GitRepo:   store.Repo,
	}
	if cfg.StorePath == "" {
		cfg.StorePath = domain.StorePath(dataDir)
	}
	if cfg.GitRepo == "" {
		cfg.GitRepo = filepath.Join(dataDir, "board.git")
	}
	return cfg
}

// DefaultDataDir returns $FLOWSYNC_DATA_DIR, or flowsync under
// $XDG_DATA_HOME (default ~/.local/share).
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return domain.DataDir(base), nil
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	StoreInitializer domain.StoreInitializer
	Clock            domain.Clock
	IDs              domain.IDGenerator
	ConfigLoader     domain.ConfigLoader
	ConfigManager    domain.ConfigManager
	Logger           domain.Logger

	// Engines
	Board    *board.Engine
	Notifier *notify.Dispatcher
	Projects *project.Registry

	// AppConfig is the merged configuration.
	AppConfig *domain.Config

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the given data directory.
// Nothing is read from the store until Load is called.
func New(dataDir string) (*Container, error) {
	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := newConfig(dataDir, appConfig.Store)
	logger := logging.New(dataDir, logging.ParseLevel(appConfig.Log.Level))

	kv, storeInit, codec, closer, err := openStore(appConfig.Store, cfg)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if key := appConfig.Store.EncryptionKey; key != "" {
		enc, err := crypto.NewEncryptor(key, filepath.Join(dataDir, "cache"))
		if err != nil {
			_ = logger.Close()
			if closer != nil {
				_ = closer.Close()
			}
			return nil, domain.NewValidationError("encryption key", err.Error(), err)
		}
		kv = crypto.NewStore(kv, enc)
	}

	store := kvstore.New(kv, codec, appConfig.Store.Key, appConfig.Store.NotificationsKey()).
		WithProjectKey(appConfig.Store.ProjectsKey())
	c := NewWithDeps(cfg, appConfig, store, storeInit, domain.RealClock{}, domain.UUIDGenerator{}, logger)
	c.ConfigLoader = configLoader
	c.ConfigManager = config.NewManager(dataDir)
	c.closers = append(c.closers, logger)
	if closer != nil {
		c.closers = append(c.closers, closer)
	}
	return c, nil
}

// openStore creates the key-value backend selected by the [store] section.
// The git backend stores YAML; the others store JSON.
func openStore(store domain.StoreConfig, cfg Config) (domain.KeyValueStore, domain.StoreInitializer, kvstore.Codec, io.Closer, error) {
	switch store.Backend {
	case "", domain.StoreBackendJSON:
		s := jsonstore.New(cfg.StorePath)
		return s, s, kvstore.JSONCodec{}, nil, nil
	case domain.StoreBackendGit:
		s, err := gitstore.New(cfg.GitRepo, store.Namespace)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return s, s, kvstore.YAMLCodec{}, nil, nil
	case domain.StoreBackendRedis:
		s, err := redisstore.Dial(store.RedisAddr, store.RedisDB, store.Namespace)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return s, s, kvstore.JSONCodec{}, s, nil
	default:
		return nil, nil, nil, nil, domain.NewValidationError("store backend", fmt.Sprintf("unknown backend %q", store.Backend), nil)
	}
}

// Store is the persistence port shared by the engine, the dispatcher and
// the project registry.
type Store interface {
	domain.TaskStore
	domain.NotificationStore
	domain.ProjectStore
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, appConfig *domain.Config, store Store, storeInit domain.StoreInitializer,
	clock domain.Clock, ids domain.IDGenerator, logger domain.Logger) *Container {
	if appConfig == nil {
		appConfig = domain.NewDefaultConfig()
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Container{
		StoreInitializer: storeInit,
		Clock:            clock,
		IDs:              ids,
		Logger:           logger,
		Board:            board.New(store, ids, clock, logger).WithMembers(appConfig.Directory()),
		Notifier:         notify.New(store, ids, clock, logger),
		Projects:         project.New(store, ids, clock, logger).WithMembers(appConfig.Directory()),
		AppConfig:        appConfig,
		Config:           cfg,
	}
}

// Load reads the task collection, the notification log and the projects.
// It returns ErrNotInitialized before 'flowsync init' has run, and a
// PersistenceError when the store cannot be reached.
func (c *Container) Load(ctx context.Context) error {
	if c.StoreInitializer != nil {
		ok, err := c.StoreInitializer.IsInitialized()
		if err != nil {
			return domain.NewPersistenceError("load", err)
		}
		if !ok {
			return domain.ErrNotInitialized
		}
	}
	if err := c.Board.Load(ctx); err != nil {
		return err
	}
	if err := c.Notifier.Load(ctx); err != nil {
		return err
	}
	return c.Projects.Load(ctx)
}

// Close releases open log files and connections.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// UseCase factory methods

// InitBoardUseCase returns a new InitBoard use case.
func (c *Container) InitBoardUseCase() *usecase.InitBoard {
	return usecase.NewInitBoard(c.StoreInitializer, c.ConfigManager, c.Board, c.Clock)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Board, c.Notifier, c.Clock, c.AppConfig.User.ID).WithProjects(c.Projects)
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.NewTaskUseCase(), c.AppConfig.Directory())
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.Board, c.Notifier, c.AppConfig.User.ID)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Board)
}

// AddCommentUseCase returns a new AddComment use case.
func (c *Container) AddCommentUseCase() *usecase.AddComment {
	return usecase.NewAddComment(c.Board, c.Notifier, c.AppConfig.User).WithMembers(c.AppConfig.Directory())
}

// AttachFilesUseCase returns a new AttachFiles use case.
func (c *Container) AttachFilesUseCase() *usecase.AttachFiles {
	return usecase.NewAttachFiles(c.Board, c.Notifier, c.AppConfig.User.ID)
}

// DetachFileUseCase returns a new DetachFile use case.
func (c *Container) DetachFileUseCase() *usecase.DetachFile {
	return usecase.NewDetachFile(c.Board)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Board, c.Clock)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Board, c.Clock)
}

// ListNotificationsUseCase returns a new ListNotifications use case.
func (c *Container) ListNotificationsUseCase() *usecase.ListNotifications {
	return usecase.NewListNotifications(c.Notifier)
}

// MarkReadUseCase returns a new MarkRead use case.
func (c *Container) MarkReadUseCase() *usecase.MarkRead {
	return usecase.NewMarkRead(c.Notifier)
}

// DashboardUseCase returns a new Dashboard use case.
func (c *Container) DashboardUseCase() *usecase.Dashboard {
	return usecase.NewDashboard(c.Board, c.Clock, c.AppConfig.Dashboard)
}

// CreateProjectUseCase returns a new CreateProject use case.
func (c *Container) CreateProjectUseCase() *usecase.CreateProject {
	return usecase.NewCreateProject(c.Projects)
}

// ListProjectsUseCase returns a new ListProjects use case.
func (c *Container) ListProjectsUseCase() *usecase.ListProjects {
	return usecase.NewListProjects(c.Projects, c.Board, c.Clock)
}

// SetProjectStatusUseCase returns a new SetProjectStatus use case.
func (c *Container) SetProjectStatusUseCase() *usecase.SetProjectStatus {
	return usecase.NewSetProjectStatus(c.Projects)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}
