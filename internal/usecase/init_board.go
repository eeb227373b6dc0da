package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runoshun/flowsync/internal/board"
	"github.com/runoshun/flowsync/internal/domain"
)

// InitBoardInput contains the input parameters for InitBoard.
type InitBoardInput struct {
	Config *domain.Config // Written to the data directory config file
	Demo   bool           // Seed the demo members and tasks into an empty board
}

// InitBoardOutput contains the output from InitBoard.
type InitBoardOutput struct {
	Warning            error
	Seeded             int  // Number of demo tasks created
	AlreadyInitialized bool // True if the store existed before this call
	ConfigCreated      bool // False if a config file already existed
}

// InitBoard initializes the store and the data directory config.
type InitBoard struct {
	storeInit     domain.StoreInitializer
	configManager domain.ConfigManager
	board         *board.Engine
	clock         domain.Clock
}

// NewInitBoard creates a new InitBoard use case.
func NewInitBoard(storeInit domain.StoreInitializer, configManager domain.ConfigManager, b *board.Engine, clock domain.Clock) *InitBoard {
	return &InitBoard{
		storeInit:     storeInit,
		configManager: configManager,
		board:         b,
		clock:         clock,
	}
}

// Execute initializes the board. Running it again is harmless: the store
// and an existing config file are left as they are.
func (uc *InitBoard) Execute(ctx context.Context, in InitBoardInput) (*InitBoardOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	already, err := uc.storeInit.IsInitialized()
	if err != nil {
		return nil, domain.NewPersistenceError("load", err)
	}
	if _, err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	if in.Demo {
		cfg.Members = mergeMembers(cfg.Members, demoMembers)
	}

	configCreated := true
	if err := uc.configManager.InitDataConfig(cfg); err != nil {
		if !errors.Is(err, domain.ErrConfigExists) {
			return nil, fmt.Errorf("write config: %w", err)
		}
		configCreated = false
	}

	if err := uc.board.Load(ctx); err != nil {
		return nil, err
	}

	out := &InitBoardOutput{
		AlreadyInitialized: already,
		ConfigCreated:      configCreated,
	}
	if in.Demo && uc.board.Len() == 0 {
		uc.board.WithMembers(cfg.Directory())
		n, err := uc.seed(ctx)
		if err != nil {
			return nil, err
		}
		out.Seeded = n
	}
	out.Warning = uc.board.Warning()
	return out, nil
}

// demoMembers are the team members the demo tasks are assigned to.
var demoMembers = []domain.Member{
	{ID: "1", Name: "Alex Morgan"},
	{ID: "2", Name: "Morgan Chen"},
	{ID: "3", Name: "Jamie Wilson"},
}

// demoTask describes one seeded task. Due is an offset in days from today.
type demoTask struct {
	title       string
	description string
	comment     string
	column      domain.Column
	priority    domain.Priority
	assigneeID  string
	due         int
}

var demoTasks = []demoTask{
	{
		title:       "Create project wireframes",
		description: "Design the initial wireframes for the new product landing page",
		comment:     "Initial wireframes look good. Let's discuss the layout in our next meeting.",
		column:      domain.ColumnTodo,
		priority:    domain.PriorityMedium,
		assigneeID:  "1",
		due:         3,
	},
	{
		title:       "Finalize API documentation",
		description: "Complete the REST API documentation for the developer portal",
		column:      domain.ColumnInProgress,
		priority:    domain.PriorityHigh,
		assigneeID:  "2",
		due:         1,
	},
	{
		title:       "Bug fixes for v1.2",
		description: "Address the critical bugs reported in the latest release",
		column:      domain.ColumnDone,
		priority:    domain.PriorityLow,
		assigneeID:  "3",
		due:         -1,
	},
}

func (uc *InitBoard) seed(ctx context.Context) (int, error) {
	now := uc.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, d := range demoTasks {
		task, _, err := uc.board.CreateTask(ctx, domain.TaskInput{
			Title:       d.title,
			Description: d.description,
			Column:      d.column,
			Priority:    d.priority,
			Assignee:    domain.Member{ID: d.assigneeID},
			Due:         today.AddDate(0, 0, d.due),
		})
		if err != nil {
			return 0, fmt.Errorf("seed task: %w", err)
		}
		if d.comment == "" {
			continue
		}
		if _, _, err := uc.board.AddComment(ctx, task.ID, domain.CommentInput{
			Author: task.Assignee,
			Text:   d.comment,
		}); err != nil {
			return 0, fmt.Errorf("seed comment: %w", err)
		}
	}
	return len(demoTasks), nil
}

// mergeMembers appends the extra members whose IDs are not yet present.
func mergeMembers(members, extra []domain.Member) []domain.Member {
	out := append([]domain.Member{}, members...)
	for _, m := range extra {
		if _, ok := domain.Directory(out).Lookup(m.ID); !ok {
			out = append(out, m)
		}
	}
	return out
}
