// Package cli provides the command-line interface for flowsync.
package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupTask     = "task"
	groupActivity = "activity"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for flowsync.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "flowsync",
		Short: "Team task board for the terminal",
		Long: `flowsync is a task board with three columns (todo, in-progress, done),
threaded comments, attachments, assignment notifications and a metrics dashboard.

Run without arguments to open the interactive board.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupActivity, Title: "Activity:"},
	)

	// Setup commands
	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Task management commands
	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	mvCmd := newMvCommand(c)
	mvCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	commentCmd := newCommentCommand(c)
	commentCmd.GroupID = groupTask

	replyCmd := newReplyCommand(c)
	replyCmd.GroupID = groupTask

	attachCmd := newAttachCommand(c)
	attachCmd.GroupID = groupTask

	detachCmd := newDetachCommand(c)
	detachCmd.GroupID = groupTask

	boardCmd := newBoardCommand(c)
	boardCmd.GroupID = groupTask

	projectsCmd := newProjectsCommand(c)
	projectsCmd.GroupID = groupTask

	projectCmd := newProjectCommand(c)
	projectCmd.GroupID = groupTask

	// Activity commands
	notificationsCmd := newNotificationsCommand(c)
	notificationsCmd.GroupID = groupActivity

	readCmd := newReadCommand(c)
	readCmd.GroupID = groupActivity

	dashboardCmd := newDashboardCommand(c)
	dashboardCmd.GroupID = groupActivity

	// Add subcommands
	root.AddCommand(
		initCmd,
		configCmd,
		newCmd,
		listCmd,
		showCmd,
		mvCmd,
		rmCmd,
		commentCmd,
		replyCmd,
		attachCmd,
		detachCmd,
		boardCmd,
		projectsCmd,
		projectCmd,
		notificationsCmd,
		readCmd,
		dashboardCmd,
	)

	return root
}

// launchTUI loads the board and runs the kanban TUI until the user quits.
func launchTUI(c *app.Container) error {
	if c == nil {
		return domain.ErrNotInitialized
	}
	if err := c.Load(context.Background()); err != nil {
		return err
	}
	p := tea.NewProgram(tui.New(c), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// loadBoard reads the task collection and notification log before a board command.
func loadBoard(cmd *cobra.Command, c *app.Container) error {
	if c == nil {
		return domain.ErrNotInitialized
	}
	return c.Load(cmd.Context())
}

// printWarning reports a persistence failure that did not abort the command.
// The in-memory change stands; only the write is missing.
func printWarning(w io.Writer, err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Warning: %s (%v)\n", domain.UserMessage(err), err)
}
