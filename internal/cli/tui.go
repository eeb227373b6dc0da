package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/flowsync/internal/app"
)

// newBoardCommand creates the board command for launching the interactive TUI.
// It is the same as running flowsync without arguments.
func newBoardCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "board",
		Aliases: []string{"tui"},
		Short:   "Launch interactive board",
		Long: `Launch the kanban board in the terminal.

Press ? inside the board for key bindings.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
	return cmd
}
