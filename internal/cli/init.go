package cli

import (
	"fmt"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Demo bool
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the board",
		Long: `Initialize the board in the data directory.

This command:
- creates the configured store (json file, git refs or redis keys)
- writes a commented config.toml to the data directory if there is none

With --demo, three sample tasks and the sample team members are added to
an empty board.

Running init again is safe: existing data and config are kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c == nil {
				return domain.ErrNotInitialized
			}

			out, err := c.InitBoardUseCase().Execute(cmd.Context(), usecase.InitBoardInput{
				Config: c.AppConfig,
				Demo:   opts.Demo,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(w, "flowsync already initialized in %s\n", c.Config.DataDir)
			} else {
				_, _ = fmt.Fprintf(w, "Initialized flowsync in %s\n", c.Config.DataDir)
			}
			if out.ConfigCreated {
				_, _ = fmt.Fprintf(w, "Created config file: %s\n", c.ConfigManager.GetDataConfigInfo().Path)
			}
			if out.Seeded > 0 {
				_, _ = fmt.Fprintf(w, "Added %d demo tasks\n", out.Seeded)
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Demo, "demo", false, "Seed an empty board with demo tasks and members")

	return cmd
}
