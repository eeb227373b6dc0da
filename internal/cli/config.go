package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
// Without a subcommand it behaves like 'config show'.
func newConfigCommand(c *app.Container) *cobra.Command {
	show := newConfigShowCommand(c)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage flowsync configuration files and settings.`,
		RunE:  show.RunE,
	}

	// Add subcommands
	cmd.AddCommand(show)
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Precedence: FLOWSYNC_* environment variables, then the data directory
config.toml, then the global config.toml, then defaults.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			for _, info := range []domain.ConfigInfo{out.GlobalConfig, out.DataConfig} {
				switch {
				case info.Path == "":
					continue
				case info.Exists:
					_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
				default:
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
				}
			}
			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

// formatEffectiveConfig formats the effective config in TOML format.
// The encryption key is masked.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	shown := *cfg
	if shown.Store.EncryptionKey != "" {
		shown.Store.EncryptionKey = "********"
	}
	if err := toml.NewEncoder(w).Encode(&shown); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output a commented configuration file with default values to stdout.

It does not read existing configuration files and works even if they are broken.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.RenderConfigTemplate(domain.NewDefaultConfig()))
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file",
		Long: `Generate a configuration file from the effective configuration.

By default, creates config.toml in the data directory.
With --global, creates $XDG_CONFIG_HOME/flowsync/config.toml.

Error conditions:
- Target file already exists: error`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
				Global: global,
				Config: c.AppConfig,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}
