package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// newProjectsCommand creates the projects command for listing projects.
func newProjectsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Status string
		Search string
		Sort   string
	}

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects with their progress",
		Long: `List projects with their status, progress and task counts.

Progress is the share of the project's tasks in 'done', unless the project
was created with an explicit --progress. Overdue projects are marked with
'!' after the due date.

Examples:
  # Most recently updated first
  flowsync projects

  # Active projects mentioning "web", by progress
  flowsync projects --status active --search web --sort progress`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.ListProjectsUseCase().Execute(cmd.Context(), usecase.ListProjectsInput{
				Status: opts.Status,
				Search: opts.Search,
				Sort:   opts.Sort,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Projects) == 0 {
				if out.Total == 0 {
					_, _ = fmt.Fprintln(w, "No projects")
				} else {
					_, _ = fmt.Fprintln(w, "No matching projects")
				}
				return nil
			}
			printProjectList(w, out.Projects)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "Show only projects in this status (active, completed, on-hold, all)")
	cmd.Flags().StringVar(&opts.Search, "search", "", "Show only projects whose name or description contains this text")
	cmd.Flags().StringVar(&opts.Sort, "sort", "recent", "Sort order (recent, name, progress)")

	return cmd
}

// printProjectList prints projects in TSV format.
func printProjectList(w io.Writer, views []usecase.ProjectView) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPROGRESS\tTASKS\tDUE\tMEMBERS\tNAME")
	for _, v := range views {
		p := v.Project
		due := "-"
		if !p.Due.IsZero() {
			due = p.Due.Format(dateLayout)
			if v.Overdue {
				due += " !"
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d%%\t%d/%d\t%s\t%d\t%s\n",
			domain.ShortID(p.ID),
			p.Status,
			v.Progress,
			p.Tasks.Completed,
			p.Tasks.Total,
			due,
			len(p.Members),
			p.Name,
		)
	}
}

// newProjectCommand creates the project command and its subcommands.
func newProjectCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
		Long: `Create projects and move them through their lifecycle.

Use 'flowsync projects' to list them and 'flowsync new --project' to
file tasks under one.`,
	}

	cmd.AddCommand(newProjectNewCommand(c))
	cmd.AddCommand(newProjectStatusCommand(c))

	return cmd
}

// newProjectNewCommand creates the project new subcommand.
func newProjectNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Description string
		Status      string
		Priority    string
		Start       string
		Due         string
		Members     []string
		Progress    int
	}

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a project",
		Long: `Create a project. It starts 'active' with 'medium' priority unless
--status or --priority say otherwise.

Examples:
  flowsync project new "Website Redesign" --due 2025-06-30 --members 1,2
  flowsync project new "Mobile App" --status on-hold --progress 40`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			in := usecase.CreateProjectInput{
				Name:        args[0],
				Description: opts.Description,
				Status:      opts.Status,
				Priority:    opts.Priority,
				MemberIDs:   opts.Members,
			}
			if cmd.Flags().Changed("progress") {
				progress := opts.Progress
				in.Progress = &progress
			}
			if opts.Start != "" {
				start, err := parseDate("start", opts.Start)
				if err != nil {
					return err
				}
				in.Start = start
			}
			if opts.Due != "" {
				due, err := parseDate("due", opts.Due)
				if err != nil {
					return err
				}
				in.Due = due
			}

			out, err := c.CreateProjectUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created project %s: %s\n", domain.ShortID(out.Project.ID), out.Project.Name)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Description, "body", "", "Project description")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Status (active, completed, on-hold)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&opts.Start, "start", "", "Start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&opts.Members, "members", nil, "Member IDs, comma-separated")
	cmd.Flags().IntVar(&opts.Progress, "progress", 0, "Fixed progress in percent instead of the task ratio")

	return cmd
}

// newProjectStatusCommand creates the project status subcommand.
func newProjectStatusCommand(c *app.Container) *cobra.Command {
	statuses := make([]string, 0, len(domain.AllProjectStatuses()))
	for _, s := range domain.AllProjectStatuses() {
		statuses = append(statuses, string(s))
	}

	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a project's status",
		Long: fmt.Sprintf(`Change a project's status to one of: %s.

The ID may be shortened to any unique prefix.

Examples:
  flowsync project status p-41c9 completed`, strings.Join(statuses, ", ")),
		Args:      cobra.ExactArgs(2),
		ValidArgs: statuses,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.SetProjectStatusUseCase().Execute(cmd.Context(), usecase.SetProjectStatusInput{
				ID:     args[0],
				Status: args[1],
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Project %s is now %s\n", domain.ShortID(out.Project.ID), out.Project.Status.Display())
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}
}
