package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// dateLayout is the format of date flags and date columns.
const dateLayout = usecase.DateLayout

// parseDate parses a YYYY-MM-DD flag value as local midnight.
func parseDate(flag, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, domain.NewValidationError(flag, "must be a date like 2025-03-14", nil)
	}
	return t, nil
}

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Column      string
		Priority    string
		Assignee    string
		Due         string
		Project     string
		From        string
		DryRun      bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task on the board.

The task starts in 'todo' with 'medium' priority unless --column or
--priority say otherwise. Without --due it is due in 7 days.
Assigning the task to someone other than you notifies them.

Examples:
  # Create a task
  flowsync new --title "Update API docs"

  # Create a high priority task assigned to member 2
  flowsync new --title "Fix login" --priority high --assignee 2 --due 2025-03-14

  # File a task under a project
  flowsync new --title "Draft sitemap" --project p-41c9

  # Create several tasks from a Markdown file
  flowsync new --from tasks.md --dry-run

File format (one frontmatter block per task, body is the description):
  ---
  title: Update API docs
  priority: high
  assignee: 2
  due: 2025-03-14
  ---
  Cover the new pagination parameters.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.DryRun && opts.From == "" {
				return domain.NewValidationError("dry-run", "requires --from", nil)
			}
			if opts.From == "" && opts.Title == "" {
				return domain.NewValidationError("title", "required unless --from is used", domain.ErrEmptyTitle)
			}
			if err := loadBoard(cmd, c); err != nil {
				return err
			}
			if opts.From != "" {
				return createTasksFromFile(cmd, c, opts.From, opts.DryRun)
			}

			input := usecase.NewTaskInput{
				Title:       opts.Title,
				Description: opts.Description,
				Column:      opts.Column,
				Priority:    opts.Priority,
				AssigneeID:  opts.Assignee,
				ProjectID:   opts.Project,
			}
			if opts.Due != "" {
				due, err := parseDate("due", opts.Due)
				if err != nil {
					return err
				}
				input.Due = due
			}

			// Execute use case
			out, err := c.NewTaskUseCase().Execute(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", domain.ShortID(out.Task.ID))
			if out.Notification != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Notified %s\n", out.Task.Assignee.Name)
			}
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required unless --from is used)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Task description")
	cmd.Flags().StringVar(&opts.Column, "column", "", "Column (todo, in-progress, done)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Assignee member ID")
	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Project, "project", "", "Project ID or unique prefix")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create tasks from a Markdown file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Preview tasks without creating (requires --from)")
	cmd.MarkFlagsMutuallyExclusive("title", "from")

	return cmd
}

// createTasksFromFile creates tasks from a Markdown file.
func createTasksFromFile(cmd *cobra.Command, c *app.Container, path string, dryRun bool) error {
	content, err := os.ReadFile(path) //nolint:gosec // user-supplied path is the point
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
		Content: string(content),
		DryRun:  dryRun,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dryRun {
		_, _ = fmt.Fprintln(w, "Dry run - tasks that would be created:")
		_, _ = fmt.Fprintln(w, "")
		for i, d := range out.Drafts {
			_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, d.Title)
			if d.Column != "" {
				_, _ = fmt.Fprintf(w, "   column: %s\n", d.Column)
			}
			if d.Priority != "" {
				_, _ = fmt.Fprintf(w, "   priority: %s\n", d.Priority)
			}
			if d.AssigneeID != "" {
				_, _ = fmt.Fprintf(w, "   assignee: %s\n", d.AssigneeID)
			}
			if d.Due != "" {
				_, _ = fmt.Fprintf(w, "   due: %s\n", d.Due)
			}
		}
		_, _ = fmt.Fprintf(w, "\nTotal: %d task(s)\n", len(out.Drafts))
		return nil
	}

	for _, task := range out.Tasks {
		_, _ = fmt.Fprintf(w, "Created task %s: %s\n", domain.ShortID(task.ID), task.Title)
	}
	if out.Notified > 0 {
		_, _ = fmt.Fprintf(w, "Sent %d assignment notification(s)\n", out.Notified)
	}
	printWarning(cmd.ErrOrStderr(), out.Warning)
	return nil
}

// newListCommand creates the list command for listing tasks.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Column   string
		Priority string
		Assignee string
		Project  string
		DueFrom  string
		DueTo    string
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `Display tasks in creation order.

Output format is tab-separated with columns:
  ID, COLUMN, PRIORITY, DUE, ASSIGNEE, TITLE

Past-due tasks are marked with '!' after the due date.

Examples:
  # List all tasks
  flowsync list

  # List high priority tasks in progress
  flowsync list --column in-progress --priority high

  # List tasks due this week
  flowsync list --due-from 2025-03-10 --due-to 2025-03-16

  # List the tasks of one project
  flowsync list --project p-41c9`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			var filter domain.TaskFilter
			if opts.Column != "" {
				col, err := domain.ParseColumn(opts.Column)
				if err != nil {
					return err
				}
				filter.Column = col
			}
			if opts.Priority != "" {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				filter.Priority = p
			}
			filter.AssigneeID = opts.Assignee
			if opts.Project != "" {
				id, err := c.Projects.Resolve(opts.Project)
				if err != nil {
					return err
				}
				filter.ProjectID = id
			}
			if opts.DueFrom != "" {
				from, err := parseDate("due-from", opts.DueFrom)
				if err != nil {
					return err
				}
				filter.DueFrom = from
			}
			if opts.DueTo != "" {
				to, err := parseDate("due-to", opts.DueTo)
				if err != nil {
					return err
				}
				// Inclusive: the whole last day
				filter.DueTo = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{Filter: filter})
			if err != nil {
				return err
			}

			printTaskList(cmd.OutOrStdout(), out.Tasks, out.Now)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Column, "column", "", "Show only tasks in this column")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Show only tasks with this priority")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Show only tasks assigned to this member ID")
	cmd.Flags().StringVar(&opts.Project, "project", "", "Show only tasks filed under this project")
	cmd.Flags().StringVar(&opts.DueFrom, "due-from", "", "Show only tasks due on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.DueTo, "due-to", "", "Show only tasks due on or before this date (YYYY-MM-DD)")

	return cmd
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []*domain.Task, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tCOLUMN\tPRIORITY\tDUE\tASSIGNEE\tTITLE")

	// Rows
	for _, task := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			domain.ShortID(task.ID),
			task.Column,
			task.Priority,
			formatDue(task, now),
			orDash(task.Assignee.Name),
			task.Title,
		)
	}
}

func formatDue(task *domain.Task, now time.Time) string {
	if task.Due.IsZero() {
		return "-"
	}
	s := task.Due.Format(dateLayout)
	if task.IsPastDue(now) {
		s += " !"
	}
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// newShowCommand creates the show command for displaying a task.
func newShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		HTML bool
	}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display task details",
		Long: `Display detailed information about a task.

The ID may be shortened to any unique prefix.

Output includes:
  - Title and description
  - Column, priority, due date and assignee
  - Attachments
  - The comment thread, replies indented under their parent

With --html, formatted comments are shown as rendered HTML.

Examples:
  flowsync show t-3f2a
  flowsync show t-3f2a --html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{
				TaskID: args[0],
				HTML:   opts.HTML,
			})
			if err != nil {
				return err
			}

			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.HTML, "html", false, "Render formatted comments as HTML")

	return cmd
}

// printTaskDetails prints a task with its attachments and comment thread.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	task := out.Task

	// Header
	_, _ = fmt.Fprintf(w, "# %s %s\n\n", task.ID, task.Title)

	// Description
	if task.Description != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", task.Description)
	}

	// Fields
	_, _ = fmt.Fprintf(w, "Column: %s %s\n", domain.IconForColumn(task.Column).Glyph(), task.Column.Display())
	_, _ = fmt.Fprintf(w, "Priority: %s %s\n", domain.IconForPriority(task.Priority).Glyph(), task.Priority.Display())
	if task.Due.IsZero() {
		_, _ = fmt.Fprintln(w, "Due: none")
	} else if out.PastDue {
		_, _ = fmt.Fprintf(w, "Due: %s (past due)\n", task.Due.Format(dateLayout))
	} else {
		_, _ = fmt.Fprintf(w, "Due: %s\n", task.Due.Format(dateLayout))
	}
	if task.Assignee.ID != "" {
		_, _ = fmt.Fprintf(w, "Assignee: %s (%s)\n", task.Assignee.Name, task.Assignee.ID)
	} else {
		_, _ = fmt.Fprintln(w, "Assignee: none")
	}
	_, _ = fmt.Fprintf(w, "Created: %s\n", task.Created.Format(time.RFC3339))
	if !task.Completed.IsZero() {
		_, _ = fmt.Fprintf(w, "Completed: %s\n", task.Completed.Format(time.RFC3339))
	}

	// Attachments
	if len(task.Attachments) > 0 {
		_, _ = fmt.Fprintln(w, "\nAttachments:")
		for _, a := range task.Attachments {
			_, _ = fmt.Fprintf(w, "  %s %s %s (%s)\n",
				domain.ShortID(a.ID), domain.IconForMediaType(a.Type).Glyph(), a.Name, domain.FormatSize(a.Size))
		}
	}

	// Comments
	if out.CommentCount > 0 {
		_, _ = fmt.Fprintf(w, "\nComments (%d):\n", out.CommentCount)
		domain.WalkComments(task.Comments, func(comment *domain.Comment, depth int) bool {
			indent := strings.Repeat("  ", depth+1)
			_, _ = fmt.Fprintf(w, "%s[%s] %s %s\n", indent, domain.ShortID(comment.ID),
				comment.Time.Format(time.RFC3339), comment.Author)
			text := comment.Text
			if html, ok := out.CommentHTML[comment.ID]; ok {
				text = html
			}
			for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
				_, _ = fmt.Fprintf(w, "%s  %s\n", indent, line)
			}
			return true
		})
	}
}

// newMvCommand creates the mv command for moving a task between columns.
func newMvCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv <id> <column>",
		Short: "Move a task to another column",
		Long: `Move a task to todo, in-progress or done.

Moving into done records the completion time; moving out clears it.
Moving a task to the column it is already in changes nothing.

Examples:
  flowsync mv t-3f2a in-progress
  flowsync mv t-3f2a done`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.MoveTaskUseCase().Execute(cmd.Context(), usecase.MoveTaskInput{
				TaskID: args[0],
				Column: args[1],
			})
			if err != nil {
				return err
			}

			if !out.Moved {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s is already in %s\n", domain.ShortID(out.Task.ID), out.Task.Column)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Moved task %s: %s -> %s\n", domain.ShortID(out.Task.ID), out.From, out.Task.Column)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	return cmd
}

// newRmCommand creates the rm command for deleting tasks.
func newRmCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Long: `Delete a task together with its comments and attachments.

Examples:
  flowsync rm t-3f2a`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{
				TaskID: args[0],
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", domain.ShortID(out.Task.ID), out.Task.Title)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	return cmd
}
