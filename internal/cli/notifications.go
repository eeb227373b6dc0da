package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// newNotificationsCommand creates the notifications command.
func newNotificationsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Unread bool
	}

	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"inbox"},
		Short:   "List notifications, newest first",
		Long: `List the notifications addressed to you, newest first.

Unread notifications are marked with '*'. Use 'flowsync read' to mark them read.

Examples:
  flowsync notifications
  flowsync notifications --unread`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.ListNotificationsUseCase().Execute(cmd.Context(), usecase.ListNotificationsInput{
				UnreadOnly: opts.Unread,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(out.Notifications) == 0 {
				_, _ = fmt.Fprintln(w, "No notifications")
				return nil
			}
			printNotificationList(w, out.Notifications)
			_, _ = fmt.Fprintf(w, "\n%d unread\n", out.Unread)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Unread, "unread", false, "Show only unread notifications")

	return cmd
}

// printNotificationList prints notifications in TSV format.
func printNotificationList(w io.Writer, notifications []domain.Notification) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, " \tID\tTIME\tTASK\tMESSAGE")
	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %s\n",
			marker,
			domain.ShortID(n.ID),
			n.Time.Format(time.DateTime),
			domain.ShortID(n.TaskID),
			domain.IconForNotification(n.Type).Glyph(),
			n.Message,
		)
	}
}

// newReadCommand creates the read command for marking notifications read.
func newReadCommand(c *app.Container) *cobra.Command {
	var opts struct {
		All bool
	}

	cmd := &cobra.Command{
		Use:   "read [id]",
		Short: "Mark notifications as read",
		Long: `Mark one notification as read, or all of them with --all.

Examples:
  flowsync read n-7e21
  flowsync read --all`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.All {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			in := usecase.MarkReadInput{All: opts.All}
			if !opts.All {
				in.ID = args[0]
			}
			out, err := c.MarkReadUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", out.Unread)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "Mark every notification as read")

	return cmd
}
