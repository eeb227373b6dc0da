package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/domain"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// commentOptions are the flags shared by comment and reply.
type commentOptions struct {
	Style     string
	Formatted bool
}

func (o *commentOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.Formatted, "formatted", false,
		"Treat the text as formatted markup (default: detected from the text)")
	cmd.Flags().StringVar(&o.Style, "style", "",
		"Format the whole text (bold, italic, code, bullet, link)")
}

// input builds the use case input; Formatted stays nil unless the flag was given.
func (o *commentOptions) input(cmd *cobra.Command, taskID, parentID string, text []string) usecase.AddCommentInput {
	in := usecase.AddCommentInput{
		TaskID:   taskID,
		ParentID: parentID,
		Text:     strings.Join(text, " "),
		Style:    o.Style,
	}
	if cmd.Flags().Changed("formatted") {
		in.Formatted = &o.Formatted
	}
	return in
}

// printMentions lists the members a comment mentions.
func printMentions(w io.Writer, members []domain.Member) {
	if len(members) == 0 {
		return
	}
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	_, _ = fmt.Fprintf(w, "Mentioned %s\n", strings.Join(names, ", "))
}

// newCommentCommand creates the comment command for adding comments to tasks.
func newCommentCommand(c *app.Container) *cobra.Command {
	var opts commentOptions

	cmd := &cobra.Command{
		Use:   "comment <id> <text>...",
		Short: "Add a comment to a task",
		Long: `Add a top-level comment to a task, authored by the configured user.

Formatted text supports **bold**, _italic_, ` + "`code`" + `, "- " bullets,
[links](https://example.com) and mentions written as @[Name](id).

Mentioned IDs must belong to the configured members.

Examples:
  flowsync comment t-3f2a "Looks good to me"
  flowsync comment t-3f2a "Ping @[Morgan Chen](2) about **staging**"
  flowsync comment t-3f2a --style code "make release"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.AddCommentUseCase().Execute(cmd.Context(), opts.input(cmd, args[0], "", args[1:]))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added comment %s to task %s\n",
				domain.ShortID(out.Comment.ID), domain.ShortID(out.Task.ID))
			printMentions(cmd.OutOrStdout(), out.Mentioned)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

// newReplyCommand creates the reply command for answering a comment.
func newReplyCommand(c *app.Container) *cobra.Command {
	var opts commentOptions

	cmd := &cobra.Command{
		Use:   "reply <id> <comment-id> <text>...",
		Short: "Reply to a comment",
		Long: `Reply to a comment or to another reply. Threads nest to any depth.

The comment ID may be shortened to any unique prefix; 'flowsync show'
prints the IDs next to each comment.

Examples:
  flowsync reply t-3f2a c-91b0 "Done, thanks"`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.AddCommentUseCase().Execute(cmd.Context(), opts.input(cmd, args[0], args[1], args[2:]))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added reply %s to task %s (depth %d)\n",
				domain.ShortID(out.Comment.ID), domain.ShortID(out.Task.ID), out.Depth)
			printMentions(cmd.OutOrStdout(), out.Mentioned)
			printWarning(cmd.ErrOrStderr(), out.Warning)
			return nil
		},
	}

	opts.register(cmd)

	return cmd
}
