package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/flowsync/internal/app"
	"github.com/runoshun/flowsync/internal/usecase"
	"github.com/spf13/cobra"
)

// barWidth is the widest bar drawn in the timeline and group charts.
const barWidth = 30

// newDashboardCommand creates the dashboard command.
func newDashboardCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Days     int
		Baseline int
	}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show board metrics",
		Long: `Show the completion summary, the completion timeline and the task
breakdown by priority and assignee.

The trend compares the completion rate against a baseline rate
([dashboard] baseline_rate, default 42%).

Examples:
  flowsync dashboard
  flowsync dashboard --days 30 --baseline 60`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadBoard(cmd, c); err != nil {
				return err
			}

			out, err := c.DashboardUseCase().Execute(cmd.Context(), usecase.DashboardInput{
				TimelineDays: opts.Days,
				BaselineRate: opts.Baseline,
			})
			if err != nil {
				return err
			}

			printDashboard(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Days, "days", 0, "Days shown in the completion timeline (default from config)")
	cmd.Flags().IntVar(&opts.Baseline, "baseline", 0, "Baseline completion rate in percent (default from config)")

	return cmd
}

// printDashboard prints every dashboard section.
func printDashboard(w io.Writer, out *usecase.DashboardOutput) {
	s := out.Summary
	trend := "↓"
	if s.Trend.Up {
		trend = "↑"
	}

	_, _ = fmt.Fprintln(w, "[Summary]")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Total\t%d\n", s.Total)
	_, _ = fmt.Fprintf(tw, "To Do\t%d\n", s.Todo)
	_, _ = fmt.Fprintf(tw, "In Progress\t%d\n", s.InProgress)
	_, _ = fmt.Fprintf(tw, "Done\t%d\n", s.Done)
	_, _ = fmt.Fprintf(tw, "Completion\t%d%% (%s%d%%)\n", s.CompletionRate, trend, s.Trend.Value)
	_, _ = fmt.Fprintf(tw, "Avg completion\t%.1f days\n", s.AvgCompletionDays)
	_, _ = fmt.Fprintf(tw, "Past due\t%d\n", out.PastDue)
	_ = tw.Flush()

	maxCount := 0
	for _, p := range out.Timeline {
		maxCount = max(maxCount, p.Count)
	}
	_, _ = fmt.Fprintf(w, "\n[Completed, last %d days]\n", len(out.Timeline))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range out.Timeline {
		_, _ = fmt.Fprintf(tw, "%s\t%s %d\n", p.Label(), bar(p.Count, maxCount), p.Count)
	}
	_ = tw.Flush()

	maxCount = 0
	for _, g := range out.ByPriority {
		maxCount = max(maxCount, g.Count)
	}
	_, _ = fmt.Fprintln(w, "\n[By priority]")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, g := range out.ByPriority {
		_, _ = fmt.Fprintf(tw, "%s\t%s %d\n", g.Label, bar(g.Count, maxCount), g.Count)
	}
	_ = tw.Flush()

	if len(out.ByAssignee) > 0 {
		_, _ = fmt.Fprintln(w, "\n[By assignee]")
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "NAME\tTOTAL\tDONE")
		for _, a := range out.ByAssignee {
			_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", a.Name, a.Total, a.Completed)
		}
		_ = tw.Flush()
	}
}

// bar scales count against maxCount.
func bar(count, maxCount int) string {
	if maxCount == 0 || count == 0 {
		return ""
	}
	n := count * barWidth / maxCount
	if n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
