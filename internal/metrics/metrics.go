// Package metrics derives dashboard views from a task collection.
// All functions are pure: they never modify their input.
package metrics

import (
	"math"
	"time"

	"github.com/runoshun/flowsync/internal/domain"
)

// Summary holds per-column counts and the completion rate.
// Fields are ordered to minimize memory padding.
type Summary struct {
	AvgCompletionDays float64 // Mean days from creation to completion
	Total             int
	Todo              int
	InProgress        int
	Done              int
	CompletionRate    int // Percent, rounded
	Trend             Trend
}

// Trend compares the completion rate against a baseline.
type Trend struct {
	Value int  // Absolute difference in percentage points
	Up    bool // Rate is at or above the baseline
}

// Direction returns "up" or "down".
func (t Trend) Direction() string {
	if t.Up {
		return "up"
	}
	return "down"
}

// ComputeSummary counts tasks per column and compares the completion rate
// with baselineRate.
func ComputeSummary(tasks []*domain.Task, baselineRate int) Summary {
	var s Summary
	for _, t := range tasks {
		switch t.Column {
		case domain.ColumnTodo:
			s.Todo++
		case domain.ColumnInProgress:
			s.InProgress++
		case domain.ColumnDone:
			s.Done++
		}
	}
	s.Total = s.Todo + s.InProgress + s.Done
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Done) * 100 / float64(s.Total)))
	}

	diff := s.CompletionRate - baselineRate
	s.Trend = Trend{Value: abs(diff), Up: diff >= 0}
	s.AvgCompletionDays = AverageCompletionDays(tasks)
	return s
}

// AverageCompletionDays returns the mean number of days between creation
// and completion over done tasks that carry both timestamps, rounded to one
// decimal. It is 0 when no task qualifies.
func AverageCompletionDays(tasks []*domain.Task) float64 {
	var (
		total time.Duration
		n     int
	)
	for _, t := range tasks {
		if !t.IsDone() || t.Created.IsZero() || t.Completed.IsZero() || t.Completed.Before(t.Created) {
			continue
		}
		total += t.Completed.Sub(t.Created)
		n++
	}
	if n == 0 {
		return 0
	}
	days := total.Hours() / 24 / float64(n)
	return math.Round(days*10) / 10
}

// CountPastDue returns the number of tasks past their due date at now.
func CountPastDue(tasks []*domain.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.IsPastDue(now) {
			n++
		}
	}
	return n
}

// TimelinePoint is the completion count for one calendar day.
type TimelinePoint struct {
	Day   time.Time // Midnight, in the location of now
	Count int
}

// Label formats the day for chart axes, e.g. "Mar 4".
func (p TimelinePoint) Label() string {
	return p.Day.Format("Jan 2")
}

// BuildCompletionTimeline returns one point per day for the last windowDays
// days ending today, oldest first.
//
// A done task counts on the day of its completion timestamp. Done tasks
// without one count on every day within one day of their due date.
func BuildCompletionTimeline(tasks []*domain.Task, windowDays int, now time.Time) []TimelinePoint {
	if windowDays <= 0 {
		return []TimelinePoint{}
	}
	today := startOfDay(now, now.Location())
	points := make([]TimelinePoint, windowDays)
	for i := range points {
		points[i].Day = today.AddDate(0, 0, i-(windowDays-1))
	}

	for _, t := range tasks {
		if !t.IsDone() {
			continue
		}
		if !t.Completed.IsZero() {
			day := startOfDay(t.Completed, now.Location())
			for i := range points {
				if points[i].Day.Equal(day) {
					points[i].Count++
					break
				}
			}
			continue
		}
		if t.Due.IsZero() {
			continue
		}
		due := startOfDay(t.Due, now.Location())
		for i := range points {
			if d := dayDiff(points[i].Day, due); d >= -1 && d <= 1 {
				points[i].Count++
			}
		}
	}
	return points
}

// GroupCount is a labelled count.
type GroupCount struct {
	Label string
	Count int
}

// GroupByPriority counts tasks per priority in the fixed order low, medium, high.
func GroupByPriority(tasks []*domain.Task) []GroupCount {
	priorities := domain.AllPriorities()
	out := make([]GroupCount, len(priorities))
	index := make(map[domain.Priority]int, len(priorities))
	for i, p := range priorities {
		out[i].Label = p.Display()
		index[p] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Priority]; ok {
			out[i].Count++
		}
	}
	return out
}

// AssigneeStats holds the workload of one assignee.
type AssigneeStats struct {
	Name      string
	Total     int
	Completed int
}

// GroupByAssignee returns per-assignee totals keyed by display name, in
// order of first appearance.
func GroupByAssignee(tasks []*domain.Task) []AssigneeStats {
	out := []AssigneeStats{}
	index := make(map[string]int)
	for _, t := range tasks {
		name := t.Assignee.Name
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, AssigneeStats{Name: name})
		}
		out[i].Total++
		if t.IsDone() {
			out[i].Completed++
		}
	}
	return out
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dayDiff returns the number of calendar days from b to a.
func dayDiff(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub).Hours() / 24)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
