// Package project keeps the project registry and derives progress views.
// The view functions are pure: they never modify their input.
package project

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/runoshun/flowsync/internal/domain"
)

// SortKey orders a project listing.
type SortKey string

const (
	SortRecent   SortKey = "recent"   // Most recently updated first
	SortName     SortKey = "name"     // Alphabetical, case-insensitive
	SortProgress SortKey = "progress" // Highest progress first
)

// ParseSortKey converts user input into a SortKey. Empty means recent.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortRecent, nil
	case SortRecent, SortName, SortProgress:
		return k, nil
	default:
		return "", domain.NewValidationError("sort", "must be recent, name or progress", nil)
	}
}

// Query selects projects. Zero values match everything.
type Query struct {
	Search string               // Case-insensitive substring of name or description
	Status domain.ProjectStatus // Exact status
}

// Matches returns true if p satisfies every set criterion.
func (q Query) Matches(p *domain.Project) bool {
	if q.Status != "" && p.Status != q.Status {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term)
}

// Progress returns the explicit progress when set, otherwise the rounded
// share of completed tasks. A project without tasks is at 0.
func Progress(p *domain.Project) int {
	if p.Progress != nil {
		return *p.Progress
	}
	if p.Tasks.Total == 0 {
		return 0
	}
	return int(math.Round(float64(p.Tasks.Completed) * 100 / float64(p.Tasks.Total)))
}

// Tally returns copies of projects with their task totals counted from
// tasks. Tasks filed under unknown projects are ignored.
func Tally(projects []*domain.Project, tasks []*domain.Task) []*domain.Project {
	totals := make(map[string]domain.ProjectTotals, len(projects))
	for _, t := range tasks {
		if t.ProjectID == "" {
			continue
		}
		tt := totals[t.ProjectID]
		tt.Total++
		if t.IsDone() {
			tt.Completed++
		}
		totals[t.ProjectID] = tt
	}

	out := make([]*domain.Project, 0, len(projects))
	for _, p := range projects {
		c := p.Clone()
		c.Tasks = totals[p.ID]
		out = append(out, c)
	}
	return out
}

// Filter returns the projects matching q in their original order.
func Filter(projects []*domain.Project, q Query) []*domain.Project {
	out := make([]*domain.Project, 0, len(projects))
	for _, p := range projects {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort returns a copy of projects ordered by key. Ties keep their
// original order.
func Sort(projects []*domain.Project, key SortKey) []*domain.Project {
	out := slices.Clone(projects)
	switch key {
	case SortName:
		slices.SortStableFunc(out, func(a, b *domain.Project) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortProgress:
		slices.SortStableFunc(out, func(a, b *domain.Project) int {
			return cmp.Compare(Progress(b), Progress(a))
		})
	default:
		slices.SortStableFunc(out, func(a, b *domain.Project) int {
			return b.Updated.Compare(a.Updated)
		})
	}
	return out
}
