package scheduler

import (
	"sort"
	"time"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
)

// effectiveStart returns the date a project competes with for scheduling
// order: its startAfter when set, otherwise the shared base date. The base
// substitution is for comparison only; it never moves the project.
func effectiveStart(p *domain.Project, base time.Time) time.Time {
	if p.StartAfter != nil && !p.StartAfter.IsZero() {
		return calendar.Normalize(*p.StartAfter)
	}
	return base
}

// sortForScheduling orders projects by the deterministic canonical rules:
// 1. Priority: ascending (lower number scheduled first)
// 2. Effective start date: ascending
// 3. Original input order (stable), so equal projects keep a fixed order
// even when neither carries a startAfter date.
func sortForScheduling(projects []*domain.Project, base time.Time) []*domain.Project {
	sorted := make([]*domain.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		sa, sb := effectiveStart(a, base), effectiveStart(b, base)
		return sa.Before(sb)
	})
	return sorted
}
