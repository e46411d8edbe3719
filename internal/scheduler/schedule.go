// Package scheduler computes deterministic, conflict-free assignments of
// team-member time to projects, together with derived utilization metrics.
//
// A run is a single synchronous pass: projects are placed strictly in
// priority order and each placement sees every earlier one, so one plan's
// pass must never be split across goroutines. Separate plans share no state
// and may be scheduled in parallel.
package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
)

// Calculate runs one complete scheduling pass over the given projects, team
// members and exclusion rules. It never returns an error: data-quality
// problems degrade to warnings and empty input yields an empty result.
func Calculate(in Input, opts Options) Result {
	if len(in.Projects) == 0 || len(in.TeamMembers) == 0 {
		return Result{}
	}

	r := newRun(in, opts)
	r.base = baseDate(in.Projects, r.now)

	for _, p := range sortForScheduling(in.Projects, r.base) {
		if len(p.Allocations) == 0 {
			r.warn(WarnNoAllocations, p.ID, fmt.Sprintf("project %q has no allocations, skipping", p.Name))
			continue
		}
		if p.EstimatedHours <= 0 {
			r.warn(WarnZeroEstimate, p.ID, fmt.Sprintf("project %q has no estimated hours, skipping", p.Name))
			continue
		}

		valid := r.validAllocations(p)
		if len(valid) == 0 {
			r.warn(WarnNoValidAllocations, p.ID,
				fmt.Sprintf("project %q has no allocations resolving to the current roster, skipping", p.Name))
			continue
		}

		weeks := r.durationWeeks(p, valid)
		if weeks <= 0 {
			r.warn(WarnZeroCapacity, p.ID,
				fmt.Sprintf("project %q has zero combined daily capacity, skipping", p.Name))
			continue
		}

		start, fellBack := r.resolveStartDate(p, valid, weeks)
		if fellBack {
			r.warn(WarnPlacementFallback, p.ID,
				fmt.Sprintf("no conflict-free start found for project %q within %d candidates, falling back to plan base date", p.Name, r.maxIter))
		}
		r.place(p, valid, start, weeks)
	}

	scheduled := r.buildScheduledProjects(in.Projects)
	return Result{
		Assignments:       r.assignments,
		ScheduledProjects: scheduled,
		Utilization:       r.utilization(in.TeamMembers, scheduled),
		Warnings:          r.warnings,
	}
}

// baseDate is the earliest startAfter among all projects, defaulting to now,
// normalized to midnight.
func baseDate(projects []*domain.Project, now time.Time) time.Time {
	base := time.Time{}
	for _, p := range projects {
		if p.StartAfter == nil || p.StartAfter.IsZero() {
			continue
		}
		sa := calendar.Normalize(*p.StartAfter)
		if base.IsZero() || sa.Before(base) {
			base = sa
		}
	}
	if base.IsZero() {
		return now
	}
	return base
}

// validAllocations filters a project's allocations to those resolving to the
// current roster. An allocation naming an unknown member is invalid input
// and is dropped before scheduling.
func (r *run) validAllocations(p *domain.Project) []domain.Allocation {
	valid := make([]domain.Allocation, 0, len(p.Allocations))
	for _, al := range p.Allocations {
		if _, ok := r.members[al.TeamMemberID]; ok {
			valid = append(valid, al)
		}
	}
	return valid
}

// buildScheduledProjects groups the run's assignments per project, taking
// the earliest start and latest end as the project's effective window.
// Projects that produced no assignments are omitted.
func (r *run) buildScheduledProjects(projects []*domain.Project) []ScheduledProject {
	byProject := make(map[string][]Assignment)
	for _, a := range r.assignments {
		byProject[a.ProjectID] = append(byProject[a.ProjectID], a)
	}

	var scheduled []ScheduledProject
	for _, p := range projects {
		assignments, ok := byProject[p.ID]
		if !ok {
			continue
		}
		sp := ScheduledProject{Project: p, Assignments: assignments}
		for _, a := range assignments {
			end := a.EndDate(r.rules)
			if sp.StartDate.IsZero() || a.StartDate.Before(sp.StartDate) {
				sp.StartDate = a.StartDate
			}
			if sp.EndDate.IsZero() || end.After(sp.EndDate) {
				sp.EndDate = end
			}
		}
		scheduled = append(scheduled, sp)
	}
	return scheduled
}

// utilization aggregates assigned versus available hours over the union
// window of all scheduled projects. A zero-capacity denominator reports 0%
// rather than NaN.
func (r *run) utilization(members []*domain.TeamMember, scheduled []ScheduledProject) ResourceUtilization {
	if len(scheduled) == 0 {
		return ResourceUtilization{}
	}

	windowStart, windowEnd := scheduled[0].StartDate, scheduled[0].EndDate
	for _, sp := range scheduled[1:] {
		if sp.StartDate.Before(windowStart) {
			windowStart = sp.StartDate
		}
		if sp.EndDate.After(windowEnd) {
			windowEnd = sp.EndDate
		}
	}
	weeksInWindow := windowEnd.Sub(windowStart).Hours() / (24 * 7)

	available := 0.0
	for _, m := range members {
		available += m.WeeklyHours * weeksInWindow
	}

	allocated := 0.0
	for _, a := range r.assignments {
		m, ok := r.members[a.TeamMemberID]
		if !ok {
			continue
		}
		allocated += m.WeeklyHours * a.Percentage / 100 * a.WeeksNeeded
	}

	u := ResourceUtilization{
		AllocatedHours: round1(allocated),
		AvailableHours: round1(available),
	}
	if available > 0 {
		u.Percentage = round1(allocated / available * 100)
	}
	return u
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
