package scheduler

import (
	"math"
	"time"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
)

// resolveStartDate finds the earliest date at or after the project's lower
// bound where every allocated member can start simultaneously without
// violating priority-respecting capacity limits. The second return value
// reports whether the iteration cap was hit and the plan base date used as a
// fallback.
//
// Later, lower-priority projects are pushed forward in time rather than
// preempting committed placements; a higher-priority overlap is a hard block
// at that candidate.
func (r *run) resolveStartDate(p *domain.Project, allocs []domain.Allocation, weeks float64) (time.Time, bool) {
	days := int(math.Ceil(weeks * 5))

	// Lower bound: the later of startAfter and the plan base date.
	lower := r.base
	if p.StartAfter != nil {
		if sa := calendar.Normalize(*p.StartAfter); sa.After(lower) {
			lower = sa
		}
	}

	// Raise past the latest end of each member's higher-priority
	// commitments. A higher-priority claim is never preempted; contention
	// with equal-or-lower-priority assignments is left to the forward scan,
	// which allows sharing up to 100% workload.
	prio := r.priorities[p.ID]
	for _, al := range allocs {
		for _, idx := range r.byMember[al.TeamMemberID] {
			if r.priorities[r.assignments[idx].ProjectID] >= prio {
				continue
			}
			if end := r.assignmentEnd(idx); end.After(lower) {
				lower = end
			}
		}
	}

	lower = calendar.NextWorkingDay(lower, r.rules)

	// Explicit allocation start overrides only pull the candidate later.
	for _, al := range allocs {
		if !al.HasStartOverride() {
			continue
		}
		if o := calendar.Normalize(*al.StartDate); o.After(lower) {
			lower = o
		}
	}

	candidate := calendar.NextWorkingDay(lower, r.rules)
	for i := 0; i < r.maxIter; i++ {
		if r.fitsAt(p, allocs, candidate, days) {
			return candidate, false
		}
		candidate = calendar.NextWorkingDay(candidate.AddDate(0, 0, 1), r.rules)
	}
	return r.base, true
}

// fitsAt checks a single candidate date: every allocated member must have no
// overlapping higher-priority assignment and enough workload headroom for
// this allocation on top of equal-or-lower-priority overlaps.
func (r *run) fitsAt(p *domain.Project, allocs []domain.Allocation, candidate time.Time, days int) bool {
	end := calendar.AddWorkingDays(candidate, days, r.rules)
	prio := r.priorities[p.ID]

	for _, al := range allocs {
		load, blocked := r.memberWorkload(al.TeamMemberID, candidate, end, days, prio)
		if blocked {
			return false
		}
		if load+al.Percentage > 100 {
			return false
		}
	}
	return true
}

// memberWorkload sums the percentages of the member's existing assignments
// overlapping [candidate, end) that belong to equal-or-lower-priority
// projects. blocked is true when a strictly higher-priority assignment
// overlaps. Non-blocked results are memoized per member, date, window length
// and assignment count.
func (r *run) memberWorkload(memberID string, candidate, end time.Time, days, prio int) (load float64, blocked bool) {
	key := workloadKey{
		memberID:    memberID,
		day:         candidate.Unix(),
		days:        days,
		assignments: len(r.byMember[memberID]),
	}
	cached, hasCached := r.workloads[key]

	for _, idx := range r.byMember[memberID] {
		a := r.assignments[idx]
		aEnd := r.assignmentEnd(idx)
		if !a.StartDate.Before(end) || !candidate.Before(aEnd) {
			continue
		}
		if r.priorities[a.ProjectID] < prio {
			return 0, true
		}
		if !hasCached {
			cached += a.Percentage
		}
	}
	r.workloads[key] = cached
	return cached, false
}
