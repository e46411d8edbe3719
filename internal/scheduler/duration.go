package scheduler

import (
	"time"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
)

// combinedDailyHours sums the per-working-day capacity every allocation
// contributes to a project. Allocations whose member is unknown contribute
// nothing.
func combinedDailyHours(allocs []domain.Allocation, members map[string]*domain.TeamMember) float64 {
	total := 0.0
	for _, al := range allocs {
		m, ok := members[al.TeamMemberID]
		if !ok {
			continue
		}
		total += m.DailyHours() * al.Percentage / 100
	}
	return total
}

// workingDaysForHours walks the calendar from start, burning dailyHours of
// estimated effort on each working day, and returns how many working days it
// took to exhaust the estimate. A non-positive daily capacity yields zero,
// which callers treat as unschedulable.
func workingDaysForHours(start time.Time, estimatedHours, dailyHours float64, rules []calendar.Rule) int {
	if dailyHours <= 0 || estimatedHours <= 0 {
		return 0
	}
	days := 0
	remaining := estimatedHours
	d := calendar.Normalize(start)
	for scanned := 0; remaining > 0 && scanned < maxDurationScanDays; scanned++ {
		if calendar.IsWorkingDay(d, rules) {
			remaining -= dailyHours
			days++
		}
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// maxDurationScanDays bounds the day-by-day simulation against rule sets
// that exclude every weekday.
const maxDurationScanDays = 3660

// durationWeeks computes and memoizes a project's required duration as a
// fractional week count. The walk starts at "now" only to produce a
// canonical figure; final placement happens in the start-date resolver.
func (r *run) durationWeeks(p *domain.Project, allocs []domain.Allocation) float64 {
	if weeks, ok := r.weeksByProject[p.ID]; ok {
		return weeks
	}
	daily := combinedDailyHours(allocs, r.members)
	weeks := 0.0
	if daily > 0 {
		days := workingDaysForHours(r.now, p.EstimatedHours, daily, r.rules)
		weeks = float64(days) / 5
	}
	r.weeksByProject[p.ID] = weeks
	return weeks
}
