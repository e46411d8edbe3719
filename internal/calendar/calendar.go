// Package calendar provides working-day predicates and arithmetic over plan
// exclusion rules. All functions are pure; dates are compared at local
// midnight.
package calendar

import "time"

// maxScanDays bounds every calendar walk so that a rule set excluding all
// seven weekdays cannot loop forever.
const maxScanDays = 3660

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Normalize truncates t to local midnight.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsWorkingDay reports whether t is neither a weekend nor excluded.
func IsWorkingDay(t time.Time, rules []Rule) bool {
	return !IsWeekend(t) && !IsExcluded(t, rules)
}

// AddWorkingDays returns the date of the nth working day strictly after t,
// advancing one calendar day at a time and counting only days that are
// neither weekends nor excluded. n must be non-negative; n == 0 returns the
// normalized input.
func AddWorkingDays(t time.Time, n int, rules []Rule) time.Time {
	d := Normalize(t)
	counted := 0
	for scanned := 0; counted < n && scanned < maxScanDays; scanned++ {
		d = d.AddDate(0, 0, 1)
		if IsWorkingDay(d, rules) {
			counted++
		}
	}
	return d
}

// NextWeekday snaps a weekend date forward to the following Monday and
// returns weekday dates unchanged. Custom exclusion rules are deliberately
// not consulted: rendering aligns to weekdays only.
func NextWeekday(t time.Time) time.Time {
	d := Normalize(t)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// NextWorkingDay snaps t forward to the first day that is neither a weekend
// nor excluded. Dates already on a working day are returned unchanged.
func NextWorkingDay(t time.Time, rules []Rule) time.Time {
	d := Normalize(t)
	for scanned := 0; !IsWorkingDay(d, rules) && scanned < maxScanDays; scanned++ {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// CountWorkingDays counts the working days in [start, end], inclusive on
// both ends. It returns 0 when end precedes start.
func CountWorkingDays(start, end time.Time, rules []Rule) int {
	d := Normalize(start)
	last := Normalize(end)
	count := 0
	for !d.After(last) {
		if IsWorkingDay(d, rules) {
			count++
		}
		d = d.AddDate(0, 0, 1)
	}
	return count
}
