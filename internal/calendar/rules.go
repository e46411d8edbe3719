package calendar

import (
	"strings"
	"time"
)

// Rule is one parsed calendar-exclusion entry: either a set of weekdays
// (from a named token such as "weekends" or "tuesday") or a single literal
// calendar day.
type Rule struct {
	weekdays uint8 // bitmask, bit n = time.Weekday(n)
	day      time.Time
	hasDay   bool
}

const (
	weekendMask uint8 = 1<<uint(time.Saturday) | 1<<uint(time.Sunday)
	weekdayMask uint8 = 1<<uint(time.Monday) | 1<<uint(time.Tuesday) |
		1<<uint(time.Wednesday) | 1<<uint(time.Thursday) | 1<<uint(time.Friday)
)

var namedRules = map[string]uint8{
	"weekends":  weekendMask,
	"weekdays":  weekdayMask,
	"sunday":    1 << uint(time.Sunday),
	"monday":    1 << uint(time.Monday),
	"tuesday":   1 << uint(time.Tuesday),
	"wednesday": 1 << uint(time.Wednesday),
	"thursday":  1 << uint(time.Thursday),
	"friday":    1 << uint(time.Friday),
	"saturday":  1 << uint(time.Saturday),
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "2006-01-02T15:04:05Z07:00"}

// ParseExcludes turns raw exclusion entries into rules. An entry that is
// neither a known weekday token nor a parseable date is dropped: it excludes
// nothing and produces no error.
func ParseExcludes(raw []string) []Rule {
	var rules []Rule
	for _, entry := range raw {
		token := strings.ToLower(strings.TrimSpace(entry))
		if token == "" {
			continue
		}
		if mask, ok := namedRules[token]; ok {
			rules = append(rules, Rule{weekdays: mask})
			continue
		}
		if day, ok := parseDate(entry); ok {
			rules = append(rules, Rule{day: day, hasDay: true})
		}
	}
	return rules
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Normalize(t), true
		}
	}
	return time.Time{}, false
}

// matches reports whether t falls under this rule. Literal-date rules compare
// by calendar day, not exact timestamp.
func (r Rule) matches(t time.Time) bool {
	if r.hasDay {
		return sameDay(t, r.day)
	}
	return r.weekdays&(1<<uint(t.Weekday())) != 0
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// IsExcluded reports whether t is ruled out by any exclusion rule.
func IsExcluded(t time.Time, rules []Rule) bool {
	for _, r := range rules {
		if r.matches(t) {
			return true
		}
	}
	return false
}
