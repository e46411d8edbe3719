package scheduler

import (
	"math"
	"time"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultMaxIterations caps the forward scan of the start-date resolver.
// When the cap is hit, placement falls back to the plan base date and a
// WarnPlacementFallback warning is recorded.
const DefaultMaxIterations = 365

// Assignment is the computed, dated realization of one allocation. It is
// derived on every scheduling run and never persisted as source data.
type Assignment struct {
	ProjectID    string
	TeamMemberID string
	StartDate    time.Time
	WeeksNeeded  float64
	Percentage   float64
}

// WorkingDays converts the fractional week count back to whole working days.
func (a Assignment) WorkingDays() int {
	return int(math.Ceil(a.WeeksNeeded * 5))
}

// EndDate returns the exclusive end of the assignment's interval under the
// given exclusion rules.
func (a Assignment) EndDate(rules []calendar.Rule) time.Time {
	return calendar.AddWorkingDays(a.StartDate, a.WorkingDays(), rules)
}

// ScheduledProject is a project enriched with its computed window and the
// assignments that realize it.
type ScheduledProject struct {
	Project     *domain.Project
	StartDate   time.Time
	EndDate     time.Time
	Assignments []Assignment
}

// ResourceUtilization aggregates assigned versus available hours over the
// union window of all scheduled projects.
type ResourceUtilization struct {
	AllocatedHours float64
	AvailableHours float64
	Percentage     float64
}

type WarningCode string

const (
	WarnNoAllocations      WarningCode = "no_allocations"
	WarnZeroEstimate       WarningCode = "zero_estimate"
	WarnNoValidAllocations WarningCode = "no_valid_allocations"
	WarnZeroCapacity       WarningCode = "zero_capacity"
	WarnPlacementFallback  WarningCode = "placement_fallback"
)

// Warning records a non-fatal, data-quality problem encountered during a
// run. Scheduling never fails for these; affected projects are skipped or
// placed at the fallback date.
type Warning struct {
	Code      WarningCode
	ProjectID string
	Message   string
}

// Input is the plain data a scheduling run consumes. Excludes are the plan's
// raw exclusion entries; unparseable ones are ignored.
type Input struct {
	Projects    []*domain.Project
	TeamMembers []*domain.TeamMember
	Excludes    []string
}

// Options tune a single run. The zero value is usable: Now defaults to
// time.Now, MaxIterations to DefaultMaxIterations and Logger to a no-op.
type Options struct {
	Now           time.Time
	MaxIterations int
	Logger        *zerolog.Logger
}

// Result is the complete outcome of one scheduling run.
type Result struct {
	Assignments       []Assignment
	ScheduledProjects []ScheduledProject
	Utilization       ResourceUtilization
	Warnings          []Warning
}

// HasWarning reports whether the run recorded the given warning code for the
// given project.
func (r *Result) HasWarning(code WarningCode, projectID string) bool {
	for _, w := range r.Warnings {
		if w.Code == code && w.ProjectID == projectID {
			return true
		}
	}
	return false
}
