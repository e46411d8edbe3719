package scheduler

import (
	"time"

	"github.com/evanharte/crewplan/internal/calendar"
	"github.com/evanharte/crewplan/internal/domain"
	"github.com/rs/zerolog"
)

// workloadKey identifies one memoized workload lookup. Besides the member
// and candidate date it carries the window length and the member's current
// assignment count, so entries can never leak across windows or survive a
// new placement for the same member within the run.
type workloadKey struct {
	memberID    string
	day         int64
	days        int
	assignments int
}

// run owns all state for a single scheduling pass. Every memoization cache
// lives here and dies with the run, keeping runs isolated from each other.
type run struct {
	now     time.Time
	base    time.Time
	rules   []calendar.Rule
	maxIter int
	log     zerolog.Logger

	members    map[string]*domain.TeamMember
	priorities map[string]int

	assignments []Assignment
	byMember    map[string][]int

	weeksByProject map[string]float64
	endByIndex     map[int]time.Time
	workloads      map[workloadKey]float64

	warnings []Warning
}

func newRun(in Input, opts Options) *run {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	members := make(map[string]*domain.TeamMember, len(in.TeamMembers))
	for _, m := range in.TeamMembers {
		members[m.ID] = m
	}
	priorities := make(map[string]int, len(in.Projects))
	for _, p := range in.Projects {
		priorities[p.ID] = p.Priority
	}

	return &run{
		now:            calendar.Normalize(now),
		rules:          calendar.ParseExcludes(in.Excludes),
		maxIter:        maxIter,
		log:            log,
		members:        members,
		priorities:     priorities,
		byMember:       make(map[string][]int),
		weeksByProject: make(map[string]float64),
		endByIndex:     make(map[int]time.Time),
		workloads:      make(map[workloadKey]float64),
	}
}

// place appends one assignment per valid allocation at the resolved start.
func (r *run) place(p *domain.Project, allocs []domain.Allocation, start time.Time, weeks float64) {
	for _, al := range allocs {
		idx := len(r.assignments)
		r.assignments = append(r.assignments, Assignment{
			ProjectID:    p.ID,
			TeamMemberID: al.TeamMemberID,
			StartDate:    start,
			WeeksNeeded:  weeks,
			Percentage:   al.Percentage,
		})
		r.byMember[al.TeamMemberID] = append(r.byMember[al.TeamMemberID], idx)
	}
}

// assignmentEnd memoizes the calendar-arithmetic end date of an existing
// assignment; it is consulted repeatedly by the forward scan.
func (r *run) assignmentEnd(idx int) time.Time {
	if end, ok := r.endByIndex[idx]; ok {
		return end
	}
	end := r.assignments[idx].EndDate(r.rules)
	r.endByIndex[idx] = end
	return end
}

func (r *run) warn(code WarningCode, projectID, msg string) {
	r.warnings = append(r.warnings, Warning{Code: code, ProjectID: projectID, Message: msg})
	r.log.Warn().Str("project_id", projectID).Str("code", string(code)).Msg(msg)
}
