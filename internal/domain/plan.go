package domain

import (
	"fmt"
	"time"
)

// Plan defines one independent scheduling horizon: a date range plus the
// calendar exclusion rules every project in the plan is scheduled against.
type Plan struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Excludes  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Plan) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plan name is required")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("plan start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("plan end date %s is before start date %s",
			p.EndDate.Format("2006-01-02"), p.StartDate.Format("2006-01-02"))
	}
	return nil
}

// HasValidDates reports whether the plan window can be rendered at all.
func (p *Plan) HasValidDates() bool {
	return !p.StartDate.IsZero() && !p.EndDate.IsZero() && !p.EndDate.Before(p.StartDate)
}
