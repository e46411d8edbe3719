package domain

import (
	"fmt"
	"time"
)

// Allocation commits a fraction of one team member's weekly capacity to a
// project for the project's full duration. StartDate is an optional explicit
// override consumed by the start-date resolver; nil or an epoch date means
// "no override".
type Allocation struct {
	TeamMemberID string
	Percentage   float64
	StartDate    *time.Time
}

// HasStartOverride reports whether the allocation carries a usable explicit
// start date. Epoch (1970) dates are treated as unset, matching how imported
// data encodes "no date".
func (a Allocation) HasStartOverride() bool {
	return a.StartDate != nil && !a.StartDate.IsZero() && a.StartDate.Year() > 1970
}

func (a Allocation) Validate() error {
	if a.TeamMemberID == "" {
		return fmt.Errorf("allocation team member id is required")
	}
	if a.Percentage <= 0 || a.Percentage > 100 {
		return fmt.Errorf("allocation percentage must be in (0, 100], got %g", a.Percentage)
	}
	return nil
}
