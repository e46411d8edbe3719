package domain

import (
	"fmt"
	"time"
)

// DefaultWeeklyHours is the weekly capacity assumed for a team member when
// none is given, spread evenly over five working days.
const DefaultWeeklyHours = 40.0

type TeamMember struct {
	ID          string
	PlanID      string
	Name        string
	WeeklyHours float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DailyHours returns the member's capacity for a single working day.
func (m *TeamMember) DailyHours() float64 {
	return m.WeeklyHours / 5
}

func (m *TeamMember) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("team member name is required")
	}
	if m.WeeklyHours <= 0 {
		return fmt.Errorf("weekly hours must be positive, got %g", m.WeeklyHours)
	}
	return nil
}
