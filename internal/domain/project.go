package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

type Project struct {
	ID              string
	PlanID          string
	ShortID         string
	Name            string
	EstimatedHours  float64
	StartAfter      *time.Time
	EndBefore       *time.Time
	Priority        int
	PercentComplete float64
	Allocations     []Allocation
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidateShortID checks that ShortID, when set, matches the required format:
// 3-6 uppercase letters followed by 2-4 digits (e.g. API01, INFRA0234).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return nil
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. API01)", p.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display and markup task ids.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (p *Project) DisplayID() string {
	if p.ShortID != "" {
		return p.ShortID
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// Schedulable reports whether the project carries enough data to be placed on
// the timeline at all. Unschedulable projects are skipped with a warning, not
// rejected.
func (p *Project) Schedulable() bool {
	return p.EstimatedHours > 0 && len(p.Allocations) > 0
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.EstimatedHours < 0 {
		return fmt.Errorf("estimated hours must not be negative, got %g", p.EstimatedHours)
	}
	if p.PercentComplete < 0 || p.PercentComplete > 100 {
		return fmt.Errorf("percent complete must be in [0, 100], got %g", p.PercentComplete)
	}
	if err := p.ValidateShortID(); err != nil {
		return err
	}
	for i, a := range p.Allocations {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
	}
	return nil
}
