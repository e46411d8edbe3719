package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
)

// Export converts persisted domain entities back into the interchange schema.
// Entity IDs double as refs, so an exported file re-imports cleanly.
func Export(plan *domain.Plan, members []*domain.TeamMember, projects []*domain.Project) *ImportSchema {
	schema := &ImportSchema{
		Plan: PlanImport{
			Name:      plan.Name,
			StartDate: plan.StartDate.Format(dateLayout),
			EndDate:   plan.EndDate.Format(dateLayout),
			Excludes:  plan.Excludes,
		},
	}

	for _, m := range members {
		hours := m.WeeklyHours
		schema.TeamMembers = append(schema.TeamMembers, MemberImport{
			Ref:         m.ID,
			Name:        m.Name,
			WeeklyHours: &hours,
		})
	}

	for _, p := range projects {
		pi := ProjectImport{
			Ref:             p.ID,
			ShortID:         p.ShortID,
			Name:            p.Name,
			EstimatedHours:  p.EstimatedHours,
			StartAfter:      formatOptionalDate(p.StartAfter),
			EndBefore:       formatOptionalDate(p.EndBefore),
			Priority:        p.Priority,
			PercentComplete: p.PercentComplete,
		}
		for _, a := range p.Allocations {
			pi.Allocations = append(pi.Allocations, AllocationImport{
				TeamMemberRef: a.TeamMemberID,
				Percentage:    a.Percentage,
				StartDate:     formatOptionalDate(a.StartDate),
			})
		}
		schema.Projects = append(schema.Projects, pi)
	}

	return schema
}

// WriteExport marshals the schema as indented JSON and writes it to path.
func WriteExport(schema *ImportSchema, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
