package importer

import (
	"strings"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/google/uuid"
)

// GeneratedPlan is the output of converting a validated import schema:
// fully-formed domain entities with generated IDs, ready to persist.
type GeneratedPlan struct {
	Plan        *domain.Plan
	TeamMembers []*domain.TeamMember
	Projects    []*domain.Project
}

// Convert turns a validated import schema into domain entities. File-local
// refs become generated UUIDs; allocation refs are rewritten to the matching
// member IDs. Call ValidateImportSchema first: Convert assumes dates parse
// and refs resolve.
func Convert(schema *ImportSchema) *GeneratedPlan {
	now := time.Now().UTC()

	start, _ := time.Parse(dateLayout, schema.Plan.StartDate)
	end, _ := time.Parse(dateLayout, schema.Plan.EndDate)
	plan := &domain.Plan{
		ID:        uuid.New().String(),
		Name:      schema.Plan.Name,
		StartDate: start,
		EndDate:   end,
		Excludes:  schema.Plan.Excludes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	memberIDByRef := make(map[string]string, len(schema.TeamMembers))
	members := make([]*domain.TeamMember, 0, len(schema.TeamMembers))
	for _, mi := range schema.TeamMembers {
		m := &domain.TeamMember{
			ID:          uuid.New().String(),
			PlanID:      plan.ID,
			Name:        mi.Name,
			WeeklyHours: domain.DefaultWeeklyHours,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if mi.WeeklyHours != nil {
			m.WeeklyHours = *mi.WeeklyHours
		}
		memberIDByRef[mi.Ref] = m.ID
		members = append(members, m)
	}

	projects := make([]*domain.Project, 0, len(schema.Projects))
	for _, pi := range schema.Projects {
		p := &domain.Project{
			ID:              uuid.New().String(),
			PlanID:          plan.ID,
			ShortID:         strings.ToUpper(pi.ShortID),
			Name:            pi.Name,
			EstimatedHours:  pi.EstimatedHours,
			StartAfter:      parseOptionalDate(pi.StartAfter),
			EndBefore:       parseOptionalDate(pi.EndBefore),
			Priority:        pi.Priority,
			PercentComplete: pi.PercentComplete,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		for _, ai := range pi.Allocations {
			p.Allocations = append(p.Allocations, domain.Allocation{
				TeamMemberID: memberIDByRef[ai.TeamMemberRef],
				Percentage:   ai.Percentage,
				StartDate:    parseOptionalDate(ai.StartDate),
			})
		}
		projects = append(projects, p)
	}

	return &GeneratedPlan{Plan: plan, TeamMembers: members, Projects: projects}
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return &t
}
