// Package importer reads and writes the JSON interchange format for whole
// plans: the plan itself, its team members, projects and allocations.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for plan import and export.
type ImportSchema struct {
	Plan        PlanImport      `json:"plan"`
	TeamMembers []MemberImport  `json:"team_members"`
	Projects    []ProjectImport `json:"projects"`
}

// PlanImport defines the plan-level fields in the import file.
type PlanImport struct {
	Name      string   `json:"name"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Excludes  []string `json:"excludes,omitempty"`
}

// MemberImport defines a team member in the import file. Refs are file-local
// handles used by allocations; they are replaced with generated IDs on import.
type MemberImport struct {
	Ref         string   `json:"ref"`
	Name        string   `json:"name"`
	WeeklyHours *float64 `json:"weekly_hours,omitempty"`
}

// ProjectImport defines a project in the import file.
type ProjectImport struct {
	Ref             string             `json:"ref"`
	ShortID         string             `json:"short_id,omitempty"`
	Name            string             `json:"name"`
	EstimatedHours  float64            `json:"estimated_hours"`
	StartAfter      *string            `json:"start_after,omitempty"`
	EndBefore       *string            `json:"end_before,omitempty"`
	Priority        int                `json:"priority"`
	PercentComplete float64            `json:"percent_complete,omitempty"`
	Allocations     []AllocationImport `json:"allocations"`
}

// AllocationImport defines one member's allocation to a project.
// EngineerRef is the legacy field name for TeamMemberRef; it is honored on
// read so older export files keep importing.
type AllocationImport struct {
	TeamMemberRef string  `json:"team_member_ref"`
	EngineerRef   string  `json:"engineer_ref,omitempty"`
	Percentage    float64 `json:"percentage"`
	StartDate     *string `json:"start_date,omitempty"`
}

// LoadImportSchema reads and parses a plan import JSON file. Legacy
// engineer_ref fields are normalized to team_member_ref.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	normalizeLegacyRefs(&schema)
	return &schema, nil
}

// normalizeLegacyRefs maps the legacy engineer_ref allocation field onto
// team_member_ref. An explicit team_member_ref always wins.
func normalizeLegacyRefs(schema *ImportSchema) {
	for i := range schema.Projects {
		for j := range schema.Projects[i].Allocations {
			a := &schema.Projects[i].Allocations[j]
			if a.TeamMemberRef == "" && a.EngineerRef != "" {
				a.TeamMemberRef = a.EngineerRef
			}
			a.EngineerRef = ""
		}
	}
}
