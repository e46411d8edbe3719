package importer

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validatePlan(&schema.Plan)...)

	memberRefs := make(map[string]bool)
	errs = append(errs, validateMembers(schema.TeamMembers, memberRefs)...)
	errs = append(errs, validateProjects(schema.Projects, memberRefs)...)

	return errs
}

func validatePlan(p *PlanImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("plan.name is required"))
	}
	start, startErr := parseRequiredDate("plan.start_date", p.StartDate, &errs)
	end, endErr := parseRequiredDate("plan.end_date", p.EndDate, &errs)
	if startErr == nil && endErr == nil && !end.After(start) {
		errs = append(errs, fmt.Errorf("plan.end_date %q must be after start_date %q", p.EndDate, p.StartDate))
	}
	return errs
}

func validateMembers(members []MemberImport, refs map[string]bool) []error {
	var errs []error

	for i, m := range members {
		prefix := fmt.Sprintf("team_members[%d]", i)
		if m.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if refs[m.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref %q is duplicated", prefix, m.Ref))
		} else {
			refs[m.Ref] = true
		}
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if m.WeeklyHours != nil && *m.WeeklyHours <= 0 {
			errs = append(errs, fmt.Errorf("%s.weekly_hours must be positive, got %g", prefix, *m.WeeklyHours))
		}
	}
	return errs
}

func validateProjects(projects []ProjectImport, memberRefs map[string]bool) []error {
	var errs []error

	projectRefs := make(map[string]bool)
	for i, p := range projects {
		prefix := fmt.Sprintf("projects[%d]", i)
		if p.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if projectRefs[p.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref %q is duplicated", prefix, p.Ref))
		} else {
			projectRefs[p.Ref] = true
		}
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		if p.EstimatedHours < 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_hours must not be negative, got %g", prefix, p.EstimatedHours))
		}
		if p.PercentComplete < 0 || p.PercentComplete > 100 {
			errs = append(errs, fmt.Errorf("%s.percent_complete must be in [0, 100], got %g", prefix, p.PercentComplete))
		}
		errs = append(errs, validateOptionalDate(prefix+".start_after", p.StartAfter)...)
		errs = append(errs, validateOptionalDate(prefix+".end_before", p.EndBefore)...)

		for j, a := range p.Allocations {
			aPrefix := fmt.Sprintf("%s.allocations[%d]", prefix, j)
			if a.TeamMemberRef == "" {
				errs = append(errs, fmt.Errorf("%s.team_member_ref is required", aPrefix))
			} else if !memberRefs[a.TeamMemberRef] {
				errs = append(errs, fmt.Errorf("%s.team_member_ref %q does not match any team member", aPrefix, a.TeamMemberRef))
			}
			if a.Percentage <= 0 || a.Percentage > 100 {
				errs = append(errs, fmt.Errorf("%s.percentage must be in (0, 100], got %g", aPrefix, a.Percentage))
			}
			errs = append(errs, validateOptionalDate(aPrefix+".start_date", a.StartDate)...)
		}
	}
	return errs
}

func parseRequiredDate(field, value string, errs *[]error) (time.Time, error) {
	if value == "" {
		err := fmt.Errorf("%s is required", field)
		*errs = append(*errs, err)
		return time.Time{}, err
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, value))
		return time.Time{}, err
	}
	return t, nil
}

func validateOptionalDate(field string, dateStr *string) []error {
	if dateStr == nil {
		return nil
	}
	if _, err := time.Parse(dateLayout, *dateStr); err != nil {
		return []error{fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, *dateStr)}
	}
	return nil
}
