package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolvePlanID accepts a plan UUID, UUID prefix or exact name and returns
// the matching plan's ID.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("plan is required (use --plan)")
	}

	plans, err := app.Plans.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range plans {
		if p.ID == input || strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range plans {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("plan not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("plan %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveProjectID accepts a short ID, UUID or UUID prefix within a plan.
func resolveProjectID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}

	projects, err := app.Projects.ListByPlan(ctx, planID)
	if err != nil {
		return "", err
	}

	// 1. Exact short ID match (case-insensitive)
	for _, p := range projects {
		if strings.EqualFold(p.ShortID, input) {
			return p.ID, nil
		}
	}

	// 2. Exact UUID match
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
	}

	// 3. UUID prefix match
	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveMemberID accepts a member UUID, UUID prefix or exact name within
// a plan.
func resolveMemberID(ctx context.Context, app *App, planID, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("team member is required")
	}

	members, err := app.Members.ListByPlan(ctx, planID)
	if err != nil {
		return "", err
	}

	for _, m := range members {
		if m.ID == input || strings.EqualFold(m.Name, input) {
			return m.ID, nil
		}
	}

	var matches []string
	for _, m := range members {
		if strings.HasPrefix(m.ID, input) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("team member not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("team member %q is ambiguous (%d matches)", input, len(matches))
	}
}
