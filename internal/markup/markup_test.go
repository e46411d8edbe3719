package markup

import (
	"strings"
	"testing"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func fixture() Input {
	member := &domain.TeamMember{ID: "m1", Name: "Alice", WeeklyHours: 40}
	project := &domain.Project{
		ID:             "proj-abc-12345",
		Name:           "Payments",
		EstimatedHours: 40,
		Priority:       1,
	}
	plan := &domain.Plan{
		ID:        "plan1",
		Name:      "Q1 Roadmap",
		StartDate: date(2024, time.January, 1),
		EndDate:   date(2024, time.March, 31),
		Excludes:  []string{"weekends"},
	}
	assignment := scheduler.Assignment{
		ProjectID:    project.ID,
		TeamMemberID: member.ID,
		StartDate:    date(2024, time.January, 1),
		WeeksNeeded:  1,
		Percentage:   100,
	}
	return Input{
		Assignments: []scheduler.Assignment{assignment},
		TeamMembers: []*domain.TeamMember{member},
		Projects:    []*domain.Project{project},
		Plan:        plan,
		View:        ViewByMember,
		Today:       date(2024, time.January, 1),
	}
}

func TestGenerate_EndToEnd(t *testing.T) {
	got := Generate(fixture())

	assert.Empty(t, got.Skipped)
	assert.True(t, strings.HasPrefix(got.Text, "gantt\n"))
	assert.Contains(t, got.Text, "\ttitle Q1 Roadmap\n")
	assert.Contains(t, got.Text, "\texcludes weekends\n")
	assert.Contains(t, got.Text, "\tStart : milestone, start, 2024/01/01, 0d\n")
	assert.Contains(t, got.Text, "\tsection Alice\n")
	assert.Contains(t, got.Text, ", 2024/01/01, 5d\n")
	assert.Contains(t, got.Text, "\tEnd : milestone, end, 2024/03/31, 0d\n")
}

func TestGenerate_MemberViewLabelsByProject(t *testing.T) {
	got := Generate(fixture())
	assert.Contains(t, got.Text, "\tPayments :proj-abc, 2024/01/01, 5d\n")
}

func TestGenerate_ProjectViewLabelsByMember(t *testing.T) {
	in := fixture()
	in.View = ViewByProject

	got := Generate(in)
	assert.Contains(t, got.Text, "\tsection Payments\n")
	assert.Contains(t, got.Text, "\tAlice :proj-abc, 2024/01/01, 5d\n")
}

func TestGenerate_PartialAllocationSuffix(t *testing.T) {
	in := fixture()
	in.Assignments[0].Percentage = 50

	got := Generate(in)
	assert.Contains(t, got.Text, "Payments (50%)")
}

func TestGenerate_CompletionTags(t *testing.T) {
	t.Run("done", func(t *testing.T) {
		in := fixture()
		in.Projects[0].PercentComplete = 100
		assert.Contains(t, Generate(in).Text, ":done, proj-abc,")
	})

	t.Run("active", func(t *testing.T) {
		in := fixture()
		in.Projects[0].PercentComplete = 40
		assert.Contains(t, Generate(in).Text, ":active, proj-abc,")
	})

	t.Run("untouched", func(t *testing.T) {
		in := fixture()
		assert.Contains(t, Generate(in).Text, ":proj-abc,")
	})
}

func TestGenerate_CriticalTagWhenPastDeadline(t *testing.T) {
	in := fixture()
	deadline := date(2024, time.January, 3)
	in.Projects[0].EndBefore = &deadline

	got := Generate(in)
	assert.Contains(t, got.Text, "crit, proj-abc,")
}

func TestGenerate_CriticalTagWhenPastPlanEnd(t *testing.T) {
	in := fixture()
	in.Plan.EndDate = date(2024, time.January, 3)

	got := Generate(in)
	assert.Contains(t, got.Text, "crit, proj-abc,")
}

func TestGenerate_EscapesNames(t *testing.T) {
	in := fixture()
	in.TeamMembers[0].Name = "Alice: #1"
	in.Projects[0].Name = "Payments: core"

	got := Generate(in)
	assert.Contains(t, got.Text, "\tsection Alice   1\n")
	assert.Contains(t, got.Text, "\tPayments  core :")
}

func TestGenerate_EpochAssignmentSkippedNotFatal(t *testing.T) {
	in := fixture()
	in.Assignments = append(in.Assignments, scheduler.Assignment{
		ProjectID:    in.Projects[0].ID,
		TeamMemberID: "m1",
		StartDate:    time.Unix(0, 0),
		WeeksNeeded:  1,
		Percentage:   100,
	})

	got := Generate(in)
	require.Len(t, got.Skipped, 1)
	assert.Equal(t, "missing or epoch start date", got.Skipped[0].Reason)
	// The healthy assignment still renders.
	assert.Contains(t, got.Text, ", 2024/01/01, 5d\n")
}

func TestGenerate_DanglingReferencesSkipped(t *testing.T) {
	in := fixture()
	in.Assignments = append(in.Assignments, scheduler.Assignment{
		ProjectID:    "nope",
		TeamMemberID: "m1",
		StartDate:    date(2024, time.January, 8),
		WeeksNeeded:  1,
		Percentage:   100,
	})

	got := Generate(in)
	require.Len(t, got.Skipped, 1)
	assert.Equal(t, "unknown project", got.Skipped[0].Reason)
}

func TestGenerate_PlaceholderForEmptyGroup(t *testing.T) {
	in := fixture()
	in.TeamMembers = append(in.TeamMembers, &domain.TeamMember{ID: "m2", Name: "Bob", WeeklyHours: 40})

	got := Generate(in)
	assert.Contains(t, got.Text, "\tsection Bob\n\tNo assignments : 2024/01/01, 1d\n")
}

func TestGenerate_WeekendStartSnapsForwardForDisplay(t *testing.T) {
	in := fixture()
	in.Assignments[0].StartDate = date(2024, time.January, 6) // Saturday

	got := Generate(in)
	assert.Contains(t, got.Text, ", 2024/01/08, 5d\n")
}

func TestGenerate_ClickDirectives(t *testing.T) {
	in := fixture()
	in.LinkBaseURL = "https://plan.example.com/"

	got := Generate(in)
	assert.Contains(t, got.Text, "\tclick proj-abc href \"https://plan.example.com/projects/proj-abc\"\n")
}

func TestGenerate_DefaultExcludesWhenPlanHasNone(t *testing.T) {
	in := fixture()
	in.Plan.Excludes = nil

	got := Generate(in)
	assert.Contains(t, got.Text, "\texcludes weekends\n")
}

func TestGenerate_ExcludeListJoined(t *testing.T) {
	in := fixture()
	in.Plan.Excludes = []string{"weekends", "2024-12-25"}

	got := Generate(in)
	assert.Contains(t, got.Text, "\texcludes weekends,2024-12-25\n")
}

func TestGenerate_NoDataChart(t *testing.T) {
	got := Generate(Input{})
	assert.Equal(t, noDataChart, got.Text)

	in := fixture()
	in.Assignments = nil
	assert.Equal(t, noDataChart, Generate(in).Text)
}

func TestGenerate_ErrorChartForInvalidPlanDates(t *testing.T) {
	in := fixture()
	in.Plan = &domain.Plan{ID: "plan1", Name: "broken"}
	assert.Equal(t, errorChart, Generate(in).Text)

	in = fixture()
	in.Plan.EndDate = date(2023, time.January, 1)
	assert.Equal(t, errorChart, Generate(in).Text)
}

func TestGenerate_ByteIdenticalRecomputation(t *testing.T) {
	first := Generate(fixture())
	second := Generate(fixture())
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Skipped, second.Skipped)
}

func TestCache_ReturnsStoredChart(t *testing.T) {
	c := NewCache()
	in := fixture()

	first := c.Generate(in)
	second := c.Generate(in)
	assert.Equal(t, first, second)
}

func TestCache_InvalidateDropsPlanEntries(t *testing.T) {
	c := NewCache()
	in := fixture()
	c.Generate(in)

	c.Invalidate(in.Plan.ID)
	assert.Empty(t, c.entries)
}
