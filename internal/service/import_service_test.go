package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/evanharte/crewplan/internal/repository"
	"github.com/evanharte/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlanJSON = `{
	"plan": {
		"name": "Q1 Roadmap",
		"start_date": "2024-01-01",
		"end_date": "2024-03-31",
		"excludes": ["weekends", "2024-01-15"]
	},
	"team_members": [
		{"ref": "ada", "name": "Ada", "weekly_hours": 40},
		{"ref": "grace", "name": "Grace", "weekly_hours": 32}
	],
	"projects": [
		{
			"ref": "gw",
			"short_id": "GWY01",
			"name": "Gateway",
			"estimated_hours": 120,
			"priority": 1,
			"allocations": [
				{"team_member_ref": "ada", "percentage": 60},
				{"team_member_ref": "grace", "percentage": 40}
			]
		},
		{
			"ref": "bill",
			"name": "Billing",
			"estimated_hours": 80,
			"priority": 2,
			"allocations": [
				{"team_member_ref": "ada", "percentage": 40}
			]
		}
	]
}`

func writeImportFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportService_ImportPlan(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := repository.NewSQLitePlanRepo(db)
	memberRepo := repository.NewSQLiteTeamMemberRepo(db)
	projectRepo := repository.NewSQLiteProjectRepo(db)
	svc := NewImportService(testutil.NewTestUoW(db), planRepo, memberRepo, projectRepo)
	ctx := context.Background()

	result, err := svc.ImportPlan(ctx, writeImportFile(t, validPlanJSON))
	require.NoError(t, err)
	assert.Equal(t, 2, result.MemberCount)
	assert.Equal(t, 2, result.ProjectCount)

	plan, err := planRepo.GetByID(ctx, result.Plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Q1 Roadmap", plan.Name)
	assert.Equal(t, []string{"weekends", "2024-01-15"}, plan.Excludes)

	projects, err := projectRepo.ListByPlan(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "GWY01", projects[0].ShortID)
	assert.Len(t, projects[0].Allocations, 2)
}

func TestImportService_ImportPlan_ValidationErrors(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := repository.NewSQLitePlanRepo(db)
	svc := NewImportService(testutil.NewTestUoW(db), planRepo,
		repository.NewSQLiteTeamMemberRepo(db), repository.NewSQLiteProjectRepo(db))
	ctx := context.Background()

	bad := `{"plan": {"name": "", "start_date": "bad", "end_date": ""}, "team_members": [], "projects": []}`
	_, err := svc.ImportPlan(ctx, writeImportFile(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")

	plans, err := planRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestImportService_ImportPlan_RollsBackOnFailure(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := repository.NewSQLitePlanRepo(db)
	uow := &testutil.FailOnNthExecUoW{DB: db, FailOn: 4, Err: errors.New("disk full")}
	svc := NewImportService(uow, planRepo,
		repository.NewSQLiteTeamMemberRepo(db), repository.NewSQLiteProjectRepo(db))
	ctx := context.Background()

	_, err := svc.ImportPlan(ctx, writeImportFile(t, validPlanJSON))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	plans, err := planRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestImportService_ExportPlan_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	planRepo := repository.NewSQLitePlanRepo(db)
	memberRepo := repository.NewSQLiteTeamMemberRepo(db)
	projectRepo := repository.NewSQLiteProjectRepo(db)
	svc := NewImportService(testutil.NewTestUoW(db), planRepo, memberRepo, projectRepo)
	ctx := context.Background()

	imported, err := svc.ImportPlan(ctx, writeImportFile(t, validPlanJSON))
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, svc.ExportPlan(ctx, imported.Plan.ID, exportPath))

	reimported, err := svc.ImportPlan(ctx, exportPath)
	require.NoError(t, err)
	assert.Equal(t, imported.MemberCount, reimported.MemberCount)
	assert.Equal(t, imported.ProjectCount, reimported.ProjectCount)
	assert.NotEqual(t, imported.Plan.ID, reimported.Plan.ID)
}
