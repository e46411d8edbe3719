package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/evanharte/crewplan/internal/db"
	"github.com/evanharte/crewplan/internal/importer"
	"github.com/evanharte/crewplan/internal/repository"
)

// importService writes a whole imported plan inside one transaction so a
// failure partway through leaves no orphaned rows behind.
type importService struct {
	uow      db.UnitOfWork
	plans    repository.PlanRepo
	members  repository.TeamMemberRepo
	projects repository.ProjectRepo
}

func NewImportService(
	uow db.UnitOfWork,
	plans repository.PlanRepo,
	members repository.TeamMemberRepo,
	projects repository.ProjectRepo,
) ImportService {
	return &importService{
		uow:      uow,
		plans:    plans,
		members:  members,
		projects: projects,
	}
}

func (s *importService) ImportPlan(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	gen := importer.Convert(schema)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		planRepo := repository.NewSQLitePlanRepo(tx)
		memberRepo := repository.NewSQLiteTeamMemberRepo(tx)
		projectRepo := repository.NewSQLiteProjectRepo(tx)

		if err := planRepo.Create(ctx, gen.Plan); err != nil {
			return fmt.Errorf("creating plan: %w", err)
		}
		for _, m := range gen.TeamMembers {
			if err := memberRepo.Create(ctx, m); err != nil {
				return fmt.Errorf("creating team member %q: %w", m.Name, err)
			}
		}
		for _, p := range gen.Projects {
			if err := projectRepo.Create(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", p.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Plan:         gen.Plan,
		MemberCount:  len(gen.TeamMembers),
		ProjectCount: len(gen.Projects),
	}, nil
}

func (s *importService) ExportPlan(ctx context.Context, planID string, filePath string) error {
	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	members, err := s.members.ListByPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("loading team members: %w", err)
	}
	projects, err := s.projects.ListByPlan(ctx, planID)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}
	return importer.WriteExport(importer.Export(plan, members, projects), filePath)
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("import validation failed with %d error(s):\n", len(errs)))
	for _, e := range errs {
		b.WriteString("  - ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimRight(b.String(), "\n"))
}
