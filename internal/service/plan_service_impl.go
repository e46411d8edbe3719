package service

import (
	"context"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	plans repository.PlanRepo
}

func NewPlanService(plans repository.PlanRepo) PlanService {
	return &planService{plans: plans}
}

func (s *planService) Create(ctx context.Context, p *domain.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.plans.Create(ctx, p)
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	return s.plans.GetByID(ctx, id)
}

func (s *planService) List(ctx context.Context) ([]*domain.Plan, error) {
	return s.plans.List(ctx)
}

func (s *planService) Update(ctx context.Context, p *domain.Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()
	return s.plans.Update(ctx, p)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	return s.plans.Delete(ctx, id)
}
