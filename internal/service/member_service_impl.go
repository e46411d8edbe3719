package service

import (
	"context"
	"time"

	"github.com/evanharte/crewplan/internal/domain"
	"github.com/evanharte/crewplan/internal/repository"
	"github.com/google/uuid"
)

type teamMemberService struct {
	members repository.TeamMemberRepo
}

func NewTeamMemberService(members repository.TeamMemberRepo) TeamMemberService {
	return &teamMemberService{members: members}
}

func (s *teamMemberService) Create(ctx context.Context, m *domain.TeamMember) error {
	if m.WeeklyHours == 0 {
		m.WeeklyHours = domain.DefaultWeeklyHours
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	return s.members.Create(ctx, m)
}

func (s *teamMemberService) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	return s.members.GetByID(ctx, id)
}

func (s *teamMemberService) ListByPlan(ctx context.Context, planID string) ([]*domain.TeamMember, error) {
	return s.members.ListByPlan(ctx, planID)
}

func (s *teamMemberService) Update(ctx context.Context, m *domain.TeamMember) error {
	if err := m.Validate(); err != nil {
		return err
	}
	m.UpdatedAt = time.Now().UTC()
	return s.members.Update(ctx, m)
}

func (s *teamMemberService) Delete(ctx context.Context, id string) error {
	return s.members.Delete(ctx, id)
}
