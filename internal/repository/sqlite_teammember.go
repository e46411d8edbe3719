package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/evanharte/crewplan/internal/db"
	"github.com/evanharte/crewplan/internal/domain"
)

// SQLiteTeamMemberRepo implements TeamMemberRepo over SQLite.
type SQLiteTeamMemberRepo struct {
	db db.DBTX
}

func NewSQLiteTeamMemberRepo(conn db.DBTX) *SQLiteTeamMemberRepo {
	return &SQLiteTeamMemberRepo{db: conn}
}

func (r *SQLiteTeamMemberRepo) Create(ctx context.Context, m *domain.TeamMember) error {
	query := `INSERT INTO team_members (id, plan_id, name, weekly_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.PlanID,
		m.Name,
		m.WeeklyHours,
		m.CreatedAt.Format(time.RFC3339),
		m.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamMemberRepo) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	query := `SELECT id, plan_id, name, weekly_hours, created_at, updated_at
		FROM team_members WHERE id = ?`
	return scanTeamMember(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTeamMemberRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.TeamMember, error) {
	query := `SELECT id, plan_id, name, weekly_hours, created_at, updated_at
		FROM team_members WHERE plan_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var members []*domain.TeamMember
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team members: %w", err)
	}
	return members, nil
}

func (r *SQLiteTeamMemberRepo) Update(ctx context.Context, m *domain.TeamMember) error {
	query := `UPDATE team_members SET name = ?, weekly_hours = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, m.Name, m.WeeklyHours, nowUTC(), m.ID)
	if err != nil {
		return fmt.Errorf("updating team member: %w", err)
	}
	return nil
}

func (r *SQLiteTeamMemberRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM allocations WHERE team_member_id = ?`, id); err != nil {
		return fmt.Errorf("deleting member allocations: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting team member: %w", err)
	}
	return nil
}

func scanTeamMember(row scanner) (*domain.TeamMember, error) {
	var m domain.TeamMember
	var createdStr, updatedStr string

	err := row.Scan(&m.ID, &m.PlanID, &m.Name, &m.WeeklyHours, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("team member not found")
		}
		return nil, fmt.Errorf("scanning team member: %w", err)
	}

	if m.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if m.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &m, nil
}
