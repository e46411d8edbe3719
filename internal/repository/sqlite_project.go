package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/evanharte/crewplan/internal/db"
	"github.com/evanharte/crewplan/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo over SQLite. Reads hydrate the
// project's allocations; writes replace them wholesale.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, plan_id, short_id, name, estimated_hours, start_after, end_before,
		priority, percent_complete, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.PlanID,
		p.ShortID,
		p.Name,
		p.EstimatedHours,
		nullableTimeToString(p.StartAfter, dateLayout),
		nullableTimeToString(p.EndBefore, dateLayout),
		p.Priority,
		p.PercentComplete,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.replaceAllocations(ctx, p.ID, p.Allocations)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT id, plan_id, short_id, name, estimated_hours, start_after, end_before,
		priority, percent_complete, created_at, updated_at
		FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if p.Allocations, err = r.loadAllocations(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) ListByPlan(ctx context.Context, planID string) ([]*domain.Project, error) {
	query := `SELECT id, plan_id, short_id, name, estimated_hours, start_after, end_before,
		priority, percent_complete, created_at, updated_at
		FROM projects WHERE plan_id = ? ORDER BY priority, created_at`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	for _, p := range projects {
		if p.Allocations, err = r.loadAllocations(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET short_id = ?, name = ?, estimated_hours = ?, start_after = ?,
		end_before = ?, priority = ?, percent_complete = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.ShortID,
		p.Name,
		p.EstimatedHours,
		nullableTimeToString(p.StartAfter, dateLayout),
		nullableTimeToString(p.EndBefore, dateLayout),
		p.Priority,
		p.PercentComplete,
		nowUTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return r.replaceAllocations(ctx, p.ID, p.Allocations)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM allocations WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("deleting project allocations: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) replaceAllocations(ctx context.Context, projectID string, allocs []domain.Allocation) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM allocations WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing allocations: %w", err)
	}
	query := `INSERT INTO allocations (project_id, team_member_id, percentage, start_date)
		VALUES (?, ?, ?, ?)`
	for _, a := range allocs {
		_, err := r.db.ExecContext(ctx, query,
			projectID,
			a.TeamMemberID,
			a.Percentage,
			nullableTimeToString(a.StartDate, dateLayout),
		)
		if err != nil {
			return fmt.Errorf("inserting allocation for member %s: %w", a.TeamMemberID, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) loadAllocations(ctx context.Context, projectID string) ([]domain.Allocation, error) {
	query := `SELECT team_member_id, percentage, start_date
		FROM allocations WHERE project_id = ? ORDER BY team_member_id`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading allocations: %w", err)
	}
	defer rows.Close()

	var allocs []domain.Allocation
	for rows.Next() {
		var a domain.Allocation
		var start sql.NullString
		if err := rows.Scan(&a.TeamMemberID, &a.Percentage, &start); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}
		a.StartDate = parseNullableTime(start, dateLayout)
		allocs = append(allocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return allocs, nil
}

func scanProject(row scanner) (*domain.Project, error) {
	var p domain.Project
	var startAfter, endBefore sql.NullString
	var createdStr, updatedStr string

	err := row.Scan(&p.ID, &p.PlanID, &p.ShortID, &p.Name, &p.EstimatedHours,
		&startAfter, &endBefore, &p.Priority, &p.PercentComplete, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project not found")
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.StartAfter = parseNullableTime(startAfter, dateLayout)
	p.EndBefore = parseNullableTime(endBefore, dateLayout)

	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
