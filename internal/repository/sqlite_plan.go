package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/evanharte/crewplan/internal/db"
	"github.com/evanharte/crewplan/internal/domain"
)

// SQLitePlanRepo implements PlanRepo over SQLite. Exclusion rules are stored
// as a JSON array of raw rule strings; parsing happens in the calendar
// package at scheduling time.
type SQLitePlanRepo struct {
	db db.DBTX
}

func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Create(ctx context.Context, p *domain.Plan) error {
	excludes, err := json.Marshal(p.Excludes)
	if err != nil {
		return fmt.Errorf("encoding excludes: %w", err)
	}
	query := `INSERT INTO plans (id, name, start_date, end_date, excludes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		string(excludes),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	query := `SELECT id, name, start_date, end_date, excludes, created_at, updated_at
		FROM plans WHERE id = ?`
	return scanPlan(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.Plan, error) {
	query := `SELECT id, name, start_date, end_date, excludes, created_at, updated_at
		FROM plans ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var plans []*domain.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return plans, nil
}

func (r *SQLitePlanRepo) Update(ctx context.Context, p *domain.Plan) error {
	excludes, err := json.Marshal(p.Excludes)
	if err != nil {
		return fmt.Errorf("encoding excludes: %w", err)
	}
	query := `UPDATE plans SET name = ?, start_date = ?, end_date = ?, excludes = ?, updated_at = ?
		WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query,
		p.Name,
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		string(excludes),
		nowUTC(),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	return nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanPlan(row scanner) (*domain.Plan, error) {
	var p domain.Plan
	var startStr, endStr, excludesStr, createdStr, updatedStr string

	err := row.Scan(&p.ID, &p.Name, &startStr, &endStr, &excludesStr, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan not found")
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}

	if err := json.Unmarshal([]byte(excludesStr), &p.Excludes); err != nil {
		return nil, fmt.Errorf("decoding excludes: %w", err)
	}
	if p.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &p, nil
}
