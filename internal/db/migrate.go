package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent: every statement is safe to re-run on an
// already-migrated database.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS plans (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		excludes   TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		id           TEXT PRIMARY KEY,
		plan_id      TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		name         TEXT NOT NULL,
		weekly_hours REAL NOT NULL DEFAULT 40,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_team_members_plan ON team_members(plan_id)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		plan_id          TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		short_id         TEXT,
		name             TEXT NOT NULL,
		estimated_hours  REAL NOT NULL DEFAULT 0,
		start_after      TEXT,
		end_before       TEXT,
		priority         INTEGER NOT NULL DEFAULT 99,
		percent_complete REAL NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_plan ON projects(plan_id)`,
	`CREATE TABLE IF NOT EXISTS allocations (
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		team_member_id TEXT NOT NULL,
		percentage     REAL NOT NULL,
		start_date     TEXT,
		PRIMARY KEY (project_id, team_member_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_allocations_member ON allocations(team_member_id)`,
}

// Migrate applies the full schema. Assignments are deliberately absent:
// they are recomputed on every scheduling run, never stored.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
