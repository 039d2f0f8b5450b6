package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(64) PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		display_name VARCHAR(255) NOT NULL,
		avatar_url TEXT,
		password_hash TEXT NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		last_login TIMESTAMPTZ,
		login_attempts INT NOT NULL DEFAULT 0,
		locked_until BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id SERIAL PRIMARY KEY,
		name VARCHAR(64) UNIQUE NOT NULL,
		display_name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		id SERIAL PRIMARY KEY,
		user_id VARCHAR(64) NOT NULL REFERENCES users(id),
		role_id INT NOT NULL REFERENCES roles(id),
		assigned_by VARCHAR(64),
		assigned_at BIGINT NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT true,
		UNIQUE(user_id, role_id)
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		color VARCHAR(16) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'planning',
		category_id UUID REFERENCES categories(id),
		budget_amount NUMERIC(14,2) NOT NULL DEFAULT 0,
		currency VARCHAR(8) NOT NULL DEFAULT 'EUR',
		start_date TIMESTAMPTZ,
		end_date TIMESTAMPTZ,
		cover_image_url TEXT,
		created_by VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		status VARCHAR(32) NOT NULL DEFAULT 'todo',
		priority INT NOT NULL DEFAULT 0,
		due_date TIMESTAMPTZ,
		assignee_id VARCHAR(64),
		created_by VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		vendor VARCHAR(255) NOT NULL,
		number VARCHAR(64) NOT NULL DEFAULT '',
		amount NUMERIC(14,2) NOT NULL,
		currency VARCHAR(8) NOT NULL DEFAULT 'EUR',
		status VARCHAR(32) NOT NULL DEFAULT 'draft',
		issue_date TIMESTAMPTZ NOT NULL,
		due_date TIMESTAMPTZ,
		category_id UUID REFERENCES categories(id),
		created_by VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS calendar_events (
		id UUID PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at TIMESTAMPTZ,
		all_day BOOLEAN NOT NULL DEFAULT false,
		project_id UUID REFERENCES projects(id) ON DELETE SET NULL,
		created_by VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS site_contents (
		id UUID PRIMARY KEY,
		key VARCHAR(128) NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		locale VARCHAR(8) NOT NULL DEFAULT 'en',
		published BOOLEAN NOT NULL DEFAULT false,
		updated_by VARCHAR(64) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE(key, locale)
	)`,
	`CREATE TABLE IF NOT EXISTS project_activities (
		id UUID PRIMARY KEY,
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id VARCHAR(64) NOT NULL,
		user_display_name VARCHAR(255) NOT NULL,
		user_avatar_url TEXT,
		type VARCHAR(32) NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		file_name TEXT,
		file_type TEXT,
		file_url TEXT,
		storage_path TEXT,
		status VARCHAR(32) NOT NULL DEFAULT 'draft',
		message_for_manager TEXT,
		manager_feedback TEXT,
		version INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_project_activities_project ON project_activities(project_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_project ON invoices(project_id)`,
}

// InitSchema creates all tables if they do not exist yet.
func InitSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
