package repository

import (
	"context"
	"fmt"
	"time"

	"marketing-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, project_id, title, detail, status, priority, due_date, assignee_id,
	created_by, created_at, updated_at`

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, project_id, title, detail, status, priority, due_date, assignee_id,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.ProjectID, task.Title, task.Detail, task.Status, task.Priority,
		task.DueDate, task.AssigneeID, task.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE project_id = $1 ORDER BY priority DESC, created_at`, taskColumns)
	if err := r.db.SelectContext(ctx, &tasks, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to get tasks by project id: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) GetDueBetween(ctx context.Context, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE due_date >= $1 AND due_date < $2 ORDER BY due_date`, taskColumns)
	if err := r.db.SelectContext(ctx, &tasks, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get tasks due between: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, detail = $3, status = $4, priority = $5, due_date = $6, assignee_id = $7,
			updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		task.ID, task.Title, task.Detail, task.Status, task.Priority, task.DueDate, task.AssigneeID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found")
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("task not found")
	}
	return nil
}
