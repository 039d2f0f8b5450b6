package repository

import (
	"context"
	"fmt"

	"marketing-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type IActivityRepository interface {
	Create(ctx context.Context, activity *models.ProjectActivity) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectActivity, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]models.ProjectActivity, error)
	AttachFile(ctx context.Context, id uuid.UUID, fileURL, storagePath string) error
	// UpdateStatus transitions the row only when both the current status and
	// version still match what the caller read; it reports the number of rows
	// touched so the service can detect a lost race.
	UpdateStatus(ctx context.Context, params StatusUpdateParams) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatusUpdateParams carries one guarded status transition.
type StatusUpdateParams struct {
	ID                uuid.UUID
	FromStatus        models.ActivityStatus
	ToStatus          models.ActivityStatus
	ExpectedVersion   int
	MessageForManager *string
	ManagerFeedback   *string
	SetMessage        bool
	SetFeedback       bool
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) IActivityRepository {
	return &activityRepository{db: db}
}

const activityColumns = `id, project_id, user_id, user_display_name, user_avatar_url, type, content,
	file_name, file_type, file_url, storage_path, status, message_for_manager, manager_feedback,
	version, created_at, updated_at`

func (r *activityRepository) Create(ctx context.Context, activity *models.ProjectActivity) error {
	query := `
		INSERT INTO project_activities (id, project_id, user_id, user_display_name, user_avatar_url,
			type, content, file_name, file_type, status, message_for_manager, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, now(), now())
	`
	_, err := r.db.ExecContext(ctx, query,
		activity.ID, activity.ProjectID, activity.UserID, activity.UserDisplayName, activity.UserAvatarURL,
		activity.Type, activity.Content, activity.FileName, activity.FileType, activity.Status,
		activity.MessageForManager,
	)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProjectActivity, error) {
	var activity models.ProjectActivity
	query := fmt.Sprintf(`SELECT %s FROM project_activities WHERE id = $1`, activityColumns)
	if err := r.db.GetContext(ctx, &activity, query, id); err != nil {
		return nil, fmt.Errorf("failed to get activity by id: %w", err)
	}
	return &activity, nil
}

func (r *activityRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]models.ProjectActivity, error) {
	var activities []models.ProjectActivity
	query := fmt.Sprintf(`SELECT %s FROM project_activities WHERE project_id = $1 ORDER BY created_at DESC`, activityColumns)
	if err := r.db.SelectContext(ctx, &activities, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to get activities by project id: %w", err)
	}
	return activities, nil
}

func (r *activityRepository) AttachFile(ctx context.Context, id uuid.UUID, fileURL, storagePath string) error {
	query := `
		UPDATE project_activities
		SET file_url = $2, storage_path = $3, type = $4, updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, fileURL, storagePath, models.ActivityTypeFileUpload)
	if err != nil {
		return fmt.Errorf("failed to attach file to activity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("activity not found")
	}
	return nil
}

func (r *activityRepository) UpdateStatus(ctx context.Context, params StatusUpdateParams) (int64, error) {
	query := `
		UPDATE project_activities
		SET status = $2, version = version + 1, updated_at = now()
	`
	args := []any{params.ID, params.ToStatus}
	argCount := 3

	if params.SetMessage {
		query += fmt.Sprintf(", message_for_manager = $%d", argCount)
		args = append(args, params.MessageForManager)
		argCount++
	}
	if params.SetFeedback {
		query += fmt.Sprintf(", manager_feedback = $%d", argCount)
		args = append(args, params.ManagerFeedback)
		argCount++
	}

	query += fmt.Sprintf(" WHERE id = $1 AND status = $%d AND version = $%d", argCount, argCount+1)
	args = append(args, params.FromStatus, params.ExpectedVersion)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update activity status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM project_activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("activity not found")
	}
	return nil
}
