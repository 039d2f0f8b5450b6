package repository

import (
	"context"
	"fmt"
	"time"

	"marketing-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CalendarRepository struct {
	db *sqlx.DB
}

func NewCalendarRepository(db *sqlx.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

const calendarColumns = `id, title, detail, starts_at, ends_at, all_day, project_id, created_by, created_at`

func (r *CalendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	query := `
		INSERT INTO calendar_events (id, title, detail, starts_at, ends_at, all_day, project_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Title, event.Detail, event.StartsAt, event.EndsAt,
		event.AllDay, event.ProjectID, event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create calendar event: %w", err)
	}
	return nil
}

func (r *CalendarRepository) GetBetween(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	var events []models.CalendarEvent
	query := fmt.Sprintf(`SELECT %s FROM calendar_events WHERE starts_at >= $1 AND starts_at < $2 ORDER BY starts_at`, calendarColumns)
	if err := r.db.SelectContext(ctx, &events, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get calendar events: %w", err)
	}
	return events, nil
}

func (r *CalendarRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("calendar event not found")
	}
	return nil
}
