package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"

	"github.com/google/uuid"
)

type CalendarService struct {
	calendarRepo *repository.CalendarRepository
	taskRepo     *repository.TaskRepository
	invoiceRepo  *repository.InvoiceRepository
}

func NewCalendarService(
	calendarRepo *repository.CalendarRepository,
	taskRepo *repository.TaskRepository,
	invoiceRepo *repository.InvoiceRepository,
) *CalendarService {
	return &CalendarService{
		calendarRepo: calendarRepo,
		taskRepo:     taskRepo,
		invoiceRepo:  invoiceRepo,
	}
}

func (s *CalendarService) CreateEvent(ctx context.Context, creatorID string, req models.CreateCalendarEventRequest) (*models.CalendarEvent, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("event title cannot be empty")
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, fmt.Errorf("event cannot end before it starts")
	}

	calendarEvent := &models.CalendarEvent{
		ID:        uuid.New(),
		Title:     req.Title,
		Detail:    req.Detail,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		AllDay:    req.AllDay,
		CreatedBy: creatorID,
	}
	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("invalid project id: %w", err)
		}
		calendarEvent.ProjectID = &projectID
	}

	if err := s.calendarRepo.Create(ctx, calendarEvent); err != nil {
		return nil, err
	}
	return calendarEvent, nil
}

// GetMonthFeed merges dedicated events with task and invoice due dates for
// the month containing the given date.
func (s *CalendarService) GetMonthFeed(ctx context.Context, anyDayOfMonth time.Time) ([]models.CalendarEntry, error) {
	from := time.Date(anyDayOfMonth.Year(), anyDayOfMonth.Month(), 1, 0, 0, 0, 0, anyDayOfMonth.Location())
	to := from.AddDate(0, 1, 0)

	entries := []models.CalendarEntry{}

	events, err := s.calendarRepo.GetBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, e := range events {
		entries = append(entries, models.CalendarEntry{
			Kind:      "event",
			RefID:     e.ID,
			ProjectID: e.ProjectID,
			Title:     e.Title,
			Date:      e.StartsAt,
			AllDay:    e.AllDay,
		})
	}

	tasks, err := s.taskRepo.GetDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		projectID := t.ProjectID
		entries = append(entries, models.CalendarEntry{
			Kind:      "task_due",
			RefID:     t.ID,
			ProjectID: &projectID,
			Title:     t.Title,
			Date:      *t.DueDate,
			AllDay:    true,
		})
	}

	invoices, err := s.invoiceRepo.GetDueBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		projectID := inv.ProjectID
		entries = append(entries, models.CalendarEntry{
			Kind:      "invoice_due",
			RefID:     inv.ID,
			ProjectID: &projectID,
			Title:     fmt.Sprintf("Invoice %s (%s)", inv.Number, inv.Vendor),
			Date:      *inv.DueDate,
			AllDay:    true,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

func (s *CalendarService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.calendarRepo.Delete(ctx, id)
}
