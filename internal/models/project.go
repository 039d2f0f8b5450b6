package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
)

type Project struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	Name          string        `json:"name" db:"name"`
	Description   string        `json:"description" db:"description"`
	Status        ProjectStatus `json:"status" db:"status"`
	CategoryID    *uuid.UUID    `json:"category_id" db:"category_id"`
	BudgetAmount  float64       `json:"budget_amount" db:"budget_amount"`
	Currency      string        `json:"currency" db:"currency"`
	StartDate     *time.Time    `json:"start_date" db:"start_date"`
	EndDate       *time.Time    `json:"end_date" db:"end_date"`
	CoverImageURL *string       `json:"cover_image_url" db:"cover_image_url"`
	CreatedBy     string        `json:"created_by" db:"created_by"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type Task struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	ProjectID  uuid.UUID  `json:"project_id" db:"project_id"`
	Title      string     `json:"title" db:"title"`
	Detail     string     `json:"detail" db:"detail"`
	Status     TaskStatus `json:"status" db:"status"`
	Priority   int        `json:"priority" db:"priority"`
	DueDate    *time.Time `json:"due_date" db:"due_date"`
	AssigneeID *string    `json:"assignee_id" db:"assignee_id"`
	CreatedBy  string     `json:"created_by" db:"created_by"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
}

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSubmitted InvoiceStatus = "submitted"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
)

type Invoice struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	ProjectID  uuid.UUID     `json:"project_id" db:"project_id"`
	Vendor     string        `json:"vendor" db:"vendor"`
	Number     string        `json:"number" db:"number"`
	Amount     float64       `json:"amount" db:"amount"`
	Currency   string        `json:"currency" db:"currency"`
	Status     InvoiceStatus `json:"status" db:"status"`
	IssueDate  time.Time     `json:"issue_date" db:"issue_date"`
	DueDate    *time.Time    `json:"due_date" db:"due_date"`
	CategoryID *uuid.UUID    `json:"category_id" db:"category_id"`
	CreatedBy  string        `json:"created_by" db:"created_by"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at" db:"updated_at"`
}

type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CalendarEvent struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Title     string     `json:"title" db:"title"`
	Detail    string     `json:"detail" db:"detail"`
	StartsAt  time.Time  `json:"starts_at" db:"starts_at"`
	EndsAt    *time.Time `json:"ends_at" db:"ends_at"`
	AllDay    bool       `json:"all_day" db:"all_day"`
	ProjectID *uuid.UUID `json:"project_id" db:"project_id"`
	CreatedBy string     `json:"created_by" db:"created_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// CalendarEntry is one row of the merged month feed: dedicated events plus
// task and invoice due dates.
type CalendarEntry struct {
	Kind      string     `json:"kind"` // event | task_due | invoice_due
	RefID     uuid.UUID  `json:"ref_id"`
	ProjectID *uuid.UUID `json:"project_id,omitempty"`
	Title     string     `json:"title"`
	Date      time.Time  `json:"date"`
	AllDay    bool       `json:"all_day"`
}

type SiteContent struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Key       string    `json:"key" db:"key"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Locale    string    `json:"locale" db:"locale"`
	Published bool      `json:"published" db:"published"`
	UpdatedBy string    `json:"updated_by" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
