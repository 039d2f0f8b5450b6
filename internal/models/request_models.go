package models

import "time"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	Role        string `json:"role"`
}

type AssignRoleRequest struct {
	UserID   string `json:"user_id"`
	RoleName string `json:"role_name"`
}

type CreateProjectRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	CategoryID   *string    `json:"category_id"`
	BudgetAmount float64    `json:"budget_amount"`
	Currency     string     `json:"currency"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	CategoryID   *string    `json:"category_id"`
	BudgetAmount *float64   `json:"budget_amount"`
	Currency     *string    `json:"currency"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

type CreateTaskRequest struct {
	Title      string     `json:"title" binding:"required"`
	Detail     string     `json:"detail"`
	Priority   int        `json:"priority"`
	DueDate    *time.Time `json:"due_date"`
	AssigneeID *string    `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Title      *string    `json:"title"`
	Detail     *string    `json:"detail"`
	Status     *string    `json:"status"`
	Priority   *int       `json:"priority"`
	DueDate    *time.Time `json:"due_date"`
	AssigneeID *string    `json:"assignee_id"`
}

type CreateInvoiceRequest struct {
	Vendor     string     `json:"vendor" binding:"required"`
	Number     string     `json:"number"`
	Amount     float64    `json:"amount" binding:"required"`
	Currency   string     `json:"currency"`
	IssueDate  time.Time  `json:"issue_date" binding:"required"`
	DueDate    *time.Time `json:"due_date"`
	CategoryID *string    `json:"category_id"`
}

type UpdateInvoiceRequest struct {
	Vendor   *string    `json:"vendor"`
	Number   *string    `json:"number"`
	Amount   *float64   `json:"amount"`
	Currency *string    `json:"currency"`
	Status   *string    `json:"status"`
	DueDate  *time.Time `json:"due_date"`
}

type CreateCalendarEventRequest struct {
	Title     string     `json:"title" binding:"required"`
	Detail    string     `json:"detail"`
	StartsAt  time.Time  `json:"starts_at" binding:"required"`
	EndsAt    *time.Time `json:"ends_at"`
	AllDay    bool       `json:"all_day"`
	ProjectID *string    `json:"project_id"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpsertSiteContentRequest struct {
	Key       string `json:"key" binding:"required"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Locale    string `json:"locale"`
	Published bool   `json:"published"`
}
