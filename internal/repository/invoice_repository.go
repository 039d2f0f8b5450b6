package repository

import (
	"context"
	"fmt"
	"time"

	"marketing-service/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type InvoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, project_id, vendor, number, amount, currency, status, issue_date,
	due_date, category_id, created_by, created_at, updated_at`

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, project_id, vendor, number, amount, currency, status, issue_date,
			due_date, category_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
	`
	_, err := r.db.ExecContext(ctx, query,
		invoice.ID, invoice.ProjectID, invoice.Vendor, invoice.Number, invoice.Amount,
		invoice.Currency, invoice.Status, invoice.IssueDate, invoice.DueDate,
		invoice.CategoryID, invoice.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE id = $1`, invoiceColumns)
	if err := r.db.GetContext(ctx, &invoice, query, id); err != nil {
		return nil, fmt.Errorf("failed to get invoice by id: %w", err)
	}
	return &invoice, nil
}

func (r *InvoiceRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE project_id = $1 ORDER BY issue_date DESC`, invoiceColumns)
	if err := r.db.SelectContext(ctx, &invoices, query, projectID); err != nil {
		return nil, fmt.Errorf("failed to get invoices by project id: %w", err)
	}
	return invoices, nil
}

func (r *InvoiceRepository) GetDueBetween(ctx context.Context, from, to time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE due_date >= $1 AND due_date < $2 ORDER BY due_date`, invoiceColumns)
	if err := r.db.SelectContext(ctx, &invoices, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to get invoices due between: %w", err)
	}
	return invoices, nil
}

// SumByProjectID returns the spent total for budget tracking.
func (r *InvoiceRepository) SumByProjectID(ctx context.Context, projectID uuid.UUID) (float64, error) {
	var total float64
	query := `SELECT COALESCE(SUM(amount), 0) FROM invoices WHERE project_id = $1 AND status != 'draft'`
	if err := r.db.GetContext(ctx, &total, query, projectID); err != nil {
		return 0, fmt.Errorf("failed to sum invoices: %w", err)
	}
	return total, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, invoice *models.Invoice) error {
	query := `
		UPDATE invoices
		SET vendor = $2, number = $3, amount = $4, currency = $5, status = $6, due_date = $7,
			updated_at = now()
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		invoice.ID, invoice.Vendor, invoice.Number, invoice.Amount, invoice.Currency,
		invoice.Status, invoice.DueDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("invoice not found")
	}
	return nil
}

// MarkOverdue flips every unpaid invoice whose due date has passed.
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE invoices
		SET status = $1, updated_at = now()
		WHERE status = $2 AND due_date IS NOT NULL AND due_date < $3
	`
	result, err := r.db.ExecContext(ctx, query, models.InvoiceStatusOverdue, models.InvoiceStatusSubmitted, now)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("invoice not found")
	}
	return nil
}
