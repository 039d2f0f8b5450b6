package services

import (
	"context"
	"fmt"
	"time"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"

	"github.com/google/uuid"
)

type InvoiceService struct {
	invoiceRepo *repository.InvoiceRepository
	projectRepo *repository.ProjectRepository
}

func NewInvoiceService(invoiceRepo *repository.InvoiceRepository, projectRepo *repository.ProjectRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		projectRepo: projectRepo,
	}
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, creatorID string, projectID uuid.UUID, req models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.Vendor == "" {
		return nil, fmt.Errorf("invoice vendor cannot be empty")
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invoice amount must be positive")
	}

	exists, err := s.projectRepo.Exists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("project not found")
	}

	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	invoice := &models.Invoice{
		ID:        uuid.New(),
		ProjectID: projectID,
		Vendor:    req.Vendor,
		Number:    req.Number,
		Amount:    req.Amount,
		Currency:  currency,
		Status:    models.InvoiceStatusDraft,
		IssueDate: req.IssueDate,
		DueDate:   req.DueDate,
		CreatedBy: creatorID,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %w", err)
		}
		invoice.CategoryID = &categoryID
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) GetInvoicesByProject(ctx context.Context, projectID uuid.UUID) ([]models.Invoice, error) {
	return s.invoiceRepo.GetByProjectID(ctx, projectID)
}

func (s *InvoiceService) UpdateInvoice(ctx context.Context, id uuid.UUID, req models.UpdateInvoiceRequest) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("invoice not found: %w", err)
	}

	if req.Vendor != nil {
		invoice.Vendor = *req.Vendor
	}
	if req.Number != nil {
		invoice.Number = *req.Number
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, fmt.Errorf("invoice amount must be positive")
		}
		invoice.Amount = *req.Amount
	}
	if req.Currency != nil {
		invoice.Currency = *req.Currency
	}
	if req.Status != nil {
		status := models.InvoiceStatus(*req.Status)
		switch status {
		case models.InvoiceStatusDraft, models.InvoiceStatusSubmitted,
			models.InvoiceStatusPaid, models.InvoiceStatusOverdue:
			invoice.Status = status
		default:
			return nil, fmt.Errorf("invalid invoice status: %s", *req.Status)
		}
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}

	if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// FlagOverdueInvoices is run by the scheduler: submitted invoices past their
// due date become overdue.
func (s *InvoiceService) FlagOverdueInvoices(ctx context.Context) (int64, error) {
	return s.invoiceRepo.MarkOverdue(ctx, time.Now())
}

func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}
