package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"
	"marketing-service/utils"

	"github.com/google/uuid"
)

// ProjectFileStore adds prefix cleanup on top of the plain object operations,
// so deleting a project can drop everything stored under it.
type ProjectFileStore interface {
	ActivityFileStore
	DeleteFolder(ctx context.Context, bucket, folderPath string) error
}

type ProjectService struct {
	projectRepo *repository.ProjectRepository
	invoiceRepo *repository.InvoiceRepository
	fileStore   ProjectFileStore
	fileBucket  string
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	invoiceRepo *repository.InvoiceRepository,
	fileStore ProjectFileStore,
	fileBucket string,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		invoiceRepo: invoiceRepo,
		fileStore:   fileStore,
		fileBucket:  fileBucket,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, creatorID string, req models.CreateProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("project name cannot be empty")
	}
	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	project := &models.Project{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Status:       models.ProjectStatusPlanning,
		BudgetAmount: req.BudgetAmount,
		Currency:     currency,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CreatedBy:    creatorID,
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %w", err)
		}
		project.CategoryID = &categoryID
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}
	return project, nil
}

func (s *ProjectService) GetAllProjects(ctx context.Context, filters map[string]interface{}) ([]models.Project, error) {
	return s.projectRepo.GetAll(ctx, filters)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, req models.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		status := models.ProjectStatus(*req.Status)
		switch status {
		case models.ProjectStatusPlanning, models.ProjectStatusActive,
			models.ProjectStatusCompleted, models.ProjectStatusOnHold:
			project.Status = status
		default:
			return nil, fmt.Errorf("invalid project status: %s", *req.Status)
		}
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category id: %w", err)
		}
		project.CategoryID = &categoryID
	}
	if req.BudgetAmount != nil {
		project.BudgetAmount = *req.BudgetAmount
	}
	if req.Currency != nil {
		project.Currency = *req.Currency
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// UploadCoverImage stores the image and records its public URL on the project.
func (s *ProjectService) UploadCoverImage(ctx context.Context, id uuid.UUID, fileName, contentType string, reader io.Reader, size int64) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	objectPath := fmt.Sprintf("projects/%s/cover/%s", id, utils.SafeFileName(fileName))
	fileURL, err := s.fileStore.UploadObject(ctx, s.fileBucket, objectPath, contentType, reader, size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cover image: %w", err)
	}

	project.CoverImageURL = &fileURL
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// BudgetSummary reports planned budget against the invoiced total.
type BudgetSummary struct {
	ProjectID    uuid.UUID `json:"project_id"`
	BudgetAmount float64   `json:"budget_amount"`
	InvoicedSum  float64   `json:"invoiced_sum"`
	Remaining    float64   `json:"remaining"`
	Currency     string    `json:"currency"`
}

func (s *ProjectService) GetBudgetSummary(ctx context.Context, id uuid.UUID) (*BudgetSummary, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("project not found: %w", err)
	}

	invoiced, err := s.invoiceRepo.SumByProjectID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BudgetSummary{
		ProjectID:    project.ID,
		BudgetAmount: project.BudgetAmount,
		InvoicedSum:  invoiced,
		Remaining:    project.BudgetAmount - invoiced,
		Currency:     project.Currency,
	}, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	exists, err := s.projectRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check project existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("project not found")
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	// Row is gone; stored covers and attachments are cleanup, not part of the
	// delete contract.
	if err := s.fileStore.DeleteFolder(ctx, s.fileBucket, fmt.Sprintf("projects/%s", id)); err != nil {
		slog.Error("failed to remove project files after delete", "project_id", id, "error", err)
	}
	return nil
}
