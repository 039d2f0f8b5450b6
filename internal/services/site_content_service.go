package services

import (
	"context"
	"fmt"

	"marketing-service/internal/models"
	"marketing-service/internal/repository"

	"github.com/google/uuid"
)

type SiteContentService struct {
	contentRepo *repository.SiteContentRepository
}

func NewSiteContentService(contentRepo *repository.SiteContentRepository) *SiteContentService {
	return &SiteContentService{contentRepo: contentRepo}
}

func (s *SiteContentService) UpsertContent(ctx context.Context, editorID string, req models.UpsertSiteContentRequest) (*models.SiteContent, error) {
	if req.Key == "" {
		return nil, fmt.Errorf("content key cannot be empty")
	}
	locale := req.Locale
	if locale == "" {
		locale = "en"
	}

	content := &models.SiteContent{
		ID:        uuid.New(),
		Key:       req.Key,
		Title:     req.Title,
		Body:      req.Body,
		Locale:    locale,
		Published: req.Published,
		UpdatedBy: editorID,
	}
	if err := s.contentRepo.Upsert(ctx, content); err != nil {
		return nil, err
	}
	return s.contentRepo.GetByKey(ctx, req.Key, locale)
}

func (s *SiteContentService) GetContent(ctx context.Context, key, locale string) (*models.SiteContent, error) {
	if locale == "" {
		locale = "en"
	}
	content, err := s.contentRepo.GetByKey(ctx, key, locale)
	if err != nil {
		return nil, fmt.Errorf("content not found: %w", err)
	}
	return content, nil
}

func (s *SiteContentService) GetAllContents(ctx context.Context, publishedOnly bool) ([]models.SiteContent, error) {
	return s.contentRepo.GetAll(ctx, publishedOnly)
}

func (s *SiteContentService) DeleteContent(ctx context.Context, key, locale string) error {
	if locale == "" {
		locale = "en"
	}
	return s.contentRepo.DeleteByKey(ctx, key, locale)
}
