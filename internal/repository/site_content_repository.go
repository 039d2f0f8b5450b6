package repository

import (
	"context"
	"fmt"

	"marketing-service/internal/models"

	"github.com/jmoiron/sqlx"
)

type SiteContentRepository struct {
	db *sqlx.DB
}

func NewSiteContentRepository(db *sqlx.DB) *SiteContentRepository {
	return &SiteContentRepository{db: db}
}

const siteContentColumns = `id, key, title, body, locale, published, updated_by, created_at, updated_at`

func (r *SiteContentRepository) Upsert(ctx context.Context, content *models.SiteContent) error {
	query := `
		INSERT INTO site_contents (id, key, title, body, locale, published, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (key, locale) DO UPDATE
		SET title = $3, body = $4, published = $6, updated_by = $7, updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		content.ID, content.Key, content.Title, content.Body, content.Locale,
		content.Published, content.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert site content: %w", err)
	}
	return nil
}

func (r *SiteContentRepository) GetByKey(ctx context.Context, key, locale string) (*models.SiteContent, error) {
	var content models.SiteContent
	query := fmt.Sprintf(`SELECT %s FROM site_contents WHERE key = $1 AND locale = $2`, siteContentColumns)
	if err := r.db.GetContext(ctx, &content, query, key, locale); err != nil {
		return nil, fmt.Errorf("failed to get site content by key: %w", err)
	}
	return &content, nil
}

func (r *SiteContentRepository) GetAll(ctx context.Context, publishedOnly bool) ([]models.SiteContent, error) {
	var contents []models.SiteContent
	query := fmt.Sprintf(`SELECT %s FROM site_contents`, siteContentColumns)
	if publishedOnly {
		query += ` WHERE published = true`
	}
	query += ` ORDER BY key, locale`
	if err := r.db.SelectContext(ctx, &contents, query); err != nil {
		return nil, fmt.Errorf("failed to get site contents: %w", err)
	}
	return contents, nil
}

func (r *SiteContentRepository) DeleteByKey(ctx context.Context, key, locale string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM site_contents WHERE key = $1 AND locale = $2`, key, locale)
	if err != nil {
		return fmt.Errorf("failed to delete site content: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("site content not found")
	}
	return nil
}
