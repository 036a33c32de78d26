package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkgate/internal/entities"
)

// URLRepository defines the interface for URL database operations
type URLRepository interface {
	Create(ctx context.Context, url *entities.URL) error
	FindByID(ctx context.Context, id string) (*entities.URL, error)
	FindBySlug(ctx context.Context, slug string) (*entities.URL, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]entities.URL, error)
	Update(ctx context.Context, id string, changes map[string]any) (*entities.URL, error)
	Delete(ctx context.Context, id string) error
}

type urlRepository struct {
	db *gorm.DB
}

// NewURLRepository creates a new URL repository
func NewURLRepository(db *gorm.DB) URLRepository {
	return &urlRepository{db: db}
}

// Create inserts a new URL. A taken slug yields entities.ErrSlugExists.
func (r *urlRepository) Create(ctx context.Context, url *entities.URL) error {
	if err := r.db.WithContext(ctx).Omit("Clicks").Create(url).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q: %w", url.Slug, entities.ErrSlugExists)
		}
		return fmt.Errorf("failed to create URL: %w", err)
	}
	return nil
}

// FindByID finds a URL by its UUID regardless of state
func (r *urlRepository) FindByID(ctx context.Context, id string) (*entities.URL, error) {
	// ids are UUID columns in PostgreSQL; anything else cannot match
	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.ErrURLNotFound
	}
	return r.findOne(ctx, "id = ?", id)
}

// FindBySlug finds a URL by slug regardless of state. Callers decide what inactive or expired means.
func (r *urlRepository) FindBySlug(ctx context.Context, slug string) (*entities.URL, error) {
	return r.findOne(ctx, "slug = ?", slug)
}

func (r *urlRepository) findOne(ctx context.Context, query string, arg any) (*entities.URL, error) {
	var url entities.URL
	err := r.db.WithContext(ctx).Where(query, arg).First(&url).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entities.ErrURLNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}
	return &url, nil
}

// SlugExists reports whether any URL, in any state, holds slug
func (r *urlRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.URL{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

// ListByUser retrieves all URLs owned by userID, newest first
func (r *urlRepository) ListByUser(ctx context.Context, userID string) ([]entities.URL, error) {
	var urls []entities.URL
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&urls).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get URLs: %w", err)
	}
	return urls, nil
}

// Update applies column changes to one URL and returns the stored result.
// Keys are column names; a nil value writes NULL.
func (r *urlRepository) Update(ctx context.Context, id string, changes map[string]any) (*entities.URL, error) {
	if len(changes) > 0 {
		result := r.db.WithContext(ctx).Model(&entities.URL{}).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			if isUniqueViolation(result.Error) {
				return nil, fmt.Errorf("slug %v: %w", changes["slug"], entities.ErrSlugExists)
			}
			return nil, fmt.Errorf("failed to update URL: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, entities.ErrURLNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a URL and its clicks in one transaction
func (r *urlRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("url_id = ?", id).Delete(&entities.Click{}).Error; err != nil {
			return fmt.Errorf("failed to delete clicks: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&entities.URL{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete URL: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return entities.ErrURLNotFound
		}
		return nil
	})
}
