package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"linkgate/internal/entities"
)

// ClickRepository stores and pages click records
type ClickRepository interface {
	Create(ctx context.Context, click *entities.Click) error
	ListByURL(ctx context.Context, urlID string, offset, limit int) ([]entities.Click, error)
	CountByURL(ctx context.Context, urlID string) (int64, error)
	CountByURLs(ctx context.Context, urlIDs []string) (map[string]int64, error)
}

type clickRepository struct {
	db *gorm.DB
}

// NewClickRepository creates a new click repository
func NewClickRepository(db *gorm.DB) ClickRepository {
	return &clickRepository{db: db}
}

func (r *clickRepository) Create(ctx context.Context, click *entities.Click) error {
	if err := r.db.WithContext(ctx).Create(click).Error; err != nil {
		return fmt.Errorf("failed to record click: %w", err)
	}
	return nil
}

// ListByURL returns one page of clicks for urlID, newest first
func (r *clickRepository) ListByURL(ctx context.Context, urlID string, offset, limit int) ([]entities.Click, error) {
	clicks := []entities.Click{}
	err := r.db.WithContext(ctx).
		Where("url_id = ?", urlID).
		Order("timestamp DESC").
		Offset(offset).
		Limit(limit).
		Find(&clicks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clicks: %w", err)
	}
	return clicks, nil
}

func (r *clickRepository) CountByURL(ctx context.Context, urlID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entities.Click{}).Where("url_id = ?", urlID).Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}
	return total, nil
}

// CountByURLs returns click totals keyed by URL id. URLs without clicks are absent from the map.
func (r *clickRepository) CountByURLs(ctx context.Context, urlIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(urlIDs))
	if len(urlIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		URLID string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&entities.Click{}).
		Select("url_id, COUNT(*) AS total").
		Where("url_id IN ?", urlIDs).
		Group("url_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count clicks: %w", err)
	}

	for _, row := range rows {
		counts[row.URLID] = row.Total
	}
	return counts, nil
}
