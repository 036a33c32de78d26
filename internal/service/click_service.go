package service

import (
	"context"

	"linkgate/internal/entities"
	"linkgate/internal/metrics"
	"linkgate/internal/models"
	"linkgate/internal/repository"
)

const (
	DefaultPage       = 1
	DefaultClickLimit = 50
)

// ClickService records visits and pages them back to owners
type ClickService interface {
	Record(ctx context.Context, urlID string, visit Visit) error
	Track(ctx context.Context, urlID string, visit Visit) error
	List(ctx context.Context, urlID, userID string, page, limit int) (*models.ClicksPage, error)
}

type clickService struct {
	urls     repository.URLRepository
	clicks   repository.ClickRepository
	clock    entities.Clock
	metrics  *metrics.Metrics
	maxLimit int
}

// NewClickService creates a click service. Page sizes above maxLimit are clamped.
func NewClickService(urls repository.URLRepository, clicks repository.ClickRepository, clock entities.Clock, m *metrics.Metrics, maxLimit int) ClickService {
	if maxLimit < 1 {
		maxLimit = 100
	}
	return &clickService{
		urls:     urls,
		clicks:   clicks,
		clock:    clock,
		metrics:  m,
		maxLimit: maxLimit,
	}
}

// Record appends one click row. Missing visit fields are stored as "unknown".
func (s *clickService) Record(ctx context.Context, urlID string, visit Visit) error {
	visit = visit.withDefaults()
	click := &entities.Click{
		URLID:     urlID,
		IP:        visit.IP,
		UserAgent: visit.UserAgent,
		Referer:   visit.Referer,
		Timestamp: s.clock.Now(),
	}
	if err := s.clicks.Create(ctx, click); err != nil {
		return err
	}

	s.metrics.ClickRecorded()
	return nil
}

// Track records a click reported by a client for an existing URL
func (s *clickService) Track(ctx context.Context, urlID string, visit Visit) error {
	if _, err := s.urls.FindByID(ctx, urlID); err != nil {
		return err
	}
	return s.Record(ctx, urlID, visit)
}

// List returns one page of clicks, newest first, for a URL the caller owns
func (s *clickService) List(ctx context.Context, urlID, userID string, page, limit int) (*models.ClicksPage, error) {
	url, err := s.urls.FindByID(ctx, urlID)
	if err != nil {
		return nil, err
	}
	if !url.IsOwnedBy(userID) {
		return nil, entities.ErrURLNotFound
	}

	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultClickLimit
	}
	limit = min(limit, s.maxLimit)

	total, err := s.clicks.CountByURL(ctx, urlID)
	if err != nil {
		return nil, err
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	result := &models.ClicksPage{
		Clicks: []entities.Click{},
		Pagination: models.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}

	// Past the last page the offset would only grow, and overflow for huge pages
	if int64(page) > pages {
		return result, nil
	}

	result.Clicks, err = s.clicks.ListByURL(ctx, urlID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return result, nil
}
