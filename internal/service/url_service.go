package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"linkgate/internal/entities"
	"linkgate/internal/logger"
	"linkgate/internal/models"
	"linkgate/internal/repository"
	"linkgate/internal/slug"
	"linkgate/internal/urlnorm"
)

// Inserts retried when a generated slug loses the race to a concurrent insert
const maxInsertAttempts = 3

// Tolerance for expiration times sent with a little clock skew
const expirySkew = 2 * time.Second

// URLService defines the interface for URL business logic
type URLService interface {
	Create(ctx context.Context, req *models.CreateURLRequest, userID *string) (*entities.URL, error)
	List(ctx context.Context, userID string) ([]models.URLWithClicks, error)
	Update(ctx context.Context, id, userID string, req *models.UpdateURLRequest) (*entities.URL, error)
	Delete(ctx context.Context, id, userID string) error
	GetBySlug(ctx context.Context, slug string) (*entities.URL, error)
}

type urlService struct {
	urls   repository.URLRepository
	clicks repository.ClickRepository
	slugs  *slug.Generator
	hasher *PasswordHasher
	clock  entities.Clock
	log    *logger.Logger
}

// NewURLService creates a new URL service
func NewURLService(
	urls repository.URLRepository,
	clicks repository.ClickRepository,
	slugs *slug.Generator,
	hasher *PasswordHasher,
	clock entities.Clock,
	log *logger.Logger,
) URLService {
	return &urlService{
		urls:   urls,
		clicks: clicks,
		slugs:  slugs,
		hasher: hasher,
		clock:  clock,
		log:    log,
	}
}

// Create stores a new short URL. userID is nil for anonymous links.
func (s *urlService) Create(ctx context.Context, req *models.CreateURLRequest, userID *string) (*entities.URL, error) {
	if strings.TrimSpace(req.OriginalURL) == "" {
		return nil, entities.NewValidationError("URL is required")
	}
	target, err := urlnorm.Normalize(req.OriginalURL)
	if err != nil {
		return nil, err
	}

	url := &entities.URL{
		OriginalURL: target,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
		UserID:      userID,
		CreatedAt:   s.clock.Now(),
	}

	if req.ExpiresAt != nil {
		url.ExpiresAt, err = s.parseExpiry(*req.ExpiresAt, false)
		if err != nil {
			return nil, err
		}
	}

	if req.Password != nil && *req.Password != "" {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		url.PasswordHash = &hashed
	}

	if req.CustomSlug != nil && strings.TrimSpace(*req.CustomSlug) != "" {
		if err := s.createCustom(ctx, url, strings.TrimSpace(*req.CustomSlug)); err != nil {
			return nil, err
		}
	} else if err := s.createGenerated(ctx, url); err != nil {
		return nil, err
	}

	s.slugs.MarkTaken(ctx, url.Slug)
	return url, nil
}

func (s *urlService) createCustom(ctx context.Context, url *entities.URL, custom string) error {
	if err := slug.ValidateCustom(custom); err != nil {
		return err
	}

	available, err := s.slugs.IsAvailable(ctx, custom)
	if err != nil {
		return err
	}
	if !available {
		return entities.ErrSlugExists
	}

	url.Slug = custom
	url.IsCustom = true
	return s.urls.Create(ctx, url)
}

// createGenerated retries with a fresh slug when the insert hits the unique index
func (s *urlService) createGenerated(ctx context.Context, url *entities.URL) error {
	var err error
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		url.Slug, err = s.slugs.GenerateUnique(ctx)
		if err != nil {
			return err
		}

		err = s.urls.Create(ctx, url)
		if !errors.Is(err, entities.ErrSlugExists) {
			return err
		}

		s.log.Warn("generated slug collided on insert", "slug", url.Slug, "attempt", attempt)
		s.slugs.MarkTaken(ctx, url.Slug)
		url.ID = ""
	}
	return entities.ErrSlugSpaceExhausted
}

// List returns the caller's URLs, newest first, with their click totals
func (s *urlService) List(ctx context.Context, userID string) ([]models.URLWithClicks, error) {
	urls, err := s.urls.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(urls))
	for i := range urls {
		ids[i] = urls[i].ID
	}
	counts, err := s.clicks.CountByURLs(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]models.URLWithClicks, len(urls))
	for i := range urls {
		result[i] = models.URLWithClicks{URL: &urls[i], ClickCount: counts[urls[i].ID]}
	}
	return result, nil
}

// Update applies the fields present in req to a URL owned by userID
func (s *urlService) Update(ctx context.Context, id, userID string, req *models.UpdateURLRequest) (*entities.URL, error) {
	url, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}

	if req.OriginalURL != nil && strings.TrimSpace(*req.OriginalURL) != "" {
		target, err := urlnorm.Normalize(*req.OriginalURL)
		if err != nil {
			return nil, err
		}
		changes["original_url"] = target
	}

	newSlug := ""
	if req.Slug != nil {
		if candidate := strings.TrimSpace(*req.Slug); candidate != "" && candidate != url.Slug {
			if err := slug.ValidateCustom(candidate); err != nil {
				return nil, err
			}
			available, err := s.slugs.IsAvailable(ctx, candidate)
			if err != nil {
				return nil, err
			}
			if !available {
				return nil, entities.ErrSlugExists
			}
			newSlug = candidate
			changes["slug"] = candidate
			changes["is_custom"] = true
		}
	}

	if req.Title.Set {
		changes["title"] = nullable(req.Title.Value)
	}
	if req.Description.Set {
		changes["description"] = nullable(req.Description.Value)
	}

	if req.ExpiresAt.Set {
		changes["expires_at"] = nil
		if req.ExpiresAt.Value != nil {
			expiresAt, err := s.parseExpiry(*req.ExpiresAt.Value, true)
			if err != nil {
				return nil, err
			}
			if expiresAt != nil {
				changes["expires_at"] = *expiresAt
			}
		}
	}

	if req.Password.Set {
		changes["password_hash"] = nil
		if req.Password.Value != nil && *req.Password.Value != "" {
			hashed, err := s.hasher.Hash(*req.Password.Value)
			if err != nil {
				return nil, err
			}
			changes["password_hash"] = hashed
		}
	}

	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
	}

	updated, err := s.urls.Update(ctx, url.ID, changes)
	if err != nil {
		return nil, err
	}

	if newSlug != "" {
		s.slugs.Forget(ctx, url.Slug)
		s.slugs.MarkTaken(ctx, newSlug)
	}
	return updated, nil
}

// Delete removes a URL owned by userID together with its clicks
func (s *urlService) Delete(ctx context.Context, id, userID string) error {
	url, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.urls.Delete(ctx, url.ID); err != nil {
		return err
	}

	s.slugs.Forget(ctx, url.Slug)
	return nil
}

// GetBySlug returns the URL holding slug in any state
func (s *urlService) GetBySlug(ctx context.Context, slug string) (*entities.URL, error) {
	return s.urls.FindBySlug(ctx, slug)
}

// findOwned hides foreign URLs behind the same error as missing ones
func (s *urlService) findOwned(ctx context.Context, id, userID string) (*entities.URL, error) {
	url, err := s.urls.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !url.IsOwnedBy(userID) {
		return nil, entities.ErrURLNotFound
	}
	return url, nil
}

// parseExpiry reads an RFC 3339 timestamp. An empty string means no expiration.
// Owners may set a past time on update to expire a link immediately.
func (s *urlService) parseExpiry(raw string, allowPast bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	expiresAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, entities.NewValidationError("Invalid expiration date. Use ISO 8601 format (e.g., 2024-12-31T23:59:59Z)")
	}
	if !allowPast && expiresAt.Before(s.clock.Now().Add(-expirySkew)) {
		return nil, entities.NewValidationError("Expiration time cannot be in the past")
	}

	expiresAt = expiresAt.UTC()
	return &expiresAt, nil
}

func nullable(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
