package service

import (
	"context"
	"errors"

	"linkgate/internal/entities"
	"linkgate/internal/metrics"
	"linkgate/internal/repository"
)

// Resolution is the outcome of a successful lookup. Either RedirectURL is
// set, or PasswordRequired is true and the caller must come back with one.
type Resolution struct {
	URLID            string
	RedirectURL      string
	PasswordRequired bool
}

// RedirectService turns slugs into targets, enforcing the link gates in order:
// missing, inactive, expired, password.
type RedirectService interface {
	Resolve(ctx context.Context, slug string, visit Visit) (*Resolution, error)
	Check(ctx context.Context, slug string) (*Resolution, error)
	ResolvePassword(ctx context.Context, urlID, password string, visit Visit) (*Resolution, error)
}

type redirectService struct {
	urls    repository.URLRepository
	clicks  ClickService
	hasher  *PasswordHasher
	clock   entities.Clock
	metrics *metrics.Metrics
}

// NewRedirectService creates a redirect service
func NewRedirectService(urls repository.URLRepository, clicks ClickService, hasher *PasswordHasher, clock entities.Clock, m *metrics.Metrics) RedirectService {
	return &redirectService{
		urls:    urls,
		clicks:  clicks,
		hasher:  hasher,
		clock:   clock,
		metrics: m,
	}
}

// Resolve looks up slug and records a click when it yields a redirect
func (s *redirectService) Resolve(ctx context.Context, slug string, visit Visit) (*Resolution, error) {
	res, err := s.lookup(ctx, slug)
	if err != nil || res.PasswordRequired {
		return res, err
	}

	if err := s.clicks.Record(ctx, res.URLID, visit); err != nil {
		return nil, err
	}
	s.metrics.Resolution("redirect")
	return res, nil
}

// Check applies the same gates as Resolve without recording a click
func (s *redirectService) Check(ctx context.Context, slug string) (*Resolution, error) {
	res, err := s.lookup(ctx, slug)
	if err == nil && !res.PasswordRequired {
		s.metrics.Resolution("check")
	}
	return res, err
}

func (s *redirectService) lookup(ctx context.Context, slug string) (*Resolution, error) {
	url, err := s.urls.FindBySlug(ctx, slug)
	if err != nil {
		s.observeFailure(err)
		return nil, err
	}
	if err := s.gate(url); err != nil {
		s.observeFailure(err)
		return nil, err
	}

	if url.HasPassword() {
		s.metrics.Resolution("password_required")
		return &Resolution{URLID: url.ID, PasswordRequired: true}, nil
	}
	return &Resolution{URLID: url.ID, RedirectURL: url.OriginalURL}, nil
}

// ResolvePassword unlocks a protected URL and records a click on success
func (s *redirectService) ResolvePassword(ctx context.Context, urlID, password string, visit Visit) (*Resolution, error) {
	if password == "" {
		return nil, entities.NewValidationError("Password is required")
	}

	url, err := s.urls.FindByID(ctx, urlID)
	if err != nil {
		s.observeFailure(err)
		return nil, err
	}
	if err := s.gate(url); err != nil {
		s.observeFailure(err)
		return nil, err
	}
	if !url.HasPassword() {
		return nil, entities.ErrPasswordNotSet
	}
	if !s.hasher.Compare(*url.PasswordHash, password) {
		s.metrics.Resolution("unauthorized")
		return nil, entities.ErrInvalidPassword
	}

	if err := s.clicks.Record(ctx, url.ID, visit); err != nil {
		return nil, err
	}
	s.metrics.Resolution("redirect")
	return &Resolution{URLID: url.ID, RedirectURL: url.OriginalURL}, nil
}

// gate rejects inactive links before expired ones
func (s *redirectService) gate(url *entities.URL) error {
	if !url.IsActive {
		return entities.ErrURLInactive
	}
	if url.IsExpired(s.clock.Now()) {
		return entities.ErrURLExpired
	}
	return nil
}

func (s *redirectService) observeFailure(err error) {
	switch {
	case errors.Is(err, entities.ErrURLNotFound):
		s.metrics.Resolution("not_found")
	case errors.Is(err, entities.ErrURLInactive), errors.Is(err, entities.ErrURLExpired):
		s.metrics.Resolution("gone")
	}
}
