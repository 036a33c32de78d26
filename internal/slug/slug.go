// Package slug generates and validates the short path segment of a link.
package slug

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"linkgate/internal/entities"
)

// Alphabet is the set of characters random slugs are drawn from
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	DefaultLength = 5

	maxAttemptsPerLength = 5
	maxLength            = 12

	minCustomLength = 3
	maxCustomLength = 32
)

var customPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Slugs that would shadow a route or look official
var reserved = map[string]bool{
	"admin":     true,
	"analytics": true,
	"api":       true,
	"auth":      true,
	"health":    true,
	"login":     true,
	"logout":    true,
	"metrics":   true,
	"qrcode":    true,
	"redirect":  true,
	"register":  true,
	"signin":    true,
	"signup":    true,
	"static":    true,
	"url":       true,
	"urls":      true,
	"www":       true,
}

// NewRandomSlug returns length characters drawn uniformly from Alphabet.
// The source is math/rand, so slugs are not secrets.
func NewRandomSlug(length int) string {
	if length <= 0 {
		length = DefaultLength
	}

	b := make([]byte, length)
	for i := range b {
		b[i] = Alphabet[rand.N(len(Alphabet))]
	}
	return string(b)
}

// ValidateCustom checks a caller-chosen slug
func ValidateCustom(slug string) error {
	if len(slug) < minCustomLength || len(slug) > maxCustomLength {
		return entities.NewValidationError("Slug must be between %d and %d characters", minCustomLength, maxCustomLength)
	}
	if !customPattern.MatchString(slug) {
		return entities.NewValidationError("Slug can only contain letters, numbers, hyphens and underscores")
	}
	if reserved[strings.ToLower(slug)] {
		return entities.NewValidationError("Slug '%s' is reserved", slug)
	}
	return nil
}

// Checker reports whether a slug is already stored
type Checker interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// TakenCache remembers slugs known to be in use. Only "taken" is ever cached.
type TakenCache interface {
	IsTaken(ctx context.Context, slug string) (bool, error)
	MarkTaken(ctx context.Context, slug string) error
	Forget(ctx context.Context, slug string) error
}

// Source produces a candidate slug of the given length
type Source func(length int) string

// Generator finds free slugs
type Generator struct {
	store  Checker
	cache  TakenCache
	source Source
	length int
}

type Option func(*Generator)

// WithCache puts a TakenCache in front of the store
func WithCache(cache TakenCache) Option {
	return func(g *Generator) {
		g.cache = cache
	}
}

// WithSource replaces the random candidate source
func WithSource(source Source) Option {
	return func(g *Generator) {
		g.source = source
	}
}

// WithLength sets the starting length of generated slugs
func WithLength(length int) Option {
	return func(g *Generator) {
		if length > 0 {
			g.length = length
		}
	}
}

// NewGenerator creates a Generator backed by store
func NewGenerator(store Checker, opts ...Option) *Generator {
	g := &Generator{
		store:  store,
		source: NewRandomSlug,
		length: DefaultLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// IsAvailable reports whether no stored URL holds slug.
// Cache failures fall through to the store.
func (g *Generator) IsAvailable(ctx context.Context, slug string) (bool, error) {
	if g.cache != nil {
		if taken, err := g.cache.IsTaken(ctx, slug); err == nil && taken {
			return false, nil
		}
	}

	exists, err := g.store.SlugExists(ctx, slug)
	if err != nil {
		return false, fmt.Errorf("failed to check slug availability: %w", err)
	}
	if exists {
		g.MarkTaken(ctx, slug)
		return false, nil
	}
	return true, nil
}

// GenerateUnique draws candidates until one is free. Each length gets a few
// attempts before the length grows; past maxLength it gives up.
func (g *Generator) GenerateUnique(ctx context.Context) (string, error) {
	for length := g.length; ; length++ {
		for attempt := 0; attempt < maxAttemptsPerLength; attempt++ {
			if err := ctx.Err(); err != nil {
				return "", err
			}

			candidate := g.source(length)
			available, err := g.IsAvailable(ctx, candidate)
			if err != nil {
				return "", err
			}
			if available {
				return candidate, nil
			}
		}
		if length >= maxLength {
			return "", entities.ErrSlugSpaceExhausted
		}
	}
}

// MarkTaken records slug as in use. Best effort.
func (g *Generator) MarkTaken(ctx context.Context, slug string) {
	if g.cache != nil {
		_ = g.cache.MarkTaken(ctx, slug)
	}
}

// Forget drops the taken marker for slug. Best effort.
func (g *Generator) Forget(ctx context.Context, slug string) {
	if g.cache != nil {
		_ = g.cache.Forget(ctx, slug)
	}
}
