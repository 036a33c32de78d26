package models

import (
	"time"

	"linkgate/internal/entities"
)

// URLResponse is the public view of a short URL
type URLResponse struct {
	ID          string     `json:"id"`
	OriginalURL string     `json:"originalUrl"`
	Slug        string     `json:"slug"`
	ShortURL    string     `json:"shortUrl"` // Full short URL (scheme + host + slug)
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	HasPassword bool       `json:"hasPassword"`
	IsActive    bool       `json:"isActive"`
	IsCustom    bool       `json:"isCustom"`
	UserID      *string    `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClickCount  *int64     `json:"clickCount,omitempty"`
}

// NewURLResponse converts an entity to its response DTO
func NewURLResponse(url *entities.URL, shortURL string) URLResponse {
	return URLResponse{
		ID:          url.ID,
		OriginalURL: url.OriginalURL,
		Slug:        url.Slug,
		ShortURL:    shortURL,
		Title:       url.Title,
		Description: url.Description,
		ExpiresAt:   url.ExpiresAt,
		HasPassword: url.HasPassword(),
		IsActive:    url.IsActive,
		IsCustom:    url.IsCustom,
		UserID:      url.UserID,
		CreatedAt:   url.CreatedAt,
	}
}

// URLMutationResponse wraps a single URL with a status message
type URLMutationResponse struct {
	Message string      `json:"message"`
	URL     URLResponse `json:"url"`
}

// URLListResponse lists the caller's URLs
type URLListResponse struct {
	URLs []URLResponse `json:"urls"`
}

// URLWithClicks pairs a URL with its recorded click count
type URLWithClicks struct {
	URL        *entities.URL
	ClickCount int64
}

// RedirectResponse is returned by the JSON resolution endpoints
type RedirectResponse struct {
	Message     string `json:"message,omitempty"`
	RedirectURL string `json:"redirectUrl"`
	URLID       string `json:"urlId,omitempty"`
}

// MessageResponse is a bare status message
type MessageResponse struct {
	Message string `json:"message"`
}
