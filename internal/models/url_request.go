package models

// CreateURLRequest represents the request body for creating a short URL
type CreateURLRequest struct {
	OriginalURL string  `json:"originalUrl"`
	CustomSlug  *string `json:"customSlug,omitempty"` // Optional custom slug
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ExpiresAt   *string `json:"expiresAt,omitempty"` // RFC 3339, empty means no expiration
	Password    *string `json:"password,omitempty"`
}

// UpdateURLRequest carries a partial update. Only fields present in the body are applied.
type UpdateURLRequest struct {
	OriginalURL *string          `json:"originalUrl,omitempty"`
	Slug        *string          `json:"slug,omitempty"`
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	ExpiresAt   Optional[string] `json:"expiresAt"` // null or "" clears the expiration
	Password    Optional[string] `json:"password"`  // null or "" removes the password
	IsActive    *bool            `json:"isActive,omitempty"`
}

// AccessRequest is the body of a password check for a protected URL
type AccessRequest struct {
	Password string `json:"password"`
}
