package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// URL represents a shortened URL entity in the database
type URL struct {
	ID           string     `gorm:"type:varchar(36);primaryKey" json:"id"` // UUID
	Slug         string     `gorm:"size:64;uniqueIndex;not null" json:"slug"`
	OriginalURL  string     `gorm:"type:text;not null" json:"originalUrl"`
	Title        *string    `gorm:"size:255" json:"title"`
	Description  *string    `gorm:"type:text" json:"description"`
	IsCustom     bool       `gorm:"not null" json:"isCustom"`
	IsActive     bool       `gorm:"not null" json:"isActive"`
	ExpiresAt    *time.Time `json:"expiresAt"`                            // Pointer allows nil (no expiration)
	PasswordHash *string    `gorm:"size:255" json:"-"`                    // bcrypt hash, nil when the link is open
	UserID       *string    `gorm:"type:varchar(36);index" json:"userId"` // nil for anonymous links
	CreatedAt    time.Time  `gorm:"index" json:"createdAt"`

	Clicks []Click `gorm:"foreignKey:URLID;constraint:OnDelete:CASCADE" json:"-"`
}

func (URL) TableName() string {
	return "urls"
}

// BeforeCreate assigns a UUID when the caller did not set one
func (u *URL) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// HasPassword reports whether the link is password protected
func (u *URL) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// IsExpired reports whether the link has an expiration strictly before now
func (u *URL) IsExpired(now time.Time) bool {
	return u.ExpiresAt != nil && now.After(*u.ExpiresAt)
}

// IsOwnedBy reports whether the link belongs to userID. Anonymous links are owned by nobody.
func (u *URL) IsOwnedBy(userID string) bool {
	return u.UserID != nil && *u.UserID == userID
}
