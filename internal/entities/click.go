package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Click is one recorded access of a short URL. Rows are never updated.
type Click struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	URLID     string    `gorm:"column:url_id;type:varchar(36);not null;index" json:"urlId"`
	IP        string    `gorm:"size:255" json:"ip"`
	UserAgent string    `gorm:"type:text" json:"userAgent"`
	Referer   string    `gorm:"type:text" json:"referer"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

func (Click) TableName() string {
	return "clicks"
}

func (c *Click) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
