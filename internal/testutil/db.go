// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"linkgate/internal/entities"
)

// NewDB returns a gorm handle on a private in-memory SQLite database with the schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&entities.User{}, &entities.URL{}, &entities.Click{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Clock is a settable entities.Clock
type Clock struct {
	current time.Time
}

// NewClock creates a Clock set to t
func NewClock(t time.Time) *Clock {
	return &Clock{current: t}
}

func (c *Clock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by d
func (c *Clock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
