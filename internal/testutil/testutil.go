package testutil

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"daffodil-hmo/internal/domain"
	"daffodil-hmo/pkg/utils"
)

// SetupTestDB opens an in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	// each pooled connection would otherwise get its own :memory: database
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&domain.User{},
		&domain.Property{},
		&domain.Booking{},
		&domain.Favorite{},
		&domain.TeamMember{},
		&domain.Job{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func CreateTestUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()

	u := &domain.User{
		ID:    utils.NewID(),
		Email: email,
		Name:  "Test User",
		Role:  domain.RoleUser,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

func CreateTestProperty(t *testing.T, db *gorm.DB, name string) *domain.Property {
	t.Helper()

	p := &domain.Property{
		ID:        utils.NewID(),
		Name:      name,
		Price:     domain.Money{AmountPence: 95000, Currency: "GBP"},
		Bedrooms:  4,
		Toilets:   2,
		Balcony:   true,
		Sqft:      1200,
		Images:    domain.URLList{"https://img.example/1.jpg"},
		Location:  "Leeds",
		Available: "2025-03",
		CreatedAt: time.Now(),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test property: %v", err)
	}
	return p
}
