package db

import (
	"instrument_market/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Categories are static reference data, read-only to the rest of the system
var categories = []domain.Category{
	{ID: "acoustic", Name: "Acoustic Guitar"},
	{ID: "electric", Name: "Electric Guitar"},
	{ID: "bass", Name: "Bass Guitar"},
	{ID: "drums", Name: "Drums"},
	{ID: "keyboard", Name: "Keyboard"},
	{ID: "violin", Name: "Violin"},
}

// Migrate performs automatic migration for the database schema and seeds
// the static category list
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(
		&domain.User{},          // Users
		&domain.Category{},      // Static categories
		&domain.Instrument{},    // Listings
		&domain.Booking{},       // Bookings
		&domain.WishlistEntry{}, // Wishlist entries
		&domain.Payment{},       // Payment records
	)
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	Seed(db) // Seed static reference data
	logrus.Info("Migration completed.") // Log successful migration
}

// Seed inserts the static categories, skipping any that already exist
func Seed(db *gorm.DB) {
	for _, cat := range categories {
		// FirstOrCreate keeps reruns idempotent
		if err := db.Where("id = ?", cat.ID).FirstOrCreate(&cat).Error; err != nil {
			logrus.Fatalf("seeding category %s failed: %v", cat.ID, err) // Log fatal error if seeding fails
		}
	}
}
