package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"icebreaker/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Connect opens the Postgres database and runs migrations.
func Connect(dsn string) (*gorm.DB, error) {
	return Open(postgres.Open(dsn), logger.Warn)
}

// Open opens a database through any GORM dialector and runs migrations.
func Open(dialector gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	// Configure GORM logger
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // Not-found is an expected outcome, not an error
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         customLogger,
		TranslateError: true, // unique violations surface as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the catalog uses.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.GameCard{},
		&models.Favorite{},
		&models.QueueEntry{},
		&models.Rating{},
		&models.CommentReport{},
		&models.GameCardReport{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

// Seed inserts the fixed roles and the given categories. Existing rows are left alone.
func Seed(ctx context.Context, db *gorm.DB, categories []string) error {
	roles := []models.Role{
		{Name: models.RoleUser},
		{Name: models.RoleModerator},
		{Name: models.RoleAdmin},
	}
	tx := db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&roles).Error; err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	if len(categories) == 0 {
		return nil
	}
	rows := make([]models.Category, 0, len(categories))
	for _, name := range categories {
		rows = append(rows, models.Category{Name: name})
	}
	if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&rows).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
