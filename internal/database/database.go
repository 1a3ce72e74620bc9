package database

import (
	"fmt"

	"github.com/shreyasboddani/MENTICS/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dsn and runs migrations.
// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
// The handle is returned to the caller; there is no package-level DB.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate auto-migrates the schema (creates tables if they don't exist).
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Subtask{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizResult{},
		&models.StatHistory{},
		&models.GamificationStats{},
		&models.ActivityLog{},
		&models.ChatConversation{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
