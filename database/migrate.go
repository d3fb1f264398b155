package database

import (
	"givegot_backend/internal/logger"
	"givegot_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate applies the schema for all models. The uuid extension has to
// exist before AutoMigrate because the primary keys default to
// uuid_generate_v4().
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.UserSkill{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migration complete")
	return nil
}
