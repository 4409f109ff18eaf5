package database

import (
	"kalkulori/internal/logger"
	"kalkulori/internal/models"
)

func MigrateDatabase() error {
	logger.Log.Info("Running database migrations...")

	err := DB.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.FoodItem{},
		&models.UserCustomFood{},
		&models.DailyLog{},
		&models.MealEntry{},
	)
	if err != nil {
		logger.Log.Errorf("Error during migration: %v", err)
		return err
	}

	logger.Log.Info("Database migrations completed successfully")
	return nil
}
