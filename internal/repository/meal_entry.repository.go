package repository

import (
	"kalkulori/internal/models"

	"gorm.io/gorm"
)

// MealEntryFilter narrows a user's entry listing. Empty fields are skipped.
type MealEntryFilter struct {
	DailyLogID string
	MealType   string
}

type MealEntryRepository interface {
	WithTx(tx *gorm.DB) MealEntryRepository
	Create(entry *models.MealEntry) error
	FindByID(id string) (*models.MealEntry, error)
	Update(entry *models.MealEntry) error
	Delete(id string) error
	// FindByUser returns entries newest first.
	FindByUser(userID string, filter MealEntryFilter) ([]models.MealEntry, error)
	// FindByDailyLog returns a log's entries oldest first.
	FindByDailyLog(dailyLogID string) ([]models.MealEntry, error)
}

type mealEntryRepository struct {
	db *gorm.DB
}

func NewMealEntryRepository(db *gorm.DB) MealEntryRepository {
	return &mealEntryRepository{db: db}
}

func (r *mealEntryRepository) WithTx(tx *gorm.DB) MealEntryRepository {
	return &mealEntryRepository{db: tx}
}

func (r *mealEntryRepository) Create(entry *models.MealEntry) error {
	return r.db.Create(entry).Error
}

func (r *mealEntryRepository) FindByID(id string) (*models.MealEntry, error) {
	var entry models.MealEntry
	err := r.db.Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *mealEntryRepository) Update(entry *models.MealEntry) error {
	return r.db.Save(entry).Error
}

func (r *mealEntryRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&models.MealEntry{}).Error
}

func (r *mealEntryRepository) FindByUser(userID string, filter MealEntryFilter) ([]models.MealEntry, error) {
	query := r.db.Where("user_id = ?", userID)
	if filter.DailyLogID != "" {
		query = query.Where("daily_log_id = ?", filter.DailyLogID)
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", filter.MealType)
	}

	var entries []models.MealEntry
	err := query.Order("consumed_at DESC").Find(&entries).Error
	return entries, err
}

func (r *mealEntryRepository) FindByDailyLog(dailyLogID string) ([]models.MealEntry, error) {
	var entries []models.MealEntry
	err := r.db.Where("daily_log_id = ?", dailyLogID).Order("consumed_at ASC").Find(&entries).Error
	return entries, err
}
