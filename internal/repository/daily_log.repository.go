package repository

import (
	"time"

	"kalkulori/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyLogRepository is the ledger side of meal accounting. ApplyDelta is the
// single mutation path for daily totals.
type DailyLogRepository interface {
	// WithTx returns a repository bound to tx so ledger writes can share a
	// transaction with the meal entry write.
	WithTx(tx *gorm.DB) DailyLogRepository
	FindByUserAndDate(userID, logDate string) (*models.DailyLog, error)
	FindByID(id string) (*models.DailyLog, error)
	ApplyDelta(userID, logDate string, delta models.NutritionDelta) (string, error)
}

type dailyLogRepository struct {
	db *gorm.DB
}

func NewDailyLogRepository(db *gorm.DB) DailyLogRepository {
	return &dailyLogRepository{db: db}
}

func (r *dailyLogRepository) WithTx(tx *gorm.DB) DailyLogRepository {
	return &dailyLogRepository{db: tx}
}

func (r *dailyLogRepository) FindByUserAndDate(userID, logDate string) (*models.DailyLog, error) {
	var dailyLog models.DailyLog
	err := r.db.Where("user_id = ? AND log_date = ?", userID, logDate).First(&dailyLog).Error
	if err != nil {
		return nil, err
	}
	return &dailyLog, nil
}

func (r *dailyLogRepository) FindByID(id string) (*models.DailyLog, error) {
	var dailyLog models.DailyLog
	err := r.db.Where("id = ?", id).First(&dailyLog).Error
	if err != nil {
		return nil, err
	}
	return &dailyLog, nil
}

// ApplyDelta adjusts the (user, date) bucket by delta and returns the daily
// log id. The first delta for a date creates the row with the delta as its
// initial totals; later deltas are added onto the current totals with every
// total floored at zero. The row is never deleted, a date whose last entry is
// removed ends at zero totals and stays queryable.
func (r *dailyLogRepository) ApplyDelta(userID, logDate string, delta models.NutritionDelta) (string, error) {
	dailyLog, err := r.FindByUserAndDate(userID, logDate)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return "", err
		}

		created := applyFloored(models.DailyLog{
			ID:      uuid.NewString(),
			UserID:  userID,
			LogDate: logDate,
		}, delta)
		if err := r.db.Create(&created).Error; err != nil {
			return "", err
		}
		return created.ID, nil
	}

	next := applyFloored(*dailyLog, delta)
	updates := map[string]interface{}{
		"total_calories_consumed": next.TotalCaloriesConsumed,
		"total_protein_consumed":  next.TotalProteinConsumed,
		"total_carbs_consumed":    next.TotalCarbsConsumed,
		"total_fat_consumed":      next.TotalFatConsumed,
		"updated_at":              time.Now(),
	}
	if err := r.db.Model(&models.DailyLog{}).Where("id = ?", dailyLog.ID).Updates(updates).Error; err != nil {
		return "", err
	}

	return dailyLog.ID, nil
}

// applyFloored adds delta onto the totals in log, flooring every total at
// zero. The create path starts from a zero-valued log.
func applyFloored(log models.DailyLog, delta models.NutritionDelta) models.DailyLog {
	log.TotalCaloriesConsumed = maxInt(0, log.TotalCaloriesConsumed+delta.Calories)
	log.TotalProteinConsumed = maxFloat(0, log.TotalProteinConsumed+delta.Protein)
	log.TotalCarbsConsumed = maxFloat(0, log.TotalCarbsConsumed+delta.Carbs)
	log.TotalFatConsumed = maxFloat(0, log.TotalFatConsumed+delta.Fat)
	return log
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
