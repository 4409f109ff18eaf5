package services

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"kalkulori/internal/apperrors"
	"kalkulori/internal/models"
	"kalkulori/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TxRunner is the transactional slice of *gorm.DB the service needs.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// MealService owns the meal entry log and its daily ledger. Every entry
// mutation adjusts the (user, log_date) totals through the daily log
// repository; the entry write and the ledger write share one transaction so a
// failed entry write cannot leave the totals drifted.
type MealService struct {
	db        TxRunner
	entries   repository.MealEntryRepository
	dailyLogs repository.DailyLogRepository
	profiles  repository.UserProfileRepository
	resolver  *FoodResolver
}

func NewMealService(
	db TxRunner,
	entries repository.MealEntryRepository,
	dailyLogs repository.DailyLogRepository,
	profiles repository.UserProfileRepository,
	resolver *FoodResolver,
) *MealService {
	return &MealService{
		db:        db,
		entries:   entries,
		dailyLogs: dailyLogs,
		profiles:  profiles,
		resolver:  resolver,
	}
}

// CreateEntryInput carries one consumption event to record.
type CreateEntryInput struct {
	FoodItemID string  `json:"food_item_id"`
	MealType   string  `json:"meal_type"`
	Servings   float64 `json:"servings"`
	LogDate    string  `json:"log_date"`
}

// CreateEntryResult identifies the stored entry and its ledger bucket.
type CreateEntryResult struct {
	MealEntryID string `json:"mealEntryId"`
	DailyLogID  string `json:"dailyLogId"`
}

// DailyLogView is a daily log plus the calories left against the user's
// target. RemainingCalories is null when the user has no profile.
type DailyLogView struct {
	models.DailyLog
	RemainingCalories *int `json:"remaining_calories"`
}

// CreateEntry validates the input, resolves the food, applies a positive
// ledger delta and persists the entry.
func (s *MealService) CreateEntry(ctx context.Context, userID string, input CreateEntryInput) (*CreateEntryResult, error) {
	if input.FoodItemID == "" || input.MealType == "" || input.LogDate == "" || input.Servings == 0 {
		return nil, apperrors.NewValidation("food_item_id, meal_type, servings and log_date are required")
	}
	if !models.IsValidMealType(input.MealType) {
		return nil, apperrors.NewValidation("meal_type must be one of: breakfast, lunch, dinner, snack")
	}
	if input.Servings <= 0 {
		return nil, apperrors.NewValidation("servings must be greater than zero")
	}

	food, err := s.resolver.ResolveForCreate(ctx, input.FoodItemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("food not found")
		}
		return nil, err
	}

	calories, protein, carbs, fat := absoluteNutrition(food, input.Servings)

	now := time.Now()
	entry := &models.MealEntry{
		ID:         uuid.NewString(),
		UserID:     userID,
		FoodItemID: input.FoodItemID,
		MealType:   input.MealType,
		Servings:   input.Servings,
		Calories:   calories,
		Protein:    protein,
		Carbs:      carbs,
		Fat:        fat,
		ConsumedAt: now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		dailyLogID, err := s.dailyLogs.WithTx(tx).ApplyDelta(userID, input.LogDate, entry.Delta())
		if err != nil {
			return err
		}
		entry.DailyLogID = dailyLogID
		return s.entries.WithTx(tx).Create(entry)
	})
	if err != nil {
		return nil, err
	}

	return &CreateEntryResult{MealEntryID: entry.ID, DailyLogID: entry.DailyLogID}, nil
}

// UpdateEntry changes an entry's servings, re-resolving the food and moving
// the ledger by the difference between new and old nutrition.
func (s *MealService) UpdateEntry(ctx context.Context, userID, entryID string, servings float64) (*models.MealEntry, error) {
	if servings <= 0 {
		return nil, apperrors.NewValidation("servings must be greater than zero")
	}

	entry, err := s.findOwnedEntry(userID, entryID)
	if err != nil {
		return nil, err
	}

	food, err := s.resolver.ResolveForRead(ctx, entry.FoodItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("food item not found")
		}
		return nil, err
	}

	oldDelta := entry.Delta()

	calories, protein, carbs, fat := absoluteNutrition(food, servings)
	entry.Servings = servings
	entry.Calories = calories
	entry.Protein = protein
	entry.Carbs = carbs
	entry.Fat = fat

	newDelta := entry.Delta()
	diff := models.NutritionDelta{
		Calories: newDelta.Calories - oldDelta.Calories,
		Protein:  newDelta.Protein - oldDelta.Protein,
		Carbs:    newDelta.Carbs - oldDelta.Carbs,
		Fat:      newDelta.Fat - oldDelta.Fat,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.entries.WithTx(tx).Update(entry); err != nil {
			return err
		}
		dailyLog, err := s.dailyLogs.WithTx(tx).FindByID(entry.DailyLogID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Entry points at a log that no longer exists; nothing to adjust.
				return nil
			}
			return err
		}
		_, err = s.dailyLogs.WithTx(tx).ApplyDelta(dailyLog.UserID, dailyLog.LogDate, diff)
		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry removes an entry and subtracts its nutrition from the ledger.
// The daily log row survives even when its last entry goes; totals floor at
// zero.
func (s *MealService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	entry, err := s.findOwnedEntry(userID, entryID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		dailyLog, err := s.dailyLogs.WithTx(tx).FindByID(entry.DailyLogID)
		if err == nil {
			if _, err := s.dailyLogs.WithTx(tx).ApplyDelta(dailyLog.UserID, dailyLog.LogDate, entry.Delta().Negate()); err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return s.entries.WithTx(tx).Delete(entry.ID)
	})
}

// ListEntries returns the user's entries newest first, optionally narrowed to
// one date and meal type. A date with no daily log yields an empty list, not
// an error. Each entry carries its resolved food; an unresolvable food
// degrades to a null food_details instead of failing the listing.
func (s *MealService) ListEntries(ctx context.Context, userID, logDate, mealType string) ([]models.EnrichedMealEntry, error) {
	filter := repository.MealEntryFilter{MealType: mealType}

	if logDate != "" {
		dailyLog, err := s.dailyLogs.FindByUserAndDate(userID, logDate)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.EnrichedMealEntry{}, nil
			}
			return nil, err
		}
		filter.DailyLogID = dailyLog.ID
	}

	entries, err := s.entries.FindByUser(userID, filter)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, entries), nil
}

// GetDailyLog returns the ledger row for one date with its entries oldest
// first and the calories remaining against the profile target.
func (s *MealService) GetDailyLog(ctx context.Context, userID, logDate string) (*DailyLogView, []models.EnrichedMealEntry, error) {
	dailyLog, err := s.dailyLogs.FindByUserAndDate(userID, logDate)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NewNotFound("no log found for that date")
		}
		return nil, nil, err
	}

	view := &DailyLogView{DailyLog: *dailyLog}
	if profile, err := s.profiles.FindByUserID(userID); err == nil {
		remaining := profile.DailyCalorieTarget - dailyLog.TotalCaloriesConsumed
		view.RemainingCalories = &remaining
	}

	entries, err := s.entries.FindByDailyLog(dailyLog.ID)
	if err != nil {
		return nil, nil, err
	}

	return view, s.enrich(ctx, entries), nil
}

func (s *MealService) findOwnedEntry(userID, entryID string) (*models.MealEntry, error) {
	entry, err := s.entries.FindByID(entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("meal entry not found")
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, apperrors.NewForbidden("meal entry belongs to another user")
	}
	return entry, nil
}

func (s *MealService) enrich(ctx context.Context, entries []models.MealEntry) []models.EnrichedMealEntry {
	enriched := make([]models.EnrichedMealEntry, 0, len(entries))
	for _, entry := range entries {
		details, err := s.resolver.ResolveForRead(ctx, entry.FoodItemID)
		if err != nil {
			details = nil
		}
		enriched = append(enriched, models.EnrichedMealEntry{MealEntry: entry, FoodDetails: details})
	}
	return enriched
}

// absoluteNutrition scales per-serving nutrition by servings. Calories round
// to the nearest integer; macros stay unrounded.
func absoluteNutrition(food *models.FoodDetails, servings float64) (int, float64, float64, float64) {
	calories := int(math.Round(float64(food.CaloriesPerServing) * servings))
	protein := food.ProteinPerServing * servings
	carbs := food.CarbsPerServing * servings
	fat := food.FatPerServing * servings
	return calories, protein, carbs, fat
}
