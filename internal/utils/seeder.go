package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"kalkulori/database"
	"kalkulori/internal/models"

	"github.com/google/uuid"
)

const seedBatchSize = 500

// seedFood is one record of the catalog import file. Calories may come in as
// a float; it is rounded into the stored integer.
type seedFood struct {
	FoodName           string  `json:"food_name"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinPerServing  float64 `json:"protein_per_serving"`
	CarbsPerServing    float64 `json:"carbs_per_serving"`
	FatPerServing      float64 `json:"fat_per_serving"`
	ServingSize        float64 `json:"serving_size"`
	ServingUnit        string  `json:"serving_unit"`
	FatsecretID        *string `json:"fatsecret_id"`
	ImageURL           *string `json:"image_url"`
}

// ImportFoods reads a JSON array of catalog foods and batch-inserts them.
// Records missing a name or serving unit, or carrying negative nutrition, are
// skipped and counted rather than aborting the import.
func ImportFoods(path string, verified bool) (int, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []seedFood
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	foods := make([]models.FoodItem, 0, len(records))
	skipped := 0
	for _, record := range records {
		if record.FoodName == "" || record.ServingUnit == "" ||
			record.CaloriesPerServing < 0 || record.ProteinPerServing < 0 ||
			record.CarbsPerServing < 0 || record.FatPerServing < 0 {
			skipped++
			continue
		}

		servingSize := record.ServingSize
		if servingSize <= 0 {
			servingSize = 1
		}

		foods = append(foods, models.FoodItem{
			ID:                 uuid.NewString(),
			FoodName:           record.FoodName,
			CaloriesPerServing: int(math.Round(record.CaloriesPerServing)),
			ProteinPerServing:  record.ProteinPerServing,
			CarbsPerServing:    record.CarbsPerServing,
			FatPerServing:      record.FatPerServing,
			ServingSize:        servingSize,
			ServingUnit:        record.ServingUnit,
			FatsecretID:        record.FatsecretID,
			ImageURL:           record.ImageURL,
			IsVerified:         verified,
		})
	}

	if len(foods) == 0 {
		return 0, skipped, nil
	}

	if err := database.DB.CreateInBatches(foods, seedBatchSize).Error; err != nil {
		return 0, skipped, fmt.Errorf("failed to insert foods: %w", err)
	}

	return len(foods), skipped, nil
}

// ClearFoods deletes every catalog food.
func ClearFoods() (int64, error) {
	result := database.DB.Where("1 = 1").Delete(&models.FoodItem{})
	return result.RowsAffected, result.Error
}

// FoodCount reports the catalog size, split by verification status.
func FoodCount() (total, verified int64, err error) {
	if err = database.DB.Model(&models.FoodItem{}).Count(&total).Error; err != nil {
		return
	}
	err = database.DB.Model(&models.FoodItem{}).Where("is_verified = ?", true).Count(&verified).Error
	return
}
