package models

import "time"

const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

// IsValidMealType reports whether mealType is one of the four supported slots.
func IsValidMealType(mealType string) bool {
	switch mealType {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// MealEntry is one recorded consumption event. Calories are the per-serving
// value times servings rounded to the nearest integer; macros stay unrounded
// floats. The asymmetry is deliberate and must not be normalized away.
type MealEntry struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"index" json:"user_id"`
	DailyLogID string    `gorm:"index" json:"daily_log_id"`
	FoodItemID string    `json:"food_item_id"`
	MealType   string    `json:"meal_type"`
	Servings   float64   `json:"servings"`
	Calories   int       `json:"calories"`
	Protein    float64   `json:"protein"`
	Carbs      float64   `json:"carbs"`
	Fat        float64   `json:"fat"`
	ConsumedAt time.Time `json:"consumed_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Delta returns the entry's absolute nutrition as a positive ledger delta.
func (m *MealEntry) Delta() NutritionDelta {
	return NutritionDelta{
		Calories: m.Calories,
		Protein:  m.Protein,
		Carbs:    m.Carbs,
		Fat:      m.Fat,
	}
}

// EnrichedMealEntry is a meal entry with its resolved food attached for list
// responses. FoodDetails is null when the referenced food no longer resolves.
type EnrichedMealEntry struct {
	MealEntry
	FoodDetails *FoodDetails `json:"food_details"`
}
