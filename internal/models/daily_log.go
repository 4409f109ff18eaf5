package models

import "time"

// DailyLog keeps one row of running nutrition totals per user per calendar
// date. Each total equals the sum of the matching field across all meal
// entries referencing it, floored at zero after deletions.
type DailyLog struct {
	ID                    string    `gorm:"primaryKey" json:"id"`
	UserID                string    `gorm:"index:idx_daily_logs_user_date,unique" json:"user_id"`
	LogDate               string    `gorm:"index:idx_daily_logs_user_date,unique" json:"log_date"`
	TotalCaloriesConsumed int       `json:"total_calories_consumed"`
	TotalProteinConsumed  float64   `json:"total_protein_consumed"`
	TotalCarbsConsumed    float64   `json:"total_carbs_consumed"`
	TotalFatConsumed      float64   `json:"total_fat_consumed"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NutritionDelta is the signed adjustment applied to a DailyLog when a meal
// entry is created, edited or removed.
type NutritionDelta struct {
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
}

// Negate returns the delta with every component sign-flipped, used on the
// deletion path.
func (d NutritionDelta) Negate() NutritionDelta {
	return NutritionDelta{
		Calories: -d.Calories,
		Protein:  -d.Protein,
		Carbs:    -d.Carbs,
		Fat:      -d.Fat,
	}
}
