package models

import "time"

type UserProfile struct {
	ID                 string    `gorm:"primaryKey" json:"id"`
	UserID             string    `gorm:"unique;index" json:"user_id"`
	Name               string    `json:"name"`
	Weight             int       `json:"weight" example:"70"`
	Height             int       `json:"height" example:"175"`
	Gender             string    `json:"gender" example:"male"`
	Age                int       `json:"age" example:"25"`
	FitnessLevel       string    `json:"fitness_level" example:"regularly"`
	BMR                float64   `json:"bmr" example:"1673.75"`
	DailyCalorieTarget int       `json:"daily_calorie_target" example:"2887"`
	TargetWeight       *int      `json:"target_weight,omitempty"`
	DailyProteinTarget *int      `json:"daily_protein_target,omitempty"`
	DailyCarbsTarget   *int      `json:"daily_carbs_target,omitempty"`
	DailyFatTarget     *int      `json:"daily_fat_target,omitempty"`
	BMRCalculationType string    `gorm:"default:mifflin_st_jeor" json:"bmr_calculation_type"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
