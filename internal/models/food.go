package models

import "time"

// FoodItem is a globally shared, admin-managed catalog food. Per-serving
// calories are stored as an integer while macros stay floating point,
// mirroring how entries are accounted downstream.
type FoodItem struct {
	ID                 string    `gorm:"primaryKey" json:"id"`
	FoodName           string    `gorm:"index" json:"food_name"`
	CaloriesPerServing int       `json:"calories_per_serving"`
	ProteinPerServing  float64   `json:"protein_per_serving"`
	CarbsPerServing    float64   `json:"carbs_per_serving"`
	FatPerServing      float64   `json:"fat_per_serving"`
	ServingSize        float64   `json:"serving_size"`
	ServingUnit        string    `json:"serving_unit"`
	FatsecretID        *string   `json:"fatsecret_id,omitempty"`
	ImageURL           *string   `json:"image_url,omitempty"`
	IsVerified         bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserCustomFood is a user-private food record, visible only to its owner.
type UserCustomFood struct {
	ID                 string    `gorm:"primaryKey" json:"id"`
	UserID             string    `gorm:"index" json:"user_id"`
	FoodName           string    `json:"food_name"`
	CaloriesPerServing int       `json:"calories_per_serving"`
	ProteinPerServing  float64   `json:"protein_per_serving"`
	CarbsPerServing    float64   `json:"carbs_per_serving"`
	FatPerServing      float64   `json:"fat_per_serving"`
	ServingSize        float64   `json:"serving_size"`
	ServingUnit        string    `json:"serving_unit"`
	ImageURL           *string   `json:"image_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FoodDetails is the normalized per-serving nutrition record produced by the
// food resolver, regardless of whether the source was a catalog food, a custom
// food or an external recipe.
type FoodDetails struct {
	ID                 string  `json:"id"`
	FoodName           string  `json:"food_name"`
	CaloriesPerServing int     `json:"calories_per_serving"`
	ProteinPerServing  float64 `json:"protein_per_serving"`
	CarbsPerServing    float64 `json:"carbs_per_serving"`
	FatPerServing      float64 `json:"fat_per_serving"`
	ServingSize        float64 `json:"serving_size"`
	ServingUnit        string  `json:"serving_unit"`
	ImageURL           *string `json:"image_url,omitempty"`
	IsVerified         bool    `json:"is_verified,omitempty"`
	IsRecipe           bool    `json:"is_recipe,omitempty"`
}
