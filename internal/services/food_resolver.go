package services

import (
	"context"
	"errors"

	"kalkulori/internal/apperrors"
	"kalkulori/internal/ml"
	"kalkulori/internal/models"
	"kalkulori/internal/repository"

	"gorm.io/gorm"
)

// FoodResolver turns a meal entry's food_item_id into a normalized per-serving
// nutrition record. Resolution order: catalog food, then the user's custom
// food, then an external recipe reference (`recipe_<id>`). Read-only; recipe
// fetches are not cached.
type FoodResolver struct {
	foods       repository.FoodRepository
	customFoods repository.CustomFoodRepository
	mlClient    ml.Client
}

func NewFoodResolver(foods repository.FoodRepository, customFoods repository.CustomFoodRepository, mlClient ml.Client) *FoodResolver {
	return &FoodResolver{
		foods:       foods,
		customFoods: customFoods,
		mlClient:    mlClient,
	}
}

// ResolveForCreate resolves a food on the entry creation path, where custom
// foods are only visible to their owner.
func (r *FoodResolver) ResolveForCreate(ctx context.Context, foodItemID, userID string) (*models.FoodDetails, error) {
	return r.resolve(ctx, foodItemID, userID, true)
}

// ResolveForRead resolves a food for listing enrichment. Custom food lookups
// deliberately skip the owner filter here, matching how entries render food
// metadata for ids recorded before ownership was introduced.
func (r *FoodResolver) ResolveForRead(ctx context.Context, foodItemID string) (*models.FoodDetails, error) {
	return r.resolve(ctx, foodItemID, "", false)
}

func (r *FoodResolver) resolve(ctx context.Context, foodItemID, userID string, ownerOnly bool) (*models.FoodDetails, error) {
	food, err := r.foods.FindByID(foodItemID)
	if err == nil {
		return catalogDetails(food), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var custom *models.UserCustomFood
	if ownerOnly {
		custom, err = r.customFoods.FindByIDAndUser(foodItemID, userID)
	} else {
		custom, err = r.customFoods.FindByID(foodItemID)
	}
	if err == nil {
		return customDetails(custom), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if recipeID, ok := ml.ParseRecipeFoodID(foodItemID); ok {
		recipe, err := r.mlClient.GetRecipeDetail(ctx, recipeID)
		if err != nil {
			return nil, err
		}
		return ml.NormalizeRecipe(recipe), nil
	}

	return nil, apperrors.NewNotFound("food not found")
}

func catalogDetails(food *models.FoodItem) *models.FoodDetails {
	return &models.FoodDetails{
		ID:                 food.ID,
		FoodName:           food.FoodName,
		CaloriesPerServing: food.CaloriesPerServing,
		ProteinPerServing:  food.ProteinPerServing,
		CarbsPerServing:    food.CarbsPerServing,
		FatPerServing:      food.FatPerServing,
		ServingSize:        food.ServingSize,
		ServingUnit:        food.ServingUnit,
		ImageURL:           food.ImageURL,
		IsVerified:         food.IsVerified,
	}
}

func customDetails(food *models.UserCustomFood) *models.FoodDetails {
	return &models.FoodDetails{
		ID:                 food.ID,
		FoodName:           food.FoodName,
		CaloriesPerServing: food.CaloriesPerServing,
		ProteinPerServing:  food.ProteinPerServing,
		CarbsPerServing:    food.CarbsPerServing,
		FatPerServing:      food.FatPerServing,
		ServingSize:        food.ServingSize,
		ServingUnit:        food.ServingUnit,
		ImageURL:           food.ImageURL,
	}
}
