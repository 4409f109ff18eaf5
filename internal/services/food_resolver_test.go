package services

import (
	"context"
	"encoding/json"
	"testing"

	"kalkulori/internal/apperrors"
	"kalkulori/internal/ml"
	"kalkulori/internal/mocks"
	"kalkulori/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newResolverFixture() (*FoodResolver, *mocks.MockFoodRepository, *mocks.MockCustomFoodRepository, *mocks.MockMLClient) {
	foods := new(mocks.MockFoodRepository)
	customFoods := new(mocks.MockCustomFoodRepository)
	mlClient := new(mocks.MockMLClient)
	return NewFoodResolver(foods, customFoods, mlClient), foods, customFoods, mlClient
}

func TestResolveCatalogFirst(t *testing.T) {
	resolver, foods, customFoods, _ := newResolverFixture()

	foods.On("FindByID", "food-1").Return(&models.FoodItem{
		ID:                 "food-1",
		FoodName:           "Rendang",
		CaloriesPerServing: 468,
		IsVerified:         true,
	}, nil)

	details, err := resolver.ResolveForRead(context.Background(), "food-1")

	assert.NoError(t, err)
	assert.Equal(t, "Rendang", details.FoodName)
	assert.True(t, details.IsVerified)
	assert.False(t, details.IsRecipe)
	// Catalog hit short-circuits; custom foods never consulted.
	customFoods.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestResolveFallsBackToCustomFood(t *testing.T) {
	resolver, foods, customFoods, _ := newResolverFixture()

	foods.On("FindByID", "custom-1").Return(nil, gorm.ErrRecordNotFound)
	customFoods.On("FindByIDAndUser", "custom-1", "user-1").Return(&models.UserCustomFood{
		ID:                 "custom-1",
		UserID:             "user-1",
		FoodName:           "Jus Alpukat",
		CaloriesPerServing: 250,
	}, nil)

	details, err := resolver.ResolveForCreate(context.Background(), "custom-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "Jus Alpukat", details.FoodName)
	assert.Equal(t, 250, details.CaloriesPerServing)
}

func TestResolveCreatePathEnforcesOwnership(t *testing.T) {
	resolver, foods, customFoods, _ := newResolverFixture()

	foods.On("FindByID", "custom-1").Return(nil, gorm.ErrRecordNotFound)
	customFoods.On("FindByIDAndUser", "custom-1", "intruder").Return(nil, gorm.ErrRecordNotFound)

	_, err := resolver.ResolveForCreate(context.Background(), "custom-1", "intruder")

	assert.True(t, apperrors.IsNotFound(err))
	customFoods.AssertNotCalled(t, "FindByID", mock.Anything)
}

func TestResolveRecipeReference(t *testing.T) {
	resolver, foods, customFoods, mlClient := newResolverFixture()

	foods.On("FindByID", "recipe_12345").Return(nil, gorm.ErrRecordNotFound)
	customFoods.On("FindByID", "recipe_12345").Return(nil, gorm.ErrRecordNotFound)
	mlClient.On("GetRecipeDetail", "12345").Return(&ml.Recipe{
		RecipeID:            json.Number("12345"),
		Name:                "Soto Ayam",
		Calories:            312.4,
		ProteinContent:      21.256,
		CarbohydrateContent: 18.1,
		FatContent:          9.87,
	}, nil)

	details, err := resolver.ResolveForRead(context.Background(), "recipe_12345")

	assert.NoError(t, err)
	assert.Equal(t, "recipe_12345", details.ID)
	assert.True(t, details.IsRecipe)
	assert.Equal(t, 312, details.CaloriesPerServing)
	assert.Equal(t, 21.26, details.ProteinPerServing)
	assert.Equal(t, 1.0, details.ServingSize)
	assert.Equal(t, "porsi", details.ServingUnit)
}

func TestResolveUnknownIDNotFound(t *testing.T) {
	resolver, foods, customFoods, mlClient := newResolverFixture()

	foods.On("FindByID", "nonsense").Return(nil, gorm.ErrRecordNotFound)
	customFoods.On("FindByID", "nonsense").Return(nil, gorm.ErrRecordNotFound)

	_, err := resolver.ResolveForRead(context.Background(), "nonsense")

	assert.True(t, apperrors.IsNotFound(err))
	mlClient.AssertNotCalled(t, "GetRecipeDetail", mock.Anything)
}

func TestResolveIsIdempotent(t *testing.T) {
	resolver, foods, _, _ := newResolverFixture()

	foods.On("FindByID", "food-1").Return(&models.FoodItem{ID: "food-1", FoodName: "Gado-gado"}, nil)

	first, err1 := resolver.ResolveForRead(context.Background(), "food-1")
	second, err2 := resolver.ResolveForRead(context.Background(), "food-1")

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}
