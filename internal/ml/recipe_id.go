package ml

import "strings"

// RecipePrefix marks a meal entry food_item_id that refers to an external
// recipe rather than a stored food.
const RecipePrefix = "recipe_"

// RecipeFoodID builds the synthetic food id for a recipe.
func RecipeFoodID(recipeID string) string {
	return RecipePrefix + recipeID
}

// ParseRecipeFoodID extracts the embedded recipe id, reporting whether
// foodItemID is a recipe reference at all.
func ParseRecipeFoodID(foodItemID string) (string, bool) {
	if !strings.HasPrefix(foodItemID, RecipePrefix) {
		return "", false
	}
	recipeID := strings.TrimPrefix(foodItemID, RecipePrefix)
	if recipeID == "" {
		return "", false
	}
	return recipeID, true
}
