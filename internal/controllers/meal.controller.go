package controllers

import (
	"fmt"
	"net/http"
	"time"

	"kalkulori/internal/ml"
	"kalkulori/internal/models"
	"kalkulori/internal/repository"
	"kalkulori/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	mealPlanCount     = 3
	mealPlanTolerance = 0.25
	suggestionCount   = 5
)

type MealController struct {
	meals     *services.MealService
	mlClient  ml.Client
	profiles  repository.UserProfileRepository
	dailyLogs repository.DailyLogRepository
}

func NewMealController(
	meals *services.MealService,
	mlClient ml.Client,
	profiles repository.UserProfileRepository,
	dailyLogs repository.DailyLogRepository,
) *MealController {
	return &MealController{meals: meals, mlClient: mlClient, profiles: profiles, dailyLogs: dailyLogs}
}

// CreateMealEntry godoc
// @Summary Log a meal entry
// @Description Record a consumption event and add its nutrition to the daily log
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body services.CreateEntryInput true "Meal entry data"
// @Success 201 {object} map[string]interface{} "Meal entry created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/meals [post]
func (mc *MealController) CreateMealEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var input services.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request data",
		})
		return
	}

	result, err := mc.meals.CreateEntry(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Meal entry created successfully",
		"data":    result,
	})
}

// GetMealEntries godoc
// @Summary List meal entries
// @Description List the user's entries newest first, optionally narrowed to one date and meal type. A date with no log yields an empty list.
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param log_date query string false "Date (YYYY-MM-DD)"
// @Param meal_type query string false "breakfast, lunch, dinner or snack"
// @Success 200 {object} map[string]interface{} "Meal entries retrieved successfully"
// @Router /api/meals [get]
func (mc *MealController) GetMealEntries(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	mealType := c.Query("meal_type")
	if mealType != "" && !models.IsValidMealType(mealType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "meal_type must be one of: breakfast, lunch, dinner, snack",
		})
		return
	}

	entries, err := mc.meals.ListEntries(c.Request.Context(), userID, c.Query("log_date"), mealType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Meal entries retrieved successfully",
		"data": gin.H{
			"meal_entries": entries,
			"total":        len(entries),
		},
	})
}

type updateMealEntryRequest struct {
	Servings float64 `json:"servings"`
}

// UpdateMealEntry godoc
// @Summary Update a meal entry
// @Description Change an entry's servings; the daily log moves by the nutrition difference
// @Tags meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal entry id"
// @Param entry body updateMealEntryRequest true "New servings"
// @Success 200 {object} map[string]interface{} "Meal entry updated successfully"
// @Failure 403 {object} map[string]interface{} "Entry belongs to another user"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Router /api/meals/{id} [put]
func (mc *MealController) UpdateMealEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req updateMealEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Servings == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "servings is required",
		})
		return
	}

	entry, err := mc.meals.UpdateEntry(c.Request.Context(), userID, c.Param("id"), req.Servings)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Meal entry updated successfully",
		"data": gin.H{
			"meal_entry": entry,
		},
	})
}

// DeleteMealEntry godoc
// @Summary Delete a meal entry
// @Description Remove an entry and subtract its nutrition from the daily log; the log row itself survives
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal entry id"
// @Success 200 {object} map[string]interface{} "Meal entry deleted successfully"
// @Failure 403 {object} map[string]interface{} "Entry belongs to another user"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Router /api/meals/{id} [delete]
func (mc *MealController) DeleteMealEntry(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := mc.meals.DeleteEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Meal entry deleted successfully",
	})
}

// GetDailyLog godoc
// @Summary Get the daily log for a date
// @Description Returns the ledger totals, remaining calories against the profile target and the day's entries oldest first
// @Tags meals
// @Produce json
// @Security BearerAuth
// @Param log_date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Daily log retrieved successfully"
// @Failure 404 {object} map[string]interface{} "No log for that date"
// @Router /api/logs/{log_date} [get]
func (mc *MealController) GetDailyLog(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	dailyLog, entries, err := mc.meals.GetDailyLog(c.Request.Context(), userID, c.Param("log_date"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Daily log retrieved successfully",
		"data": gin.H{
			"daily_log":    dailyLog,
			"meal_entries": entries,
		},
	})
}

// GenerateMealPlan godoc
// @Summary Generate meal plans
// @Description Ask the ML service for meal plans matching the user's daily calorie target
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Meal plans generated successfully"
// @Failure 400 {object} map[string]interface{} "No calorie target"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 503 {object} map[string]interface{} "ML service unavailable"
// @Failure 504 {object} map[string]interface{} "ML service timeout"
// @Router /api/meal-plans/generate [get]
func (mc *MealController) GenerateMealPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := mc.profiles.FindByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "Profile not found, complete your profile first",
		})
		return
	}
	if profile.DailyCalorieTarget <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Daily calorie target is not set",
		})
		return
	}

	plans, err := mc.mlClient.GenerateMealPlan(c.Request.Context(), profile.DailyCalorieTarget, mealPlanCount, mealPlanTolerance)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Meal plans generated successfully",
		"data": gin.H{
			"user_info": gin.H{
				"daily_calorie_target": profile.DailyCalorieTarget,
				"fitness_level":        profile.FitnessLevel,
			},
			"meal_plans":   plans,
			"generated_at": time.Now().Format(time.RFC3339),
		},
	})
}

// GetMealDetailsByRecipeID godoc
// @Summary Get recipe details
// @Description Fetch one recipe from the ML service, normalized to the shared nutrition shape
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe id"
// @Success 200 {object} map[string]interface{} "Recipe details retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /api/meals/{id}/details [get]
func (mc *MealController) GetMealDetailsByRecipeID(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	recipeID := c.Param("id")
	if id, isRecipe := ml.ParseRecipeFoodID(recipeID); isRecipe {
		recipeID = id
	}

	recipe, err := mc.mlClient.GetRecipeDetail(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Recipe details retrieved successfully",
		"data": gin.H{
			"recipe": ml.NormalizeRecipe(recipe),
		},
	})
}

// GetMealSuggestions godoc
// @Summary Get meal suggestions
// @Description Suggest meals from the ML service sized to the calories the user has left today
// @Tags meal-plans
// @Produce json
// @Security BearerAuth
// @Param meal_type query string false "breakfast, lunch, dinner or snack"
// @Success 200 {object} map[string]interface{} "Meal suggestions retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /api/meals/suggestion [get]
func (mc *MealController) GetMealSuggestions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	mealType := c.Query("meal_type")
	if mealType != "" && !models.IsValidMealType(mealType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "meal_type must be one of: breakfast, lunch, dinner, snack",
		})
		return
	}

	profile, err := mc.profiles.FindByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "Profile not found, complete your profile first",
		})
		return
	}

	remaining := profile.DailyCalorieTarget
	today := time.Now().Format("2006-01-02")
	if dailyLog, err := mc.dailyLogs.FindByUserAndDate(userID, today); err == nil {
		remaining -= dailyLog.TotalCaloriesConsumed
	}
	if remaining < 0 {
		remaining = 0
	}

	recipes, err := mc.mlClient.SuggestMeals(c.Request.Context(), remaining, mealType, suggestionCount)
	if err != nil {
		respondError(c, err)
		return
	}

	suggestions := make([]*models.FoodDetails, 0, len(recipes))
	for i := range recipes {
		suggestions = append(suggestions, ml.NormalizeRecipe(&recipes[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Meal suggestions retrieved successfully",
		"data": gin.H{
			"suggestions":        suggestions,
			"remaining_calories": remaining,
			"log_date":           today,
		},
	})
}

type addMealRequest struct {
	RecipeID string  `json:"recipe_id"`
	MealType string  `json:"meal_type"`
	Servings float64 `json:"servings"`
	LogDate  string  `json:"log_date"`
}

// AddMealFromPlan godoc
// @Summary Add a meal from a plan
// @Description Log one recipe from a generated plan as a meal entry through the regular ledger path
// @Tags meal-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body addMealRequest true "Recipe to log"
// @Success 201 {object} map[string]interface{} "Meal added successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Recipe not found"
// @Router /api/meal-plans/add-meal [post]
func (mc *MealController) AddMealFromPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req addMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request data",
		})
		return
	}
	if req.RecipeID == "" || req.MealType == "" || req.LogDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "recipe_id, meal_type and log_date are required",
		})
		return
	}
	if req.Servings == 0 {
		req.Servings = 1
	}

	result, err := mc.meals.CreateEntry(c.Request.Context(), userID, services.CreateEntryInput{
		FoodItemID: ml.RecipeFoodID(req.RecipeID),
		MealType:   req.MealType,
		Servings:   req.Servings,
		LogDate:    req.LogDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Meal added successfully",
		"data":    result,
	})
}

type addFullPlanRequest struct {
	Meals []struct {
		RecipeID string  `json:"recipe_id"`
		MealType string  `json:"meal_type"`
		Servings float64 `json:"servings"`
	} `json:"meals"`
	LogDate string `json:"log_date"`
}

// AddFullMealPlan godoc
// @Summary Add a full meal plan
// @Description Log every meal of a generated plan sequentially; failures are reported per meal
// @Tags meal-plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body addFullPlanRequest true "Plan to log"
// @Success 201 {object} map[string]interface{} "Meal plan added"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/meal-plans/add-full-plan [post]
func (mc *MealController) AddFullMealPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req addFullPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Meals) == 0 || req.LogDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "meals and log_date are required",
		})
		return
	}

	type mealResult struct {
		RecipeID    string `json:"recipe_id"`
		MealType    string `json:"meal_type"`
		Success     bool   `json:"success"`
		MealEntryID string `json:"meal_entry_id,omitempty"`
		Error       string `json:"error,omitempty"`
	}

	results := make([]mealResult, 0, len(req.Meals))
	added := 0
	for _, meal := range req.Meals {
		servings := meal.Servings
		if servings == 0 {
			servings = 1
		}

		result, err := mc.meals.CreateEntry(c.Request.Context(), userID, services.CreateEntryInput{
			FoodItemID: ml.RecipeFoodID(meal.RecipeID),
			MealType:   meal.MealType,
			Servings:   servings,
			LogDate:    req.LogDate,
		})
		if err != nil {
			results = append(results, mealResult{
				RecipeID: meal.RecipeID,
				MealType: meal.MealType,
				Error:    err.Error(),
			})
			continue
		}

		added++
		results = append(results, mealResult{
			RecipeID:    meal.RecipeID,
			MealType:    meal.MealType,
			Success:     true,
			MealEntryID: result.MealEntryID,
		})
	}

	status := http.StatusCreated
	if added == 0 {
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{
		"status":  statusWord(added),
		"message": fmt.Sprintf("Added %d of %d meals", added, len(req.Meals)),
		"data": gin.H{
			"log_date": req.LogDate,
			"results":  results,
		},
	})
}

func statusWord(added int) string {
	if added == 0 {
		return "fail"
	}
	return "success"
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service healthy"
// @Router /api/health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"message":   "kalkulori API is running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
