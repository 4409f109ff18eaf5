package controllers

import (
	"net/http"
	"strconv"

	"kalkulori/internal/models"
	"kalkulori/internal/repository"
	"kalkulori/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomFoodController struct {
	customFoods repository.CustomFoodRepository
}

func NewCustomFoodController(customFoods repository.CustomFoodRepository) *CustomFoodController {
	return &CustomFoodController{customFoods: customFoods}
}

type createCustomFoodRequest struct {
	FoodName           string  `json:"food_name"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	ProteinPerServing  float64 `json:"protein_per_serving"`
	CarbsPerServing    float64 `json:"carbs_per_serving"`
	FatPerServing      float64 `json:"fat_per_serving"`
	ServingSize        float64 `json:"serving_size"`
	ServingUnit        string  `json:"serving_unit"`
	ImageURL           *string `json:"image_url"`
}

// CreateCustomFood godoc
// @Summary Create a custom food
// @Description Add a private food visible only to its owner
// @Tags custom-foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param food body createCustomFoodRequest true "Custom food data"
// @Success 201 {object} map[string]interface{} "Custom food created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/users/foods [post]
func (cc *CustomFoodController) CreateCustomFood(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createCustomFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request data",
		})
		return
	}

	if req.FoodName == "" || req.ServingUnit == "" || req.ServingSize <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "food_name, serving_size and serving_unit are required",
		})
		return
	}
	if req.CaloriesPerServing < 0 || req.ProteinPerServing < 0 ||
		req.CarbsPerServing < 0 || req.FatPerServing < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Nutrition values cannot be negative",
		})
		return
	}

	food := &models.UserCustomFood{
		ID:                 uuid.NewString(),
		UserID:             userID,
		FoodName:           req.FoodName,
		CaloriesPerServing: int(req.CaloriesPerServing),
		ProteinPerServing:  req.ProteinPerServing,
		CarbsPerServing:    req.CarbsPerServing,
		FatPerServing:      req.FatPerServing,
		ServingSize:        req.ServingSize,
		ServingUnit:        req.ServingUnit,
		ImageURL:           req.ImageURL,
	}

	if err := cc.customFoods.Create(food); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Custom food created successfully",
		"data": gin.H{
			"food": food,
		},
	})
}

// GetUserCustomFoods godoc
// @Summary List the user's custom foods
// @Description Cursor-paginated listing of the authenticated user's custom foods, newest first
// @Tags custom-foods
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (max 10)"
// @Param cursor query string false "Custom food id to page from"
// @Param direction query string false "next or prev"
// @Success 200 {object} map[string]interface{} "Custom foods retrieved successfully"
// @Router /api/users/foods [get]
func (cc *CustomFoodController) GetUserCustomFoods(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	requested, _ := strconv.Atoi(c.Query("limit"))
	params := repository.CustomFoodPageParams{
		UserID:    userID,
		Limit:     utils.ClampLimit(requested, repository.FoodPageSize),
		CursorID:  c.Query("cursor"),
		Direction: c.DefaultQuery("direction", "next"),
	}

	foods, hasMore, err := cc.customFoods.FindPageByUser(params)
	if err != nil {
		respondError(c, err)
		return
	}

	var firstID, lastID string
	if len(foods) > 0 {
		firstID = foods[0].ID
		lastID = foods[len(foods)-1].ID
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Custom foods retrieved successfully",
		"data": gin.H{
			"foods":      foods,
			"pagination": utils.BuildCursorPagination(params.Limit, params.CursorID, params.Direction, firstID, lastID, hasMore),
		},
	})
}
