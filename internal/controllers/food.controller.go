package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"kalkulori/internal/ml"
	"kalkulori/internal/models"
	"kalkulori/internal/repository"
	"kalkulori/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FoodController struct {
	foods    repository.FoodRepository
	mlClient ml.Client
}

func NewFoodController(foods repository.FoodRepository, mlClient ml.Client) *FoodController {
	return &FoodController{foods: foods, mlClient: mlClient}
}

type createFoodRequest struct {
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

// CreateFood godoc
// @Summary Create a catalog food
// @Description Add a food to the shared catalog; foods created by admins are marked verified
// @Tags foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param food body createFoodRequest true "Food data"
// @Success 201 {object} map[string]interface{} "Food created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/foods [post]
func (fc *FoodController) CreateFood(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req createFoodRequest
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

	role, _ := c.Get("role")

	food := &models.FoodItem{
		ID:                 uuid.NewString(),
		FoodName:           req.FoodName,
		CaloriesPerServing: int(req.CaloriesPerServing),
		ProteinPerServing:  req.ProteinPerServing,
		CarbsPerServing:    req.CarbsPerServing,
		FatPerServing:      req.FatPerServing,
		ServingSize:        req.ServingSize,
		ServingUnit:        req.ServingUnit,
		FatsecretID:        req.FatsecretID,
		ImageURL:           req.ImageURL,
		IsVerified:         role == "admin",
	}

	if err := fc.foods.Create(food); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Food created successfully",
		"data": gin.H{
			"food": food,
		},
	})
}

// GetAllFoods godoc
// @Summary List catalog foods
// @Description Cursor-paginated catalog listing, filterable by name and verification status
// @Tags foods
// @Produce json
// @Param limit query int false "Page size (max 10)"
// @Param cursor query string false "Food id to page from"
// @Param direction query string false "next or prev"
// @Param name query string false "Name filter"
// @Param verified query bool false "Verification filter"
// @Success 200 {object} map[string]interface{} "Foods retrieved successfully"
// @Failure 400 {object} map[string]interface{} "Invalid cursor"
// @Router /api/foods [get]
func (fc *FoodController) GetAllFoods(c *gin.Context) {
	requested, _ := strconv.Atoi(c.Query("limit"))
	params := repository.FoodPageParams{
		Limit:     utils.ClampLimit(requested, repository.FoodPageSize),
		CursorID:  c.Query("cursor"),
		Direction: c.DefaultQuery("direction", "next"),
		Name:      c.Query("name"),
	}
	if raw := c.Query("verified"); raw != "" {
		verified := raw == "true" || raw == "1"
		params.Verified = &verified
	}

	foods, hasMore, err := fc.foods.FindPage(params)
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
		"message": "Foods retrieved successfully",
		"data": gin.H{
			"foods":      foods,
			"pagination": utils.BuildCursorPagination(params.Limit, params.CursorID, params.Direction, firstID, lastID, hasMore),
		},
	})
}

// GetFoodByID godoc
// @Summary Get a catalog food
// @Tags foods
// @Produce json
// @Param id path string true "Food id"
// @Success 200 {object} map[string]interface{} "Food retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/foods/{id} [get]
func (fc *FoodController) GetFoodByID(c *gin.Context) {
	food, err := fc.foods.FindByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "fail",
				"message": "Food not found",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Food retrieved successfully",
		"data": gin.H{
			"food": food,
		},
	})
}

// allowed patch fields; calories coerce to int, the rest keep their type.
var foodPatchFields = map[string]bool{
	"food_name":            true,
	"calories_per_serving": true,
	"protein_per_serving":  true,
	"carbs_per_serving":    true,
	"fat_per_serving":      true,
	"serving_size":         true,
	"serving_unit":         true,
	"fatsecret_id":         true,
	"image_url":            true,
	"is_verified":          true,
}

// UpdateFood godoc
// @Summary Update a catalog food
// @Description Partial update; only admins may change verification status
// @Tags foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food id"
// @Param food body map[string]interface{} true "Fields to update"
// @Success 200 {object} map[string]interface{} "Food updated successfully"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/foods/{id} [put]
func (fc *FoodController) UpdateFood(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request data",
		})
		return
	}

	role, _ := c.Get("role")

	data := map[string]interface{}{}
	for key, value := range raw {
		if !foodPatchFields[key] {
			continue
		}
		if key == "is_verified" && role != "admin" {
			continue
		}
		if key == "calories_per_serving" {
			if v, ok := value.(float64); ok {
				value = int(v)
			}
		}
		data[key] = value
	}

	if len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "No updatable fields provided",
		})
		return
	}

	if err := fc.foods.Patch(c.Param("id"), data); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "fail",
				"message": "Food not found",
			})
			return
		}
		respondError(c, err)
		return
	}

	food, err := fc.foods.FindByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Food updated successfully",
		"data": gin.H{
			"food": food,
		},
	})
}

// DeleteFood godoc
// @Summary Delete a catalog food
// @Tags foods
// @Produce json
// @Security BearerAuth
// @Param id path string true "Food id"
// @Success 200 {object} map[string]interface{} "Food deleted successfully"
// @Failure 403 {object} map[string]interface{} "Admin only"
// @Failure 404 {object} map[string]interface{} "Food not found"
// @Router /api/foods/{id} [delete]
func (fc *FoodController) DeleteFood(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	role, _ := c.Get("role")
	if role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "fail",
			"message": "Only admins can delete catalog foods",
		})
		return
	}

	if _, err := fc.foods.FindByID(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "fail",
				"message": "Food not found",
			})
			return
		}
		respondError(c, err)
		return
	}

	if err := fc.foods.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Food deleted successfully",
	})
}

// SearchFoods godoc
// @Summary Search catalog foods
// @Description Offset-paginated name search with fixed 60-row pages; result depth is capped
// @Tags foods
// @Produce json
// @Param q query string false "Name to search for"
// @Param page query int false "1-based page number"
// @Success 200 {object} map[string]interface{} "Foods retrieved successfully"
// @Router /api/search [get]
func (fc *FoodController) SearchFoods(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	offset := utils.PageOffset(page, repository.SearchPageSize)
	if offset >= repository.SearchMaxRows {
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Foods retrieved successfully",
			"data": gin.H{
				"foods":      []models.FoodItem{},
				"pagination": utils.BuildOffsetPagination(page, repository.SearchPageSize, 0, repository.SearchMaxRows),
			},
		})
		return
	}

	foods, total, err := fc.foods.SearchByName(c.Query("q"), offset, repository.SearchPageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Foods retrieved successfully",
		"data": gin.H{
			"foods":      foods,
			"pagination": utils.BuildOffsetPagination(page, repository.SearchPageSize, total, repository.SearchMaxRows),
		},
	})
}

type addFoodFromSearchRequest struct {
	Query string `json:"query"`
}

// AddFoodFromSearch godoc
// @Summary Add a searched recipe to the catalog
// @Description Looks the query up in the ML recipe index and stores the best match as a catalog food
// @Tags foods
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param search body addFoodFromSearchRequest true "Search query"
// @Success 201 {object} map[string]interface{} "Food added from search successfully"
// @Failure 400 {object} map[string]interface{} "Missing query"
// @Failure 404 {object} map[string]interface{} "No matching recipe"
// @Router /api/search/add [post]
func (fc *FoodController) AddFoodFromSearch(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req addFoodFromSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "query is required",
		})
		return
	}

	recipes, err := fc.mlClient.SearchRecipes(c.Request.Context(), req.Query, 1)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "No recipes match that query",
		})
		return
	}

	details := ml.NormalizeRecipe(&recipes[0])
	role, _ := c.Get("role")

	food := &models.FoodItem{
		ID:                 uuid.NewString(),
		FoodName:           details.FoodName,
		CaloriesPerServing: details.CaloriesPerServing,
		ProteinPerServing:  details.ProteinPerServing,
		CarbsPerServing:    details.CarbsPerServing,
		FatPerServing:      details.FatPerServing,
		ServingSize:        details.ServingSize,
		ServingUnit:        details.ServingUnit,
		ImageURL:           details.ImageURL,
		IsVerified:         role == "admin",
	}

	if err := fc.foods.Create(food); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Food added from search successfully",
		"data": gin.H{
			"food": food,
		},
	})
}
