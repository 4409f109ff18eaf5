package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"kalkulori/internal/apperrors"
	"kalkulori/internal/ml"
	"kalkulori/internal/mocks"
	"kalkulori/internal/models"
	"kalkulori/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func asUserWithRole(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupFoodTestRouter(foods *mocks.MockFoodRepository, role string) *gin.Engine {
	return setupFoodSearchRouter(foods, new(mocks.MockMLClient), role)
}

func setupFoodSearchRouter(foods *mocks.MockFoodRepository, mlClient *mocks.MockMLClient, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewFoodController(foods, mlClient)

	router := gin.New()
	router.POST("/api/foods", asUserWithRole("user-1", role), controller.CreateFood)
	router.GET("/api/foods", controller.GetAllFoods)
	router.GET("/api/foods/:id", controller.GetFoodByID)
	router.PUT("/api/foods/:id", asUserWithRole("user-1", role), controller.UpdateFood)
	router.DELETE("/api/foods/:id", asUserWithRole("user-1", role), controller.DeleteFood)
	router.GET("/api/search", controller.SearchFoods)
	router.POST("/api/search/add", asUserWithRole("user-1", role), controller.AddFoodFromSearch)
	return router
}

func TestCreateFood(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		body           map[string]interface{}
		expectedStatus int
		expectVerified bool
	}{
		{
			name: "user creates unverified food",
			role: "user",
			body: map[string]interface{}{
				"food_name":            "Nasi Goreng",
				"calories_per_serving": 350,
				"protein_per_serving":  10.5,
				"carbs_per_serving":    45.0,
				"fat_per_serving":      12.3,
				"serving_size":         1,
				"serving_unit":         "porsi",
			},
			expectedStatus: http.StatusCreated,
			expectVerified: false,
		},
		{
			name: "admin creates verified food",
			role: "admin",
			body: map[string]interface{}{
				"food_name":            "Tempe Goreng",
				"calories_per_serving": 190,
				"protein_per_serving":  9.0,
				"carbs_per_serving":    7.8,
				"fat_per_serving":      14.2,
				"serving_size":         2,
				"serving_unit":         "potong",
			},
			expectedStatus: http.StatusCreated,
			expectVerified: true,
		},
		{
			name:           "missing name",
			role:           "user",
			body:           map[string]interface{}{"serving_size": 1, "serving_unit": "porsi"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "negative nutrition",
			role: "user",
			body: map[string]interface{}{
				"food_name":            "Bad Food",
				"calories_per_serving": -10,
				"serving_size":         1,
				"serving_unit":         "porsi",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foods := new(mocks.MockFoodRepository)

			var created *models.FoodItem
			foods.On("Create", mock.Anything).Run(func(args mock.Arguments) {
				created = args.Get(0).(*models.FoodItem)
			}).Return(nil)

			router := setupFoodTestRouter(foods, tt.role)
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/api/foods", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusCreated {
				assert.NotEmpty(t, created.ID)
				assert.Equal(t, tt.expectVerified, created.IsVerified)
			} else {
				foods.AssertNotCalled(t, "Create", mock.Anything)
			}
		})
	}
}

func TestGetAllFoodsClampsLimit(t *testing.T) {
	foods := new(mocks.MockFoodRepository)
	foods.On("FindPage", mock.MatchedBy(func(p repository.FoodPageParams) bool {
		return p.Limit == repository.FoodPageSize
	})).Return([]models.FoodItem{{ID: "food-1"}}, false, nil)

	router := setupFoodTestRouter(foods, "user")
	req := httptest.NewRequest("GET", "/api/foods?limit=50", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	foods.AssertExpectations(t)
}

func TestGetAllFoodsInvalidCursor(t *testing.T) {
	foods := new(mocks.MockFoodRepository)
	foods.On("FindPage", mock.Anything).Return([]models.FoodItem{}, false, apperrors.NewValidation("Invalid cursor"))

	router := setupFoodTestRouter(foods, "user")
	req := httptest.NewRequest("GET", "/api/foods?cursor=no-such-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "fail", response["status"])
	assert.Equal(t, "Invalid cursor", response["message"])
}

func TestGetAllFoodsDatabaseFault(t *testing.T) {
	foods := new(mocks.MockFoodRepository)
	foods.On("FindPage", mock.Anything).Return([]models.FoodItem{}, false, errors.New("connection refused"))

	router := setupFoodTestRouter(foods, "user")
	req := httptest.NewRequest("GET", "/api/foods", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "error", response["status"])
}

func TestGetAllFoodsVerifiedFilter(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected bool
	}{
		{name: "true literal", raw: "true", expected: true},
		{name: "numeric one", raw: "1", expected: true},
		{name: "false literal", raw: "false", expected: false},
		{name: "numeric zero", raw: "0", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			foods := new(mocks.MockFoodRepository)
			foods.On("FindPage", mock.MatchedBy(func(p repository.FoodPageParams) bool {
				return p.Verified != nil && *p.Verified == tt.expected
			})).Return([]models.FoodItem{}, false, nil)

			router := setupFoodTestRouter(foods, "user")
			req := httptest.NewRequest("GET", "/api/foods?verified="+tt.raw, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			foods.AssertExpectations(t)
		})
	}
}

func TestGetFoodByIDNotFound(t *testing.T) {
	foods := new(mocks.MockFoodRepository)
	foods.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

	router := setupFoodTestRouter(foods, "user")
	req := httptest.NewRequest("GET", "/api/foods/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateFoodFiltersVerificationForNonAdmins(t *testing.T) {
	foods := new(mocks.MockFoodRepository)
	foods.On("Patch", "food-1", mock.MatchedBy(func(data map[string]interface{}) bool {
		_, hasVerified := data["is_verified"]
		return !hasVerified && data["food_name"] == "Renamed"
	})).Return(nil)
	foods.On("FindByID", "food-1").Return(&models.FoodItem{ID: "food-1", FoodName: "Renamed"}, nil)

	router := setupFoodTestRouter(foods, "user")
	body, _ := json.Marshal(map[string]interface{}{"food_name": "Renamed", "is_verified": true})
	req := httptest.NewRequest("PUT", "/api/foods/food-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	foods.AssertExpectations(t)
}

func TestUpdateFoodEmptyPatch(t *testing.T) {
	foods := new(mocks.MockFoodRepository)

	router := setupFoodTestRouter(foods, "user")
	body, _ := json.Marshal(map[string]interface{}{"unknown_field": "x"})
	req := httptest.NewRequest("PUT", "/api/foods/food-1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	foods.AssertNotCalled(t, "Patch", mock.Anything, mock.Anything)
}

func TestDeleteFood(t *testing.T) {
	t.Run("non-admin forbidden", func(t *testing.T) {
		foods := new(mocks.MockFoodRepository)

		router := setupFoodTestRouter(foods, "user")
		req := httptest.NewRequest("DELETE", "/api/foods/food-1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		foods.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("missing food", func(t *testing.T) {
		foods := new(mocks.MockFoodRepository)
		foods.On("FindByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		router := setupFoodTestRouter(foods, "admin")
		req := httptest.NewRequest("DELETE", "/api/foods/missing", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("admin deletes", func(t *testing.T) {
		foods := new(mocks.MockFoodRepository)
		foods.On("FindByID", "food-1").Return(&models.FoodItem{ID: "food-1"}, nil)
		foods.On("Delete", "food-1").Return(nil)

		router := setupFoodTestRouter(foods, "admin")
		req := httptest.NewRequest("DELETE", "/api/foods/food-1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		foods.AssertExpectations(t)
	})
}

func TestSearchFoods(t *testing.T) {
	foods := new(mocks.MockFoodRepository)
	foods.On("SearchByName", "ayam", 0, repository.SearchPageSize).
		Return([]models.FoodItem{{ID: "food-1", FoodName: "Ayam Bakar"}}, int64(1), nil)

	router := setupFoodTestRouter(foods, "user")
	req := httptest.NewRequest("GET", "/api/search?q=ayam", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(1), pagination["current_page"])
	assert.Equal(t, float64(1), pagination["total_foods"])
}

func TestSearchFoodsBeyondRowCap(t *testing.T) {
	foods := new(mocks.MockFoodRepository)

	router := setupFoodTestRouter(foods, "user")
	req := httptest.NewRequest("GET", "/api/search?q=ayam&page=50", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	foods.AssertNotCalled(t, "SearchByName", mock.Anything, mock.Anything, mock.Anything)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Empty(t, data["foods"])
}

func TestAddFoodFromSearch(t *testing.T) {
	t.Run("stores the best match as an unverified catalog food", func(t *testing.T) {
		foods := new(mocks.MockFoodRepository)
		mlClient := new(mocks.MockMLClient)
		mlClient.On("SearchRecipes", "rendang", 1).Return([]ml.Recipe{{
			RecipeID:            json.Number("123"),
			Name:                "Rendang",
			Calories:            468.4,
			ProteinContent:      20.557,
			CarbohydrateContent: 10.3,
			FatContent:          38.2,
			Images:              `"https://img.example/rendang.jpg"`,
		}}, nil)

		var created *models.FoodItem
		foods.On("Create", mock.Anything).Run(func(args mock.Arguments) {
			created = args.Get(0).(*models.FoodItem)
		}).Return(nil)

		router := setupFoodSearchRouter(foods, mlClient, "user")
		body, _ := json.Marshal(map[string]string{"query": "rendang"})
		req := httptest.NewRequest("POST", "/api/search/add", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Rendang", created.FoodName)
		assert.Equal(t, 468, created.CaloriesPerServing)
		assert.InDelta(t, 20.56, created.ProteinPerServing, 0.001)
		assert.Equal(t, 1.0, created.ServingSize)
		assert.Equal(t, "porsi", created.ServingUnit)
		assert.False(t, created.IsVerified)
		if assert.NotNil(t, created.ImageURL) {
			assert.Equal(t, "https://img.example/rendang.jpg", *created.ImageURL)
		}
	})

	t.Run("missing query", func(t *testing.T) {
		foods := new(mocks.MockFoodRepository)
		mlClient := new(mocks.MockMLClient)

		router := setupFoodSearchRouter(foods, mlClient, "user")
		body, _ := json.Marshal(map[string]string{})
		req := httptest.NewRequest("POST", "/api/search/add", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mlClient.AssertNotCalled(t, "SearchRecipes", mock.Anything, mock.Anything)
	})

	t.Run("no matching recipe", func(t *testing.T) {
		foods := new(mocks.MockFoodRepository)
		mlClient := new(mocks.MockMLClient)
		mlClient.On("SearchRecipes", "xyzzy", 1).Return([]ml.Recipe{}, nil)

		router := setupFoodSearchRouter(foods, mlClient, "user")
		body, _ := json.Marshal(map[string]string{"query": "xyzzy"})
		req := httptest.NewRequest("POST", "/api/search/add", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		foods.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("ml service down", func(t *testing.T) {
		foods := new(mocks.MockFoodRepository)
		mlClient := new(mocks.MockMLClient)
		mlClient.On("SearchRecipes", "rendang", 1).
			Return(nil, apperrors.NewUpstream(apperrors.UpstreamRefused, errors.New("connection refused")))

		router := setupFoodSearchRouter(foods, mlClient, "user")
		body, _ := json.Marshal(map[string]string{"query": "rendang"})
		req := httptest.NewRequest("POST", "/api/search/add", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.Equal(t, "error", response["status"])
	})
}
