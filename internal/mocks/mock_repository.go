package mocks

import (
	"context"
	"database/sql"
	"encoding/json"

	"kalkulori/internal/ml"
	"kalkulori/internal/models"
	"kalkulori/internal/repository"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Shared MockUserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) Create(profile *models.UserProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockUserProfileRepository) FindByUserID(userID string) (*models.UserProfile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) Update(profile *models.UserProfile) error {
	args := m.Called(profile)
	return args.Error(0)
}

// Shared MockFoodRepository
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) Create(food *models.FoodItem) error {
	args := m.Called(food)
	return args.Error(0)
}

func (m *MockFoodRepository) FindByID(id string) (*models.FoodItem, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItem), args.Error(1)
}

func (m *MockFoodRepository) FindPage(params repository.FoodPageParams) ([]models.FoodItem, bool, error) {
	args := m.Called(params)
	return args.Get(0).([]models.FoodItem), args.Bool(1), args.Error(2)
}

func (m *MockFoodRepository) SearchByName(name string, offset, limit int) ([]models.FoodItem, int64, error) {
	args := m.Called(name, offset, limit)
	return args.Get(0).([]models.FoodItem), args.Get(1).(int64), args.Error(2)
}

func (m *MockFoodRepository) Patch(id string, data map[string]interface{}) error {
	args := m.Called(id, data)
	return args.Error(0)
}

func (m *MockFoodRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// Shared MockCustomFoodRepository
type MockCustomFoodRepository struct {
	mock.Mock
}

func (m *MockCustomFoodRepository) Create(food *models.UserCustomFood) error {
	args := m.Called(food)
	return args.Error(0)
}

func (m *MockCustomFoodRepository) FindByID(id string) (*models.UserCustomFood, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserCustomFood), args.Error(1)
}

func (m *MockCustomFoodRepository) FindByIDAndUser(id, userID string) (*models.UserCustomFood, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserCustomFood), args.Error(1)
}

func (m *MockCustomFoodRepository) FindPageByUser(params repository.CustomFoodPageParams) ([]models.UserCustomFood, bool, error) {
	args := m.Called(params)
	return args.Get(0).([]models.UserCustomFood), args.Bool(1), args.Error(2)
}

// Shared MockDailyLogRepository
type MockDailyLogRepository struct {
	mock.Mock
}

func (m *MockDailyLogRepository) WithTx(tx *gorm.DB) repository.DailyLogRepository {
	return m
}

func (m *MockDailyLogRepository) FindByUserAndDate(userID, logDate string) (*models.DailyLog, error) {
	args := m.Called(userID, logDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) FindByID(id string) (*models.DailyLog, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) ApplyDelta(userID, logDate string, delta models.NutritionDelta) (string, error) {
	args := m.Called(userID, logDate, delta)
	return args.String(0), args.Error(1)
}

// Shared MockMealEntryRepository
type MockMealEntryRepository struct {
	mock.Mock
}

func (m *MockMealEntryRepository) WithTx(tx *gorm.DB) repository.MealEntryRepository {
	return m
}

func (m *MockMealEntryRepository) Create(entry *models.MealEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockMealEntryRepository) FindByID(id string) (*models.MealEntry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealEntry), args.Error(1)
}

func (m *MockMealEntryRepository) Update(entry *models.MealEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockMealEntryRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMealEntryRepository) FindByUser(userID string, filter repository.MealEntryFilter) ([]models.MealEntry, error) {
	args := m.Called(userID, filter)
	return args.Get(0).([]models.MealEntry), args.Error(1)
}

func (m *MockMealEntryRepository) FindByDailyLog(dailyLogID string) ([]models.MealEntry, error) {
	args := m.Called(dailyLogID)
	return args.Get(0).([]models.MealEntry), args.Error(1)
}

// Shared MockMLClient
type MockMLClient struct {
	mock.Mock
}

func (m *MockMLClient) GenerateMealPlan(ctx context.Context, totalCalories, maxPlans int, tolerancePercent float64) (json.RawMessage, error) {
	args := m.Called(totalCalories, maxPlans, tolerancePercent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockMLClient) GetRecipeDetail(ctx context.Context, recipeID string) (*ml.Recipe, error) {
	args := m.Called(recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ml.Recipe), args.Error(1)
}

func (m *MockMLClient) SearchRecipes(ctx context.Context, query string, maxResults int) ([]ml.Recipe, error) {
	args := m.Called(query, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ml.Recipe), args.Error(1)
}

func (m *MockMLClient) SuggestMeals(ctx context.Context, calories int, mealType string, maxResults int) ([]ml.Recipe, error) {
	args := m.Called(calories, mealType, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ml.Recipe), args.Error(1)
}

// FakeTxRunner runs the transaction callback directly, without a database.
type FakeTxRunner struct{}

func (f *FakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}
