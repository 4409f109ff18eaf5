package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kalkulori/internal/mocks"
	"kalkulori/internal/models"
	"kalkulori/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupAuthControllerWithMocks() (*AuthController, *mocks.MockUserRepository, *mocks.MockUserProfileRepository, *session.MemoryStore) {
	users := new(mocks.MockUserRepository)
	profiles := new(mocks.MockUserProfileRepository)
	sessions := session.NewMemoryStore(time.Hour)
	return NewAuthController(users, profiles, sessions), users, profiles, sessions
}

func validRegistration() map[string]interface{} {
	return map[string]interface{}{
		"email":         "budi@example.com",
		"password":      "secret123",
		"name":          "Budi",
		"weight":        70,
		"height":        175,
		"gender":        "male",
		"age":           25,
		"fitness_level": "regularly",
	}
}

func TestRegister(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	tests := []struct {
		name           string
		mutate         func(map[string]interface{})
		setupMock      func(*mocks.MockUserRepository, *mocks.MockUserProfileRepository)
		expectedStatus int
	}{
		{
			name:   "successful registration",
			mutate: func(m map[string]interface{}) {},
			setupMock: func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {
				users.On("GetUserByEmail", "budi@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("CreateUser", mock.Anything).Return(nil)
				profiles.On("Create", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing field",
			mutate:         func(m map[string]interface{}) { delete(m, "weight") },
			setupMock:      func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid gender",
			mutate:         func(m map[string]interface{}) { m["gender"] = "other" },
			setupMock:      func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid fitness level",
			mutate:         func(m map[string]interface{}) { m["fitness_level"] = "sometimes" },
			setupMock:      func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			mutate:         func(m map[string]interface{}) { m["password"] = "abc" },
			setupMock:      func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "duplicate email",
			mutate: func(m map[string]interface{}) {},
			setupMock: func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {
				users.On("GetUserByEmail", "budi@example.com").Return(&models.User{ID: "existing"}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, users, profiles, _ := setupAuthControllerWithMocks()
			tt.setupMock(users, profiles)

			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.POST("/register", controller.Register)

			payload := validRegistration()
			tt.mutate(payload)
			body, _ := json.Marshal(payload)

			req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRegisterDerivesCalorieTarget(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	controller, users, profiles, _ := setupAuthControllerWithMocks()
	users.On("GetUserByEmail", "budi@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("CreateUser", mock.Anything).Return(nil)

	var created *models.UserProfile
	profiles.On("Create", mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(0).(*models.UserProfile)
	}).Return(nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", controller.Register)

	body, _ := json.Marshal(validRegistration())
	req := httptest.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.InDelta(t, 1673.75, created.BMR, 1e-9)
	assert.Equal(t, 2887, created.DailyCalorieTarget)
	assert.Equal(t, "mifflin_st_jeor", created.BMRCalculationType)
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	storedUser := &models.User{ID: "user-1", Email: "budi@example.com", Password: string(hashed), Role: "user"}

	tests := []struct {
		name           string
		body           map[string]interface{}
		setupMock      func(*mocks.MockUserRepository, *mocks.MockUserProfileRepository)
		expectedStatus int
	}{
		{
			name: "successful login",
			body: map[string]interface{}{"email": "budi@example.com", "password": "secret123"},
			setupMock: func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {
				users.On("GetUserByEmail", "budi@example.com").Return(storedUser, nil)
				profiles.On("FindByUserID", "user-1").Return(baseProfile(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown email",
			body: map[string]interface{}{"email": "nobody@example.com", "password": "secret123"},
			setupMock: func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {
				users.On("GetUserByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "wrong password",
			body: map[string]interface{}{"email": "budi@example.com", "password": "wrong"},
			setupMock: func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {
				users.On("GetUserByEmail", "budi@example.com").Return(storedUser, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing credentials",
			body:           map[string]interface{}{"email": "budi@example.com"},
			setupMock:      func(users *mocks.MockUserRepository, profiles *mocks.MockUserProfileRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, users, profiles, _ := setupAuthControllerWithMocks()
			tt.setupMock(users, profiles)

			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.POST("/login", controller.Login)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestLoginStoresSession(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	controller, users, profiles, sessions := setupAuthControllerWithMocks()
	users.On("GetUserByEmail", "budi@example.com").Return(&models.User{
		ID: "user-1", Email: "budi@example.com", Password: string(hashed), Role: "user",
	}, nil)
	profiles.On("FindByUserID", "user-1").Return(baseProfile(), nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", controller.Login)

	body, _ := json.Marshal(map[string]interface{}{"email": "budi@example.com", "password": "secret123"})
	req := httptest.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, sessions.Size())
}

func TestLogoutRevokesSession(t *testing.T) {
	controller, _, _, sessions := setupAuthControllerWithMocks()
	sessions.Set(context.Background(), "token-1", session.Session{UserID: "user-1", CreatedAt: time.Now()})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/logout", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("token", "token-1")
		c.Next()
	}, controller.Logout)

	req := httptest.NewRequest("POST", "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, sessions.Size())
}
