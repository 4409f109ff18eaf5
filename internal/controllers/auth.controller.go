package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"kalkulori/internal/models"
	"kalkulori/internal/repository"
	"kalkulori/internal/session"
	"kalkulori/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	users    repository.UserRepository
	profiles repository.UserProfileRepository
	sessions session.Store
}

func NewAuthController(users repository.UserRepository, profiles repository.UserProfileRepository, sessions session.Store) *AuthController {
	return &AuthController{users: users, profiles: profiles, sessions: sessions}
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Weight       int    `json:"weight"`
	Height       int    `json:"height"`
	Gender       string `json:"gender"`
	Age          int    `json:"age"`
	FitnessLevel string `json:"fitness_level"`
}

// Register godoc
// @Summary Register a new user
// @Description Create a user and their profile, deriving BMR and the daily calorie target
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration data"
// @Success 201 {object} map[string]interface{} "Registration successful"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Router /api/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request data",
		})
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Weight == 0 ||
		req.Height == 0 || req.Gender == "" || req.Age == 0 || req.FitnessLevel == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "All fields are required",
		})
		return
	}

	if !utils.IsValidFitnessLevel(req.FitnessLevel) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": fmt.Sprintf("Fitness level must be one of: %v", utils.FitnessLevels()),
		})
		return
	}

	if req.Gender != "male" && req.Gender != "female" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Gender must be male or female",
		})
		return
	}

	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Password is too weak (minimum 6 characters)",
		})
		return
	}

	if _, err := ac.users.GetUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Email is already registered",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	bmr := utils.CalculateBMR(req.Gender, req.Weight, req.Height, req.Age)
	dailyCalorieTarget := utils.CalculateDailyCalorieTarget(bmr, req.FitnessLevel, req.Gender, req.Weight, nil)

	user := &models.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: string(hashed),
		Role:     "user",
	}
	if err := ac.users.CreateUser(user); err != nil {
		respondError(c, err)
		return
	}

	profile := &models.UserProfile{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		Name:               req.Name,
		Weight:             req.Weight,
		Height:             req.Height,
		Gender:             req.Gender,
		Age:                req.Age,
		FitnessLevel:       req.FitnessLevel,
		BMR:                bmr,
		DailyCalorieTarget: dailyCalorieTarget,
		BMRCalculationType: "mifflin_st_jeor",
	}
	if err := ac.profiles.Create(profile); err != nil {
		respondError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.storeSession(c, token, user)

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Registration successful",
		"data": gin.H{
			"userId":  user.ID,
			"email":   user.Email,
			"profile": profile,
			"token":   token,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary Log a user in
// @Description Verify credentials and issue an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Login successful"
// @Failure 401 {object} map[string]interface{} "Wrong password"
// @Failure 404 {object} map[string]interface{} "Email not registered"
// @Router /api/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Email and password are required",
		})
		return
	}

	user, err := ac.users.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "fail",
				"message": "Email is not registered",
			})
			return
		}
		respondError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "fail",
			"message": "Wrong password",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	ac.storeSession(c, token, user)

	var profile *models.UserProfile
	if p, err := ac.profiles.FindByUserID(user.ID); err == nil {
		profile = p
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Login successful",
		"data": gin.H{
			"userId":  user.ID,
			"email":   user.Email,
			"token":   token,
			"user":    user,
			"profile": profile,
		},
	})
}

// Logout godoc
// @Summary Log the user out
// @Description Revoke the current session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Logout successful"
// @Router /api/auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	if ac.sessions != nil {
		if token, exists := c.Get("token"); exists {
			if err := ac.sessions.Delete(c.Request.Context(), token.(string)); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logout successful, token has been revoked",
	})
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyToken godoc
// @Summary Verify an access token
// @Description Parse a token and return its claims with the user and profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body verifyTokenRequest true "Token to verify"
// @Success 200 {object} map[string]interface{} "Token valid"
// @Failure 401 {object} map[string]interface{} "Token invalid or expired"
// @Router /api/auth/verify-token [post]
func (ac *AuthController) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Token is required",
		})
		return
	}

	token, err := jwt.Parse(req.Token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET_KEY")), nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "fail",
			"message": "Token is invalid or expired",
		})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Malformed token",
		})
		return
	}

	userID, _ := claims["user_id"].(string)

	var user *models.User
	var profile *models.UserProfile
	if u, err := ac.users.GetUserByID(userID); err == nil {
		user = u
	}
	if p, err := ac.profiles.FindByUserID(userID); err == nil {
		profile = p
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Token valid",
		"data": gin.H{
			"tokenInfo": gin.H{
				"uid":   userID,
				"email": claims["email"],
				"role":  claims["role"],
				"iat":   claims["iat"],
				"exp":   claims["exp"],
			},
			"user":    user,
			"profile": profile,
		},
	})
}

func (ac *AuthController) storeSession(c *gin.Context, token string, user *models.User) {
	if ac.sessions == nil {
		return
	}
	_ = ac.sessions.Set(c.Request.Context(), token, session.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: time.Now(),
	})
}
