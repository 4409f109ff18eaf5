package controllers

import (
	"fmt"
	"net/http"

	"kalkulori/internal/repository"
	"kalkulori/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserProfileController struct {
	users    repository.UserRepository
	profiles repository.UserProfileRepository
}

func NewUserProfileController(users repository.UserRepository, profiles repository.UserProfileRepository) *UserProfileController {
	return &UserProfileController{users: users, profiles: profiles}
}

// GetUserProfile godoc
// @Summary Get user profile
// @Description Retrieve the authenticated user's account and profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/users/profile [get]
func (pc *UserProfileController) GetUserProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := pc.users.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "User not found",
		})
		return
	}

	profile, err := pc.profiles.FindByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "Profile not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile retrieved successfully",
		"data": gin.H{
			"user":    user,
			"profile": profile,
		},
	})
}

type updateProfileRequest struct {
	Name               string `json:"name"`
	Weight             *int   `json:"weight"`
	Height             *int   `json:"height"`
	TargetWeight       *int   `json:"target_weight"`
	FitnessLevel       string `json:"fitness_level"`
	DailyProteinTarget *int   `json:"daily_protein_target"`
	DailyCarbsTarget   *int   `json:"daily_carbs_target"`
	DailyFatTarget     *int   `json:"daily_fat_target"`
	clearTargetWeight  bool
}

// UpdateUserProfile godoc
// @Summary Update user profile
// @Description Partially update the profile; BMR and the daily calorie target are recomputed when weight, height, fitness level or target weight change
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body updateProfileRequest true "Profile fields to update"
// @Success 200 {object} map[string]interface{} "Profile updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /api/users/profile [put]
func (pc *UserProfileController) UpdateUserProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// target_weight distinguishes "absent", "set" and "cleared" (explicit
	// null), so the raw body is inspected alongside the typed binding.
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": "Invalid request data",
		})
		return
	}
	req := parseUpdateProfileRequest(raw)

	if req.FitnessLevel != "" && !utils.IsValidFitnessLevel(req.FitnessLevel) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "fail",
			"message": fmt.Sprintf("Fitness level must be one of: %v", utils.FitnessLevels()),
		})
		return
	}

	profile, err := pc.profiles.FindByUserID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "Profile not found",
		})
		return
	}

	recompute := false

	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Weight != nil {
		profile.Weight = *req.Weight
		recompute = true
	}
	if req.Height != nil {
		profile.Height = *req.Height
		recompute = true
	}
	if req.FitnessLevel != "" {
		profile.FitnessLevel = req.FitnessLevel
		recompute = true
	}
	if req.clearTargetWeight {
		profile.TargetWeight = nil
		recompute = true
	} else if req.TargetWeight != nil {
		profile.TargetWeight = req.TargetWeight
		recompute = true
	}
	if req.DailyProteinTarget != nil {
		profile.DailyProteinTarget = req.DailyProteinTarget
	}
	if req.DailyCarbsTarget != nil {
		profile.DailyCarbsTarget = req.DailyCarbsTarget
	}
	if req.DailyFatTarget != nil {
		profile.DailyFatTarget = req.DailyFatTarget
	}

	if recompute {
		profile.BMR = utils.CalculateBMR(profile.Gender, profile.Weight, profile.Height, profile.Age)
		profile.DailyCalorieTarget = utils.CalculateDailyCalorieTarget(
			profile.BMR, profile.FitnessLevel, profile.Gender, profile.Weight, profile.TargetWeight,
		)
	}

	if err := pc.profiles.Update(profile); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data": gin.H{
			"profile": profile,
		},
	})
}

func parseUpdateProfileRequest(raw map[string]interface{}) updateProfileRequest {
	var req updateProfileRequest

	if v, ok := raw["name"].(string); ok {
		req.Name = v
	}
	if v, ok := raw["fitness_level"].(string); ok {
		req.FitnessLevel = v
	}
	req.Weight = intField(raw, "weight")
	req.Height = intField(raw, "height")
	req.DailyProteinTarget = intField(raw, "daily_protein_target")
	req.DailyCarbsTarget = intField(raw, "daily_carbs_target")
	req.DailyFatTarget = intField(raw, "daily_fat_target")

	if v, present := raw["target_weight"]; present {
		switch tw := v.(type) {
		case nil:
			req.clearTargetWeight = true
		case string:
			if tw == "" {
				req.clearTargetWeight = true
			}
		case float64:
			n := int(tw)
			req.TargetWeight = &n
		}
	}

	return req
}

func intField(raw map[string]interface{}, key string) *int {
	if v, ok := raw[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}
