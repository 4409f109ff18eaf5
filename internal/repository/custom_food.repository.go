package repository

import (
	"fmt"

	"kalkulori/internal/models"

	"gorm.io/gorm"
)

// CustomFoodPageParams selects a page of a user's custom foods, newest first.
type CustomFoodPageParams struct {
	UserID    string
	Limit     int
	CursorID  string
	Direction string
}

type CustomFoodRepository interface {
	Create(food *models.UserCustomFood) error
	// FindByID looks a custom food up by id alone. Listing enrichment uses
	// this deliberately without an owner filter.
	FindByID(id string) (*models.UserCustomFood, error)
	// FindByIDAndUser additionally filters by owner; used on the meal entry
	// creation path.
	FindByIDAndUser(id, userID string) (*models.UserCustomFood, error)
	FindPageByUser(params CustomFoodPageParams) ([]models.UserCustomFood, bool, error)
}

type customFoodRepository struct {
	db *gorm.DB
}

func NewCustomFoodRepository(db *gorm.DB) CustomFoodRepository {
	return &customFoodRepository{db: db}
}

func (r *customFoodRepository) Create(food *models.UserCustomFood) error {
	return r.db.Create(food).Error
}

func (r *customFoodRepository) FindByID(id string) (*models.UserCustomFood, error) {
	var food models.UserCustomFood
	err := r.db.Where("id = ?", id).First(&food).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *customFoodRepository) FindByIDAndUser(id, userID string) (*models.UserCustomFood, error) {
	var food models.UserCustomFood
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&food).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// FindPageByUser pages the owner's custom foods by created_at descending with
// id as tie-breaker. A cursor belonging to another user is ignored.
func (r *customFoodRepository) FindPageByUser(params CustomFoodPageParams) ([]models.UserCustomFood, bool, error) {
	query := r.db.Model(&models.UserCustomFood{}).Where("user_id = ?", params.UserID)

	reversed := false
	if params.CursorID != "" {
		var cursor models.UserCustomFood
		err := r.db.Where("id = ? AND user_id = ?", params.CursorID, params.UserID).First(&cursor).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, false, fmt.Errorf("invalid cursor: %w", err)
		}
		if err == nil {
			cursorKey := cursor.CreatedAt.UTC()
			if params.Direction == "prev" {
				query = query.Where("(created_at, id) > (?, ?)", cursorKey, cursor.ID)
				reversed = true
			} else {
				query = query.Where("(created_at, id) < (?, ?)", cursorKey, cursor.ID)
			}
		}
	}

	if reversed {
		query = query.Order("created_at ASC, id ASC")
	} else {
		query = query.Order("created_at DESC, id DESC")
	}

	var foods []models.UserCustomFood
	if err := query.Limit(params.Limit + 1).Find(&foods).Error; err != nil {
		return nil, false, err
	}

	hasMore := len(foods) > params.Limit
	if hasMore {
		foods = foods[:params.Limit]
	}

	if reversed {
		for i, j := 0, len(foods)-1; i < j; i, j = i+1, j-1 {
			foods[i], foods[j] = foods[j], foods[i]
		}
	}

	return foods, hasMore, nil
}
