package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kalkulori/internal/apperrors"
	"kalkulori/internal/logger"
	"kalkulori/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	foodCacheKeyPrefix = "food:"
	foodCacheTTL       = 30 * time.Minute

	// FoodPageSize is the maximum page size for the cursor-based listing.
	FoodPageSize = 10
	// SearchPageSize is the page size for the offset-based search listing.
	SearchPageSize = 60
	// SearchMaxRows caps how deep the offset listing may scan and count.
	SearchMaxRows = 1000
)

// FoodPageParams selects a page of catalog foods. When Name is set the page is
// ordered by food_name ascending, otherwise by created_at descending; id is
// always the tie-breaking secondary key so cursoring stays deterministic.
type FoodPageParams struct {
	Limit     int
	CursorID  string
	Direction string // "next" or "prev"
	Name      string
	Verified  *bool
}

type FoodRepository interface {
	Create(food *models.FoodItem) error
	FindByID(id string) (*models.FoodItem, error)
	FindPage(params FoodPageParams) ([]models.FoodItem, bool, error)
	SearchByName(name string, offset, limit int) ([]models.FoodItem, int64, error)
	Patch(id string, data map[string]interface{}) error
	Delete(id string) error
}

type foodRepository struct {
	db    *gorm.DB
	redis *redis.Client
	ctx   context.Context
}

func foodCacheKey(id string) string {
	return foodCacheKeyPrefix + id
}

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db, redis: nil, ctx: context.Background()}
}

// NewCachedFoodRepository caches single-food reads in redis. Catalog foods are
// read on every meal entry resolution, so hits here save a query per entry.
func NewCachedFoodRepository(db *gorm.DB, redisClient *redis.Client) FoodRepository {
	return &foodRepository{db: db, redis: redisClient, ctx: context.Background()}
}

func (r *foodRepository) Create(food *models.FoodItem) error {
	return r.db.Create(food).Error
}

func (r *foodRepository) FindByID(id string) (*models.FoodItem, error) {
	if r.redis != nil {
		cached, err := r.redis.Get(r.ctx, foodCacheKey(id)).Result()
		if err == nil {
			var food models.FoodItem
			if err := json.Unmarshal([]byte(cached), &food); err == nil {
				return &food, nil
			}
		}
	}

	var food models.FoodItem
	if err := r.db.Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}

	if r.redis != nil {
		if foodJSON, err := json.Marshal(food); err == nil {
			if err := r.redis.Set(r.ctx, foodCacheKey(id), foodJSON, foodCacheTTL).Err(); err != nil {
				logger.Log.Warnf("Failed to cache food %s: %v", id, err)
			}
		}
	}

	return &food, nil
}

// FindPage returns one page plus a has-more flag. It fetches limit+1 rows; the
// extra row only signals that another page exists and is not returned.
func (r *foodRepository) FindPage(params FoodPageParams) ([]models.FoodItem, bool, error) {
	byName := params.Name != ""

	sortColumn := "created_at"
	ascending := false
	if byName {
		sortColumn = "food_name"
		ascending = true
	}

	query := r.db.Model(&models.FoodItem{})
	if byName {
		query = query.Where("food_name ILIKE ?", "%"+params.Name+"%")
	}
	if params.Verified != nil {
		query = query.Where("is_verified = ?", *params.Verified)
	}

	reversed := false
	if params.CursorID != "" {
		var cursor models.FoodItem
		if err := r.db.Where("id = ?", params.CursorID).First(&cursor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, apperrors.NewValidation("Invalid cursor")
			}
			return nil, false, fmt.Errorf("resolve cursor: %w", err)
		}

		cursorKey := cursor.CreatedAt.UTC()
		var cursorValue interface{} = cursorKey
		if byName {
			cursorValue = cursor.FoodName
		}

		forward := params.Direction != "prev"
		if forward == ascending {
			query = query.Where(fmt.Sprintf("(%s, id) > (?, ?)", sortColumn), cursorValue, cursor.ID)
		} else {
			query = query.Where(fmt.Sprintf("(%s, id) < (?, ?)", sortColumn), cursorValue, cursor.ID)
		}
		if !forward {
			// Fetch the rows immediately preceding the cursor in inverted
			// order, then flip them back below.
			ascending = !ascending
			reversed = true
		}
	}

	order := "DESC"
	if ascending {
		order = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s, id %s", sortColumn, order, order))

	var foods []models.FoodItem
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

// SearchByName is the offset-based listing. The returned total is capped at
// SearchMaxRows so counting never scans the whole table.
func (r *foodRepository) SearchByName(name string, offset, limit int) ([]models.FoodItem, int64, error) {
	base := r.db.Model(&models.FoodItem{})
	if name != "" {
		base = base.Where("food_name ILIKE ?", "%"+name+"%")
	}

	var total int64
	countQuery := r.db.Table("(?) AS capped",
		base.Session(&gorm.Session{}).Select("id").Limit(SearchMaxRows),
	)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var foods []models.FoodItem
	err := base.Session(&gorm.Session{}).
		Order("food_name ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&foods).Error
	if err != nil {
		return nil, 0, err
	}

	return foods, total, nil
}

func (r *foodRepository) Patch(id string, data map[string]interface{}) error {
	var food models.FoodItem
	if err := r.db.Where("id = ?", id).First(&food).Error; err != nil {
		return err
	}
	if err := r.db.Model(&food).Updates(data).Error; err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *foodRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&models.FoodItem{}).Error; err != nil {
		return err
	}
	r.invalidate(id)
	return nil
}

func (r *foodRepository) invalidate(id string) {
	if r.redis == nil {
		return
	}
	if err := r.redis.Del(r.ctx, foodCacheKey(id)).Err(); err != nil {
		logger.Log.Warnf("Failed to invalidate food cache %s: %v", id, err)
	}
}
