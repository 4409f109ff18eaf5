package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kalkulori/internal/apperrors"
	"kalkulori/internal/logger"
	"kalkulori/internal/models"
)

const (
	maxAttempts    = 3
	backoffStep    = time.Second
	defaultTimeout = 10 * time.Second
	planTimeout    = 30 * time.Second
)

// Recipe is the ML service's recipe record as it comes off the wire.
type Recipe struct {
	RecipeID            json.Number `json:"RecipeId"`
	Name                string      `json:"Name"`
	Calories            float64     `json:"Calories"`
	ProteinContent      float64     `json:"ProteinContent"`
	CarbohydrateContent float64     `json:"CarbohydrateContent"`
	FatContent          float64     `json:"FatContent"`
	ServingSize         float64     `json:"ServingSize"`
	ServingUnit         string      `json:"ServingUnit"`
	Images              string      `json:"Images"`
}

// Client is the remote recommendation capability: meal-plan generation and
// recipe search/detail.
type Client interface {
	GenerateMealPlan(ctx context.Context, totalCalories, maxPlans int, tolerancePercent float64) (json.RawMessage, error)
	GetRecipeDetail(ctx context.Context, recipeID string) (*Recipe, error)
	SearchRecipes(ctx context.Context, query string, maxResults int) ([]Recipe, error)
	SuggestMeals(ctx context.Context, calories int, mealType string, maxResults int) ([]Recipe, error)
}

type httpClient struct {
	baseURL string
	client  *http.Client
}

// NewClient creates an ML service client for the given base URL.
func NewClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

func (c *httpClient) GenerateMealPlan(ctx context.Context, totalCalories, maxPlans int, tolerancePercent float64) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("total_calories", strconv.Itoa(totalCalories))
	params.Set("max_plans", strconv.Itoa(maxPlans))
	params.Set("calorie_tolerance_percent", strconv.FormatFloat(tolerancePercent, 'f', -1, 64))

	var plans json.RawMessage
	if err := c.getJSON(ctx, "/generate-meal-plan/?"+params.Encode(), planTimeout, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (c *httpClient) GetRecipeDetail(ctx context.Context, recipeID string) (*Recipe, error) {
	var recipe Recipe
	err := c.getJSON(ctx, "/recipes/"+url.PathEscape(recipeID), defaultTimeout, &recipe)
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (c *httpClient) SearchRecipes(ctx context.Context, query string, maxResults int) ([]Recipe, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxResults))

	var recipes []Recipe
	if err := c.getJSON(ctx, "/search/?"+params.Encode(), defaultTimeout, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *httpClient) SuggestMeals(ctx context.Context, calories int, mealType string, maxResults int) ([]Recipe, error) {
	params := url.Values{}
	params.Set("calories", strconv.Itoa(calories))
	if mealType != "" {
		params.Set("meal_type", mealType)
	}
	params.Set("max_results", strconv.Itoa(maxResults))

	var recipes []Recipe
	if err := c.getJSON(ctx, "/meal-suggestions/?"+params.Encode(), defaultTimeout, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// getJSON performs the bounded retry loop: up to three sequential attempts
// with a linearly increasing pause on transient failures. A 404 from the
// service is final and maps to NotFound; retries are for connection refusal,
// unresolvable host, timeout and malformed bodies. Once the loop starts it
// runs to completion or exhaustion.
func (c *httpClient) getJSON(ctx context.Context, path string, timeout time.Duration, out interface{}) error {
	var lastKind apperrors.UpstreamKind
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		kind, final, err := c.attempt(ctx, path, timeout, out)
		if err == nil {
			return nil
		}
		if final {
			return err
		}

		lastKind, lastErr = kind, err
		if attempt < maxAttempts {
			pause := time.Duration(attempt) * backoffStep
			logger.Log.Warnw("ML service call failed, retrying",
				"path", path,
				"attempt", attempt,
				"kind", string(kind),
				"backoff", pause.String(),
				"error", err.Error(),
			)
			time.Sleep(pause)
		}
	}

	return apperrors.NewUpstream(lastKind, lastErr)
}

// attempt runs one request. final=true short-circuits the retry loop for
// errors that retrying cannot fix.
func (c *httpClient) attempt(ctx context.Context, path string, timeout time.Duration, out interface{}) (apperrors.UpstreamKind, bool, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.UpstreamMalformed, true, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return classifyTransportError(err), false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", true, apperrors.NewNotFound("ml service has no such resource")
	}
	if resp.StatusCode >= 400 {
		return apperrors.UpstreamMalformed, false, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.UpstreamMalformed, false, fmt.Errorf("failed to decode ml response: %w", err)
	}

	return "", false, nil
}

func classifyTransportError(err error) apperrors.UpstreamKind {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return apperrors.UpstreamTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.UpstreamTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperrors.UpstreamNotFound
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return apperrors.UpstreamRefused
	}

	return apperrors.UpstreamRefused
}

// NormalizeRecipe maps a raw recipe into the shared per-serving nutrition
// shape. Calories round to an int, macros round to 2 decimals, serving size
// and unit default to 1 and "porsi" when the service omits them.
func NormalizeRecipe(recipe *Recipe) *models.FoodDetails {
	servingSize := recipe.ServingSize
	if servingSize <= 0 {
		servingSize = 1
	}
	servingUnit := recipe.ServingUnit
	if servingUnit == "" {
		servingUnit = "porsi"
	}

	return &models.FoodDetails{
		ID:                 RecipeFoodID(recipe.RecipeID.String()),
		FoodName:           recipe.Name,
		CaloriesPerServing: int(math.Round(recipe.Calories)),
		ProteinPerServing:  round2(recipe.ProteinContent),
		CarbsPerServing:    round2(recipe.CarbohydrateContent),
		FatPerServing:      round2(recipe.FatContent),
		ServingSize:        servingSize,
		ServingUnit:        servingUnit,
		ImageURL:           FirstImageURL(recipe.Images),
		IsRecipe:           true,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
