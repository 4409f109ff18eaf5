package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kalkulori/database"
	"kalkulori/docs"
	"kalkulori/internal/controllers"
	"kalkulori/internal/logger"
	"kalkulori/internal/ml"
	"kalkulori/internal/repository"
	"kalkulori/internal/services"
	"kalkulori/internal/session"
	"kalkulori/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	loadErr := godotenv.Load()

	if err := logger.Initialize(os.Getenv("LOG_LEVEL")); err != nil {
		panic(err)
	}
	if loadErr != nil {
		// Fine in deployed environments where config comes from the process env.
		logger.Log.Info("No .env file found, using process environment")
	}

	docs.SwaggerInfo.Title = "kalkulori API"
	docs.SwaggerInfo.Description = "Nutrition tracking API with meal logging, daily calorie ledger and ML meal recommendations."
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		logger.Log.Fatalf("Failed to run database migrations: %v", err)
	}

	redisClient := connectRedis()

	var sessions session.Store
	if redisClient != nil {
		sessions = session.NewRedisStore(redisClient, session.DefaultTTL)
		logger.Log.Info("Using redis session store")
	} else {
		memStore := session.NewMemoryStore(session.DefaultTTL)
		go sweepSessions(memStore)
		sessions = memStore
		logger.Log.Warn("Redis unavailable, using in-memory session store (single instance only)")
	}

	var foodRepo repository.FoodRepository
	if redisClient != nil {
		foodRepo = repository.NewCachedFoodRepository(database.DB, redisClient)
	} else {
		foodRepo = repository.NewFoodRepository(database.DB)
	}

	userRepo := repository.NewUserRepository(database.DB)
	profileRepo := repository.NewUserProfileRepository(database.DB)
	customFoodRepo := repository.NewCustomFoodRepository(database.DB)
	dailyLogRepo := repository.NewDailyLogRepository(database.DB)
	mealEntryRepo := repository.NewMealEntryRepository(database.DB)

	mlServiceURL := os.Getenv("ML_SERVICE_URL")
	if mlServiceURL == "" {
		mlServiceURL = "http://localhost:8000"
	}
	mlClient := ml.NewClient(mlServiceURL)

	resolver := services.NewFoodResolver(foodRepo, customFoodRepo, mlClient)
	mealService := services.NewMealService(database.DB, mealEntryRepo, dailyLogRepo, profileRepo, resolver)

	authController := controllers.NewAuthController(userRepo, profileRepo, sessions)
	profileController := controllers.NewUserProfileController(userRepo, profileRepo)
	foodController := controllers.NewFoodController(foodRepo, mlClient)
	customFoodController := controllers.NewCustomFoodController(customFoodRepo)
	mealController := controllers.NewMealController(mealService, mlClient, profileRepo, dailyLogRepo)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "kalkulori API is running",
			"version": "1.0.0",
			"status":  "healthy",
		})
	})

	routes.RegisterAuthRoutes(router, authController, sessions)
	routes.RegisterUserRoutes(router, profileController, sessions)
	routes.RegisterFoodRoutes(router, foodController, customFoodController, sessions)
	routes.RegisterMealRoutes(router, mealController, sessions)
	routes.RegisterSwaggerRoutes(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infow("Server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Errorf("Forced shutdown: %v", err)
	}
	logger.Log.Info("Server stopped")
}

func connectRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Log.Warnf("Redis connection failed: %v", err)
		return nil
	}

	logger.Log.Infow("Connected to redis", "addr", addr)
	return client
}

func sweepSessions(store *session.MemoryStore) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		if err := store.SweepExpired(context.Background()); err != nil {
			logger.Log.Warnf("Session sweep failed: %v", err)
		}
	}
}
