package config

import (
	"os"
	"time"

	"kyro-backend/internal/api/handlers"
	"kyro-backend/internal/api/routes"
	"kyro-backend/internal/middleware"
	"kyro-backend/internal/utils"
	"kyro-backend/internal/utils/storage"
	"kyro-backend/pkg/jwt"
	"kyro-backend/pkg/leaderboard"
	"kyro-backend/pkg/pickup"
	"kyro-backend/pkg/points"
	"kyro-backend/pkg/reward"
	"kyro-backend/pkg/user"
	"kyro-backend/pkg/verifier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, pickup.PickupService, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         20 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	var cache *redis.Client
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: utils.GetConfig("REDIS_PASSWORD"),
		})
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	pickupRepository := pickup.NewPickupRepository(db)
	pointsRepository := points.NewPointsRepository(db)
	leaderboardRepository := leaderboard.NewLeaderboardRepository(db)
	rewardRepository := reward.NewRewardRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	pointsService := points.NewPointsService(pointsRepository)
	verifierService := verifier.NewVerifierService(
		utils.GetConfig("GEMINI_API_KEY"),
		utils.GetConfigList("GEMINI_MODELS"),
	)
	pickupService := pickup.NewPickupService(pickupRepository, pointsService, verifierService, s3)
	leaderboardService := leaderboard.NewLeaderboardService(leaderboardRepository, cache)
	rewardService := reward.NewRewardService(rewardRepository, userRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pickupHandler := handlers.NewPickupHandler(pickupService, validator)
	pointsHandler := handlers.NewPointsHandler(pointsService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	rewardHandler := handlers.NewRewardHandler(rewardService)

	// routes
	routesConfig := routes.Config{
		App:                app,
		UserHandler:        userHandler,
		PickupHandler:      pickupHandler,
		PointsHandler:      pointsHandler,
		LeaderboardHandler: leaderboardHandler,
		RewardHandler:      rewardHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, pickupService, nil
}
