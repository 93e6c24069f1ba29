package routes

import (
	"kyro-backend/internal/api/handlers"
	"kyro-backend/internal/middleware"
	"kyro-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	UserHandler        handlers.UserHandler
	PickupHandler      handlers.PickupHandler
	PointsHandler      handlers.PointsHandler
	LeaderboardHandler handlers.LeaderboardHandler
	RewardHandler      handlers.RewardHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Pickups()
	c.Points()
	c.Leaderboard()
	c.Rewards()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
	}
}

func (c *Config) Pickups() {
	pickups := c.App.Group("/api/v1/pickups", c.Middleware.AuthMiddleware(c.JWTService))
	pickups.Post("", c.PickupHandler.SchedulePickup)
	pickups.Get("", c.PickupHandler.GetPickupHistory)
	pickups.Post("/:id/verify", c.PickupHandler.VerifyPickup)
}

func (c *Config) Points() {
	points := c.App.Group("/api/v1/points", c.Middleware.AuthMiddleware(c.JWTService))
	points.Get("/me", c.PointsHandler.GetMyPoints)
}

func (c *Config) Leaderboard() {
	leaderboard := c.App.Group("/api/v1/leaderboard")
	leaderboard.Get("", c.LeaderboardHandler.GetLeaderboard)
	leaderboard.Get("/stats", c.LeaderboardHandler.GetGlobalStats)
}

func (c *Config) Rewards() {
	rewards := c.App.Group("/api/v1/rewards", c.Middleware.AuthMiddleware(c.JWTService))
	rewards.Get("", c.RewardHandler.GetRewards)
	rewards.Post("/:id/redeem", c.RewardHandler.RedeemReward)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
