package main

import (
	"log"
	"os"

	"nestira/config"
	"nestira/db"
	"nestira/email"
	"nestira/middleware"
	"nestira/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	// Initialize database and seed the default accounts
	db.InitDatabase(cfg.DBPath)
	db.SeedAccounts(cfg.DefaultAdminPassword, cfg.DefaultDemoPassword)

	config.InitRedis()
	email.Init(cfg.ResendAPIKey, cfg.MailFrom, cfg.AdminEmail)

	// Create uploads directory if it doesn't exist
	if _, err := os.Stat("uploads"); os.IsNotExist(err) {
		os.Mkdir("uploads", 0755)
	}

	app := fiber.New()

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.RateLimiter())

	// Serve static files
	app.Static("/uploads", "./uploads")

	routes.SetupRoutes(app)

	log.Fatal(app.Listen(":" + cfg.Port))
}
