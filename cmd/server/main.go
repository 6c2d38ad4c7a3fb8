package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/xforum/backend/internal/router"
	"github.com/xforum/backend/pkg/config"
	"github.com/xforum/backend/pkg/mailer"
	"github.com/xforum/backend/pkg/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.CloseDB(db)

	// Outbound email
	m := mailer.NewResendMailer(cfg.ResendAPIKey, cfg.MailFrom)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db, cfg, m)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
