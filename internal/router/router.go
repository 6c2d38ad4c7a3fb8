package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/xforum/backend/internal/handlers"
	"github.com/xforum/backend/internal/middleware"
	"github.com/xforum/backend/internal/models"
	"github.com/xforum/backend/internal/repositories"
	"github.com/xforum/backend/pkg/config"
	"github.com/xforum/backend/pkg/mailer"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, m mailer.Mailer) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	categoryRepo := repositories.NewPostgresCategoryRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	voteRepo := repositories.NewPostgresVoteRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	scoreRepo := repositories.NewPostgresScoreRepository(db)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, m, cfg.JWTSecret, cfg.AppBaseURL)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Public read-only routes ---
	public := e.Group("/api/v1")

	postHandler := handlers.NewPostHandler(postRepo, categoryRepo, voteRepo)
	postHandler.RegisterPublicPostRoutes(public)

	userHandler := handlers.NewUserHandler(userRepo, scoreRepo)
	userHandler.RegisterPublicUserRoutes(public)

	categoryHandler := handlers.NewCategoryHandler(categoryRepo, userRepo)
	categoryHandler.RegisterPublicCategoryRoutes(public)

	leaderboardHandler := handlers.NewLeaderboardHandler(scoreRepo, postRepo, categoryRepo)
	leaderboardHandler.RegisterLeaderboardRoutes(public)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	public.GET("/posts/:post_id/comments", commentHandler.GetCommentsForPost)

	voteHandler := handlers.NewVoteHandler(voteRepo, postRepo)
	public.GET("/posts/:post_id/votes", voteHandler.GetVoteCounts)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler.RegisterProfileRoutes(api)
	api.PUT("/profile/password", authHandler.ChangePassword)

	postHandler.RegisterPostRoutes(api)

	api.POST("/posts/:post_id/comments", commentHandler.CreateComment)
	api.DELETE("/comments/:id", commentHandler.DeleteComment)

	api.POST("/posts/:post_id/votes/:vote_type", voteHandler.CastVote)

	categoryHandler.RegisterCategoryRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	log.Println("All routes configured.")
}
