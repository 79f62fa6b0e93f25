package main

import (
	"log"
	"os"
	"time"

	"hackmate/database"
	"hackmate/handlers"
	"hackmate/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Initialize services behind the handlers
	handlers.InitHandlers()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)

	// User routes (require authentication)
	userGroup := api.Group("/users")
	userGroup.Use(middleware.AuthMiddleware)
	userGroup.Get("/me", handlers.GetCurrentUser)
	userGroup.Put("/me", handlers.UpdateCurrentUser)
	userGroup.Get("/search", handlers.SearchUsers)
	userGroup.Get("/:id", handlers.GetUserProfile)

	// Team routes
	teamGroup := api.Group("/teams")
	teamGroup.Use(middleware.AuthMiddleware)
	teamGroup.Post("/", handlers.CreateTeam)
	teamGroup.Get("/", handlers.GetUserTeams)
	teamGroup.Get("/available", handlers.GetAvailableTeams)
	teamGroup.Get("/search", handlers.SearchTeams)
	teamGroup.Post("/join", handlers.JoinWithCode)
	teamGroup.Get("/code/:code", handlers.GetTeamByCode)
	teamGroup.Get("/requests", handlers.ListMyRequests)
	teamGroup.Post("/requests/:requestId/accept", handlers.AcceptRequest)
	teamGroup.Post("/requests/:requestId/reject", handlers.RejectRequest)
	teamGroup.Get("/:id", handlers.GetTeam)
	teamGroup.Put("/:id", handlers.UpdateTeam)
	teamGroup.Delete("/:id", handlers.DisbandTeam)
	teamGroup.Post("/:id/requests", handlers.RequestToJoin)
	teamGroup.Get("/:id/requests", handlers.ListTeamRequests)
	teamGroup.Post("/:id/leave", handlers.LeaveTeam)
	teamGroup.Get("/:id/members", handlers.GetTeamMembers)
	teamGroup.Delete("/:id/members/:memberId", handlers.RemoveMember)
	teamGroup.Put("/:id/transfer", handlers.TransferLeadership)

	// Hackathon routes
	hackathonGroup := api.Group("/hackathons")
	hackathonGroup.Use(middleware.AuthMiddleware)
	hackathonGroup.Get("/", handlers.ListHackathons)
	hackathonGroup.Get("/deadlines", handlers.UpcomingDeadlines)
	hackathonGroup.Get("/registrations", handlers.MyRegistrations)
	hackathonGroup.Get("/:id", handlers.GetHackathon)
	hackathonGroup.Post("/:id/register", handlers.RegisterForHackathon)
	hackathonGroup.Post("/:id/confirm", handlers.ConfirmRegistration)
	hackathonGroup.Post("/:id/cancel", handlers.CancelRegistration)

	// Project idea routes
	projectGroup := api.Group("/projects")
	projectGroup.Use(middleware.AuthMiddleware)
	projectGroup.Post("/", handlers.CreateIdea)
	projectGroup.Get("/", handlers.ListIdeas)
	projectGroup.Get("/:id", handlers.GetIdea)
	projectGroup.Delete("/:id", handlers.DeleteIdea)
	projectGroup.Post("/:id/comments", handlers.AddComment)
	projectGroup.Post("/:id/endorse", handlers.ToggleEndorsement)

	// Notification routes
	notificationGroup := api.Group("/notifications")
	notificationGroup.Use(middleware.AuthMiddleware)
	notificationGroup.Get("/", handlers.ListNotifications)
	notificationGroup.Get("/unread", handlers.UnreadCount)
	notificationGroup.Put("/read-all", handlers.MarkAllNotificationsRead)
	notificationGroup.Put("/:id/read", handlers.MarkNotificationRead)

	// WebSocket notification stream
	app.Use("/ws", handlers.WebSocketUpgrade)
	app.Get("/ws/notifications", middleware.WebSocketAuthMiddleware, handlers.NotificationStream)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🔔 Notification stream available at ws://localhost:%s/ws/notifications", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
