package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"medbridge/internal/adapters/http/middleware"
	"medbridge/internal/adapters/http/routes"
	"medbridge/internal/adapters/persistence/models"
	"medbridge/internal/config"
	"medbridge/internal/pkg/upload"

	"github.com/gofiber/fiber/v2"

	_ "medbridge/docs" // Swagger docs
)

// @title MedBridge API
// @version 1.0
// @description Surplus medicine donation and redistribution API

// @contact.name API Support

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default admin account
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed database: %v", err)
	}

	// Ensure uploads folder exists
	if err := upload.EnsureDir(cfg.Upload.Dir); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MedBridge API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	deps := routes.Setup(app, db, cfg)

	// Start expiry sweep scheduler
	deps.Cron.Start()
	defer deps.Cron.Stop()

	// Flush queued audit entries on shutdown
	defer deps.Audit.Close()

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
