package routes

import (
	"medbridge/internal/adapters/http/handlers"
	"medbridge/internal/adapters/http/middleware"
	"medbridge/internal/adapters/persistence/repositories"
	"medbridge/internal/config"
	"medbridge/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Deps holds the long-lived services main must shut down
type Deps struct {
	Audit *services.AuditService
	Cron  *services.CronService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *Deps {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	medicineRepo := repositories.NewMedicineRepository(db)
	logisticsRepo := repositories.NewLogisticsRepository(db)
	actionLogRepo := repositories.NewActionLogRepository(db)

	// Initialize services
	auditService := services.NewAuditService(actionLogRepo)
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo, auditService)
	medicineService := services.NewMedicineService(medicineRepo, auditService)
	logisticsService := services.NewLogisticsService(logisticsRepo, medicineRepo)
	dashboardService := services.NewDashboardService(medicineRepo, userRepo)
	cronService := services.NewCronService(medicineRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	medicineHandler := handlers.NewMedicineHandler(medicineService, cfg)
	logisticsHandler := handlers.NewLogisticsHandler(logisticsService)
	adminHandler := handlers.NewAdminHandler(userService, medicineService, auditService, dashboardService)
	ngoHandler := handlers.NewNGOHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded photos
	app.Static("/uploads", cfg.Upload.Dir)

	// API group
	api := app.Group("/api")

	// Auth routes (register/login public, profile authenticated)
	auth := api.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	auth.Put("/me", middleware.AuthMiddleware(cfg), authHandler.UpdateMe)

	// Medicine routes
	medicines := api.Group("/medicines")
	medicines.Get("/", medicineHandler.List)
	medicines.Post("/", middleware.AuthMiddleware(cfg), medicineHandler.Upload)
	medicines.Get("/my", middleware.AuthMiddleware(cfg), medicineHandler.ListMine)
	medicines.Put("/:id/approve", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), medicineHandler.Approve)
	medicines.Put("/:id/reject", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), medicineHandler.Reject)
	medicines.Post("/claim/:id", middleware.AuthMiddleware(cfg), middleware.NGOOnly(), medicineHandler.Claim)

	// Logistics routes (volunteers)
	logistics := api.Group("/logistics")
	logistics.Use(middleware.AuthMiddleware(cfg), middleware.VolunteerOnly())
	logistics.Post("/pickup/:medicineId", logisticsHandler.Pickup)
	logistics.Post("/deliver/:medicineId", logisticsHandler.Deliver)
	logistics.Get("/my", logisticsHandler.ListMine)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Patch("/users/:id/block", adminHandler.BlockUser)
	admin.Get("/medicines", adminHandler.ListMedicines)
	admin.Put("/medicines/:id", adminHandler.UpdateMedicine)
	admin.Get("/logs", adminHandler.ListLogs)
	admin.Get("/dashboard", adminHandler.Dashboard)

	// NGO routes
	ngo := api.Group("/ngo")
	ngo.Use(middleware.AuthMiddleware(cfg), middleware.NGOOnly())
	ngo.Get("/dashboard", ngoHandler.Dashboard)

	return &Deps{
		Audit: auditService,
		Cron:  cronService,
	}
}
