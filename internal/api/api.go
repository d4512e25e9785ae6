package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pillpal/backend/internal/middleware"
	"github.com/pillpal/backend/internal/service"
)

// Deps carries everything the API surface needs. Images and RedisClient
// are optional; when nil the image endpoints reject uploads and intake
// recording runs unthrottled.
type Deps struct {
	DB          *gorm.DB
	JWTSecret   string
	JWTExpiry   time.Duration
	Images      service.IImageService
	RedisClient *redis.Client
}

// SetupAPI wires services and handlers onto the /api route group.
func SetupAPI(router *gin.Engine, deps Deps) {
	root := router.Group("/api")
	{
		// Initialize services
		authService := service.NewAuthService(deps.DB, deps.JWTSecret, deps.JWTExpiry)
		medicationService := service.NewMedicationService(deps.DB, deps.Images)
		intakeService := service.NewIntakeService(deps.DB)
		statusService := service.NewMedicationStatusService(deps.DB, intakeService)
		reminderService := service.NewReminderService(deps.DB)

		var intakeLimiter *middleware.RateLimiter
		if deps.RedisClient != nil {
			intakeLimiter = middleware.NewIntakeRateLimiter(deps.RedisClient)
		}

		// Initialize handlers
		authHandler := NewAuthHandler(authService)
		userHandler := NewUserHandler(authService)
		medicationHandler := NewMedicationHandler(medicationService, statusService, authService)
		intakeHandler := NewIntakeHandler(intakeService, authService, intakeLimiter)
		reminderHandler := NewReminderHandler(reminderService, authService)

		// Register routes
		authHandler.RegisterRoutes(root)
		userHandler.RegisterRoutes(root)
		medicationHandler.RegisterRoutes(root)
		intakeHandler.RegisterRoutes(root)
		reminderHandler.RegisterRoutes(root)
	}
}
