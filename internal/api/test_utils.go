package api

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pillpal/backend/internal/middleware"
	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/service"
	"github.com/pillpal/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret"

// setupTestRouter builds a router with the full middleware chain and API
// surface over an in-memory database.
func setupTestRouter(t *testing.T, images service.IImageService) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.NewSQLiteDB(t)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	SetupAPI(router, Deps{
		DB:        db,
		JWTSecret: testJWTSecret,
		JWTExpiry: time.Hour,
		Images:    images,
	})

	return router, db
}

// createUserAndToken registers a user through the auth service and returns
// it together with a valid bearer token.
func createUserAndToken(t *testing.T, db *gorm.DB, username, email string) (*models.User, string) {
	t.Helper()

	authService := service.NewAuthService(db, testJWTSecret, time.Hour)
	user, err := authService.Register(context.Background(), username, email, "password123")
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	token, _, err := authService.Login(context.Background(), username, "password123")
	if err != nil {
		t.Fatalf("failed to log in test user: %v", err)
	}
	return user, token
}
