package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pillpal/backend/internal/service"
)

// Context keys set by the auth and dev-identity middlewares.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware validates the JWT bearer token and stores the caller's
// identity in the gin context.
func AuthMiddleware(validator service.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A dev-identity middleware earlier in the chain may have already
		// authenticated this request.
		if _, exists := c.Get(ContextUserID); exists {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, service.ErrUnauthenticated)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, service.ErrUnauthenticated)
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortWithError(c, service.ErrUnauthenticated)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
