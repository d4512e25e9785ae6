package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pillpal/backend/internal/models"
)

// DevIdentity injects a fixed user identity into requests that carry no
// Authorization header. It exists so Swagger-style exploration and local
// frontend work do not require a login flow.
//
// It is only ever installed when a dev user id is configured AND the
// environment is not production; config validation rejects the combination
// outright. Requests that do carry a token still go through the normal
// validation path.
func DevIdentity(userID uuid.UUID, username string) gin.HandlerFunc {
	log.Printf("[DevIdentity] WARNING: dev identity enabled, unauthenticated requests act as user %s (%s)", username, userID)

	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Set(ContextUserID, userID)
			c.Set(ContextUsername, username)
			c.Set(ContextRole, models.RoleUser)
		}
		c.Next()
	}
}
