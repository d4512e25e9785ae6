package api

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pillpal/backend/internal/middleware"
	"github.com/pillpal/backend/internal/service"
)

// currentUserID pulls the authenticated user id out of the gin context.
// The auth middleware guarantees it is present on protected routes, but a
// misregistered route should fail loudly rather than act as nobody.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	val, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, service.ErrUnauthenticated
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil, service.ErrUnauthenticated
	}
	return id, nil
}

// bindJSON decodes the request body into obj. A body the decoder cannot
// parse is the client's fault, so anything that is not a per-field
// validation failure (malformed JSON, type mismatches, bad UUIDs or dates)
// is tagged as invalid input instead of surfacing as a server error.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return fmt.Errorf("invalid request body: %v: %w", err, service.ErrInvalidInput)
}

// parseID parses the :id style path parameters.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
