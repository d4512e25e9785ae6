package types

import (
	"github.com/google/uuid"

	"github.com/pillpal/backend/internal/models"
)

// TokenClaims is the identity carried by a validated JWT.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
	Role     models.Role
}
