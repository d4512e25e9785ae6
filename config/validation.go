package config

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minJWTSecretLength = 32

// ValidateConfig checks that the loaded configuration is usable for the
// given environment.
func ValidateConfig(cfg *Config, env Environment) error {
	required := map[string]string{
		"DB_HOST":    cfg.DBHost,
		"DB_PORT":    cfg.DBPort,
		"DB_USER":    cfg.DBUser,
		"DB_NAME":    cfg.DBName,
		"JWT_SECRET": cfg.JWTSecret,
	}
	for field, value := range required {
		if value == "" {
			return ValidationError{Field: field, Message: "is required"}
		}
	}

	if env == Production {
		if len(cfg.JWTSecret) < minJWTSecretLength {
			return ValidationError{
				Field:   "JWT_SECRET",
				Message: fmt.Sprintf("must be at least %d characters in production", minJWTSecretLength),
			}
		}
		// A fixed request identity bypasses authentication entirely, so a
		// production process must refuse to start with one configured.
		if cfg.DevUserID != uuid.Nil {
			return ValidationError{Field: "DEV_USER_ID", Message: "must not be set in production"}
		}
		if cfg.DBPassword == "" {
			return ValidationError{Field: "db_password", Message: "secret is required in production"}
		}
	}

	return nil
}
