package service

import (
	"context"

	"github.com/pillpal/backend/internal/types"
)

// IImageService abstracts the image host so handlers and tests can swap in
// a fake without an S3 client.
type IImageService interface {
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, imageURL string) error
	Replace(ctx context.Context, oldURL string, data []byte, contentType string) (string, error)
}

// TokenValidator is the part of AuthService the auth middleware needs.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}
