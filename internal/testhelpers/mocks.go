package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockImageService is a mock implementation of the image hosting service
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageService) Delete(ctx context.Context, imageURL string) error {
	args := m.Called(ctx, imageURL)
	return args.Error(0)
}

func (m *MockImageService) Replace(ctx context.Context, oldURL string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, oldURL, data, contentType)
	return args.String(0), args.Error(1)
}
