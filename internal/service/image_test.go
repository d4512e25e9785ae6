package service

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadRejectsBadInput(t *testing.T) {
	svc := NewImageService(nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, nil, "image/png")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Upload(ctx, []byte("data"), "application/pdf")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Right MIME type, garbage bytes.
	_, err = svc.Upload(ctx, []byte("not-an-image"), "image/png")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestObjectKeyExtraction(t *testing.T) {
	svc := NewImageService(nil)

	key := svc.objectKey("https://bucket.s3.amazonaws.com/medications/abc.png")
	assert.Equal(t, "medications/abc.png", key)

	assert.Empty(t, svc.objectKey("https://example.com/elsewhere.png"))
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"small image untouched", 400, 300, 400, 300},
		{"exact bounds untouched", 800, 600, 800, 600},
		{"wide image scaled by width", 1600, 600, 800, 300},
		{"tall image scaled by height", 800, 1200, 400, 600},
		{"both oversized keeps aspect", 2400, 1800, 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := fitWithin(src, maxImageWidth, maxImageHeight)
			assert.Equal(t, tt.wantW, got.Bounds().Dx())
			assert.Equal(t, tt.wantH, got.Bounds().Dy())
		})
	}
}
