package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/pillpal/backend/config"
)

// Medication photos are downscaled to fit this box before upload. Images
// already inside the box are stored as-is, never upscaled.
const (
	maxImageWidth  = 800
	maxImageHeight = 600
)

// ImageService stores medication photos in S3. Uploads are resized and
// re-encoded; deletes remove the hosted object and surface failures as an
// ImageHostError instead of swallowing them.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Upload validates, resizes and stores an image, returning its public URL.
func (s *ImageService) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("image file is empty: %w", ErrInvalidInput)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("file must be an image, got %q: %w", contentType, ErrInvalidInput)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("could not decode image: %w", ErrInvalidInput)
	}

	img = fitWithin(img, maxImageWidth, maxImageHeight)

	var buf bytes.Buffer
	ext := "jpg"
	uploadType := "image/jpeg"
	if format == "png" {
		ext = "png"
		uploadType = "image/png"
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return "", &ImageHostError{Op: "encode", Err: err}
	}

	key := fmt.Sprintf("medications/%s.%s", uuid.New().String(), ext)
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(uploadType),
	})
	if err != nil {
		return "", &ImageHostError{Op: "upload", Err: err}
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageService] Uploaded medication image: %s", url)
	return url, nil
}

// Delete removes the hosted object behind a previously returned URL.
func (s *ImageService) Delete(ctx context.Context, imageURL string) error {
	key := s.objectKey(imageURL)
	if key == "" {
		log.Printf("[ImageService] Could not extract object key from URL: %s", imageURL)
		return nil
	}

	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return &ImageHostError{Op: "delete", Err: err}
	}

	log.Printf("[ImageService] Deleted medication image: %s", key)
	return nil
}

// Replace deletes the old image, if any, then uploads the new one. The old
// object is removed first so a failed delete is not papered over by a
// successful upload.
func (s *ImageService) Replace(ctx context.Context, oldURL string, data []byte, contentType string) (string, error) {
	if strings.TrimSpace(oldURL) != "" {
		if err := s.Delete(ctx, oldURL); err != nil {
			return "", err
		}
	}
	return s.Upload(ctx, data, contentType)
}

// objectKey extracts the S3 key from a public object URL. Returns "" when
// the URL does not point at this service's bucket layout.
func (s *ImageService) objectKey(imageURL string) string {
	marker := ".amazonaws.com/"
	idx := strings.Index(imageURL, marker)
	if idx == -1 {
		return ""
	}
	return imageURL[idx+len(marker):]
}

// fitWithin downscales img to fit inside maxW x maxH, keeping the aspect
// ratio. Smaller images pass through untouched.
func fitWithin(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
