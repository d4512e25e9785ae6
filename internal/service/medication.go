package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pillpal/backend/internal/mapper"
	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/types"
)

// ImageUpload carries a raw uploaded file into the service layer.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// MedicationService handles medication CRUD, ownership checks and the
// attached image lifecycle.
type MedicationService struct {
	db     *gorm.DB
	images IImageService
}

func NewMedicationService(db *gorm.DB, images IImageService) *MedicationService {
	return &MedicationService{db: db, images: images}
}

// ListOptions narrows a medication listing.
type ListOptions struct {
	ActiveOnly bool
	Name       string
}

// List returns the user's medications, optionally filtered by active flag
// and case-insensitive substring name match.
func (s *MedicationService) List(ctx context.Context, userID uuid.UUID, opts ListOptions) ([]models.Medication, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if opts.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if opts.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(opts.Name)+"%")
	}

	var medications []models.Medication
	if err := query.Order("created_at DESC").Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

// Get returns a medication owned by userID, or ErrNotFound / ErrForbidden.
func (s *MedicationService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Medication, error) {
	return getOwnedMedication(s.db.WithContext(ctx), id, userID)
}

// Create builds the medication from the request, enforces the lifetime
// invariant and uploads the photo when one was attached.
func (s *MedicationService) Create(ctx context.Context, userID uuid.UUID, req types.CreateMedicationRequest, image *ImageUpload) (*models.Medication, error) {
	med := mapper.ToMedication(req)
	med.UserID = userID

	if image != nil && s.images != nil {
		url, err := s.images.Upload(ctx, image.Data, image.ContentType)
		if err != nil {
			return nil, err
		}
		med.ImageURL = &url
	}

	if err := s.db.WithContext(ctx).Create(&med).Error; err != nil {
		return nil, err
	}
	log.Printf("[MedicationService] Created medication %s for user %s", med.ID, userID)
	return &med, nil
}

// Update merges a sparse patch into an owned medication. When a new image
// accompanies the update, the old hosted image is deleted before the new
// one is uploaded.
func (s *MedicationService) Update(ctx context.Context, id, userID uuid.UUID, req types.UpdateMedicationRequest, image *ImageUpload) (*models.Medication, error) {
	med, err := getOwnedMedication(s.db.WithContext(ctx), id, userID)
	if err != nil {
		return nil, err
	}

	mapper.ApplyMedicationUpdate(med, req)

	if image != nil && s.images != nil {
		oldURL := ""
		if med.ImageURL != nil {
			oldURL = *med.ImageURL
		}
		url, err := s.images.Replace(ctx, oldURL, image.Data, image.ContentType)
		if err != nil {
			return nil, err
		}
		med.ImageURL = &url
	}

	if err := s.db.WithContext(ctx).Save(med).Error; err != nil {
		return nil, err
	}
	log.Printf("[MedicationService] Updated medication %s for user %s", id, userID)
	return med, nil
}

// Delete removes an owned medication. The hosted image goes first; its
// intakes and reminders cascade with the row.
func (s *MedicationService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	med, err := getOwnedMedication(s.db.WithContext(ctx), id, userID)
	if err != nil {
		return err
	}

	if med.ImageURL != nil && s.images != nil {
		if err := s.images.Delete(ctx, *med.ImageURL); err != nil {
			return err
		}
	}

	if err := s.db.WithContext(ctx).Select("Intakes", "Reminders").Delete(med).Error; err != nil {
		return err
	}
	log.Printf("[MedicationService] Deleted medication %s for user %s", id, userID)
	return nil
}

// Exists reports whether a medication with the given id exists at all,
// regardless of owner.
func (s *MedicationService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Medication{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of medications owned by the user.
func (s *MedicationService) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Medication{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// getOwnedMedication fetches a medication and verifies ownership. Missing
// rows map to ErrNotFound, foreign rows to ErrForbidden.
func getOwnedMedication(db *gorm.DB, id, userID uuid.UUID) (*models.Medication, error) {
	var med models.Medication
	if err := db.First(&med, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("medication %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if med.UserID != userID {
		return nil, fmt.Errorf("medication %s: %w", id, ErrForbidden)
	}
	return &med, nil
}
