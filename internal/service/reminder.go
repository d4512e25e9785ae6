package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pillpal/backend/internal/mapper"
	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/types"
)

// ReminderService manages reminder configuration. Reminders belong to a
// medication; ownership checks always go through the parent.
type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// ListForUser returns reminders across all of the user's medications.
func (s *ReminderService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Joins("JOIN medications ON medications.id = reminders.medication_id").
		Where("medications.user_id = ?", userID).
		Order("reminders.time ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

// Get returns one reminder after verifying the caller owns its medication.
func (s *ReminderService) Get(ctx context.Context, id, userID uuid.UUID) (*models.Reminder, error) {
	return s.getOwned(ctx, id, userID)
}

// ListForMedication returns the reminders of one owned medication.
func (s *ReminderService) ListForMedication(ctx context.Context, medicationID, userID uuid.UUID) ([]models.Reminder, error) {
	if _, err := getOwnedMedication(s.db.WithContext(ctx), medicationID, userID); err != nil {
		return nil, err
	}

	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("time ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

// Create attaches a new reminder to an owned medication.
func (s *ReminderService) Create(ctx context.Context, userID uuid.UUID, req types.CreateReminderRequest) (*models.Reminder, error) {
	if !req.Frequency.Valid() {
		return nil, fmt.Errorf("unknown frequency %q: %w", req.Frequency, ErrInvalidInput)
	}
	if err := validateReminderTime(req.Time); err != nil {
		return nil, err
	}

	if _, err := getOwnedMedication(s.db.WithContext(ctx), req.MedicationID, userID); err != nil {
		return nil, err
	}

	rem := mapper.ToReminder(req)
	if err := s.db.WithContext(ctx).Create(&rem).Error; err != nil {
		return nil, err
	}
	log.Printf("[ReminderService] Created reminder %s for medication %s", rem.ID, req.MedicationID)
	return &rem, nil
}

// Update merges a sparse patch into an owned reminder.
func (s *ReminderService) Update(ctx context.Context, id, userID uuid.UUID, req types.UpdateReminderRequest) (*models.Reminder, error) {
	if req.Time != nil {
		if err := validateReminderTime(*req.Time); err != nil {
			return nil, err
		}
	}

	rem, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	mapper.ApplyReminderUpdate(rem, req)

	if err := s.db.WithContext(ctx).Save(rem).Error; err != nil {
		return nil, err
	}
	return rem, nil
}

// Toggle flips the enabled flag.
func (s *ReminderService) Toggle(ctx context.Context, id, userID uuid.UUID) (*models.Reminder, error) {
	rem, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	rem.Enabled = !rem.Enabled
	if err := s.db.WithContext(ctx).Save(rem).Error; err != nil {
		return nil, err
	}
	log.Printf("[ReminderService] Toggled reminder %s enabled=%t", id, rem.Enabled)
	return rem, nil
}

// Delete removes an owned reminder.
func (s *ReminderService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	rem, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(rem).Error
}

// validateReminderTime checks the 24h HH:MM wall-clock format. Binding only
// guards the length, so "99:99" still reaches the service.
func validateReminderTime(value string) error {
	if _, err := time.Parse("15:04", value); err != nil {
		return fmt.Errorf("invalid reminder time %q, expected HH:MM: %w", value, ErrInvalidInput)
	}
	return nil
}

func (s *ReminderService) getOwned(ctx context.Context, id, userID uuid.UUID) (*models.Reminder, error) {
	var rem models.Reminder
	if err := s.db.WithContext(ctx).First(&rem, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("reminder %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if _, err := getOwnedMedication(s.db.WithContext(ctx), rem.MedicationID, userID); err != nil {
		return nil, err
	}
	return &rem, nil
}
