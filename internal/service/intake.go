package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pillpal/backend/internal/models"
)

// IntakeService records and queries intake history. Intakes are append
// only: there is no update or single delete, corrections are new records.
type IntakeService struct {
	db *gorm.DB
}

func NewIntakeService(db *gorm.DB) *IntakeService {
	return &IntakeService{db: db}
}

// Record creates an intake with the given status for a medication owned by
// userID, stamped with the current time.
func (s *IntakeService) Record(ctx context.Context, medicationID, userID uuid.UUID, status models.IntakeStatus) (*models.MedicationIntake, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown intake status %q: %w", status, ErrInvalidInput)
	}

	if _, err := getOwnedMedication(s.db.WithContext(ctx), medicationID, userID); err != nil {
		return nil, err
	}

	intake := models.MedicationIntake{
		DateTime:     time.Now(),
		Status:       status,
		MedicationID: medicationID,
	}
	if err := s.db.WithContext(ctx).Create(&intake).Error; err != nil {
		return nil, err
	}
	log.Printf("[IntakeService] Recorded %s intake for medication %s", status, medicationID)
	return &intake, nil
}

// MarkTaken is the shortcut for recording a TAKEN intake now.
func (s *IntakeService) MarkTaken(ctx context.Context, medicationID, userID uuid.UUID) (*models.MedicationIntake, error) {
	return s.Record(ctx, medicationID, userID, models.IntakeTaken)
}

// MarkSkipped is the shortcut for recording a SKIPPED intake now.
func (s *IntakeService) MarkSkipped(ctx context.Context, medicationID, userID uuid.UUID) (*models.MedicationIntake, error) {
	return s.Record(ctx, medicationID, userID, models.IntakeSkipped)
}

// ListForUser returns every intake across the user's medications, newest
// first.
func (s *IntakeService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.MedicationIntake, error) {
	var intakes []models.MedicationIntake
	err := s.db.WithContext(ctx).
		Joins("JOIN medications ON medications.id = medication_intakes.medication_id").
		Where("medications.user_id = ?", userID).
		Order("medication_intakes.date_time DESC").
		Find(&intakes).Error
	if err != nil {
		return nil, err
	}
	return intakes, nil
}

// ListForMedication returns the intake history of one owned medication,
// newest first.
func (s *IntakeService) ListForMedication(ctx context.Context, medicationID, userID uuid.UUID) ([]models.MedicationIntake, error) {
	if _, err := getOwnedMedication(s.db.WithContext(ctx), medicationID, userID); err != nil {
		return nil, err
	}

	var intakes []models.MedicationIntake
	err := s.db.WithContext(ctx).
		Where("medication_id = ?", medicationID).
		Order("date_time DESC").
		Find(&intakes).Error
	if err != nil {
		return nil, err
	}
	return intakes, nil
}

// ListForMedicationInRange returns intakes for one medication whose
// timestamp falls inside [start, end]. Callers are expected to have checked
// ownership already; the status deriver uses this per active medication.
func (s *IntakeService) ListForMedicationInRange(ctx context.Context, medicationID uuid.UUID, start, end time.Time) ([]models.MedicationIntake, error) {
	var intakes []models.MedicationIntake
	err := s.db.WithContext(ctx).
		Where("medication_id = ? AND date_time BETWEEN ? AND ?", medicationID, start, end).
		Order("date_time ASC").
		Find(&intakes).Error
	if err != nil {
		return nil, err
	}
	return intakes, nil
}
