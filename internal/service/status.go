package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/types"
)

// Displayed adherence statuses, lowercase on the wire.
const (
	StatusPending = "pending"
	StatusTaken   = "taken"
	StatusSkipped = "skipped"
)

// DeriveStatus folds a day's intake records into a single displayed status.
// This is a precedence rule, not a chronological one: one confirmed TAKEN
// wins over any number of later skips, a SKIPPED wins over pending noise,
// and an empty day is pending.
func DeriveStatus(intakes []models.MedicationIntake) string {
	for _, intake := range intakes {
		if intake.Status == models.IntakeTaken {
			return StatusTaken
		}
	}
	for _, intake := range intakes {
		if intake.Status == models.IntakeSkipped {
			return StatusSkipped
		}
	}
	return StatusPending
}

// MedicationStatusService derives the per-day adherence view from intake
// history.
type MedicationStatusService struct {
	db      *gorm.DB
	intakes *IntakeService
}

func NewMedicationStatusService(db *gorm.DB, intakes *IntakeService) *MedicationStatusService {
	return &MedicationStatusService{db: db, intakes: intakes}
}

// TodayOverview builds the status of every active medication the user owns
// for the current server-local day.
func (s *MedicationStatusService) TodayOverview(ctx context.Context, userID uuid.UUID) ([]types.MedicationStatusResponse, error) {
	var medications []models.Medication
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("name ASC").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}

	start, end := dayBounds(time.Now())
	responses := make([]types.MedicationStatusResponse, 0, len(medications))
	for i := range medications {
		resp, err := s.buildStatus(ctx, &medications[i], start, end)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// Status derives today's status for one owned medication. Unknown ids fail
// with ErrNotFound.
func (s *MedicationStatusService) Status(ctx context.Context, medicationID, userID uuid.UUID) (*types.MedicationStatusResponse, error) {
	med, err := getOwnedMedication(s.db.WithContext(ctx), medicationID, userID)
	if err != nil {
		return nil, err
	}

	start, end := dayBounds(time.Now())
	resp, err := s.buildStatus(ctx, med, start, end)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *MedicationStatusService) buildStatus(ctx context.Context, med *models.Medication, start, end time.Time) (types.MedicationStatusResponse, error) {
	todayIntakes, err := s.intakes.ListForMedicationInRange(ctx, med.ID, start, end)
	if err != nil {
		return types.MedicationStatusResponse{}, err
	}

	intakeResponses := make([]types.IntakeResponse, 0, len(todayIntakes))
	for _, intake := range todayIntakes {
		intakeResponses = append(intakeResponses, ToIntakeResponse(intake))
	}

	return types.MedicationStatusResponse{
		MedicationID: med.ID,
		Name:         med.Name,
		Dosage:       med.Dosage,
		ImageURL:     med.ImageURL,
		Status:       DeriveStatus(todayIntakes),
		TodayIntakes: intakeResponses,
		Active:       med.Active,
	}, nil
}

// ToIntakeResponse converts an intake entity to its API shape.
func ToIntakeResponse(intake models.MedicationIntake) types.IntakeResponse {
	return types.IntakeResponse{
		ID:           intake.ID,
		DateTime:     intake.DateTime.Format(time.RFC3339),
		Status:       string(intake.Status),
		MedicationID: intake.MedicationID,
	}
}

// dayBounds returns the inclusive bounds of the server-local calendar day
// containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return start, end
}
