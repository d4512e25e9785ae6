package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/service"
	"github.com/pillpal/backend/internal/testhelpers"
)

func TestDeriveStatus(t *testing.T) {
	taken := models.MedicationIntake{Status: models.IntakeTaken}
	skipped := models.MedicationIntake{Status: models.IntakeSkipped}
	pending := models.MedicationIntake{Status: models.IntakePending}

	tests := []struct {
		name    string
		intakes []models.MedicationIntake
		want    string
	}{
		{"no intakes", nil, service.StatusPending},
		{"only pending", []models.MedicationIntake{pending, pending}, service.StatusPending},
		{"single taken", []models.MedicationIntake{taken}, service.StatusTaken},
		{"single skipped", []models.MedicationIntake{skipped}, service.StatusSkipped},
		// Precedence, not chronology: a taken dose wins no matter where it
		// sits in the day's sequence.
		{"skip then take", []models.MedicationIntake{skipped, taken}, service.StatusTaken},
		{"take then skip", []models.MedicationIntake{taken, skipped}, service.StatusTaken},
		{"many skips one take", []models.MedicationIntake{skipped, skipped, taken, skipped}, service.StatusTaken},
		{"skip among pending", []models.MedicationIntake{pending, skipped, pending}, service.StatusSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.DeriveStatus(tt.intakes))
		})
	}
}

func TestTodayOverview(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	statusSvc := service.NewMedicationStatusService(db, service.NewIntakeService(db))
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	aspirin := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	zinc := testhelpers.CreateTestMedication(t, db, user.ID, "Zinc")

	// Inactive medications stay out of the overview.
	inactive := testhelpers.CreateTestMedication(t, db, user.ID, "Old Med")
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	now := time.Now()
	testhelpers.CreateTestIntake(t, db, aspirin.ID, models.IntakeSkipped, now.Add(-2*time.Hour))
	testhelpers.CreateTestIntake(t, db, aspirin.ID, models.IntakeTaken, now.Add(-time.Hour))
	// Yesterday's intake must not bleed into today's status.
	testhelpers.CreateTestIntake(t, db, zinc.ID, models.IntakeTaken, now.AddDate(0, 0, -1))

	statuses, err := statusSvc.TodayOverview(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	// Ordered by name.
	assert.Equal(t, "Aspirin", statuses[0].Name)
	assert.Equal(t, service.StatusTaken, statuses[0].Status)
	assert.Len(t, statuses[0].TodayIntakes, 2)

	assert.Equal(t, "Zinc", statuses[1].Name)
	assert.Equal(t, service.StatusPending, statuses[1].Status)
	assert.Empty(t, statuses[1].TodayIntakes)
}

func TestStatusForMedication(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	statusSvc := service.NewMedicationStatusService(db, service.NewIntakeService(db))
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	other := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	testhelpers.CreateTestIntake(t, db, med.ID, models.IntakeSkipped, time.Now())

	status, err := statusSvc.Status(ctx, med.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StatusSkipped, status.Status)
	assert.Equal(t, med.ID, status.MedicationID)

	_, err = statusSvc.Status(ctx, med.ID, other.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
}
