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

func TestRecordIntake(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	intake, err := svc.Record(ctx, med.ID, user.ID, models.IntakeTaken)
	require.NoError(t, err)
	assert.Equal(t, models.IntakeTaken, intake.Status)
	assert.Equal(t, med.ID, intake.MedicationID)
	assert.WithinDuration(t, time.Now(), intake.DateTime, 5*time.Second)
}

func TestRecordIntakeRejectsUnknownStatus(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	_, err := svc.Record(ctx, med.ID, user.ID, models.IntakeStatus("MAYBE"))
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestRecordIntakeChecksOwnership(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	other := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	_, err := svc.Record(ctx, med.ID, other.ID, models.IntakeTaken)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestMarkTakenAndSkipped(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	taken, err := svc.MarkTaken(ctx, med.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IntakeTaken, taken.Status)

	skipped, err := svc.MarkSkipped(ctx, med.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IntakeSkipped, skipped.Status)
}

func TestListForUserSpansMedications(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	other := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com")
	aspirin := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	zinc := testhelpers.CreateTestMedication(t, db, user.ID, "Zinc")
	foreign := testhelpers.CreateTestMedication(t, db, other.ID, "Foreign")

	now := time.Now()
	testhelpers.CreateTestIntake(t, db, aspirin.ID, models.IntakeTaken, now.Add(-2*time.Hour))
	testhelpers.CreateTestIntake(t, db, zinc.ID, models.IntakeSkipped, now.Add(-time.Hour))
	testhelpers.CreateTestIntake(t, db, foreign.ID, models.IntakeTaken, now)

	intakes, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, intakes, 2)

	// Newest first.
	assert.Equal(t, zinc.ID, intakes[0].MedicationID)
	assert.Equal(t, aspirin.ID, intakes[1].MedicationID)
}

func TestListForMedicationInRange(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewIntakeService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	now := time.Now()
	inside := testhelpers.CreateTestIntake(t, db, med.ID, models.IntakeTaken, now)
	testhelpers.CreateTestIntake(t, db, med.ID, models.IntakeSkipped, now.AddDate(0, 0, -2))

	intakes, err := svc.ListForMedicationInRange(ctx, med.ID, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, intakes, 1)
	assert.Equal(t, inside.ID, intakes[0].ID)
}
