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
	"github.com/pillpal/backend/internal/types"
)

// TestFullFlowOnPostgres runs the register, create, record, derive cycle
// against a real postgres instance. Skipped when docker is unavailable.
func TestFullFlowOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := testhelpers.SetupPostgresDB(t)
	ctx := context.Background()

	authSvc := service.NewAuthService(db, "integration-secret", time.Hour)
	medSvc := service.NewMedicationService(db, nil)
	intakeSvc := service.NewIntakeService(db)
	statusSvc := service.NewMedicationStatusService(db, intakeSvc)
	reminderSvc := service.NewReminderService(db)

	user, err := authSvc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	// The functional unique index rejects a case-variant duplicate even
	// when inserted directly, bypassing the register check.
	err = db.Create(&models.User{
		Username:     "Alice",
		Email:        "dup@example.com",
		PasswordHash: "x",
		Role:         models.RoleUser,
	}).Error
	assert.Error(t, err)

	token, _, err := authSvc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	med, err := medSvc.Create(ctx, user.ID, types.CreateMedicationRequest{
		Name:      "Aspirin",
		StartDate: types.NewDate(time.Now()),
	}, nil)
	require.NoError(t, err)

	_, err = intakeSvc.MarkSkipped(ctx, med.ID, user.ID)
	require.NoError(t, err)
	_, err = intakeSvc.MarkTaken(ctx, med.ID, user.ID)
	require.NoError(t, err)

	status, err := statusSvc.Status(ctx, med.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, service.StatusTaken, status.Status)
	assert.Len(t, status.TodayIntakes, 2)

	rem, err := reminderSvc.Create(ctx, user.ID, types.CreateReminderRequest{
		MedicationID: med.ID,
		Time:         "08:00",
		Frequency:    models.FrequencyDaily,
	})
	require.NoError(t, err)

	toggled, err := reminderSvc.Toggle(ctx, rem.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Enabled)

	require.NoError(t, medSvc.Delete(ctx, med.ID, user.ID))
	_, err = reminderSvc.Get(ctx, rem.ID, user.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
