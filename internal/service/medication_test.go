package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/service"
	"github.com/pillpal/backend/internal/testhelpers"
	"github.com/pillpal/backend/internal/types"
)

func TestMedicationCreateDefaults(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewMedicationService(db, nil)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")

	med, err := svc.Create(ctx, user.ID, types.CreateMedicationRequest{
		Name:      "Ibuprofen",
		StartDate: types.NewDate(time.Now()),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ibuprofen", med.Name)
	assert.Equal(t, "Not specified", med.Dosage)
	assert.True(t, med.Active)
	assert.Equal(t, user.ID, med.UserID)
}

func TestMedicationCreateLifetimeDropsEndDate(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewMedicationService(db, nil)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")

	lifetime := true
	end := types.NewDate(time.Now().AddDate(0, 1, 0))
	med, err := svc.Create(ctx, user.ID, types.CreateMedicationRequest{
		Name:      "Insulin",
		StartDate: types.NewDate(time.Now()),
		EndDate:   &end,
		Lifetime:  &lifetime,
	}, nil)
	require.NoError(t, err)

	assert.True(t, med.Lifetime)
	assert.Nil(t, med.EndDate)
}

func TestMedicationListFilters(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewMedicationService(db, nil)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	other := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com")

	testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	vitamin := testhelpers.CreateTestMedication(t, db, user.ID, "Vitamin D")
	require.NoError(t, db.Model(vitamin).Update("active", false).Error)
	testhelpers.CreateTestMedication(t, db, other.ID, "Aspirin")

	all, err := svc.List(ctx, user.ID, service.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := svc.List(ctx, user.ID, service.ListOptions{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Aspirin", active[0].Name)

	// Name search is a case-insensitive substring match.
	byName, err := svc.List(ctx, user.ID, service.ListOptions{Name: "vita"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Vitamin D", byName[0].Name)
}

func TestMedicationGetOwnership(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewMedicationService(db, nil)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	other := testhelpers.CreateTestUser(t, db, "bob", "bob@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	got, err := svc.Get(ctx, med.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, med.ID, got.ID)

	_, err = svc.Get(ctx, med.ID, other.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.Get(ctx, uuid.New(), user.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestMedicationUpdateMergesPatch(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	svc := service.NewMedicationService(db, nil)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	name := "Aspirin Forte"
	placeholder := "string"
	updated, err := svc.Update(ctx, med.ID, user.ID, types.UpdateMedicationRequest{
		Name:        &name,
		Description: &placeholder,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Aspirin Forte", updated.Name)
	// Placeholder description is ignored, not stored.
	assert.Nil(t, updated.Description)
	assert.Equal(t, "10mg", updated.Dosage)
}

func TestMedicationUpdateReplacesImage(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	images := new(testhelpers.MockImageService)
	svc := service.NewMedicationService(db, images)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	oldURL := "https://bucket.s3.amazonaws.com/medications/old.jpg"
	require.NoError(t, db.Model(med).Update("image_url", oldURL).Error)

	newURL := "https://bucket.s3.amazonaws.com/medications/new.jpg"
	images.On("Replace", mock.Anything, oldURL, []byte("img"), "image/jpeg").Return(newURL, nil)

	updated, err := svc.Update(ctx, med.ID, user.ID, types.UpdateMedicationRequest{}, &service.ImageUpload{
		Data:        []byte("img"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, newURL, *updated.ImageURL)
	images.AssertExpectations(t)
}

func TestMedicationDeleteCascades(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	images := new(testhelpers.MockImageService)
	svc := service.NewMedicationService(db, images)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	url := "https://bucket.s3.amazonaws.com/medications/x.jpg"
	require.NoError(t, db.Model(med).Update("image_url", url).Error)

	testhelpers.CreateTestIntake(t, db, med.ID, models.IntakeTaken, time.Now())
	testhelpers.CreateTestReminder(t, db, med.ID, "08:00")

	images.On("Delete", mock.Anything, url).Return(nil)

	require.NoError(t, svc.Delete(ctx, med.ID, user.ID))
	images.AssertExpectations(t)

	exists, err := svc.Exists(ctx, med.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	var intakeCount, reminderCount int64
	db.Model(&models.MedicationIntake{}).Where("medication_id = ?", med.ID).Count(&intakeCount)
	db.Model(&models.Reminder{}).Where("medication_id = ?", med.ID).Count(&reminderCount)
	assert.Zero(t, intakeCount)
	assert.Zero(t, reminderCount)
}

func TestMedicationDeleteSurfacesImageHostError(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	images := new(testhelpers.MockImageService)
	svc := service.NewMedicationService(db, images)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	url := "https://bucket.s3.amazonaws.com/medications/x.jpg"
	require.NoError(t, db.Model(med).Update("image_url", url).Error)

	hostErr := &service.ImageHostError{Op: "delete", Err: assert.AnError}
	images.On("Delete", mock.Anything, url).Return(hostErr)

	err := svc.Delete(ctx, med.ID, user.ID)
	var got *service.ImageHostError
	require.ErrorAs(t, err, &got)

	// The medication survives when the hosted image cannot be removed.
	exists, err := svc.Exists(ctx, med.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}
