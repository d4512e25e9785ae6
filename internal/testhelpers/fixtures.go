package testhelpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pillpal/backend/internal/models"
)

// TestPassword is the plaintext behind every fixture user's hash.
const TestPassword = "password123"

// CreateTestUser inserts a user with a bcrypt hash of TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestMedication inserts an active medication owned by userID.
func CreateTestMedication(t *testing.T, db *gorm.DB, userID uuid.UUID, name string) *models.Medication {
	t.Helper()

	med := &models.Medication{
		Name:      name,
		Dosage:    "10mg",
		Active:    true,
		StartDate: time.Now().AddDate(0, 0, -7),
		UserID:    userID,
	}
	if err := db.Create(med).Error; err != nil {
		t.Fatalf("failed to create test medication: %v", err)
	}
	return med
}

// CreateTestIntake inserts an intake for the medication at the given time.
func CreateTestIntake(t *testing.T, db *gorm.DB, medicationID uuid.UUID, status models.IntakeStatus, at time.Time) *models.MedicationIntake {
	t.Helper()

	intake := &models.MedicationIntake{
		MedicationID: medicationID,
		Status:       status,
		DateTime:     at,
	}
	if err := db.Create(intake).Error; err != nil {
		t.Fatalf("failed to create test intake: %v", err)
	}
	return intake
}

// CreateTestReminder inserts an enabled daily reminder for the medication.
func CreateTestReminder(t *testing.T, db *gorm.DB, medicationID uuid.UUID, at string) *models.Reminder {
	t.Helper()

	rem := &models.Reminder{
		MedicationID: medicationID,
		Time:         at,
		Frequency:    models.FrequencyDaily,
		Enabled:      true,
	}
	if err := db.Create(rem).Error; err != nil {
		t.Fatalf("failed to create test reminder: %v", err)
	}
	return rem
}
