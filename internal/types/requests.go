package types

import (
	"github.com/google/uuid"

	"github.com/pillpal/backend/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest accepts either the username or the email in the login field.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateMedicationRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	ImageURL    *string `json:"image_url"`
	Dosage      *string `json:"dosage" binding:"omitempty,max=50"`
	Active      *bool   `json:"active"`
	StartDate   Date    `json:"start_date" binding:"required"`
	EndDate     *Date   `json:"end_date"`
	Lifetime    *bool   `json:"lifetime"`
}

// UpdateMedicationRequest is a sparse patch: nil fields are left alone, and
// free-text fields carrying placeholder values are ignored (see mapper).
type UpdateMedicationRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	ImageURL    *string `json:"image_url"`
	Dosage      *string `json:"dosage" binding:"omitempty,max=50"`
	Active      *bool   `json:"active"`
	StartDate   *Date   `json:"start_date"`
	EndDate     *Date   `json:"end_date"`
	Lifetime    *bool   `json:"lifetime"`
}

type CreateIntakeRequest struct {
	MedicationID uuid.UUID           `json:"medication_id" binding:"required"`
	Status       models.IntakeStatus `json:"status" binding:"required"`
}

type CreateReminderRequest struct {
	MedicationID uuid.UUID        `json:"medication_id" binding:"required"`
	Time         string           `json:"time" binding:"required,len=5"`
	Frequency    models.Frequency `json:"frequency" binding:"required"`
	Enabled      *bool            `json:"enabled"`
}

type UpdateReminderRequest struct {
	Time      *string           `json:"time" binding:"omitempty,len=5"`
	Frequency *models.Frequency `json:"frequency"`
	Enabled   *bool             `json:"enabled"`
}
