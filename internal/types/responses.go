package types

import (
	"github.com/google/uuid"
)

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type IntakeResponse struct {
	ID           uuid.UUID `json:"id"`
	DateTime     string    `json:"date_time"`
	Status       string    `json:"status"`
	MedicationID uuid.UUID `json:"medication_id"`
}

// MedicationStatusResponse is the daily adherence view: the derived status
// plus the raw intakes it was derived from.
type MedicationStatusResponse struct {
	MedicationID uuid.UUID        `json:"medication_id"`
	Name         string           `json:"name"`
	Dosage       string           `json:"dosage"`
	ImageURL     *string          `json:"image_url"`
	Status       string           `json:"status"`
	TodayIntakes []IntakeResponse `json:"today_intakes"`
	Active       bool             `json:"active"`
}

type ReminderResponse struct {
	ID           uuid.UUID `json:"id"`
	Time         string    `json:"time"`
	Frequency    string    `json:"frequency"`
	Enabled      bool      `json:"enabled"`
	MedicationID uuid.UUID `json:"medication_id"`
}

// ReminderListResponse carries either reminders or an explanatory message
// when a medication has none configured.
type ReminderListResponse struct {
	Reminders []ReminderResponse `json:"reminders,omitempty"`
	Message   string             `json:"message,omitempty"`
}
