package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntakeStatus is the recorded outcome of a single dose.
type IntakeStatus string

const (
	IntakePending IntakeStatus = "PENDING"
	IntakeTaken   IntakeStatus = "TAKEN"
	IntakeSkipped IntakeStatus = "SKIPPED"
)

// Valid reports whether s is one of the known intake statuses.
func (s IntakeStatus) Valid() bool {
	switch s {
	case IntakePending, IntakeTaken, IntakeSkipped:
		return true
	}
	return false
}

// MedicationIntake is an append-only record of a dose being taken or
// skipped. Intakes are never updated once written; corrections are made by
// recording another intake.
type MedicationIntake struct {
	ID           uuid.UUID    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	DateTime     time.Time    `gorm:"not null;index" json:"date_time"`
	Status       IntakeStatus `gorm:"size:10;not null" json:"status"`
	MedicationID uuid.UUID    `gorm:"type:uuid;not null;index" json:"medication_id"`
}

func (i *MedicationIntake) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
