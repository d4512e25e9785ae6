package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Frequency is how often a reminder fires. Delivery itself is handled by an
// external notifier; the backend only stores the configuration.
type Frequency string

const (
	FrequencyDaily  Frequency = "DAILY"
	FrequencyWeekly Frequency = "WEEKLY"
)

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

type Reminder struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Time         string         `gorm:"size:5;not null" json:"time"`
	Frequency    Frequency      `gorm:"size:10;not null" json:"frequency"`
	Enabled      bool           `gorm:"not null;default:true" json:"enabled"`
	MedicationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"medication_id"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
