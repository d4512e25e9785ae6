package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Medication is a drug a user is tracking. A lifetime medication is taken
// indefinitely and never carries an end date; that invariant is enforced
// when medications are created and updated, not by the schema.
type Medication struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	ImageURL    *string        `gorm:"size:512" json:"image_url"`
	Dosage      string         `gorm:"size:50;not null" json:"dosage"`
	Active      bool           `gorm:"not null;default:true" json:"active"`
	StartDate   time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate     *time.Time     `gorm:"type:date" json:"end_date"`
	Lifetime    bool           `gorm:"not null;default:false" json:"lifetime"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`

	Intakes   []MedicationIntake `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reminders []Reminder         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
