package mapper

import (
	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/types"
)

// ToReminder builds a new Reminder from a create request. Enabled defaults
// to true when absent.
func ToReminder(req types.CreateReminderRequest) models.Reminder {
	rem := models.Reminder{
		MedicationID: req.MedicationID,
		Time:         req.Time,
		Frequency:    req.Frequency,
		Enabled:      true,
	}
	if req.Enabled != nil {
		rem.Enabled = *req.Enabled
	}
	return rem
}

// ApplyReminderUpdate merges a sparse patch into rem in place. Non-text
// fields follow plain nil-check semantics; an unknown frequency is dropped
// silently, matching the medication merge behavior.
func ApplyReminderUpdate(rem *models.Reminder, req types.UpdateReminderRequest) {
	if rem == nil {
		return
	}
	if req.Time != nil && !isBlank(*req.Time) {
		rem.Time = *req.Time
	}
	if req.Frequency != nil && req.Frequency.Valid() {
		rem.Frequency = *req.Frequency
	}
	if req.Enabled != nil {
		rem.Enabled = *req.Enabled
	}
}

// ToReminderResponse converts a reminder entity to its API shape.
func ToReminderResponse(rem models.Reminder) types.ReminderResponse {
	return types.ReminderResponse{
		ID:           rem.ID,
		Time:         rem.Time,
		Frequency:    string(rem.Frequency),
		Enabled:      rem.Enabled,
		MedicationID: rem.MedicationID,
	}
}
