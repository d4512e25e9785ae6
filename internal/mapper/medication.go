package mapper

import (
	"github.com/pillpal/backend/internal/models"
	"github.com/pillpal/backend/internal/types"
)

// ToMedication builds a new Medication from a create request, applying the
// creation defaults: dosage falls back to "Not specified", active defaults
// to true and lifetime to false. A lifetime medication never stores an end
// date, whatever the caller supplied.
func ToMedication(req types.CreateMedicationRequest) models.Medication {
	med := models.Medication{
		Name:      req.Name,
		Dosage:    "Not specified",
		Active:    true,
		StartDate: req.StartDate.Time,
	}

	if req.Description != nil && !IsPlaceholder(*req.Description) && !isBlank(*req.Description) {
		med.Description = req.Description
	}
	if req.ImageURL != nil && !IsPlaceholder(*req.ImageURL) && !isBlank(*req.ImageURL) {
		med.ImageURL = req.ImageURL
	}
	if req.Dosage != nil && !IsPlaceholder(*req.Dosage) && !isBlank(*req.Dosage) {
		med.Dosage = *req.Dosage
	}
	if req.Active != nil {
		med.Active = *req.Active
	}
	if req.Lifetime != nil {
		med.Lifetime = *req.Lifetime
	}
	if req.EndDate != nil {
		t := req.EndDate.Time
		med.EndDate = &t
	}

	// Lifetime medications have no end date by construction.
	if med.Lifetime {
		med.EndDate = nil
	}

	return med
}

// ApplyMedicationUpdate merges a sparse patch into med in place. Nil fields
// and placeholder values are left untouched; a free-text field that is
// present but trims empty clears the stored value, except for name, which
// must stay non-blank. Invalid fields are dropped silently rather than
// rejected, so applying the same patch twice is a no-op the second time.
func ApplyMedicationUpdate(med *models.Medication, req types.UpdateMedicationRequest) {
	if med == nil {
		return
	}

	if req.Name != nil && !IsPlaceholder(*req.Name) && !isBlank(*req.Name) {
		med.Name = *req.Name
	}

	med.Description = mergeText(med.Description, req.Description)
	med.ImageURL = mergeText(med.ImageURL, req.ImageURL)

	if req.Dosage != nil && !IsPlaceholder(*req.Dosage) {
		if isBlank(*req.Dosage) {
			med.Dosage = ""
		} else {
			med.Dosage = *req.Dosage
		}
	}

	if req.Active != nil {
		med.Active = *req.Active
	}
	if req.StartDate != nil {
		med.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		t := req.EndDate.Time
		med.EndDate = &t
	}
	if req.Lifetime != nil {
		med.Lifetime = *req.Lifetime
	}

	if med.Lifetime {
		med.EndDate = nil
	}
}

// mergeText applies the sparse-patch rules for an optional free-text field:
// nil or placeholder keeps the current value, blank clears it, anything
// else replaces it.
func mergeText(current, patch *string) *string {
	if patch == nil || IsPlaceholder(*patch) {
		return current
	}
	if isBlank(*patch) {
		return nil
	}
	return patch
}
