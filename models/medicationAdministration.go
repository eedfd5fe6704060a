package models

import "time"

// MAROutcomeLabels maps medication administration outcome codes to display labels.
var MAROutcomeLabels = map[string]string{
	"GIVEN":         "Given",
	"REFUSED":       "Refused",
	"PARTIAL":       "Partially Taken",
	"NOT_AVAILABLE": "Not available",
	"HELD":          "Held (Clinical decision)",
}

// MedicationAdministration is a medication administration record (MAR).
type MedicationAdministration struct {
	Medication_Administration_ID int       `json:"medication_administration_id" goqu:"skipinsert"`
	Medication_ID                int       `json:"medication_id"`
	Administered_By              int       `json:"administered_by"`
	Administered_At              time.Time `json:"administered_at"`
	Outcome                      string    `json:"outcome"`
	Notes                        string    `json:"notes"`
	Edit_Reason_Type             string    `json:"edit_reason_type"`
	Edit_Reason_Detail           string    `json:"edit_reason_detail"`
	Created_By                   int       `json:"created_by"`
	Datetime_Create              time.Time `json:"datetime_create" goqu:"skipinsert"`
	Updated_By                   int       `json:"updated_by"`
	Datetime_Update              time.Time `json:"datetime_update" goqu:"skipinsert"`
	Deleted                      bool      `json:"deleted" goqu:"skipinsert"`
}

// SnapshotFields returns the field map captured in a history snapshot.
func (m MedicationAdministration) SnapshotFields() map[string]any {
	return map[string]any{
		"medication_id":      m.Medication_ID,
		"administered_by":    m.Administered_By,
		"administered_at":    formatSnapshotTime(m.Administered_At),
		"outcome":            m.Outcome,
		"notes":              m.Notes,
		"edit_reason_type":   m.Edit_Reason_Type,
		"edit_reason_detail": m.Edit_Reason_Detail,
	}
}

type MedicationAdministrationCreate struct {
	Medication_ID      int       `json:"medication_id"`
	Administered_At    time.Time `json:"administered_at"`
	Outcome            string    `json:"outcome"`
	Notes              string    `json:"notes"`
	Edit_Reason_Type   string    `json:"edit_reason_type"`
	Edit_Reason_Detail string    `json:"edit_reason_detail"`
}

type MedicationAdministrationUpdate struct {
	Medication_ID           *int       `json:"medication_id"`
	Administered_At         *time.Time `json:"administered_at"`
	Outcome                 *string    `json:"outcome"`
	Notes                   *string    `json:"notes"`
	Edit_Reason_Type        *string    `json:"edit_reason_type"`
	Edit_Reason_Detail      *string    `json:"edit_reason_detail"`
	Last_Edit_Reason_Detail *string    `json:"last_edit_reason_detail"`
}
