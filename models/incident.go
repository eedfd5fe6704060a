package models

import "time"

// Incident severity constants
const (
	SeverityLow    = "LOW"
	SeverityMedium = "MEDIUM"
	SeverityHigh   = "HIGH"
)

// SeverityLabels maps severity codes to display labels.
var SeverityLabels = map[string]string{
	SeverityLow:    "low",
	SeverityMedium: "medium",
	SeverityHigh:   "high",
}

// IncidentCategoryLabels maps incident category codes to display labels.
var IncidentCategoryLabels = map[string]string{
	"SAFEGUARDING": "safeguarding",
	"MISSING":      "Missing from home",
	"SELF_HARM":    "Self-harm",
	"AGGRESSION":   "Aggression",
	"PROPERTY":     "Property damage",
	"OTHER":        "Other",
}

type Incident struct {
	Incident_ID        int       `json:"incident_id" goqu:"skipinsert"`
	Resident_ID        int       `json:"resident_id"`
	Reported_By        int       `json:"reported_by"`
	Occurred_At        time.Time `json:"occurred_at"`
	Category           string    `json:"category"`
	Severity           string    `json:"severity"`
	Description        string    `json:"description"`
	Action_Taken       string    `json:"action_taken"`
	External_Contacts  string    `json:"external_contacts"`
	Follow_Up_Required bool      `json:"follow_up_required"`
	Edit_Reason_Type   string    `json:"edit_reason_type"`
	Edit_Reason_Detail string    `json:"edit_reason_detail"`
	Created_By         int       `json:"created_by"`
	Datetime_Create    time.Time `json:"datetime_create" goqu:"skipinsert"`
	Updated_By         int       `json:"updated_by"`
	Datetime_Update    time.Time `json:"datetime_update" goqu:"skipinsert"`
	Deleted            bool      `json:"deleted" goqu:"skipinsert"`
}

// SnapshotFields returns the field map captured in a history snapshot.
func (i Incident) SnapshotFields() map[string]any {
	return map[string]any{
		"resident_id":        i.Resident_ID,
		"reported_by":        i.Reported_By,
		"occurred_at":        formatSnapshotTime(i.Occurred_At),
		"category":           i.Category,
		"severity":           i.Severity,
		"description":        i.Description,
		"action_taken":       i.Action_Taken,
		"external_contacts":  i.External_Contacts,
		"follow_up_required": i.Follow_Up_Required,
		"edit_reason_type":   i.Edit_Reason_Type,
		"edit_reason_detail": i.Edit_Reason_Detail,
	}
}

type IncidentCreate struct {
	Resident_ID        int       `json:"resident_id"`
	Occurred_At        time.Time `json:"occurred_at"`
	Category           string    `json:"category"`
	Severity           string    `json:"severity"`
	Description        string    `json:"description"`
	Action_Taken       string    `json:"action_taken"`
	External_Contacts  string    `json:"external_contacts"`
	Follow_Up_Required *bool     `json:"follow_up_required"`
	Edit_Reason_Type   string    `json:"edit_reason_type"`
	Edit_Reason_Detail string    `json:"edit_reason_detail"`
}

type IncidentUpdate struct {
	Resident_ID             *int       `json:"resident_id"`
	Occurred_At             *time.Time `json:"occurred_at"`
	Category                *string    `json:"category"`
	Severity                *string    `json:"severity"`
	Description             *string    `json:"description"`
	Action_Taken            *string    `json:"action_taken"`
	External_Contacts       *string    `json:"external_contacts"`
	Follow_Up_Required      *bool      `json:"follow_up_required"`
	Edit_Reason_Type        *string    `json:"edit_reason_type"`
	Edit_Reason_Detail      *string    `json:"edit_reason_detail"`
	Last_Edit_Reason_Detail *string    `json:"last_edit_reason_detail"`
}
