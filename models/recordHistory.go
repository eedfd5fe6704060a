package models

import (
	"encoding/json"
	"time"
)

// History type codes, one per change kind.
const (
	HistoryTypeCreated = "+"
	HistoryTypeUpdated = "~"
	HistoryTypeDeleted = "-"
)

// Entity type tags for record_history rows.
const (
	EntityIncident                 = "incident"
	EntityMedicationAdministration = "medication_administration"
	EntityDailyLog                 = "daily_log"
)

// RecordHistory is an immutable snapshot of an auditable record at a point in
// time. Rows are only ever appended; history_change_reason is the single field
// backfilled after the owning transaction commits.
type RecordHistory struct {
	Record_History_ID     int       `json:"record_history_id" goqu:"skipinsert"`
	Entity_Type           string    `json:"entity_type"`
	Entity_ID             int       `json:"entity_id"`
	History_Date          time.Time `json:"history_date"`
	History_Type          string    `json:"history_type"`
	History_User_ID       *int      `json:"history_user_id"`
	History_Change_Reason *string   `json:"history_change_reason"`
	Edit_Reason_Type      string    `json:"edit_reason_type"`
	Edit_Reason_Detail    string    `json:"edit_reason_detail"`
	Snapshot              string    `json:"-"`
}

// SnapshotMap decodes the stored snapshot JSON into a field map.
func (r RecordHistory) SnapshotMap() (map[string]any, error) {
	fields := map[string]any{}
	if r.Snapshot == "" {
		return fields, nil
	}
	if err := json.Unmarshal([]byte(r.Snapshot), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
