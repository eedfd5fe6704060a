package models

import (
	"os"
	"strconv"
	"time"
)

type DailyLog struct {
	Daily_Log_ID       int        `json:"daily_log_id" goqu:"skipinsert"`
	Resident_ID        int        `json:"resident_id"`
	Shift_ID           *int       `json:"shift_id"`
	Author_ID          int        `json:"author_id"`
	Summary            string     `json:"summary"`
	Mood               string     `json:"mood"`
	Interventions      string     `json:"interventions"`
	Event_At           time.Time  `json:"event_at"`
	Recorded_At        *time.Time `json:"recorded_at"`
	Edit_Reason_Type   string     `json:"edit_reason_type"`
	Edit_Reason_Detail string     `json:"edit_reason_detail"`
	Created_By         int        `json:"created_by"`
	Datetime_Create    time.Time  `json:"datetime_create" goqu:"skipinsert"`
	Updated_By         int        `json:"updated_by"`
	Datetime_Update    time.Time  `json:"datetime_update" goqu:"skipinsert"`
	Deleted            bool       `json:"deleted" goqu:"skipinsert"`
}

// IsLateEntry reports whether the event time is sufficiently earlier than the
// recorded time. The threshold comes from DAILY_LOG_LATE_ENTRY_THRESHOLD_MINUTES
// (default 60). Unsaved instances fall back to "now".
func (d DailyLog) IsLateEntry() bool {
	thresholdMin := 60
	if v := os.Getenv("DAILY_LOG_LATE_ENTRY_THRESHOLD_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			thresholdMin = n
		}
	}

	recorded := time.Now()
	if d.Recorded_At != nil {
		recorded = *d.Recorded_At
	}

	return d.Event_At.Before(recorded.Add(-time.Duration(thresholdMin) * time.Minute))
}

// SnapshotFields returns the field map captured in a history snapshot.
func (d DailyLog) SnapshotFields() map[string]any {
	return map[string]any{
		"resident_id":        d.Resident_ID,
		"shift_id":           intPtrValue(d.Shift_ID),
		"author_id":          d.Author_ID,
		"summary":            d.Summary,
		"mood":               d.Mood,
		"interventions":      d.Interventions,
		"event_at":           formatSnapshotTime(d.Event_At),
		"recorded_at":        formatSnapshotTimePtr(d.Recorded_At),
		"edit_reason_type":   d.Edit_Reason_Type,
		"edit_reason_detail": d.Edit_Reason_Detail,
	}
}

type DailyLogCreate struct {
	Resident_ID        int        `json:"resident_id"`
	Shift_ID           *int       `json:"shift_id"`
	Summary            string     `json:"summary"`
	Mood               string     `json:"mood"`
	Interventions      string     `json:"interventions"`
	Event_At           *time.Time `json:"event_at"`
	Edit_Reason_Type   string     `json:"edit_reason_type"`
	Edit_Reason_Detail string     `json:"edit_reason_detail"`
}

type DailyLogUpdate struct {
	Resident_ID             *int       `json:"resident_id"`
	Shift_ID                *int       `json:"shift_id"`
	Summary                 *string    `json:"summary"`
	Mood                    *string    `json:"mood"`
	Interventions           *string    `json:"interventions"`
	Event_At                *time.Time `json:"event_at"`
	Edit_Reason_Type        *string    `json:"edit_reason_type"`
	Edit_Reason_Detail      *string    `json:"edit_reason_detail"`
	Last_Edit_Reason_Detail *string    `json:"last_edit_reason_detail"`
}
