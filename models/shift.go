package models

import "time"

// Shift type constants
const (
	ShiftDay   = "DAY"
	ShiftLate  = "LATE"
	ShiftNight = "NIGHT"
)

// ShiftTypeLabels maps shift type codes to display labels.
var ShiftTypeLabels = map[string]string{
	ShiftDay:   "Day",
	ShiftLate:  "Late",
	ShiftNight: "Night",
}

type Shift struct {
	Shift_ID        int       `json:"shift_id" goqu:"skipinsert"`
	Shift_Type      string    `json:"shift_type"`
	Starts_At       time.Time `json:"starts_at"`
	Ends_At         time.Time `json:"ends_at"`
	Handover_Notes  string    `json:"handover_notes"`
	Created_By      int       `json:"created_by"`
	Datetime_Create time.Time `json:"datetime_create" goqu:"skipinsert"`
}

type ShiftCreate struct {
	Shift_Type     string    `json:"shift_type"`
	Starts_At      time.Time `json:"starts_at"`
	Ends_At        time.Time `json:"ends_at"`
	Handover_Notes string    `json:"handover_notes"`
}
