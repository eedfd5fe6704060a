package models

import "time"

type Resident struct {
	Resident_ID     int        `json:"resident_id" goqu:"skipinsert"`
	Legal_Name      string     `json:"legal_name"`
	Preferred_Name  string     `json:"preferred_name"`
	Date_Of_Birth   *time.Time `json:"date_of_birth"`
	Is_Active       *bool      `json:"is_active"`
	Created_By      int        `json:"created_by"`
	Datetime_Create time.Time  `json:"datetime_create" goqu:"skipinsert"`
	Updated_By      int        `json:"updated_by"`
	Datetime_Update time.Time  `json:"datetime_update" goqu:"skipinsert"`
}

// DisplayName prefers the preferred name, falling back to the legal name.
func (r Resident) DisplayName() string {
	if r.Preferred_Name != "" {
		return r.Preferred_Name
	}
	return r.Legal_Name
}

type ResidentCreate struct {
	Legal_Name     string     `json:"legal_name"`
	Preferred_Name string     `json:"preferred_name"`
	Date_Of_Birth  *time.Time `json:"date_of_birth"`
	Is_Active      *bool      `json:"is_active"`
}

type ResidentUpdate struct {
	Legal_Name     *string    `json:"legal_name"`
	Preferred_Name *string    `json:"preferred_name"`
	Date_Of_Birth  *time.Time `json:"date_of_birth"`
	Is_Active      *bool      `json:"is_active"`
}

// ResidentLookup is the trimmed shape returned by the lookup endpoint.
type ResidentLookup struct {
	Resident_ID    int    `json:"resident_id"`
	Legal_Name     string `json:"legal_name"`
	Preferred_Name string `json:"preferred_name"`
}
