package models

import "time"

type Medication struct {
	Medication_ID   int       `json:"medication_id" goqu:"skipinsert"`
	Resident_ID     int       `json:"resident_id"`
	Medication_Name string    `json:"medication_name"`
	Dose            string    `json:"dose"`
	Route           string    `json:"route"`
	Schedule        string    `json:"schedule"`
	Notes           string    `json:"notes"`
	Is_Active       *bool     `json:"is_active"`
	Created_By      int       `json:"created_by"`
	Datetime_Create time.Time `json:"datetime_create" goqu:"skipinsert"`
	Updated_By      int       `json:"updated_by"`
	Datetime_Update time.Time `json:"datetime_update" goqu:"skipinsert"`
}

type MedicationCreate struct {
	Resident_ID     int    `json:"resident_id"`
	Medication_Name string `json:"medication_name"`
	Dose            string `json:"dose"`
	Route           string `json:"route"`
	Schedule        string `json:"schedule"`
	Notes           string `json:"notes"`
	Is_Active       *bool  `json:"is_active"`
}
