package models

import "time"

type CarePlan struct {
	Care_Plan_ID             int       `json:"care_plan_id" goqu:"skipinsert"`
	Resident_ID              int       `json:"resident_id"`
	Overview                 string    `json:"overview"`
	Triggers                 string    `json:"triggers"`
	Deescalation_Strategies  string    `json:"deescalation_strategies"`
	Goals                    string    `json:"goals"`
	Created_By               int       `json:"created_by"`
	Datetime_Create          time.Time `json:"datetime_create" goqu:"skipinsert"`
	Updated_By               int       `json:"updated_by"`
	Datetime_Update          time.Time `json:"datetime_update" goqu:"skipinsert"`
}

type CarePlanCreate struct {
	Resident_ID             int    `json:"resident_id"`
	Overview                string `json:"overview"`
	Triggers                string `json:"triggers"`
	Deescalation_Strategies string `json:"deescalation_strategies"`
	Goals                   string `json:"goals"`
}

type CarePlanUpdate struct {
	Overview                *string `json:"overview"`
	Triggers                *string `json:"triggers"`
	Deescalation_Strategies *string `json:"deescalation_strategies"`
	Goals                   *string `json:"goals"`
}
