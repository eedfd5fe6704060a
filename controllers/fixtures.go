package controllers

import (
	"time"

	"github.com/CareLedger/models"
)

// Test fixture data for use in tests

// MockStaffUser creates a sample staff user for testing
func MockStaffUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 1,
		Username:        "staffuser",
		First_Name:      "Sam",
		Last_Name:       "Keyworker",
		Email:           "staff@example.com",
		Role:            models.RoleStaff,
		Created_By:      1,
		Updated_By:      1,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockManagerUser creates a sample manager user for testing
func MockManagerUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 2,
		Username:        "manageruser",
		First_Name:      "Morgan",
		Last_Name:       "Lead",
		Email:           "manager@example.com",
		Role:            models.RoleManager,
		Created_By:      1,
		Updated_By:      1,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockResident creates a sample resident for testing
func MockResident() models.Resident {
	active := true
	return models.Resident{
		Resident_ID:    1,
		Legal_Name:     "Jordan Price",
		Preferred_Name: "JP",
		Is_Active:      &active,
		Created_By:     2,
		Updated_By:     2,
	}
}

// MockIncident creates a sample incident reported by the staff user
func MockIncident() models.Incident {
	return models.Incident{
		Incident_ID:        1,
		Resident_ID:        1,
		Reported_By:        1,
		Occurred_At:        time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		Category:           "AGGRESSION",
		Severity:           models.SeverityMedium,
		Description:        "Initial",
		Action_Taken:       "De-escalated verbally",
		Follow_Up_Required: false,
		Created_By:         1,
		Updated_By:         1,
	}
}

// MockMAR creates a sample medication administration record
func MockMAR() models.MedicationAdministration {
	return models.MedicationAdministration{
		Medication_Administration_ID: 1,
		Medication_ID:                1,
		Administered_By:              1,
		Administered_At:              time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		Outcome:                      "GIVEN",
		Notes:                        "Taken with breakfast",
		Created_By:                   1,
		Updated_By:                   1,
	}
}

// MockDailyLog creates a sample daily log authored by the staff user
func MockDailyLog() models.DailyLog {
	recorded := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	return models.DailyLog{
		Daily_Log_ID:  1,
		Resident_ID:   1,
		Author_ID:     1,
		Summary:       "Settled evening",
		Mood:          "calm",
		Interventions: "",
		Event_At:      time.Date(2026, 3, 10, 20, 30, 0, 0, time.UTC),
		Recorded_At:   &recorded,
		Created_By:    1,
		Updated_By:    1,
	}
}
