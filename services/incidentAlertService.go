package services

import (
	"log"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

// AlertManagersOfIncident notifies every manager, by email and push, that a
// high severity incident was recorded. Called from a goroutine after the
// incident transaction has committed; failures are logged, never surfaced to
// the reporting request.
func AlertManagersOfIncident(residentName string, category string, severity string, description string) {
	var managers []models.UserProfile
	err := initializers.DB.From("user_profile").
		Select("user_profile_id", "email", "first_name").
		Where(goqu.C("role").Eq(models.RoleManager), goqu.C("deleted").Eq(false)).
		ScanStructs(&managers)
	if err != nil {
		log.Printf("Failed to load managers for incident alert: %v", err)
		return
	}

	categoryLabel := category
	if label, ok := models.IncidentCategoryLabels[category]; ok {
		categoryLabel = label
	}

	if email := GetEmailService(); email != nil {
		for _, m := range managers {
			if m.Email == "" {
				continue
			}
			if err := email.SendIncidentAlertEmail(m.Email, m.First_Name, residentName, categoryLabel, severity, description); err != nil {
				log.Printf("Failed to email incident alert to manager %d: %v", m.User_Profile_ID, err)
			}
		}
	}

	if push := GetPushNotificationService(); push != nil {
		ids := make([]int, 0, len(managers))
		for _, m := range managers {
			ids = append(ids, m.User_Profile_ID)
		}

		payload := NotificationPayload{
			Title:    "Incident alert",
			Body:     residentName + ": " + categoryLabel + " (" + severity + ")",
			Priority: "high",
			Data: map[string]string{
				"type": "INCIDENT_ALERT",
			},
		}
		if err := push.SendNotificationToUsers(ids, payload); err != nil {
			log.Printf("Failed to push incident alert: %v", err)
		}
	}
}
