package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

type timelineEvent struct {
	timestamp time.Time
	item      gin.H
}

// GetResidentTimeline merges a resident's daily logs, incidents and medication
// administrations into one reverse-chronological feed.
func GetResidentTimeline(c *gin.Context) {
	residentID, err := strconv.Atoi(c.Param("resident_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resident ID", "details": err.Error()})
		return
	}

	var resident models.Resident
	found, err := initializers.DB.From("resident").
		Where(goqu.C("resident_id").Eq(residentID)).
		ScanStruct(&resident)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resident", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resident not found."})
		return
	}

	var logs []models.DailyLog
	err = initializers.DB.From("daily_log").
		Where(goqu.C("resident_id").Eq(residentID), goqu.C("deleted").Eq(false)).
		ScanStructs(&logs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily logs", "details": err.Error()})
		return
	}

	var incidents []models.Incident
	err = initializers.DB.From("incident").
		Where(goqu.C("resident_id").Eq(residentID), goqu.C("deleted").Eq(false)).
		ScanStructs(&incidents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incidents", "details": err.Error()})
		return
	}

	// MAR rows are scoped to the resident through their medication.
	var mars []models.MedicationAdministration
	err = initializers.DB.From("medication_administration").
		Select(goqu.I("medication_administration.*")).
		Join(
			goqu.T("medication"),
			goqu.On(goqu.Ex{"medication_administration.medication_id": goqu.I("medication.medication_id")}),
		).
		Where(
			goqu.I("medication.resident_id").Eq(residentID),
			goqu.I("medication_administration.deleted").Eq(false),
		).
		ScanStructs(&mars)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medication administrations", "details": err.Error()})
		return
	}

	usernames := fetchUsernames(collectActorIDs(logs, incidents, mars))

	events := make([]timelineEvent, 0, len(logs)+len(incidents)+len(mars))

	for _, l := range logs {
		events = append(events, timelineEvent{
			timestamp: l.Event_At,
			item: gin.H{
				"id":            l.Daily_Log_ID,
				"event_type":    "DAILY_LOG",
				"event_at":      l.Event_At,
				"recorded_at":   l.Recorded_At,
				"summary":       l.Summary,
				"mood":          l.Mood,
				"interventions": l.Interventions,
				"author":        actorRef(l.Author_ID, usernames),
				"shift":         l.Shift_ID,
				"timestamp":     l.Event_At,
			},
		})
	}

	for _, i := range incidents {
		events = append(events, timelineEvent{
			timestamp: i.Occurred_At,
			item: gin.H{
				"id":                 i.Incident_ID,
				"event_type":         "INCIDENT",
				"occurred_at":        i.Occurred_At,
				"category":           i.Category,
				"severity":           i.Severity,
				"description":        i.Description,
				"action_taken":       i.Action_Taken,
				"reported_by":        actorRef(i.Reported_By, usernames),
				"follow_up_required": i.Follow_Up_Required,
				"timestamp":          i.Occurred_At,
			},
		})
	}

	for _, m := range mars {
		events = append(events, timelineEvent{
			timestamp: m.Administered_At,
			item: gin.H{
				"id":              m.Medication_Administration_ID,
				"event_type":      "MEDICATION",
				"administered_at": m.Administered_At,
				"outcome":         m.Outcome,
				"notes":           m.Notes,
				"administered_by": actorRef(m.Administered_By, usernames),
				"medication":      m.Medication_ID,
				"timestamp":       m.Administered_At,
			},
		})
	}

	// Ties keep underlying fetch order.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].timestamp.After(events[j].timestamp)
	})

	items := make([]gin.H, 0, len(events))
	for _, e := range events {
		items = append(items, e.item)
	}

	c.JSON(http.StatusOK, gin.H{
		"resident_id":   resident.Resident_ID,
		"resident_name": resident.Legal_Name,
		"events":        items,
	})
}

func actorRef(userID int, usernames map[int]string) gin.H {
	return gin.H{
		"id":       userID,
		"username": usernames[userID],
	}
}

func collectActorIDs(logs []models.DailyLog, incidents []models.Incident, mars []models.MedicationAdministration) []int {
	seen := map[int]bool{}
	var ids []int
	add := func(id int) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, l := range logs {
		add(l.Author_ID)
	}
	for _, i := range incidents {
		add(i.Reported_By)
	}
	for _, m := range mars {
		add(m.Administered_By)
	}
	return ids
}

func fetchUsernames(ids []int) map[int]string {
	usernames := map[int]string{}
	if len(ids) == 0 {
		return usernames
	}

	var users []models.UserProfile
	err := initializers.DB.From("user_profile").
		Select("user_profile_id", "username").
		Where(goqu.C("user_profile_id").In(ids)).
		ScanStructs(&users)
	if err != nil {
		return usernames
	}

	for _, u := range users {
		usernames[u.User_Profile_ID] = u.Username
	}
	return usernames
}
