package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/CareLedger/services"
	"github.com/doug-martin/goqu/v9"
)

func GetIncidents(c *gin.Context) {
	var incidents []models.Incident
	err := initializers.DB.From("incident").
		Where(goqu.C("deleted").Eq(false)).
		Order(goqu.C("occurred_at").Desc()).
		ScanStructs(&incidents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incident records", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"incidents": incidents})
}

func GetIncident(c *gin.Context) {
	incidentID, err := strconv.Atoi(c.Param("incident_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID", "details": err.Error()})
		return
	}

	var incident models.Incident
	found, err := initializers.DB.From("incident").
		Where(goqu.C("incident_id").Eq(incidentID), goqu.C("deleted").Eq(false)).
		ScanStruct(&incident)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incident record", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident record not found"})
		return
	}

	c.JSON(http.StatusOK, incident)
}

func CreateIncident(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var req models.IncidentCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := services.ValidateEditReasonType(req.Edit_Reason_Type); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if _, ok := models.IncidentCategoryLabels[req.Category]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"category": "Invalid incident category."}})
		return
	}
	if _, ok := models.SeverityLabels[req.Severity]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"severity": "Invalid severity level."}})
		return
	}

	followUp := false
	if req.Follow_Up_Required != nil {
		followUp = *req.Follow_Up_Required
	}

	// Actor is stamped before the save so the snapshot captures the reporter.
	incident := models.Incident{
		Resident_ID:        req.Resident_ID,
		Reported_By:        userID,
		Occurred_At:        req.Occurred_At,
		Category:           req.Category,
		Severity:           req.Severity,
		Description:        req.Description,
		Action_Taken:       req.Action_Taken,
		External_Contacts:  req.External_Contacts,
		Follow_Up_Required: followUp,
		Edit_Reason_Type:   req.Edit_Reason_Type,
		Edit_Reason_Detail: req.Edit_Reason_Detail,
		Created_By:         userID,
		Updated_By:         userID,
	}

	err := services.RunInTransaction(func(tx *goqu.TxDatabase, after *services.PostCommit) error {
		var incidentID int
		_, err := tx.Insert("incident").
			Rows(incident).
			Returning(goqu.C("incident_id")).
			Executor().
			ScanVal(&incidentID)
		if err != nil {
			return err
		}

		incident.Incident_ID = incidentID
		actor := userID
		return services.RecordCreated(tx, models.EntityIncident, incidentID, &actor, req.Edit_Reason_Type, req.Edit_Reason_Detail, incident.SnapshotFields())
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create incident record", "details": err.Error()})
		return
	}

	if incident.Severity == models.SeverityHigh {
		residentName := incident.Description
		if display, ok := services.ResolveResidentDisplay(incident.Resident_ID); ok {
			residentName = display
		}
		go services.AlertManagersOfIncident(residentName, incident.Category, incident.Severity, incident.Description)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Incident record created successfully.",
		"incident": incident,
	})
}

func UpdateIncident(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID
	manager := c.MustGet("manager").(bool)

	incidentID, err := strconv.Atoi(c.Param("incident_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID", "details": err.Error()})
		return
	}

	var existing models.Incident
	found, err := initializers.DB.From("incident").
		Where(goqu.C("incident_id").Eq(incidentID), goqu.C("deleted").Eq(false)).
		ScanStruct(&existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incident record", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident record not found"})
		return
	}

	if !manager && existing.Reported_By != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the reporting user or a manager can edit this incident"})
		return
	}

	var req models.IncidentUpdate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	proposed := existing
	if req.Resident_ID != nil {
		proposed.Resident_ID = *req.Resident_ID
	}
	if req.Occurred_At != nil {
		proposed.Occurred_At = *req.Occurred_At
	}
	if req.Category != nil {
		if _, ok := models.IncidentCategoryLabels[*req.Category]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"category": "Invalid incident category."}})
			return
		}
		proposed.Category = *req.Category
	}
	if req.Severity != nil {
		if _, ok := models.SeverityLabels[*req.Severity]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"severity": "Invalid severity level."}})
			return
		}
		proposed.Severity = *req.Severity
	}
	if req.Description != nil {
		proposed.Description = *req.Description
	}
	if req.Action_Taken != nil {
		proposed.Action_Taken = *req.Action_Taken
	}
	if req.External_Contacts != nil {
		proposed.External_Contacts = *req.External_Contacts
	}
	if req.Follow_Up_Required != nil {
		proposed.Follow_Up_Required = *req.Follow_Up_Required
	}

	reasonType := ""
	if req.Edit_Reason_Type != nil {
		reasonType = *req.Edit_Reason_Type
		proposed.Edit_Reason_Type = reasonType
	}
	reasonDetail := ""
	if req.Edit_Reason_Detail != nil {
		reasonDetail = *req.Edit_Reason_Detail
		proposed.Edit_Reason_Detail = reasonDetail
	}

	if errs := services.ValidateEditIntent(existing.SnapshotFields(), proposed.SnapshotFields(), reasonType, reasonDetail); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	// Human readable reason for the snapshot, with the legacy alias fallback.
	reason := strings.TrimSpace(reasonDetail)
	if reason == "" && req.Last_Edit_Reason_Detail != nil {
		reason = strings.TrimSpace(*req.Last_Edit_Reason_Detail)
	}

	proposed.Updated_By = userID

	err = services.RunInTransaction(func(tx *goqu.TxDatabase, after *services.PostCommit) error {
		result, err := tx.Update("incident").
			Set(goqu.Record{
				"resident_id":        proposed.Resident_ID,
				"occurred_at":        proposed.Occurred_At,
				"category":           proposed.Category,
				"severity":           proposed.Severity,
				"description":        proposed.Description,
				"action_taken":       proposed.Action_Taken,
				"external_contacts":  proposed.External_Contacts,
				"follow_up_required": proposed.Follow_Up_Required,
				"edit_reason_type":   proposed.Edit_Reason_Type,
				"edit_reason_detail": proposed.Edit_Reason_Detail,
				"updated_by":         userID,
				"datetime_update":    goqu.L("NOW()"),
			}).
			Where(goqu.C("incident_id").Eq(incidentID)).
			Executor().Exec()
		if err != nil {
			return err
		}

		if rows, _ := result.RowsAffected(); rows == 0 {
			return errNoRowsUpdated
		}

		actor := userID
		if err := services.RecordUpdated(tx, models.EntityIncident, incidentID, &actor, proposed.Edit_Reason_Type, proposed.Edit_Reason_Detail, proposed.SnapshotFields()); err != nil {
			return err
		}

		if reason != "" {
			after.Add(func() {
				services.AttributeChangeReason(models.EntityIncident, incidentID, reason)
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incident record", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Incident record updated successfully.",
		"incident": proposed,
	})
}

// DeleteIncident always rejects. Incident records are never removed through
// the API, whatever the caller's role.
func DeleteIncident(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Deletion of incidents is not permitted."})
}

func GetIncidentHistory(c *gin.Context) {
	incidentID, ok := fetchIncidentID(c)
	if !ok {
		return
	}

	rows, err := services.FetchHistory(models.EntityIncident, incidentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incident history", "details": err.Error()})
		return
	}

	records, err := services.PresentRawHistory(rows, services.IncidentFieldDescriptors)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read incident history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func GetIncidentHistorySummary(c *gin.Context) {
	incidentID, ok := fetchIncidentID(c)
	if !ok {
		return
	}

	rows, err := services.FetchHistory(models.EntityIncident, incidentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incident history", "details": err.Error()})
		return
	}

	events, err := services.PresentHistorySummary(rows, services.IncidentFieldDescriptors)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read incident history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}

// fetchIncidentID parses the route param and confirms the incident exists.
func fetchIncidentID(c *gin.Context) (int, bool) {
	incidentID, err := strconv.Atoi(c.Param("incident_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID", "details": err.Error()})
		return 0, false
	}

	count, err := initializers.DB.From("incident").
		Where(goqu.C("incident_id").Eq(incidentID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch incident record", "details": err.Error()})
		return 0, false
	}

	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident record not found"})
		return 0, false
	}

	return incidentID, true
}
