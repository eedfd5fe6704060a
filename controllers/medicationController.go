package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

func GetMedications(c *gin.Context) {
	var medications []models.Medication
	err := initializers.DB.From("medication").
		Order(goqu.C("datetime_update").Desc()).
		ScanStructs(&medications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medications", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"medications": medications})
}

func GetMedication(c *gin.Context) {
	medicationID, err := strconv.Atoi(c.Param("medication_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medication ID", "details": err.Error()})
		return
	}

	var medication models.Medication
	found, err := initializers.DB.From("medication").
		Where(goqu.C("medication_id").Eq(medicationID)).
		ScanStruct(&medication)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medication", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}

	c.JSON(http.StatusOK, medication)
}

func CreateMedication(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var req models.MedicationCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Medication_Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"medication_name": "Medication name is required."}})
		return
	}

	active := true
	if req.Is_Active != nil {
		active = *req.Is_Active
	}

	medication := models.Medication{
		Resident_ID:     req.Resident_ID,
		Medication_Name: req.Medication_Name,
		Dose:            req.Dose,
		Route:           req.Route,
		Schedule:        req.Schedule,
		Notes:           req.Notes,
		Is_Active:       &active,
		Created_By:      userID,
		Updated_By:      userID,
	}

	var medicationID int
	_, err := initializers.DB.Insert("medication").
		Rows(medication).
		Returning(goqu.C("medication_id")).
		Executor().
		ScanVal(&medicationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medication", "details": err.Error()})
		return
	}

	medication.Medication_ID = medicationID

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Medication created successfully.",
		"medication": medication,
	})
}

func UpdateMedication(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	medicationID, err := strconv.Atoi(c.Param("medication_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medication ID", "details": err.Error()})
		return
	}

	var existing models.Medication
	found, err := initializers.DB.From("medication").
		Where(goqu.C("medication_id").Eq(medicationID)).
		ScanStruct(&existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medication", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication not found"})
		return
	}

	var req models.MedicationCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Medication_Name != "" {
		existing.Medication_Name = req.Medication_Name
	}
	if req.Dose != "" {
		existing.Dose = req.Dose
	}
	if req.Route != "" {
		existing.Route = req.Route
	}
	if req.Schedule != "" {
		existing.Schedule = req.Schedule
	}
	if req.Notes != "" {
		existing.Notes = req.Notes
	}
	if req.Is_Active != nil {
		existing.Is_Active = req.Is_Active
	}

	result, err := initializers.DB.Update("medication").
		Set(goqu.Record{
			"medication_name": existing.Medication_Name,
			"dose":            existing.Dose,
			"route":           existing.Route,
			"schedule":        existing.Schedule,
			"notes":           existing.Notes,
			"is_active":       existing.Is_Active,
			"updated_by":      userID,
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("medication_id").Eq(medicationID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medication", "details": err.Error()})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Medication updated successfully.",
		"medication": existing,
	})
}
