package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

func GetShifts(c *gin.Context) {
	var shifts []models.Shift
	err := initializers.DB.From("shift").
		Order(goqu.C("starts_at").Desc()).
		ScanStructs(&shifts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shifts", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}

func GetShift(c *gin.Context) {
	shiftID, err := strconv.Atoi(c.Param("shift_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID", "details": err.Error()})
		return
	}

	var shift models.Shift
	found, err := initializers.DB.From("shift").
		Where(goqu.C("shift_id").Eq(shiftID)).
		ScanStruct(&shift)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shift", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	c.JSON(http.StatusOK, shift)
}

func CreateShift(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var req models.ShiftCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, ok := models.ShiftTypeLabels[req.Shift_Type]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"shift_type": "Invalid shift type."}})
		return
	}

	if !req.Ends_At.After(req.Starts_At) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"ends_at": "Shift must end after it starts."}})
		return
	}

	shift := models.Shift{
		Shift_Type:     req.Shift_Type,
		Starts_At:      req.Starts_At,
		Ends_At:        req.Ends_At,
		Handover_Notes: req.Handover_Notes,
		Created_By:     userID,
	}

	var shiftID int
	_, err := initializers.DB.Insert("shift").
		Rows(shift).
		Returning(goqu.C("shift_id")).
		Executor().
		ScanVal(&shiftID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shift", "details": err.Error()})
		return
	}

	shift.Shift_ID = shiftID

	c.JSON(http.StatusCreated, gin.H{
		"message": "Shift created successfully.",
		"shift":   shift,
	})
}

func UpdateShift(c *gin.Context) {
	shiftID, err := strconv.Atoi(c.Param("shift_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shift ID", "details": err.Error()})
		return
	}

	var existing models.Shift
	found, err := initializers.DB.From("shift").
		Where(goqu.C("shift_id").Eq(shiftID)).
		ScanStruct(&existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shift", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shift not found"})
		return
	}

	var req models.ShiftCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Shift_Type != "" {
		if _, ok := models.ShiftTypeLabels[req.Shift_Type]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"shift_type": "Invalid shift type."}})
			return
		}
		existing.Shift_Type = req.Shift_Type
	}
	if !req.Starts_At.IsZero() {
		existing.Starts_At = req.Starts_At
	}
	if !req.Ends_At.IsZero() {
		existing.Ends_At = req.Ends_At
	}
	if req.Handover_Notes != "" {
		existing.Handover_Notes = req.Handover_Notes
	}

	result, err := initializers.DB.Update("shift").
		Set(goqu.Record{
			"shift_type":     existing.Shift_Type,
			"starts_at":      existing.Starts_At,
			"ends_at":        existing.Ends_At,
			"handover_notes": existing.Handover_Notes,
		}).
		Where(goqu.C("shift_id").Eq(shiftID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shift", "details": err.Error()})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shift updated successfully.",
		"shift":   existing,
	})
}
