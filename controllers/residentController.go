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

func GetResidents(c *gin.Context) {
	var residents []models.Resident
	err := initializers.DB.From("resident").
		Order(goqu.C("datetime_update").Desc()).
		ScanStructs(&residents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch residents", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"residents": residents})
}

func GetResident(c *gin.Context) {
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
		c.JSON(http.StatusNotFound, gin.H{"error": "Resident not found"})
		return
	}

	c.JSON(http.StatusOK, resident)
}

func CreateResident(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var req models.ResidentCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Legal_Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"legal_name": "Legal name is required."}})
		return
	}

	active := true
	if req.Is_Active != nil {
		active = *req.Is_Active
	}

	resident := models.Resident{
		Legal_Name:     req.Legal_Name,
		Preferred_Name: req.Preferred_Name,
		Date_Of_Birth:  req.Date_Of_Birth,
		Is_Active:      &active,
		Created_By:     userID,
		Updated_By:     userID,
	}

	var residentID int
	_, err := initializers.DB.Insert("resident").
		Rows(resident).
		Returning(goqu.C("resident_id")).
		Executor().
		ScanVal(&residentID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create resident", "details": err.Error()})
		return
	}

	resident.Resident_ID = residentID

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Resident created successfully.",
		"resident": resident,
	})
}

func UpdateResident(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	residentID, err := strconv.Atoi(c.Param("resident_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resident ID", "details": err.Error()})
		return
	}

	var existing models.Resident
	found, err := initializers.DB.From("resident").
		Where(goqu.C("resident_id").Eq(residentID)).
		ScanStruct(&existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch resident", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resident not found"})
		return
	}

	var req models.ResidentUpdate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Legal_Name != nil {
		existing.Legal_Name = *req.Legal_Name
	}
	if req.Preferred_Name != nil {
		existing.Preferred_Name = *req.Preferred_Name
	}
	if req.Date_Of_Birth != nil {
		existing.Date_Of_Birth = req.Date_Of_Birth
	}
	if req.Is_Active != nil {
		existing.Is_Active = req.Is_Active
	}

	result, err := initializers.DB.Update("resident").
		Set(goqu.Record{
			"legal_name":      existing.Legal_Name,
			"preferred_name":  existing.Preferred_Name,
			"date_of_birth":   existing.Date_Of_Birth,
			"is_active":       existing.Is_Active,
			"updated_by":      userID,
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("resident_id").Eq(residentID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update resident", "details": err.Error()})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Resident updated successfully.",
		"resident": existing,
	})
}

// LookupResidents matches residents by name substring, case-insensitive, for
// any authenticated role. Limited to 10 results ordered by legal name.
func LookupResidents(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusOK, []models.ResidentLookup{})
		return
	}

	pattern := "%" + q + "%"

	var residents []models.ResidentLookup
	err := initializers.DB.From("resident").
		Select("resident_id", "legal_name", "preferred_name").
		Where(goqu.Or(
			goqu.C("legal_name").ILike(pattern),
			goqu.C("preferred_name").ILike(pattern),
		)).
		Order(goqu.C("legal_name").Asc()).
		Limit(10).
		ScanStructs(&residents)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up residents", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, residents)
}
