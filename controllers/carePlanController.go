package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/doug-martin/goqu/v9"
)

func GetCarePlans(c *gin.Context) {
	var plans []models.CarePlan
	err := initializers.DB.From("care_plan").
		Order(goqu.C("datetime_update").Desc()).
		ScanStructs(&plans)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch care plans", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"care_plans": plans})
}

func GetCarePlan(c *gin.Context) {
	planID, err := strconv.Atoi(c.Param("care_plan_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid care plan ID", "details": err.Error()})
		return
	}

	var plan models.CarePlan
	found, err := initializers.DB.From("care_plan").
		Where(goqu.C("care_plan_id").Eq(planID)).
		ScanStruct(&plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch care plan", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care plan not found"})
		return
	}

	c.JSON(http.StatusOK, plan)
}

func CreateCarePlan(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var req models.CarePlanCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// One care plan per resident.
	count, err := initializers.DB.From("care_plan").
		Where(goqu.C("resident_id").Eq(req.Resident_ID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for existing care plan", "details": err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "A care plan already exists for this resident"})
		return
	}

	plan := models.CarePlan{
		Resident_ID:             req.Resident_ID,
		Overview:                req.Overview,
		Triggers:                req.Triggers,
		Deescalation_Strategies: req.Deescalation_Strategies,
		Goals:                   req.Goals,
		Created_By:              userID,
		Updated_By:              userID,
	}

	var planID int
	_, err = initializers.DB.Insert("care_plan").
		Rows(plan).
		Returning(goqu.C("care_plan_id")).
		Executor().
		ScanVal(&planID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create care plan", "details": err.Error()})
		return
	}

	plan.Care_Plan_ID = planID

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Care plan created successfully.",
		"care_plan": plan,
	})
}

func UpdateCarePlan(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	planID, err := strconv.Atoi(c.Param("care_plan_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid care plan ID", "details": err.Error()})
		return
	}

	var existing models.CarePlan
	found, err := initializers.DB.From("care_plan").
		Where(goqu.C("care_plan_id").Eq(planID)).
		ScanStruct(&existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch care plan", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Care plan not found"})
		return
	}

	var req models.CarePlanUpdate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Overview != nil {
		existing.Overview = *req.Overview
	}
	if req.Triggers != nil {
		existing.Triggers = *req.Triggers
	}
	if req.Deescalation_Strategies != nil {
		existing.Deescalation_Strategies = *req.Deescalation_Strategies
	}
	if req.Goals != nil {
		existing.Goals = *req.Goals
	}

	result, err := initializers.DB.Update("care_plan").
		Set(goqu.Record{
			"overview":                existing.Overview,
			"triggers":                existing.Triggers,
			"deescalation_strategies": existing.Deescalation_Strategies,
			"goals":                   existing.Goals,
			"updated_by":              userID,
			"datetime_update":         goqu.L("NOW()"),
		}).
		Where(goqu.C("care_plan_id").Eq(planID)).
		Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update care plan", "details": err.Error()})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Care plan updated successfully.",
		"care_plan": existing,
	})
}
