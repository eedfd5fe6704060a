package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CareLedger/initializers"
	"github.com/CareLedger/models"
	"github.com/CareLedger/services"
	"github.com/doug-martin/goqu/v9"
)

func GetDailyLogs(c *gin.Context) {
	var logs []models.DailyLog
	err := initializers.DB.From("daily_log").
		Where(goqu.C("deleted").Eq(false)).
		Order(goqu.C("event_at").Desc()).
		ScanStructs(&logs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily logs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily_logs": logs})
}

func GetDailyLog(c *gin.Context) {
	logID, err := strconv.Atoi(c.Param("daily_log_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid daily log ID", "details": err.Error()})
		return
	}

	var dailyLog models.DailyLog
	found, err := initializers.DB.From("daily_log").
		Where(goqu.C("daily_log_id").Eq(logID), goqu.C("deleted").Eq(false)).
		ScanStruct(&dailyLog)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily log", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Daily log not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"daily_log":     dailyLog,
		"is_late_entry": dailyLog.IsLateEntry(),
	})
}

func CreateDailyLog(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var req models.DailyLogCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := services.ValidateEditReasonType(req.Edit_Reason_Type); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	now := time.Now().UTC()
	eventAt := now
	if req.Event_At != nil {
		eventAt = *req.Event_At
	}

	dailyLog := models.DailyLog{
		Resident_ID:        req.Resident_ID,
		Shift_ID:           req.Shift_ID,
		Author_ID:          userID,
		Summary:            req.Summary,
		Mood:               req.Mood,
		Interventions:      req.Interventions,
		Event_At:           eventAt,
		Recorded_At:        &now,
		Edit_Reason_Type:   req.Edit_Reason_Type,
		Edit_Reason_Detail: req.Edit_Reason_Detail,
		Created_By:         userID,
		Updated_By:         userID,
	}

	err := services.RunInTransaction(func(tx *goqu.TxDatabase, after *services.PostCommit) error {
		var logID int
		_, err := tx.Insert("daily_log").
			Rows(dailyLog).
			Returning(goqu.C("daily_log_id")).
			Executor().
			ScanVal(&logID)
		if err != nil {
			return err
		}

		dailyLog.Daily_Log_ID = logID
		actor := userID
		if err := services.RecordCreated(tx, models.EntityDailyLog, logID, &actor, req.Edit_Reason_Type, req.Edit_Reason_Detail, dailyLog.SnapshotFields()); err != nil {
			return err
		}

		// A late-entry justification supplied on create is mirrored into the
		// snapshot's human readable change reason.
		if reason := strings.TrimSpace(req.Edit_Reason_Detail); reason != "" {
			after.Add(func() {
				services.AttributeChangeReason(models.EntityDailyLog, logID, reason)
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create daily log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Daily log created successfully.",
		"daily_log":     dailyLog,
		"is_late_entry": dailyLog.IsLateEntry(),
	})
}

func UpdateDailyLog(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID
	manager := c.MustGet("manager").(bool)

	logID, err := strconv.Atoi(c.Param("daily_log_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid daily log ID", "details": err.Error()})
		return
	}

	var existing models.DailyLog
	found, err := initializers.DB.From("daily_log").
		Where(goqu.C("daily_log_id").Eq(logID), goqu.C("deleted").Eq(false)).
		ScanStruct(&existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch daily log", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Daily log not found"})
		return
	}

	if !manager && existing.Author_ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the author or a manager can edit this daily log"})
		return
	}

	var req models.DailyLogUpdate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	proposed := existing
	if req.Resident_ID != nil {
		proposed.Resident_ID = *req.Resident_ID
	}
	if req.Shift_ID != nil {
		proposed.Shift_ID = req.Shift_ID
	}
	if req.Summary != nil {
		proposed.Summary = *req.Summary
	}
	if req.Mood != nil {
		proposed.Mood = *req.Mood
	}
	if req.Interventions != nil {
		proposed.Interventions = *req.Interventions
	}
	if req.Event_At != nil {
		proposed.Event_At = *req.Event_At
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

	reason := strings.TrimSpace(reasonDetail)
	if reason == "" && req.Last_Edit_Reason_Detail != nil {
		reason = strings.TrimSpace(*req.Last_Edit_Reason_Detail)
	}

	proposed.Updated_By = userID

	err = services.RunInTransaction(func(tx *goqu.TxDatabase, after *services.PostCommit) error {
		result, err := tx.Update("daily_log").
			Set(goqu.Record{
				"resident_id":        proposed.Resident_ID,
				"shift_id":           proposed.Shift_ID,
				"summary":            proposed.Summary,
				"mood":               proposed.Mood,
				"interventions":      proposed.Interventions,
				"event_at":           proposed.Event_At,
				"edit_reason_type":   proposed.Edit_Reason_Type,
				"edit_reason_detail": proposed.Edit_Reason_Detail,
				"updated_by":         userID,
				"datetime_update":    goqu.L("NOW()"),
			}).
			Where(goqu.C("daily_log_id").Eq(logID)).
			Executor().Exec()
		if err != nil {
			return err
		}

		if rows, _ := result.RowsAffected(); rows == 0 {
			return errNoRowsUpdated
		}

		actor := userID
		if err := services.RecordUpdated(tx, models.EntityDailyLog, logID, &actor, proposed.Edit_Reason_Type, proposed.Edit_Reason_Detail, proposed.SnapshotFields()); err != nil {
			return err
		}

		if reason != "" {
			after.Add(func() {
				services.AttributeChangeReason(models.EntityDailyLog, logID, reason)
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update daily log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Daily log updated successfully.",
		"daily_log": proposed,
	})
}

// DeleteDailyLog always rejects. Clinical records are never removed through
// the API, whatever the caller's role.
func DeleteDailyLog(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Deletion is not permitted for clinical records."})
}
