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

func GetMARs(c *gin.Context) {
	var records []models.MedicationAdministration
	err := initializers.DB.From("medication_administration").
		Where(goqu.C("deleted").Eq(false)).
		Order(goqu.C("administered_at").Desc()).
		ScanStructs(&records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medication administration records", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mar": records})
}

func GetMAR(c *gin.Context) {
	marID, err := strconv.Atoi(c.Param("mar_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid MAR ID", "details": err.Error()})
		return
	}

	var record models.MedicationAdministration
	found, err := initializers.DB.From("medication_administration").
		Where(goqu.C("medication_administration_id").Eq(marID), goqu.C("deleted").Eq(false)).
		ScanStruct(&record)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medication administration record", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication administration record not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func CreateMAR(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var req models.MedicationAdministrationCreate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if errs := services.ValidateEditReasonType(req.Edit_Reason_Type); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if _, ok := models.MAROutcomeLabels[req.Outcome]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"outcome": "Invalid administration outcome."}})
		return
	}

	record := models.MedicationAdministration{
		Medication_ID:      req.Medication_ID,
		Administered_By:    userID,
		Administered_At:    req.Administered_At,
		Outcome:            req.Outcome,
		Notes:              req.Notes,
		Edit_Reason_Type:   req.Edit_Reason_Type,
		Edit_Reason_Detail: req.Edit_Reason_Detail,
		Created_By:         userID,
		Updated_By:         userID,
	}

	err := services.RunInTransaction(func(tx *goqu.TxDatabase, after *services.PostCommit) error {
		var marID int
		_, err := tx.Insert("medication_administration").
			Rows(record).
			Returning(goqu.C("medication_administration_id")).
			Executor().
			ScanVal(&marID)
		if err != nil {
			return err
		}

		record.Medication_Administration_ID = marID
		actor := userID
		if err := services.RecordCreated(tx, models.EntityMedicationAdministration, marID, &actor, req.Edit_Reason_Type, req.Edit_Reason_Detail, record.SnapshotFields()); err != nil {
			return err
		}

		// Parity: a reason supplied on create is mirrored into the snapshot's
		// human readable change reason.
		if reason := strings.TrimSpace(req.Edit_Reason_Detail); reason != "" {
			after.Add(func() {
				services.AttributeChangeReason(models.EntityMedicationAdministration, marID, reason)
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medication administration record", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Medication administration record created successfully.",
		"mar":     record,
	})
}

func UpdateMAR(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID
	manager := c.MustGet("manager").(bool)

	marID, err := strconv.Atoi(c.Param("mar_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid MAR ID", "details": err.Error()})
		return
	}

	var existing models.MedicationAdministration
	found, err := initializers.DB.From("medication_administration").
		Where(goqu.C("medication_administration_id").Eq(marID), goqu.C("deleted").Eq(false)).
		ScanStruct(&existing)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medication administration record", "details": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication administration record not found"})
		return
	}

	if !manager && existing.Administered_By != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the administering user or a manager can edit this record"})
		return
	}

	var req models.MedicationAdministrationUpdate
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	proposed := existing
	if req.Medication_ID != nil {
		proposed.Medication_ID = *req.Medication_ID
	}
	if req.Administered_At != nil {
		proposed.Administered_At = *req.Administered_At
	}
	if req.Outcome != nil {
		if _, ok := models.MAROutcomeLabels[*req.Outcome]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"outcome": "Invalid administration outcome."}})
			return
		}
		proposed.Outcome = *req.Outcome
	}
	if req.Notes != nil {
		proposed.Notes = *req.Notes
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
		result, err := tx.Update("medication_administration").
			Set(goqu.Record{
				"medication_id":      proposed.Medication_ID,
				"administered_at":    proposed.Administered_At,
				"outcome":            proposed.Outcome,
				"notes":              proposed.Notes,
				"edit_reason_type":   proposed.Edit_Reason_Type,
				"edit_reason_detail": proposed.Edit_Reason_Detail,
				"updated_by":         userID,
				"datetime_update":    goqu.L("NOW()"),
			}).
			Where(goqu.C("medication_administration_id").Eq(marID)).
			Executor().Exec()
		if err != nil {
			return err
		}

		if rows, _ := result.RowsAffected(); rows == 0 {
			return errNoRowsUpdated
		}

		actor := userID
		if err := services.RecordUpdated(tx, models.EntityMedicationAdministration, marID, &actor, proposed.Edit_Reason_Type, proposed.Edit_Reason_Detail, proposed.SnapshotFields()); err != nil {
			return err
		}

		if reason != "" {
			after.Add(func() {
				services.AttributeChangeReason(models.EntityMedicationAdministration, marID, reason)
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update medication administration record", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Medication administration record updated successfully.",
		"mar":     proposed,
	})
}

// DeleteMAR always rejects. Medication administration records are never
// removed through the API, whatever the caller's role.
func DeleteMAR(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "Medication administration records cannot be deleted."})
}

func GetMARHistory(c *gin.Context) {
	marID, ok := fetchMARID(c)
	if !ok {
		return
	}

	rows, err := services.FetchHistory(models.EntityMedicationAdministration, marID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch MAR history", "details": err.Error()})
		return
	}

	records, err := services.PresentRawHistory(rows, services.MARFieldDescriptors)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read MAR history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func GetMARHistorySummary(c *gin.Context) {
	marID, ok := fetchMARID(c)
	if !ok {
		return
	}

	rows, err := services.FetchHistory(models.EntityMedicationAdministration, marID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch MAR history", "details": err.Error()})
		return
	}

	events, err := services.PresentHistorySummary(rows, services.MARFieldDescriptors)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read MAR history", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, events)
}

func fetchMARID(c *gin.Context) (int, bool) {
	marID, err := strconv.Atoi(c.Param("mar_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid MAR ID", "details": err.Error()})
		return 0, false
	}

	count, err := initializers.DB.From("medication_administration").
		Where(goqu.C("medication_administration_id").Eq(marID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch medication administration record", "details": err.Error()})
		return 0, false
	}

	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medication administration record not found"})
		return 0, false
	}

	return marID, true
}
