package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CareLedger/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

var marColumns = []string{
	"medication_administration_id", "medication_id", "administered_by",
	"administered_at", "outcome", "notes", "edit_reason_type",
	"edit_reason_detail", "created_by", "datetime_create", "updated_by",
	"datetime_update", "deleted",
}

func mockMARRow(administeredBy int) *sqlmock.Rows {
	now := time.Now()
	mar := MockMAR()
	return sqlmock.NewRows(marColumns).AddRow(
		mar.Medication_Administration_ID, mar.Medication_ID, administeredBy,
		mar.Administered_At, mar.Outcome, mar.Notes, "", "",
		administeredBy, now, administeredBy, now, false,
	)
}

// Test CreateMAR - outcome validation and history snapshot on create
func TestCreateMAR(t *testing.T) {
	tests := []struct {
		name           string
		body           models.MedicationAdministrationCreate
		expectInsert   bool
		expectedStatus int
		errorField     string
	}{
		{
			name: "successful creation",
			body: models.MedicationAdministrationCreate{
				Medication_ID:   1,
				Administered_At: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
				Outcome:         "GIVEN",
				Notes:           "Taken with breakfast",
			},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "refused outcome is valid",
			body: models.MedicationAdministrationCreate{
				Medication_ID:   1,
				Administered_At: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
				Outcome:         "REFUSED",
				Notes:           "Declined at breakfast, offered again at 9",
			},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid outcome",
			body: models.MedicationAdministrationCreate{
				Medication_ID:   1,
				Administered_At: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
				Outcome:         "SWALLOWED",
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "outcome",
		},
		{
			name: "invalid edit reason type",
			body: models.MedicationAdministrationCreate{
				Medication_ID:    1,
				Administered_At:  time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
				Outcome:          "GIVEN",
				Edit_Reason_Type: "NOPE",
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "edit_reason_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectInsert {
				mock.ExpectBegin()
				mock.ExpectQuery("INSERT INTO \"medication_administration\"").
					WillReturnRows(sqlmock.NewRows([]string{"medication_administration_id"}).AddRow(1))
				mock.ExpectExec("INSERT INTO \"record_history\"").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockStaffUser(), false)

			jsonData, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("POST", "/mar", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			CreateMAR(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.errorField != "" {
				errs := response["errors"].(map[string]interface{})
				assert.NotNil(t, errs[tt.errorField])
			} else {
				assert.NotNil(t, response["message"])
			}
		})
	}
}

// Test UpdateMAR - edit reason enforcement mirrors the incident rules
func TestUpdateMAR(t *testing.T) {
	tests := []struct {
		name           string
		currentUser    models.UserProfile
		isManager      bool
		administeredBy int
		body           models.MedicationAdministrationUpdate
		expectUpdate   bool
		expectReason   bool
		expectedStatus int
		errorField     string
	}{
		{
			name:           "outcome change without reason is rejected",
			currentUser:    MockStaffUser(),
			administeredBy: 1,
			body: models.MedicationAdministrationUpdate{
				Outcome: StrPtr("REFUSED"),
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "edit_reason_detail",
		},
		{
			name:           "outcome change with reason succeeds",
			currentUser:    MockStaffUser(),
			administeredBy: 1,
			body: models.MedicationAdministrationUpdate{
				Outcome:            StrPtr("PARTIAL"),
				Edit_Reason_Type:   StrPtr(models.EditReasonClarification),
				Edit_Reason_Detail: StrPtr("Resident only took half the dose"),
			},
			expectUpdate:   true,
			expectReason:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid outcome rejected",
			currentUser:    MockStaffUser(),
			administeredBy: 1,
			body: models.MedicationAdministrationUpdate{
				Outcome:            StrPtr("MAYBE"),
				Edit_Reason_Detail: StrPtr("some reason"),
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "outcome",
		},
		{
			name:           "forbidden - staff editing another user's record",
			currentUser:    MockStaffUser(),
			administeredBy: 2,
			body: models.MedicationAdministrationUpdate{
				Notes:              StrPtr("Updated notes"),
				Edit_Reason_Detail: StrPtr("Fixing the record"),
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "manager can edit another user's record",
			currentUser:    MockManagerUser(),
			isManager:      true,
			administeredBy: 1,
			body: models.MedicationAdministrationUpdate{
				Notes:              StrPtr("Reviewed and corrected"),
				Edit_Reason_Detail: StrPtr("Post-audit correction"),
			},
			expectUpdate:   true,
			expectReason:   true,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			mock.ExpectQuery("SELECT").WillReturnRows(mockMARRow(tt.administeredBy))

			if tt.expectUpdate {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE \"medication_administration\"").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO \"record_history\"").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
				if tt.expectReason {
					mock.ExpectExec("UPDATE \"record_history\"").
						WillReturnResult(sqlmock.NewResult(0, 1))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.currentUser, tt.isManager)
			c.Params = []gin.Param{{Key: "mar_id", Value: "1"}}

			jsonData, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("PATCH", "/mar/1", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			UpdateMAR(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.errorField != "" {
				errs := response["errors"].(map[string]interface{})
				assert.NotNil(t, errs[tt.errorField])
			} else if tt.expectedStatus == http.StatusOK {
				assert.NotNil(t, response["message"])
			}
		})
	}
}

// Test DeleteMAR - rejected for every caller, manager or not
func TestDeleteMAR(t *testing.T) {
	tests := []struct {
		name        string
		currentUser models.UserProfile
		isManager   bool
	}{
		{name: "staff cannot delete", currentUser: MockStaffUser(), isManager: false},
		{name: "manager cannot delete", currentUser: MockManagerUser(), isManager: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.currentUser, tt.isManager)
			c.Params = []gin.Param{{Key: "mar_id", Value: "1"}}
			c.Request = httptest.NewRequest("DELETE", "/mar/1", nil)

			DeleteMAR(c)

			assert.Equal(t, http.StatusForbidden, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			assert.NotNil(t, response["error"])
		})
	}
}

// Test GetMARHistory - 404 when the record does not exist
func TestGetMARHistory(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockManagerUser(), true)
	c.Params = []gin.Param{{Key: "mar_id", Value: "999"}}
	c.Request = httptest.NewRequest("GET", "/mar/999/history", nil)

	GetMARHistory(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
