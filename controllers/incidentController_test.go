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

var incidentColumns = []string{
	"incident_id", "resident_id", "reported_by", "occurred_at", "category",
	"severity", "description", "action_taken", "external_contacts",
	"follow_up_required", "edit_reason_type", "edit_reason_detail",
	"created_by", "datetime_create", "updated_by", "datetime_update", "deleted",
}

func mockIncidentRow(reportedBy int) *sqlmock.Rows {
	now := time.Now()
	inc := MockIncident()
	return sqlmock.NewRows(incidentColumns).AddRow(
		inc.Incident_ID, inc.Resident_ID, reportedBy, inc.Occurred_At, inc.Category,
		inc.Severity, inc.Description, inc.Action_Taken, inc.External_Contacts,
		inc.Follow_Up_Required, "", "",
		reportedBy, now, reportedBy, now, false,
	)
}

// Test GetIncident - fetch a single incident record
func TestGetIncident(t *testing.T) {
	tests := []struct {
		name           string
		incidentID     string
		incidentExists bool
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "successful retrieval",
			incidentID:     "1",
			incidentExists: true,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "incident not found",
			incidentID:     "999",
			incidentExists: false,
			expectedStatus: http.StatusNotFound,
			expectError:    true,
		},
		{
			name:           "invalid incident ID",
			incidentID:     "invalid",
			incidentExists: false,
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.incidentID != "invalid" {
				if tt.incidentExists {
					mock.ExpectQuery("SELECT").WillReturnRows(mockIncidentRow(1))
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(incidentColumns))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockStaffUser(), false)
			c.Params = []gin.Param{{Key: "incident_id", Value: tt.incidentID}}
			c.Request = httptest.NewRequest("GET", "/incidents/"+tt.incidentID, nil)

			GetIncident(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
			} else {
				assert.Equal(t, float64(1), response["incident_id"])
			}
		})
	}
}

// Test CreateIncident - creation never demands an edit reason but a supplied
// reason type must be a defined code
func TestCreateIncident(t *testing.T) {
	tests := []struct {
		name           string
		body           models.IncidentCreate
		expectInsert   bool
		expectedStatus int
		errorField     string
	}{
		{
			name: "successful creation without edit reason",
			body: models.IncidentCreate{
				Resident_ID: 1,
				Occurred_At: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
				Category:    "AGGRESSION",
				Severity:    models.SeverityMedium,
				Description: "Raised voice at lunch",
			},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "successful creation with valid edit reason type",
			body: models.IncidentCreate{
				Resident_ID:        1,
				Occurred_At:        time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
				Category:           "PROPERTY",
				Severity:           models.SeverityLow,
				Description:        "Broken chair",
				Edit_Reason_Type:   models.EditReasonLateEntry,
				Edit_Reason_Detail: "Logged after the shift handover",
			},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name: "invalid edit reason type",
			body: models.IncidentCreate{
				Resident_ID:      1,
				Occurred_At:      time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
				Category:         "AGGRESSION",
				Severity:         models.SeverityMedium,
				Description:      "Raised voice at lunch",
				Edit_Reason_Type: "BECAUSE",
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "edit_reason_type",
		},
		{
			name: "invalid category",
			body: models.IncidentCreate{
				Resident_ID: 1,
				Occurred_At: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
				Category:    "UNKNOWN_CATEGORY",
				Severity:    models.SeverityMedium,
				Description: "Raised voice at lunch",
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "category",
		},
		{
			name: "invalid severity",
			body: models.IncidentCreate{
				Resident_ID: 1,
				Occurred_At: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
				Category:    "AGGRESSION",
				Severity:    "EXTREME",
				Description: "Raised voice at lunch",
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "severity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectInsert {
				mock.ExpectBegin()
				mock.ExpectQuery("INSERT INTO \"incident\"").
					WillReturnRows(sqlmock.NewRows([]string{"incident_id"}).AddRow(1))
				mock.ExpectExec("INSERT INTO \"record_history\"").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
				if tt.body.Edit_Reason_Detail != "" {
					mock.ExpectExec("UPDATE \"record_history\"").
						WillReturnResult(sqlmock.NewResult(0, 1))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockStaffUser(), false)

			jsonData, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("POST", "/incidents", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			CreateIncident(c)

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

// Test UpdateIncident - edit reason enforcement and ownership
func TestUpdateIncident(t *testing.T) {
	tests := []struct {
		name           string
		currentUser    models.UserProfile
		isManager      bool
		reportedBy     int
		body           models.IncidentUpdate
		expectUpdate   bool
		expectReason   bool
		expectedStatus int
		errorField     string
	}{
		{
			name:        "meaningful change without reason is rejected",
			currentUser: MockStaffUser(),
			reportedBy:  1,
			body: models.IncidentUpdate{
				Description: StrPtr("Corrected account of the incident"),
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "edit_reason_detail",
		},
		{
			name:        "meaningful change with reason succeeds",
			currentUser: MockStaffUser(),
			reportedBy:  1,
			body: models.IncidentUpdate{
				Description:        StrPtr("Corrected account of the incident"),
				Edit_Reason_Type:   StrPtr(models.EditReasonTypo),
				Edit_Reason_Detail: StrPtr("Fixed a typo in the description"),
			},
			expectUpdate:   true,
			expectReason:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:        "no-op update without reason succeeds",
			currentUser: MockStaffUser(),
			reportedBy:  1,
			body: models.IncidentUpdate{
				Description: StrPtr("Initial"),
			},
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:        "invalid edit reason type",
			currentUser: MockStaffUser(),
			reportedBy:  1,
			body: models.IncidentUpdate{
				Description:        StrPtr("Corrected account of the incident"),
				Edit_Reason_Type:   StrPtr("WHIM"),
				Edit_Reason_Detail: StrPtr("some detail"),
			},
			expectedStatus: http.StatusBadRequest,
			errorField:     "edit_reason_type",
		},
		{
			name:        "clarification reason is accepted",
			currentUser: MockStaffUser(),
			reportedBy:  1,
			body: models.IncidentUpdate{
				Action_Taken:       StrPtr("Also informed the on-call manager"),
				Edit_Reason_Type:   StrPtr(models.EditReasonClarification),
				Edit_Reason_Detail: StrPtr("Added the manager notification"),
			},
			expectUpdate:   true,
			expectReason:   true,
			expectedStatus: http.StatusOK,
		},
		{
			name:        "forbidden - staff editing another user's incident",
			currentUser: MockStaffUser(),
			reportedBy:  2,
			body: models.IncidentUpdate{
				Description:        StrPtr("Corrected account of the incident"),
				Edit_Reason_Detail: StrPtr("Fixing the record"),
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:        "manager can edit another user's incident",
			currentUser: MockManagerUser(),
			isManager:   true,
			reportedBy:  1,
			body: models.IncidentUpdate{
				Description:        StrPtr("Corrected account of the incident"),
				Edit_Reason_Detail: StrPtr("Post-review correction"),
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

			mock.ExpectQuery("SELECT").WillReturnRows(mockIncidentRow(tt.reportedBy))

			if tt.expectUpdate {
				mock.ExpectBegin()
				mock.ExpectExec("UPDATE \"incident\"").
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
			c.Params = []gin.Param{{Key: "incident_id", Value: "1"}}

			jsonData, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("PATCH", "/incidents/1", bytes.NewBuffer(jsonData))
			c.Request.Header.Set("Content-Type", "application/json")

			UpdateIncident(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.errorField != "" {
				errs := response["errors"].(map[string]interface{})
				assert.NotNil(t, errs[tt.errorField])
			} else if tt.expectedStatus == http.StatusOK {
				assert.NotNil(t, response["message"])

				if err := mock.ExpectationsWereMet(); err != nil {
					t.Errorf("unmet expectations: %v", err)
				}
			}
		})
	}
}

// Test DeleteIncident - rejected for every caller, manager or not
func TestDeleteIncident(t *testing.T) {
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
			c.Params = []gin.Param{{Key: "incident_id", Value: "1"}}
			c.Request = httptest.NewRequest("DELETE", "/incidents/1", nil)

			DeleteIncident(c)

			assert.Equal(t, http.StatusForbidden, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			assert.NotNil(t, response["error"])
		})
	}
}

// Test GetIncidentHistory - snapshots resolve to a bare array, 404 when the
// incident itself does not exist
func TestGetIncidentHistory(t *testing.T) {
	tests := []struct {
		name           string
		incidentID     string
		incidentExists bool
		expectedStatus int
	}{
		{
			name:           "history for existing incident",
			incidentID:     "1",
			incidentExists: true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "incident not found",
			incidentID:     "999",
			incidentExists: false,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid incident ID",
			incidentID:     "invalid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.incidentID != "invalid" {
				existsCount := 0
				if tt.incidentExists {
					existsCount = 1
				}
				mock.ExpectQuery("SELECT").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(existsCount))

				if tt.incidentExists {
					now := time.Now()
					snapshot, _ := json.Marshal(MockIncident().SnapshotFields())
					historyRows := sqlmock.NewRows([]string{
						"record_history_id", "entity_type", "entity_id", "history_date",
						"history_type", "history_user_id", "history_change_reason",
						"edit_reason_type", "edit_reason_detail", "snapshot",
					}).AddRow(1, models.EntityIncident, 1, now, models.HistoryTypeCreated, 1, nil, "", "", string(snapshot))
					mock.ExpectQuery("SELECT").WillReturnRows(historyRows)

					// actor usernames
					mock.ExpectQuery("SELECT").WillReturnRows(
						sqlmock.NewRows([]string{"user_profile_id", "username"}).AddRow(1, "staffuser"))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockManagerUser(), true)
			c.Params = []gin.Param{{Key: "incident_id", Value: tt.incidentID}}
			c.Request = httptest.NewRequest("GET", "/incidents/"+tt.incidentID+"/history", nil)

			GetIncidentHistory(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var records []map[string]interface{}
				err := json.Unmarshal(w.Body.Bytes(), &records)
				assert.NoError(t, err)
				assert.Len(t, records, 1)
				assert.Equal(t, models.HistoryTypeCreated, records[0]["history_type"])
			}
		})
	}
}

// Test GetIncidentHistorySummary - summary sentences for the audit view
func TestGetIncidentHistorySummary(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	created := MockIncident().SnapshotFields()
	updated := MockIncident()
	updated.Description = "Corrected account"
	updatedSnapshot, _ := json.Marshal(updated.SnapshotFields())
	createdSnapshot, _ := json.Marshal(created)

	historyRows := sqlmock.NewRows([]string{
		"record_history_id", "entity_type", "entity_id", "history_date",
		"history_type", "history_user_id", "history_change_reason",
		"edit_reason_type", "edit_reason_detail", "snapshot",
	}).
		AddRow(2, models.EntityIncident, 1, now, models.HistoryTypeUpdated, 1, "Fixed a typo", models.EditReasonTypo, "Fixed a typo", string(updatedSnapshot)).
		AddRow(1, models.EntityIncident, 1, now.Add(-time.Hour), models.HistoryTypeCreated, 1, nil, "", "", string(createdSnapshot))
	mock.ExpectQuery("SELECT").WillReturnRows(historyRows)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"user_profile_id", "username"}).AddRow(1, "staffuser"))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockManagerUser(), true)
	c.Params = []gin.Param{{Key: "incident_id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/incidents/1/history-summary", nil)

	GetIncidentHistorySummary(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var events []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &events)
	assert.NoError(t, err)
	assert.Len(t, events, 2)

	assert.Equal(t, "UPDATED", events[0]["event"])
	assert.Contains(t, events[0]["summary"], "staffuser")
	assert.Contains(t, events[0]["summary"], "Description")

	assert.Equal(t, "CREATED", events[1]["event"])
	assert.Contains(t, events[1]["summary"], "created this record")
}

// Helper functions for pointer types
func StrPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

func IntPtr(i int) *int {
	return &i
}
