package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// Test GetResidentTimeline - merged reverse-chronological feed across record types
func TestGetResidentTimeline(t *testing.T) {
	t.Run("merges record types newest first", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		now := time.Now()

		// resident fetch
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows(residentColumns).
				AddRow(1, "Jordan Price", "JP", nil, true, 2, now, 2, now))

		// daily logs: event 4h ago (oldest)
		logCreated := now.Add(-3 * time.Hour)
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows(dailyLogColumns).AddRow(
				10, 1, nil, 1, "Settled evening", "calm", "",
				logCreated.Add(-time.Hour), logCreated, "", "",
				1, logCreated, 1, logCreated, false))

		// incidents: occurred 1h ago (newest)
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows(incidentColumns).AddRow(
				20, 1, 1, now.Add(-time.Hour), "AGGRESSION", "MEDIUM",
				"Raised voice at lunch", "De-escalated", "", false, "", "",
				1, now, 1, now, false))

		// MARs: administered 2h ago
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows(marColumns).AddRow(
				30, 1, 1, now.Add(-2*time.Hour), "GIVEN", "", "", "",
				1, now, 1, now, false))

		// actor usernames
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows([]string{"user_profile_id", "username"}).AddRow(1, "staffuser"))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStaffUser(), false)
		c.Params = []gin.Param{{Key: "resident_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/residents/1/timeline", nil)

		GetResidentTimeline(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)

		assert.Equal(t, float64(1), response["resident_id"])
		assert.Equal(t, "Jordan Price", response["resident_name"])

		events := response["events"].([]interface{})
		assert.Len(t, events, 3)

		first := events[0].(map[string]interface{})
		second := events[1].(map[string]interface{})
		third := events[2].(map[string]interface{})

		assert.Equal(t, "INCIDENT", first["event_type"])
		assert.Equal(t, "MEDICATION", second["event_type"])
		assert.Equal(t, "DAILY_LOG", third["event_type"])

		author := third["author"].(map[string]interface{})
		assert.Equal(t, "staffuser", author["username"])
	})

	t.Run("resident not found", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(residentColumns))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStaffUser(), false)
		c.Params = []gin.Param{{Key: "resident_id", Value: "999"}}
		c.Request = httptest.NewRequest("GET", "/residents/999/timeline", nil)

		GetResidentTimeline(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty timeline for resident with no records", func(t *testing.T) {
		_, mock, cleanup := SetupTestDB(t)
		defer cleanup()

		now := time.Now()
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows(residentColumns).
				AddRow(1, "Jordan Price", "JP", nil, true, 2, now, 2, now))
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(dailyLogColumns))
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(incidentColumns))
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(marColumns))

		c, w := SetupTestContext()
		SetAuthenticatedUser(c, MockStaffUser(), false)
		c.Params = []gin.Param{{Key: "resident_id", Value: "1"}}
		c.Request = httptest.NewRequest("GET", "/residents/1/timeline", nil)

		GetResidentTimeline(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		_ = json.Unmarshal(w.Body.Bytes(), &response)
		events := response["events"].([]interface{})
		assert.Len(t, events, 0)
	})
}
