package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pillpal/backend/internal/testhelpers"
)

func TestCreateReminderEndpoint(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	user, token := createUserAndToken(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	w := postJSON(t, router, "/api/reminders", token, map[string]interface{}{
		"medication_id": med.ID,
		"time":          "08:30",
		"frequency":     "DAILY",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "08:30", response["time"])
	assert.Equal(t, true, response["enabled"])
}

func TestCreateReminderRejectsUnknownFrequency(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	user, token := createUserAndToken(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	w := postJSON(t, router, "/api/reminders", token, map[string]interface{}{
		"medication_id": med.ID,
		"time":          "08:30",
		"frequency":     "HOURLY",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReminderRejectsBogusTime(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	user, token := createUserAndToken(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	w := postJSON(t, router, "/api/reminders", token, map[string]interface{}{
		"medication_id": med.ID,
		"time":          "99:99",
		"frequency":     "DAILY",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListRemindersForMedicationMessage(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	user, token := createUserAndToken(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")

	// No reminders yet: the list carries an explanatory message.
	w := doRequest(t, router, "GET", "/api/reminders/medication/"+med.ID.String(), token)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reminders []map[string]interface{} `json:"reminders"`
		Message   string                   `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Reminders)
	assert.NotEmpty(t, response.Message)

	testhelpers.CreateTestReminder(t, db, med.ID, "08:00")

	w = doRequest(t, router, "GET", "/api/reminders/medication/"+med.ID.String(), token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Reminders, 1)
	assert.Empty(t, response.Message)
}

func TestUpdateReminderEndpoint(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	user, token := createUserAndToken(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	rem := testhelpers.CreateTestReminder(t, db, med.ID, "08:00")

	data, _ := json.Marshal(map[string]interface{}{"time": "21:15", "frequency": "WEEKLY"})
	req := httptest.NewRequest("PUT", "/api/reminders/"+rem.ID.String(), bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "21:15", response["time"])
	assert.Equal(t, "WEEKLY", response["frequency"])
}

func TestToggleReminderEndpoint(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	user, token := createUserAndToken(t, db, "alice", "alice@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	rem := testhelpers.CreateTestReminder(t, db, med.ID, "08:00")

	req := httptest.NewRequest("PATCH", "/api/reminders/"+rem.ID.String()+"/toggle", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, false, response["enabled"])
}

func TestDeleteReminderEndpoint(t *testing.T) {
	router, db := setupTestRouter(t, nil)
	user, token := createUserAndToken(t, db, "alice", "alice@example.com")
	_, otherToken := createUserAndToken(t, db, "bob", "bob@example.com")
	med := testhelpers.CreateTestMedication(t, db, user.ID, "Aspirin")
	rem := testhelpers.CreateTestReminder(t, db, med.ID, "08:00")

	w := doRequest(t, router, "DELETE", "/api/reminders/"+rem.ID.String(), otherToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, "DELETE", "/api/reminders/"+rem.ID.String(), token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, "GET", "/api/reminders/"+rem.ID.String(), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
