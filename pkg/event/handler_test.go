package event

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) *Handler {
	service, _, _ := setupService(t)
	return NewHandler(service)
}

func createViaHandler(t *testing.T, handler *Handler, dto EventDTO) EventDTO {
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var created EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestCreateEvent_AppliesDefaults(t *testing.T) {
	handler := setupHandlerTest(t)

	created := createViaHandler(t, handler, EventDTO{Date: "2026-02-07"})

	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "New Event", created.Title)
	assert.Equal(t, "meeting", created.Category)
	assert.Equal(t, "Meeting", created.Label)
	assert.Equal(t, "2026-02-07", created.Date)
	assert.Equal(t, "9:00 AM", created.StartTime)
	assert.Equal(t, "scheduled", created.Status)
	assert.Equal(t, "medium", created.Priority)
	assert.Equal(t, []string{}, created.Attendees)
}

func TestCreateEvent_InvalidCategory(t *testing.T) {
	handler := setupHandlerTest(t)
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event", bytes.NewBufferString(`{"category":"party"}`))
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Equal(t, "Invalid event", errResponse.Error)
	assert.Contains(t, errResponse.Details, "party")
}

func TestCreateEvent_InvalidDate(t *testing.T) {
	handler := setupHandlerTest(t)
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/event", bytes.NewBufferString(`{"date":"05/02/2026"}`))
	w := httptest.NewRecorder()

	handler.CreateEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateEvent(t *testing.T) {
	handler := setupHandlerTest(t)
	created := createViaHandler(t, handler, EventDTO{Title: "Draft"})
	created.Title = "Final"
	created.Category = "deadline"
	body, _ := json.Marshal(created)
	req := httptest.NewRequest(http.MethodPut, "/api/calendar/event/1", bytes.NewBuffer(body))
	req = mux.SetURLVars(req, map[string]string{"eventId": "1"})
	w := httptest.NewRecorder()

	handler.UpdateEvent(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var updated EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "deadline", updated.Category)
}

func TestUpdateEvent_UnknownId(t *testing.T) {
	handler := setupHandlerTest(t)
	body := `{"title":"x","category":"meeting","date":"2026-02-05","status":"scheduled","priority":"low"}`
	req := httptest.NewRequest(http.MethodPut, "/api/calendar/event/9", bytes.NewBufferString(body))
	req = mux.SetURLVars(req, map[string]string{"eventId": "9"})
	w := httptest.NewRecorder()

	handler.UpdateEvent(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateEvent_RequiresFullRecord(t *testing.T) {
	handler := setupHandlerTest(t)
	createViaHandler(t, handler, EventDTO{})
	req := httptest.NewRequest(http.MethodPut, "/api/calendar/event/1", bytes.NewBufferString(`{"title":"only a title"}`))
	req = mux.SetURLVars(req, map[string]string{"eventId": "1"})
	w := httptest.NewRecorder()

	handler.UpdateEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteEvent_NeedsConfirmation(t *testing.T) {
	handler := setupHandlerTest(t)
	createViaHandler(t, handler, EventDTO{})

	req := httptest.NewRequest(http.MethodDelete, "/api/calendar/event/1", nil)
	req = mux.SetURLVars(req, map[string]string{"eventId": "1"})
	w := httptest.NewRecorder()
	handler.DeleteEvent(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, handler.events.All(), 1)

	req = httptest.NewRequest(http.MethodDelete, "/api/calendar/event/1?confirm=true", nil)
	req = mux.SetURLVars(req, map[string]string{"eventId": "1"})
	w = httptest.NewRecorder()
	handler.DeleteEvent(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, handler.events.All())
}

func TestGetEvent_InvalidId(t *testing.T) {
	handler := setupHandlerTest(t)
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/event/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"eventId": "abc"})
	w := httptest.NewRecorder()

	handler.GetEvent(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEvents_ReturnsInsertionOrder(t *testing.T) {
	handler := setupHandlerTest(t)
	createViaHandler(t, handler, EventDTO{Title: "A", Date: "2026-03-01"})
	createViaHandler(t, handler, EventDTO{Title: "B", Date: "2026-01-01"})
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/event", nil)
	w := httptest.NewRecorder()

	handler.GetEvents(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var dtos []EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
	require.Len(t, dtos, 2)
	assert.Equal(t, "A", dtos[0].Title)
	assert.Equal(t, "B", dtos[1].Title)
}
