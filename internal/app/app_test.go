package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/internal/config"
	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/session"
	"github.com/klokku/docket/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (http.Handler, *Dependencies) {
	t.Helper()
	fixed := &clock.Fixed{FixedNow: time.Date(2026, time.February, 5, 9, 30, 0, 0, time.Local)}
	deps := BuildDependencies(config.Defaults(), fixed)
	t.Cleanup(deps.Close)
	require.NoError(t, Seed(context.Background(), deps, config.Seed{Demo: true}))
	return NewRouter(deps), deps
}

func call(t *testing.T, h http.Handler, method, url, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRouter_ListsDemoEvents(t *testing.T) {
	r, _ := setupRouter(t)

	w := call(t, r, http.MethodGet, "/api/calendar/event", "")

	require.Equal(t, http.StatusOK, w.Code)
	var events []event.EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&events))
	assert.Len(t, events, 8)
	assert.NotEmpty(t, w.Header().Get(RequestIdHeader))
}

func TestRouter_KeepsCallerRequestId(t *testing.T) {
	r, _ := setupRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/upcoming", nil)
	req.Header.Set(RequestIdHeader, "abc-123")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIdHeader))
}

func TestRouter_DeleteNeedsConfirmation(t *testing.T) {
	r, deps := setupRouter(t)

	w := call(t, r, http.MethodDelete, "/api/calendar/event/2", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, deps.EventService.All(), 8)

	w = call(t, r, http.MethodDelete, "/api/calendar/event/2?confirm=true", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, deps.EventService.All(), 7)
}

func TestRouter_DeleteClosesSessionDetail(t *testing.T) {
	r, _ := setupRouter(t)
	require.Equal(t, http.StatusOK, call(t, r, http.MethodPut, "/api/session/detail/4", "").Code)
	require.Equal(t, http.StatusOK, call(t, r, http.MethodPost, "/api/session/dialog/edit/4", "").Code)

	call(t, r, http.MethodDelete, "/api/calendar/event/4?confirm=true", "")

	w := call(t, r, http.MethodGet, "/api/session", "")
	var state session.StateDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&state))
	assert.Nil(t, state.Detail)
	assert.Equal(t, session.DialogClosed, state.Dialog.Kind)
}

func TestRouter_CreateThroughSessionUpdatesStats(t *testing.T) {
	r, _ := setupRouter(t)

	require.Equal(t, http.StatusOK, call(t, r, http.MethodPost, "/api/session/dialog/create", "").Code)
	require.Equal(t, http.StatusOK, call(t, r, http.MethodPut, "/api/session/dialog/draft",
		`{"title":"Status Conference","category":"hearing","date":"2026-02-09"}`).Code)
	w := call(t, r, http.MethodPost, "/api/session/dialog/confirm", "")
	require.Equal(t, http.StatusOK, w.Code)
	var created event.EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, 9, created.ID)

	w = call(t, r, http.MethodGet, "/api/calendar/stats", "")
	var summary stats.StatsSummaryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&summary))
	assert.Equal(t, 3, summary.Counts.Hearings)
	assert.Equal(t, 9, summary.Counts.Total)
}

func TestRouter_ViewAndExport(t *testing.T) {
	r, _ := setupRouter(t)

	w := call(t, r, http.MethodGet, "/api/calendar/view?mode=week&date=2026-02-05", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = call(t, r, http.MethodGet, "/api/calendar/export.ics?category=hearing", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), "BEGIN:VEVENT"))
}

func TestSeed_FromFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	require.NoError(t, os.WriteFile(path, []byte("events:\n  - title: Intake call\n    category: consultation\n"), 0o600))
	deps := BuildDependencies(config.Defaults(), &clock.Fixed{FixedNow: time.Now()})
	t.Cleanup(deps.Close)

	require.NoError(t, Seed(context.Background(), deps, config.Seed{Path: path}))

	events := deps.EventService.All()
	require.Len(t, events, 1)
	assert.Equal(t, "Intake call", events[0].Title)

	assert.Error(t, Seed(context.Background(), deps, config.Seed{Path: filepath.Join(t.TempDir(), "missing.yaml")}))
}
