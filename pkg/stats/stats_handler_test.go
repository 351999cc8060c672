package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) *StatsHandler {
	t.Helper()
	repo := event.NewMemoryRepository()
	repo.Insert(event.Draft{Title: "Hearing", Category: event.Hearing, Date: day(1)}, day(0))
	repo.Insert(event.Draft{Title: "Cancelled deadline", Category: event.Deadline, Date: day(2), Status: event.Cancelled}, day(0))
	repo.Insert(event.Draft{Title: "Old meeting", Category: event.Meeting, Date: day(-3)}, day(0))
	service := NewStatsServiceImpl(repo, &clock.Fixed{FixedNow: now}, DefaultUpcomingLimit)
	return NewStatsHandler(service, NewCsvStatsRenderer())
}

func TestGetStats_Json(t *testing.T) {
	handler := setupHandlerTest(t)
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/stats", nil)
	w := httptest.NewRecorder()

	handler.GetStats(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var dto StatsSummaryDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, 2, dto.Counts.Total)
	assert.Equal(t, 1, dto.Counts.Hearings)
	assert.Equal(t, 1, dto.Counts.Meetings)
	assert.Equal(t, 0, dto.Counts.Deadlines)
	require.Len(t, dto.Upcoming, 1)
	assert.Equal(t, "Hearing", dto.Upcoming[0].Title)
}

func TestGetStats_Csv(t *testing.T) {
	handler := setupHandlerTest(t)
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/stats", nil)
	req.Header.Set("Accept", "text/csv")
	w := httptest.NewRecorder()

	handler.GetStats(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "Category,Scheduled\n"))
	assert.Contains(t, w.Body.String(), "Total,2\n")
}

func TestGetUpcoming(t *testing.T) {
	handler := setupHandlerTest(t)
	req := httptest.NewRequest(http.MethodGet, "/api/calendar/upcoming", nil)
	w := httptest.NewRecorder()

	handler.GetUpcoming(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var dtos []event.EventDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
	require.Len(t, dtos, 1)
	assert.Equal(t, 1, dtos[0].ID)
}
