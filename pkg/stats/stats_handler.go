package stats

import (
	"net/http"
	"time"

	"github.com/klokku/docket/internal/rest"
	"github.com/klokku/docket/pkg/event"
)

type CategoryCountsDTO struct {
	Total         int `json:"total"`
	Hearings      int `json:"hearings"`
	Deadlines     int `json:"deadlines"`
	Consultations int `json:"consultations"`
	Meetings      int `json:"meetings"`
	Internal      int `json:"internal"`
}

type StatsSummaryDTO struct {
	GeneratedAt time.Time         `json:"generatedAt"`
	Counts      CategoryCountsDTO `json:"counts"`
	Upcoming    []event.EventDTO  `json:"upcoming"`
}

type StatsHandler struct {
	statsService     StatsService
	csvStatsRenderer StatsRenderer
}

func NewStatsHandler(statsService StatsService, csvStatsRenderer StatsRenderer) *StatsHandler {
	return &StatsHandler{statsService, csvStatsRenderer}
}

func (handler *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := handler.statsService.GetStats(r.Context())

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := handler.csvStatsRenderer.RenderStats(stats)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, convertToJsonResponse(&stats))
}

func (handler *StatsHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	upcoming := handler.statsService.GetUpcoming(r.Context())
	rest.WriteJSON(w, http.StatusOK, event.ToDTOs(upcoming))
}

func convertToJsonResponse(stats *StatsSummary) *StatsSummaryDTO {
	return &StatsSummaryDTO{
		GeneratedAt: stats.GeneratedAt,
		Counts: CategoryCountsDTO{
			Total:         stats.Counts.Total,
			Hearings:      stats.Counts.Hearings,
			Deadlines:     stats.Counts.Deadlines,
			Consultations: stats.Counts.Consultations,
			Meetings:      stats.Counts.Meetings,
			Internal:      stats.Counts.Internal,
		},
		Upcoming: event.ToDTOs(stats.Upcoming),
	}
}
