package ics

import (
	"bytes"
	"net/http"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/internal/rest"
	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/filter"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	events event.Reader
	clock  clock.Clock
}

func NewHandler(events event.Reader, clock clock.Clock) *Handler {
	return &Handler{events: events, clock: clock}
}

// GetExport serves the filtered events as text/calendar.
// Query: category (default all), search.
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	category := query.Get("category")
	if category != "" && category != filter.CategoryAll {
		if _, err := event.ParseCategory(category); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid category", err.Error())
			return
		}
	}

	events := filter.Apply(h.events.All(), filter.Criteria{Category: category, Search: query.Get("search")})
	var buf bytes.Buffer
	if err := Render(&buf, events, h.clock.Now()); err != nil {
		log.Errorf("failed to render calendar export: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="docket.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Errorf("failed to write calendar export: %v", err)
	}
}
