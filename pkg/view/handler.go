package view

import (
	"errors"
	"net/http"
	"time"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/internal/rest"
	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/filter"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	events event.Reader
	clock  clock.Clock
	opts   Options
}

type BucketDTO struct {
	Hour   int              `json:"hour"`
	Label  string           `json:"label"`
	Events []event.EventDTO `json:"events"`
}

type DayViewDTO struct {
	Date    string      `json:"date"`
	Buckets []BucketDTO `json:"buckets"`
}

type WeekDayDTO struct {
	Date       string           `json:"date"`
	Events     []event.EventDTO `json:"events"`
	Overflow   int              `json:"overflow"`
	Total      int              `json:"total"`
	IsToday    bool             `json:"isToday"`
	IsSelected bool             `json:"isSelected"`
}

type WeekViewDTO struct {
	Start string       `json:"start"`
	End   string       `json:"end"`
	Days  []WeekDayDTO `json:"days"`
}

type MonthViewDTO struct {
	Date   string           `json:"date"`
	Events []event.EventDTO `json:"events"`
}

type ProjectionDTO struct {
	Mode  string        `json:"mode"`
	Date  string        `json:"date"`
	Day   *DayViewDTO   `json:"day,omitempty"`
	Week  *WeekViewDTO  `json:"week,omitempty"`
	Month *MonthViewDTO `json:"month,omitempty"`
}

func NewHandler(events event.Reader, clock clock.Clock, opts Options) *Handler {
	return &Handler{events: events, clock: clock, opts: opts}
}

// GetView projects the filtered events.
// Query: mode (day|week|month, default month), date (YYYY-MM-DD, default today),
// category (default all), search.
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mode := MonthMode
	if m := query.Get("mode"); m != "" {
		parsed, err := ParseMode(m)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid view mode", "mode must be one of day, week, month")
			return
		}
		mode = parsed
	}

	today := clock.Today(h.clock)
	date := today
	if d := query.Get("date"); d != "" {
		parsed, err := event.ParseDate(d)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	category := query.Get("category")
	if category != "" && category != filter.CategoryAll {
		if _, err := event.ParseCategory(category); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid category", err.Error())
			return
		}
	}

	filtered := filter.Apply(h.events.All(), filter.Criteria{Category: category, Search: query.Get("search")})
	projection, err := Project(mode, filtered, date, today, h.opts)
	if err != nil {
		if errors.Is(err, ErrUnknownMode) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid view mode", err.Error())
			return
		}
		log.Errorf("failed to project %s view: %v", mode, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusOK, ToDTO(projection))
}

func ToDTO(p Projection) ProjectionDTO {
	dto := ProjectionDTO{Mode: string(p.Mode), Date: formatDate(p.Date)}
	if p.Day != nil {
		day := DayViewDTO{Date: formatDate(p.Day.Date), Buckets: make([]BucketDTO, 0, len(p.Day.Buckets))}
		for _, b := range p.Day.Buckets {
			day.Buckets = append(day.Buckets, BucketDTO{Hour: b.Hour, Label: b.Label, Events: event.ToDTOs(b.Events)})
		}
		dto.Day = &day
	}
	if p.Week != nil {
		week := WeekViewDTO{Start: formatDate(p.Week.Start), End: formatDate(p.Week.End), Days: make([]WeekDayDTO, 0, len(p.Week.Days))}
		for _, d := range p.Week.Days {
			week.Days = append(week.Days, WeekDayDTO{
				Date:       formatDate(d.Date),
				Events:     event.ToDTOs(d.Events),
				Overflow:   d.Overflow,
				Total:      d.Total,
				IsToday:    d.IsToday,
				IsSelected: d.IsSelected,
			})
		}
		dto.Week = &week
	}
	if p.Month != nil {
		dto.Month = &MonthViewDTO{Date: formatDate(p.Month.Date), Events: event.ToDTOs(p.Month.Events)}
	}
	return dto
}

func formatDate(t time.Time) string {
	return t.Format(event.DateLayout)
}
