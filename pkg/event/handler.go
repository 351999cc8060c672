package event

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/docket/internal/rest"
	log "github.com/sirupsen/logrus"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date at midnight in the local zone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

type Handler struct {
	events *Service
}

type EventDTO struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Label      string   `json:"label,omitempty"`
	Date       string   `json:"date"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
	Location   string   `json:"location,omitempty"`
	IsVirtual  bool     `json:"isVirtual"`
	CaseNumber string   `json:"caseNumber,omitempty"`
	Client     string   `json:"client,omitempty"`
	Attendees  []string `json:"attendees"`
	Status     string   `json:"status"`
	Priority   string   `json:"priority"`
	Notes      string   `json:"notes,omitempty"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

// GetEvents godoc
// @Summary List calendar events
// @Description Returns every event in insertion order
// @Tags Calendar
// @Produce json
// @Success 200 {array} EventDTO
// @Router /api/calendar/event [get]
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events := h.events.All()
	rest.WriteJSON(w, http.StatusOK, ToDTOs(events))
}

// GetEvent godoc
// @Summary Get a calendar event
// @Tags Calendar
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid event id"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/calendar/event/{eventId} [get]
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	e, found := h.events.Get(id)
	if !found {
		rest.WriteError(w, http.StatusNotFound, "Event not found", fmt.Sprintf("no event with id %d", id))
		return
	}
	rest.WriteJSON(w, http.StatusOK, ToDTO(e))
}

// CreateEvent godoc
// @Summary Create a calendar event
// @Description Missing fields get the creation defaults; a missing date means today
// @Tags Calendar
// @Accept json
// @Produce json
// @Param event body EventDTO true "Event"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Router /api/calendar/event [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	draft, err := DTOToDraft(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
		return
	}

	created := h.events.Create(r.Context(), draft)
	log.Infof("Event %d created", created.ID)
	rest.WriteJSON(w, http.StatusCreated, ToDTO(created))
}

// UpdateEvent godoc
// @Summary Replace a calendar event
// @Tags Calendar
// @Accept json
// @Produce json
// @Param eventId path int true "Event ID"
// @Param event body EventDTO true "Event"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid event"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/calendar/event/{eventId} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	e, err := DTOToEvent(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
		return
	}

	if !h.events.Update(r.Context(), id, e) {
		rest.WriteError(w, http.StatusNotFound, "Event not found", fmt.Sprintf("no event with id %d", id))
		return
	}
	updated, _ := h.events.Get(id)
	rest.WriteJSON(w, http.StatusOK, ToDTO(updated))
}

// DeleteEvent godoc
// @Summary Delete a calendar event
// @Description The request must carry confirm=true, otherwise nothing is deleted
// @Tags Calendar
// @Param eventId path int true "Event ID"
// @Param confirm query bool true "Deletion confirmed"
// @Success 204
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Failure 409 {object} rest.ErrorResponse "Deletion not confirmed"
// @Router /api/calendar/event/{eventId} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	if _, found := h.events.Get(id); !found {
		rest.WriteError(w, http.StatusNotFound, "Event not found", fmt.Sprintf("no event with id %d", id))
		return
	}
	if !h.events.Delete(r.Context(), id, QueryConfirmer(r)) {
		rest.WriteError(w, http.StatusConflict, "Deletion not confirmed", "repeat the request with confirm=true")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// QueryConfirmer approves a deletion when the request has confirm=true.
func QueryConfirmer(r *http.Request) Confirmer {
	return ConfirmFunc(func(_ context.Context, _ string) bool {
		confirmed, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
		return err == nil && confirmed
	})
}

func eventIdFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	idString := mux.Vars(r)["eventId"]
	id, err := strconv.Atoi(idString)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid event id", fmt.Sprintf("'%s' is not a number", idString))
		return 0, false
	}
	return id, true
}

func ToDTO(e Event) EventDTO {
	attendees := e.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return EventDTO{
		ID:         e.ID,
		Title:      e.Title,
		Category:   string(e.Category),
		Label:      e.Category.Label(),
		Date:       e.Date.Format(DateLayout),
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Location:   e.Location,
		IsVirtual:  e.IsVirtual,
		CaseNumber: e.CaseNumber,
		Client:     e.Client,
		Attendees:  attendees,
		Status:     string(e.Status),
		Priority:   string(e.Priority),
		Notes:      e.Notes,
	}
}

func ToDTOs(events []Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, ToDTO(e))
	}
	return dtos
}

// DTOToDraft converts a creation request. Empty fields are left for the
// repository defaults; present enumeration values must be valid.
func DTOToDraft(dto EventDTO) (Draft, error) {
	draft := Draft{
		Title:      dto.Title,
		StartTime:  dto.StartTime,
		EndTime:    dto.EndTime,
		Location:   dto.Location,
		IsVirtual:  dto.IsVirtual,
		CaseNumber: dto.CaseNumber,
		Client:     dto.Client,
		Attendees:  dto.Attendees,
		Notes:      dto.Notes,
	}
	var err error
	if dto.Category != "" {
		if draft.Category, err = ParseCategory(dto.Category); err != nil {
			return Draft{}, err
		}
	}
	if dto.Status != "" {
		if draft.Status, err = ParseStatus(dto.Status); err != nil {
			return Draft{}, err
		}
	}
	if dto.Priority != "" {
		if draft.Priority, err = ParsePriority(dto.Priority); err != nil {
			return Draft{}, err
		}
	}
	if dto.Date != "" {
		if draft.Date, err = ParseDate(dto.Date); err != nil {
			return Draft{}, fmt.Errorf("%w: date must be in %s format", ErrInvalidEvent, DateLayout)
		}
	}
	return draft, nil
}

// DTOToEvent converts a full replacement record; every required field must be present.
func DTOToEvent(dto EventDTO) (Event, error) {
	if dto.Title == "" {
		return Event{}, fmt.Errorf("%w: title is required", ErrInvalidEvent)
	}
	category, err := ParseCategory(dto.Category)
	if err != nil {
		return Event{}, err
	}
	status, err := ParseStatus(dto.Status)
	if err != nil {
		return Event{}, err
	}
	priority, err := ParsePriority(dto.Priority)
	if err != nil {
		return Event{}, err
	}
	date, err := ParseDate(dto.Date)
	if err != nil {
		return Event{}, fmt.Errorf("%w: date must be in %s format", ErrInvalidEvent, DateLayout)
	}
	attendees := dto.Attendees
	if attendees == nil {
		attendees = []string{}
	}
	return Event{
		ID:         dto.ID,
		Title:      dto.Title,
		Category:   category,
		Date:       date,
		StartTime:  dto.StartTime,
		EndTime:    dto.EndTime,
		Location:   dto.Location,
		IsVirtual:  dto.IsVirtual,
		CaseNumber: dto.CaseNumber,
		Client:     dto.Client,
		Attendees:  attendees,
		Status:     status,
		Priority:   priority,
		Notes:      dto.Notes,
	}, nil
}

func DraftToDTO(d Draft) EventDTO {
	dto := ToDTO(Event{
		Title:      d.Title,
		Category:   d.Category,
		Date:       d.Date,
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		Location:   d.Location,
		IsVirtual:  d.IsVirtual,
		CaseNumber: d.CaseNumber,
		Client:     d.Client,
		Attendees:  d.Attendees,
		Status:     d.Status,
		Priority:   d.Priority,
		Notes:      d.Notes,
	})
	if d.Date.IsZero() {
		dto.Date = ""
	}
	return dto
}
