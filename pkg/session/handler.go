package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/docket/internal/rest"
	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/filter"
	"github.com/klokku/docket/pkg/view"
	log "github.com/sirupsen/logrus"
)

const (
	DialogClosed   = "closed"
	DialogCreating = "creating"
	DialogEditing  = "editing"
)

type Handler struct {
	session *Session
	events  event.Reader
	opts    view.Options
}

type DialogDTO struct {
	Kind    string          `json:"kind"`
	EventID int             `json:"eventId,omitempty"`
	Event   *event.EventDTO `json:"event,omitempty"`
}

type ViewStateDTO struct {
	Date     string `json:"date"`
	Mode     string `json:"mode"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

type StateDTO struct {
	Dialog DialogDTO       `json:"dialog"`
	Detail *event.EventDTO `json:"detail,omitempty"`
	View   ViewStateDTO    `json:"view"`
}

// ViewRequest changes the selected date, mode and filters. Empty fields are
// left as they are; Today wins over Date.
type ViewRequest struct {
	Date     string  `json:"date"`
	Today    bool    `json:"today"`
	Mode     string  `json:"mode"`
	Category string  `json:"category"`
	Search   *string `json:"search"`
}

func NewHandler(session *Session, events event.Reader, opts view.Options) *Handler {
	return &Handler{session: session, events: events, opts: opts}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

// GetProjection projects the events through the session's current view state.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	state := h.session.State()
	criteria := filter.Criteria{Category: state.View.Category, Search: state.View.Search}
	filtered := filter.Apply(h.events.All(), criteria)
	projection, err := view.Project(state.View.Mode, filtered, state.View.Date, h.session.Today(), h.opts)
	if err != nil {
		log.Errorf("failed to project session view: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, view.ToDTO(projection))
}

func (h *Handler) UpdateView(w http.ResponseWriter, r *http.Request) {
	var req ViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	var mode view.Mode
	if req.Mode != "" {
		parsed, err := view.ParseMode(req.Mode)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid view mode", "mode must be one of day, week, month")
			return
		}
		mode = parsed
	}
	if req.Category != "" && req.Category != filter.CategoryAll {
		if _, err := event.ParseCategory(req.Category); err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid category", err.Error())
			return
		}
	}

	switch {
	case req.Today:
		h.session.SelectToday()
	case req.Date != "":
		date, err := event.ParseDate(req.Date)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in YYYY-MM-DD format")
			return
		}
		h.session.SelectDate(date)
	}
	if mode != "" {
		h.session.SetMode(mode)
	}
	if req.Category != "" || req.Search != nil {
		current := h.session.State().View
		criteria := filter.Criteria{Category: current.Category, Search: current.Search}
		if req.Category != "" {
			criteria.Category = req.Category
		}
		if req.Search != nil {
			criteria.Search = *req.Search
		}
		h.session.SetFilter(criteria)
	}

	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

func (h *Handler) StartCreate(w http.ResponseWriter, r *http.Request) {
	if err := h.session.StartCreate(); err != nil {
		writeSessionError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

func (h *Handler) StartEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	if err := h.session.StartEdit(id); err != nil {
		writeSessionError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

// UpdateDialog replaces the content of the open dialog. A creating dialog
// accepts a partial record; an editing dialog needs a complete one.
func (h *Handler) UpdateDialog(w http.ResponseWriter, r *http.Request) {
	var dto event.EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	var err error
	switch h.session.State().Dialog.(type) {
	case Creating:
		draft, convErr := event.DTOToDraft(dto)
		if convErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid event", convErr.Error())
			return
		}
		err = h.session.UpdateDraft(draft)
	case Editing:
		e, convErr := event.DTOToEvent(dto)
		if convErr != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid event", convErr.Error())
			return
		}
		err = h.session.UpdateEditing(e)
	default:
		err = ErrDialogClosed
	}
	if err != nil {
		writeSessionError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	saved, err := h.session.Confirm(r.Context())
	if err != nil {
		writeSessionError(w, err)
		return
	}
	log.Infof("Event %d saved from dialog", saved.ID)
	rest.WriteJSON(w, http.StatusOK, event.ToDTO(saved))
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.session.Cancel()
	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

func (h *Handler) OpenDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := eventIdFromPath(w, r)
	if !ok {
		return
	}
	if err := h.session.OpenDetail(id); err != nil {
		writeSessionError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

func (h *Handler) CloseDetail(w http.ResponseWriter, r *http.Request) {
	h.session.CloseDetail()
	rest.WriteJSON(w, http.StatusOK, h.stateDTO())
}

func (h *Handler) stateDTO() StateDTO {
	state := h.session.State()
	dto := StateDTO{
		Dialog: DialogDTO{Kind: DialogClosed},
		View: ViewStateDTO{
			Date:     state.View.Date.Format(event.DateLayout),
			Mode:     string(state.View.Mode),
			Category: state.View.Category,
			Search:   state.View.Search,
		},
	}
	switch d := state.Dialog.(type) {
	case Creating:
		draft := event.DraftToDTO(d.Draft)
		dto.Dialog = DialogDTO{Kind: DialogCreating, Event: &draft}
	case Editing:
		edited := event.ToDTO(d.Event)
		dto.Dialog = DialogDTO{Kind: DialogEditing, EventID: d.ID, Event: &edited}
	}
	if state.HasDetail {
		if e, found := h.events.Get(state.DetailID); found {
			detail := event.ToDTO(e)
			dto.Detail = &detail
		}
	}
	return dto
}

func writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, event.ErrInvalidEvent):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	case errors.Is(err, ErrDialogOpen), errors.Is(err, ErrDialogClosed),
		errors.Is(err, ErrNotCreating), errors.Is(err, ErrNotEditing):
		rest.WriteError(w, http.StatusConflict, "Invalid dialog state", err.Error())
	default:
		log.Errorf("session error: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
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
