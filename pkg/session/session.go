// Package session tracks what the calendar screen has open: the create/edit
// dialog, the detail popover and the selected date, mode and filters.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/internal/event_bus"
	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/filter"
	"github.com/klokku/docket/pkg/view"
	log "github.com/sirupsen/logrus"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrDialogOpen    = errors.New("dialog already open")
	ErrDialogClosed  = errors.New("no dialog open")
	ErrNotCreating   = errors.New("dialog is not creating an event")
	ErrNotEditing    = errors.New("dialog is not editing an event")
)

// EventStore is the part of the event service the session writes through.
type EventStore interface {
	Create(ctx context.Context, draft event.Draft) event.Event
	Update(ctx context.Context, id int, e event.Event) bool
	Get(id int) (event.Event, bool)
}

// Dialog is one of Closed, Creating or Editing.
type Dialog interface {
	dialog()
}

type Closed struct{}

type Creating struct {
	Draft event.Draft
}

// Editing holds a private copy of the target event; the repository is not
// touched until Confirm.
type Editing struct {
	ID    int
	Event event.Event
}

func (Closed) dialog() {}
func (Creating) dialog() {}
func (Editing) dialog() {}

type ViewState struct {
	Date     time.Time
	Mode     view.Mode
	Category string
	Search   string
}

type State struct {
	Dialog    Dialog
	DetailID  int
	HasDetail bool
	View      ViewState
}

type Session struct {
	mu        sync.Mutex
	events    EventStore
	clock     clock.Clock
	dialog    Dialog
	detailID  int
	hasDetail bool
	view      ViewState
}

func New(events EventStore, clk clock.Clock) *Session {
	return &Session{
		events: events,
		clock:  clk,
		dialog: Closed{},
		view: ViewState{
			Date:     clock.Today(clk),
			Mode:     view.MonthMode,
			Category: filter.CategoryAll,
		},
	}
}

// Subscribe closes the detail popover and any edit of an event once that
// event is deleted.
func (s *Session) Subscribe(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.CalendarEventDeletedType,
		func(e event_bus.EventT[event_bus.CalendarEventDeleted]) error {
			s.eventDeleted(e.Data.ID)
			return nil
		})
}

func (s *Session) eventDeleted(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasDetail && s.detailID == id {
		log.Debugf("Closing detail of deleted event %d", id)
		s.hasDetail = false
		s.detailID = 0
	}
	if editing, ok := s.dialog.(Editing); ok && editing.ID == id {
		log.Debugf("Closing edit dialog of deleted event %d", id)
		s.dialog = Closed{}
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.dialog
	switch v := d.(type) {
	case Creating:
		v.Draft.Attendees = append([]string{}, v.Draft.Attendees...)
		d = v
	case Editing:
		v.Event = v.Event.Clone()
		d = v
	}
	return State{
		Dialog:    d,
		DetailID:  s.detailID,
		HasDetail: s.hasDetail,
		View:      s.view,
	}
}

// StartCreate opens the dialog with a default draft on the selected date.
func (s *Session) StartCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, closed := s.dialog.(Closed); !closed {
		return ErrDialogOpen
	}
	s.dialog = Creating{Draft: event.NewDraft(s.view.Date)}
	return nil
}

// StartEdit opens the dialog on a copy of the event with the given id.
func (s *Session) StartEdit(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, closed := s.dialog.(Closed); !closed {
		return ErrDialogOpen
	}
	e, ok := s.events.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	s.dialog = Editing{ID: id, Event: e.Clone()}
	return nil
}

func (s *Session) UpdateDraft(draft event.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dialog.(Creating); !ok {
		return ErrNotCreating
	}
	draft.Attendees = append([]string{}, draft.Attendees...)
	s.dialog = Creating{Draft: draft}
	return nil
}

func (s *Session) UpdateEditing(e event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	editing, ok := s.dialog.(Editing)
	if !ok {
		return ErrNotEditing
	}
	if !e.Valid() {
		return fmt.Errorf("%w: date, category, status and priority are required", event.ErrInvalidEvent)
	}
	edited := e.Clone()
	edited.ID = editing.ID
	s.dialog = Editing{ID: editing.ID, Event: edited}
	return nil
}

// Confirm writes the dialog's content to the repository and closes it.
func (s *Session) Confirm(ctx context.Context) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch d := s.dialog.(type) {
	case Creating:
		draft := d.Draft
		if draft.Date.IsZero() {
			draft.Date = s.view.Date
		}
		created := s.events.Create(ctx, draft)
		s.dialog = Closed{}
		return created, nil
	case Editing:
		s.dialog = Closed{}
		if !s.events.Update(ctx, d.ID, d.Event) {
			return event.Event{}, fmt.Errorf("%w: %d", ErrEventNotFound, d.ID)
		}
		return d.Event.Clone(), nil
	}
	return event.Event{}, ErrDialogClosed
}

// Cancel drops the dialog's content without side effects.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = Closed{}
}

func (s *Session) OpenDetail(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events.Get(id); !ok {
		return fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	s.detailID = id
	s.hasDetail = true
	return nil
}

// Detail returns the id of the event shown in the detail popover.
func (s *Session) Detail() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detailID, s.hasDetail
}

func (s *Session) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detailID = 0
	s.hasDetail = false
}

func (s *Session) SelectDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Date = date
}

func (s *Session) SelectToday() {
	s.SelectDate(s.Today())
}

func (s *Session) SetMode(mode view.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Mode = mode
}

func (s *Session) SetFilter(criteria filter.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if criteria.Category == "" {
		criteria.Category = filter.CategoryAll
	}
	s.view.Category = criteria.Category
	s.view.Search = criteria.Search
}

func (s *Session) Today() time.Time {
	return clock.Today(s.clock)
}
