package event

import (
	"context"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

const DeleteConfirmationMessage = "Are you sure you want to delete this event?"

// Confirmer is asked synchronously before an event is deleted.
type Confirmer interface {
	Confirm(ctx context.Context, message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, message string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, message string) bool {
	return f(ctx, message)
}

// AlwaysConfirm approves every deletion.
var AlwaysConfirm = ConfirmFunc(func(ctx context.Context, message string) bool { return true })

type Service struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock clock.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock clock.Clock) *Service {
	return &Service{
		repo:  repo,
		bus:   bus,
		clock: clock,
	}
}

// Create inserts a new event. A draft without a date is scheduled for today.
func (s *Service) Create(ctx context.Context, draft Draft) Event {
	e := s.repo.Insert(draft, clock.Today(s.clock))
	log.Debugf("Created event %d (%s) on %s", e.ID, e.Category, e.Date.Format("2006-01-02"))

	s.publish(ctx, event_bus.CalendarEventCreatedType, event_bus.CalendarEventCreated{
		ID:       e.ID,
		Title:    e.Title,
		Category: string(e.Category),
		Date:     e.Date,
	})
	return e
}

// Update replaces the event with the given id. It reports false, and changes
// nothing, when no such event exists or e is not a valid record.
func (s *Service) Update(ctx context.Context, id int, e Event) bool {
	if !s.repo.Replace(id, e) {
		log.Debugf("Update of event %d ignored: unknown id or invalid record", id)
		return false
	}
	log.Debugf("Updated event %d", id)

	s.publish(ctx, event_bus.CalendarEventUpdatedType, event_bus.CalendarEventUpdated{
		ID:       id,
		Title:    e.Title,
		Category: string(e.Category),
		Date:     e.Date,
	})
	return true
}

// Delete removes the event once confirmer approves. It reports whether an
// event was removed.
func (s *Service) Delete(ctx context.Context, id int, confirmer Confirmer) bool {
	if _, ok := s.repo.Get(id); !ok {
		log.Debugf("Delete of unknown event %d ignored", id)
		return false
	}
	if !confirmer.Confirm(ctx, DeleteConfirmationMessage) {
		log.Debugf("Delete of event %d not confirmed", id)
		return false
	}
	if !s.repo.Delete(id) {
		return false
	}
	log.Debugf("Deleted event %d", id)

	s.publish(ctx, event_bus.CalendarEventDeletedType, event_bus.CalendarEventDeleted{ID: id})
	return true
}

func (s *Service) All() []Event {
	return s.repo.All()
}

func (s *Service) Get(id int) (Event, bool) {
	return s.repo.Get(id)
}

// publish notifies subscribers of a change that has already been applied, so
// it must not be skipped when the caller's context is cancelled.
func (s *Service) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(context.WithoutCancel(ctx), eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
