package app

import (
	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/internal/config"
	"github.com/klokku/docket/internal/event_bus"
	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/ics"
	"github.com/klokku/docket/pkg/session"
	"github.com/klokku/docket/pkg/stats"
	"github.com/klokku/docket/pkg/view"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    clock.Clock
	EventBus *event_bus.EventBus

	EventRepository event.Repository
	EventService    *event.Service
	EventHandler    *event.Handler

	ViewOptions view.Options
	ViewHandler *view.Handler

	StatsService     *stats.StatsServiceImpl
	CsvStatsRenderer *stats.CsvStatsRendererImpl
	StatsHandler     *stats.StatsHandler

	IcsHandler *ics.Handler

	Session        *session.Session
	SessionHandler *session.Handler

	unsubscribe []func()
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application, clk clock.Clock) *Dependencies {
	deps := &Dependencies{Clock: clk}

	deps.EventBus = event_bus.NewEventBus()

	deps.EventRepository = event.NewMemoryRepository()
	deps.EventService = event.NewService(deps.EventRepository, deps.EventBus, deps.Clock)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.ViewOptions = cfg.ViewOptions()
	deps.ViewHandler = view.NewHandler(deps.EventService, deps.Clock, deps.ViewOptions)

	deps.StatsService = stats.NewStatsServiceImpl(deps.EventService, deps.Clock, cfg.Calendar.UpcomingLimit)
	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, deps.CsvStatsRenderer)

	deps.IcsHandler = ics.NewHandler(deps.EventService, deps.Clock)

	deps.Session = session.New(deps.EventService, deps.Clock)
	deps.unsubscribe = append(deps.unsubscribe, deps.Session.Subscribe(deps.EventBus))
	deps.SessionHandler = session.NewHandler(deps.Session, deps.EventService, deps.ViewOptions)

	return deps
}

// Close detaches all event bus subscribers.
func (d *Dependencies) Close() {
	for _, unsubscribe := range d.unsubscribe {
		unsubscribe()
	}
	d.unsubscribe = nil
}
