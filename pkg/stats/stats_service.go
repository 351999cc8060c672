package stats

import (
	"context"

	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/pkg/event"
	log "github.com/sirupsen/logrus"
)

type StatsService interface {
	GetStats(ctx context.Context) StatsSummary
	GetUpcoming(ctx context.Context) []event.Event
}

// StatsServiceImpl aggregates over the whole repository; category and search
// filters never apply here. Now is read from the clock on every call.
type StatsServiceImpl struct {
	events        event.Reader
	clock         clock.Clock
	upcomingLimit int
}

func NewStatsServiceImpl(events event.Reader, clock clock.Clock, upcomingLimit int) *StatsServiceImpl {
	if upcomingLimit <= 0 {
		upcomingLimit = DefaultUpcomingLimit
	}
	return &StatsServiceImpl{
		events:        events,
		clock:         clock,
		upcomingLimit: upcomingLimit,
	}
}

func (s *StatsServiceImpl) GetStats(ctx context.Context) StatsSummary {
	now := s.clock.Now()
	all := s.events.All()

	counts := CategoryStats(all)
	log.Tracef("Stats over %d events: %+v", len(all), counts)

	return StatsSummary{
		GeneratedAt: now,
		Counts:      counts,
		Upcoming:    Upcoming(all, now, s.upcomingLimit),
	}
}

func (s *StatsServiceImpl) GetUpcoming(ctx context.Context) []event.Event {
	return Upcoming(s.events.All(), s.clock.Now(), s.upcomingLimit)
}
