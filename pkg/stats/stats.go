package stats

import (
	"slices"
	"time"

	"github.com/klokku/docket/pkg/event"
)

const DefaultUpcomingLimit = 6

// CategoryCounts counts scheduled events only. Total includes every scheduled
// event, internal ones too.
type CategoryCounts struct {
	Total         int
	Hearings      int
	Deadlines     int
	Consultations int
	Meetings      int
	Internal      int
}

type StatsSummary struct {
	GeneratedAt time.Time
	Counts      CategoryCounts
	Upcoming    []event.Event
}

func CategoryStats(events []event.Event) CategoryCounts {
	var c CategoryCounts
	for _, e := range events {
		if e.Status != event.Scheduled {
			continue
		}
		c.Total++
		switch e.Category {
		case event.Hearing:
			c.Hearings++
		case event.Deadline:
			c.Deadlines++
		case event.Consultation:
			c.Consultations++
		case event.Meeting:
			c.Meetings++
		case event.Internal:
			c.Internal++
		}
	}
	return c
}

// Upcoming returns at most limit scheduled events dated at or after now,
// earliest first. Events on the same date keep their original order.
func Upcoming(events []event.Event, now time.Time, limit int) []event.Event {
	result := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.Status == event.Scheduled && !e.Date.Before(now) {
			result = append(result, e)
		}
	}
	slices.SortStableFunc(result, func(a, b event.Event) int {
		return a.Date.Compare(b.Date)
	})
	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
