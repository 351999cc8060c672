// Package filter narrows an event sequence before views and stats consume it.
// Every function returns a new slice and keeps the input order.
package filter

import (
	"strings"
	"time"

	"github.com/klokku/docket/pkg/event"
)

// CategoryAll disables the category step.
const CategoryAll = "all"

type Criteria struct {
	Category string
	Search   string
}

// Apply runs the category step and then the search step.
func Apply(events []event.Event, c Criteria) []event.Event {
	return BySearch(ByCategory(events, c.Category), c.Search)
}

// ByCategory keeps events of exactly the given category. "all" and the empty
// string keep everything.
func ByCategory(events []event.Event, category string) []event.Event {
	if category == CategoryAll || category == "" {
		return clone(events)
	}
	return keep(events, func(e event.Event) bool {
		return string(e.Category) == category
	})
}

// BySearch keeps events whose title, case number or client contains text,
// ignoring case. Empty text keeps everything.
func BySearch(events []event.Event, text string) []event.Event {
	if text == "" {
		return clone(events)
	}
	needle := strings.ToLower(text)
	return keep(events, func(e event.Event) bool {
		return contains(e.Title, needle) || contains(e.CaseNumber, needle) || contains(e.Client, needle)
	})
}

// OnDate keeps events on the same calendar day as day, in day's location.
func OnDate(events []event.Event, day time.Time) []event.Event {
	return keep(events, func(e event.Event) bool {
		return SameDay(e.Date, day)
	})
}

// SameDay compares year, month and day of a and b in b's location.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.In(b.Location()).Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func contains(field, needle string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), needle)
}

func keep(events []event.Event, pred func(event.Event) bool) []event.Event {
	result := make([]event.Event, 0, len(events))
	for _, e := range events {
		if pred(e) {
			result = append(result, e)
		}
	}
	return result
}

func clone(events []event.Event) []event.Event {
	result := make([]event.Event, len(events))
	copy(result, events)
	return result
}
