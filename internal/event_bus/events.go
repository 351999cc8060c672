package event_bus

import "time"

const (
	CalendarEventCreatedType EventType = "calendar.event.created"
	CalendarEventUpdatedType EventType = "calendar.event.updated"
	CalendarEventDeletedType EventType = "calendar.event.deleted"
)

type CalendarEventCreated struct {
	ID       int
	Title    string
	Category string
	Date     time.Time
}

type CalendarEventUpdated struct {
	ID       int
	Title    string
	Category string
	Date     time.Time
}

type CalendarEventDeleted struct {
	ID int
}
