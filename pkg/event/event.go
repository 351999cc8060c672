package event

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

type Category string

const (
	Meeting      Category = "meeting"
	Hearing      Category = "hearing"
	Deadline     Category = "deadline"
	Consultation Category = "consultation"
	Internal     Category = "internal"
)

// Categories lists the closed set in display order.
var Categories = []Category{Meeting, Hearing, Deadline, Consultation, Internal}

type Status string

const (
	Scheduled Status = "scheduled"
	Completed Status = "completed"
	Cancelled Status = "cancelled"
)

type Priority string

const (
	High   Priority = "high"
	Medium Priority = "medium"
	Low    Priority = "low"
)

var (
	ErrInvalidCategory = errors.New("invalid event category")
	ErrInvalidStatus   = errors.New("invalid event status")
	ErrInvalidPriority = errors.New("invalid event priority")
	ErrInvalidEvent    = errors.New("invalid event")
)

const (
	DefaultTitle     = "New Event"
	DefaultCategory  = Meeting
	DefaultStartTime = "9:00 AM"
	DefaultEndTime   = "10:00 AM"
	DefaultStatus    = Scheduled
	DefaultPriority  = Medium
)

func (c Category) IsValid() bool {
	return slices.Contains(Categories, c)
}

func (c Category) Label() string {
	switch c {
	case Meeting:
		return "Meeting"
	case Hearing:
		return "Hearing"
	case Deadline:
		return "Deadline"
	case Consultation:
		return "Consultation"
	case Internal:
		return "Internal"
	}
	return string(c)
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

func (s Status) IsValid() bool {
	return s == Scheduled || s == Completed || s == Cancelled
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

func (p Priority) IsValid() bool {
	return p == High || p == Medium || p == Low
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// Event is a single calendar entry. Only the calendar day of Date is
// significant; StartTime and EndTime are display strings such as "9:00 AM".
type Event struct {
	ID         int
	Title      string
	Category   Category
	Date       time.Time
	StartTime  string
	EndTime    string
	Location   string
	IsVirtual  bool
	CaseNumber string
	Client     string
	Attendees  []string
	Status     Status
	Priority   Priority
	Notes      string
}

// Valid reports whether e has a date and values from the closed sets for
// category, status and priority.
func (e Event) Valid() bool {
	return !e.Date.IsZero() && e.Category.IsValid() && e.Status.IsValid() && e.Priority.IsValid()
}

// Clone returns a copy that shares no memory with e.
func (e Event) Clone() Event {
	c := e
	c.Attendees = slices.Clone(e.Attendees)
	if c.Attendees == nil {
		c.Attendees = []string{}
	}
	return c
}

// Draft is the input for creating an event. Zero values mean "not given"
// and are replaced by defaults on insert.
type Draft struct {
	Title      string
	Category   Category
	Date       time.Time
	StartTime  string
	EndTime    string
	Location   string
	IsVirtual  bool
	CaseNumber string
	Client     string
	Attendees  []string
	Status     Status
	Priority   Priority
	Notes      string
}

// NewDraft returns a draft seeded with the creation defaults for date.
func NewDraft(date time.Time) Draft {
	return Draft{
		Title:     DefaultTitle,
		Category:  DefaultCategory,
		Date:      date,
		StartTime: DefaultStartTime,
		EndTime:   DefaultEndTime,
		Status:    DefaultStatus,
		Priority:  DefaultPriority,
		Attendees: []string{},
	}
}

// build turns the draft into an Event with the given id. referenceDate is
// used when the draft carries no date.
func (d Draft) build(id int, referenceDate time.Time) Event {
	e := Event{
		ID:         id,
		Title:      d.Title,
		Category:   d.Category,
		Date:       d.Date,
		StartTime:  d.StartTime,
		EndTime:    d.EndTime,
		Location:   d.Location,
		IsVirtual:  d.IsVirtual,
		CaseNumber: d.CaseNumber,
		Client:     d.Client,
		Attendees:  slices.Clone(d.Attendees),
		Status:     d.Status,
		Priority:   d.Priority,
		Notes:      d.Notes,
	}
	if e.Title == "" {
		e.Title = DefaultTitle
	}
	if !e.Category.IsValid() {
		e.Category = DefaultCategory
	}
	if e.Date.IsZero() {
		e.Date = referenceDate
	}
	if e.StartTime == "" {
		e.StartTime = DefaultStartTime
	}
	if e.EndTime == "" {
		e.EndTime = DefaultEndTime
	}
	if !e.Status.IsValid() {
		e.Status = DefaultStatus
	}
	if !e.Priority.IsValid() {
		e.Priority = DefaultPriority
	}
	if e.Attendees == nil {
		e.Attendees = []string{}
	}
	return e
}

// DraftFrom copies an event's fields into a draft.
func DraftFrom(e Event) Draft {
	return Draft{
		Title:      e.Title,
		Category:   e.Category,
		Date:       e.Date,
		StartTime:  e.StartTime,
		EndTime:    e.EndTime,
		Location:   e.Location,
		IsVirtual:  e.IsVirtual,
		CaseNumber: e.CaseNumber,
		Client:     e.Client,
		Attendees:  slices.Clone(e.Attendees),
		Status:     e.Status,
		Priority:   e.Priority,
		Notes:      e.Notes,
	}
}
