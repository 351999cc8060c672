// Package ics renders calendar events as an iCalendar (RFC 5545) feed.
package ics

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/klokku/docket/pkg/event"
)

const (
	ProductID = "-//docket//calendar//EN"
	// TimeLayout is the layout of event start and end times.
	TimeLayout = "3:04 PM"

	floatingLayout = "20060102T150405"
)

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/klokku/docket/events"))

// UID returns the stable iCalendar UID of the event with the given id.
func UID(id int) string {
	return uuid.NewSHA1(uidNamespace, []byte(strconv.Itoa(id))).String()
}

// Calendar builds a VCALENDAR with one VEVENT per event. stamp is written as
// DTSTAMP on every entry.
func Calendar(events []event.Event, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	for _, e := range events {
		cal.Children = append(cal.Children, toVEvent(e, stamp))
	}
	return cal
}

func Render(w io.Writer, events []event.Event, stamp time.Time) error {
	if err := ical.NewEncoder(w).Encode(Calendar(events, stamp)); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

func toVEvent(e event.Event, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, UID(e.ID))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetText(ical.PropSummary, e.Title)
	ve.Props.SetText(ical.PropCategories, e.Category.Label())
	ve.Props.SetText(ical.PropStatus, statusValue(e.Status))

	priority := ical.NewProp(ical.PropPriority)
	priority.Value = priorityValue(e.Priority)
	ve.Props.Set(priority)

	start, startOk := at(e.Date, e.StartTime)
	end, endOk := at(e.Date, e.EndTime)
	if startOk {
		ve.Props.Set(floating(ical.PropDateTimeStart, start))
		if endOk && end.After(start) {
			ve.Props.Set(floating(ical.PropDateTimeEnd, end))
		}
	} else {
		ve.Props.SetDate(ical.PropDateTimeStart, e.Date)
		ve.Props.SetDate(ical.PropDateTimeEnd, e.Date.AddDate(0, 0, 1))
	}

	if location := locationOf(e); location != "" {
		ve.Props.SetText(ical.PropLocation, location)
	}
	if description := descriptionOf(e); description != "" {
		ve.Props.SetText(ical.PropDescription, description)
	}
	return ve
}

// at places a "3:04 PM" clock time on the calendar day of date.
func at(date time.Time, clockTime string) (time.Time, bool) {
	t, err := time.Parse(TimeLayout, strings.TrimSpace(clockTime))
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), true
}

// floating renders t as a DATE-TIME (the default value type of DTSTART and
// DTEND) without zone, read by clients in their own local time.
func floating(name string, t time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = t.Format(floatingLayout)
	return prop
}

func locationOf(e event.Event) string {
	switch {
	case e.IsVirtual && e.Location != "":
		return e.Location + " (virtual)"
	case e.IsVirtual:
		return "Virtual"
	}
	return e.Location
}

func descriptionOf(e event.Event) string {
	var lines []string
	if e.CaseNumber != "" {
		lines = append(lines, "Case: "+e.CaseNumber)
	}
	if e.Client != "" {
		lines = append(lines, "Client: "+e.Client)
	}
	if len(e.Attendees) > 0 {
		lines = append(lines, "Attendees: "+strings.Join(e.Attendees, ", "))
	}
	if e.Notes != "" {
		lines = append(lines, e.Notes)
	}
	return strings.Join(lines, "\n")
}

func statusValue(s event.Status) string {
	if s == event.Cancelled {
		return "CANCELLED"
	}
	return "CONFIRMED"
}

func priorityValue(p event.Priority) string {
	switch p {
	case event.High:
		return "1"
	case event.Low:
		return "9"
	}
	return "5"
}
