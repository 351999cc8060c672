package ics

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/klokku/docket/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stamp = time.Date(2026, time.February, 5, 9, 30, 0, 0, time.UTC)
	feb10 = time.Date(2026, time.February, 10, 0, 0, 0, 0, time.Local)
)

func mediation() event.Event {
	return event.Event{
		ID:         7,
		Title:      "Mediation Session - Corporate Dispute",
		Category:   event.Hearing,
		Date:       feb10,
		StartTime:  "9:00 AM",
		EndTime:    "12:00 PM",
		Location:   "Mediation Center",
		CaseNumber: "CAS-2026-004",
		Client:     "Anderson Corp",
		Attendees:  []string{"Sarah Mitchell", "James Wilson"},
		Status:     event.Scheduled,
		Priority:   event.High,
		Notes:      "Bring settlement draft",
	}
}

func decode(t *testing.T, events []event.Event) []ical.Event {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, events, stamp))
	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)
	return cal.Events()
}

func text(t *testing.T, ev ical.Event, name string) string {
	t.Helper()
	value, err := ev.Props.Text(name)
	require.NoError(t, err)
	return value
}

func TestRender_OneVEventPerEvent(t *testing.T) {
	second := mediation()
	second.ID = 8
	second.Title = "Filing Deadline"

	events := decode(t, []event.Event{mediation(), second})

	require.Len(t, events, 2)
	assert.Equal(t, "Mediation Session - Corporate Dispute", text(t, events[0], ical.PropSummary))
	assert.Equal(t, "Filing Deadline", text(t, events[1], ical.PropSummary))
}

func TestRender_TimedEvent(t *testing.T) {
	ev := decode(t, []event.Event{mediation()})[0]

	start, err := ev.DateTimeStart(time.Local)
	require.NoError(t, err)
	end, err := ev.DateTimeEnd(time.Local)
	require.NoError(t, err)
	assert.True(t, start.Equal(feb10.Add(9*time.Hour)), start)
	assert.True(t, end.Equal(feb10.Add(12*time.Hour)), end)

	assert.Empty(t, ev.Props.Get(ical.PropDateTimeStart).Params.Get("TZID"))
	assert.Equal(t, UID(7), text(t, ev, ical.PropUID))
	assert.Equal(t, "Hearing", text(t, ev, ical.PropCategories))
	assert.Equal(t, "CONFIRMED", text(t, ev, ical.PropStatus))
	assert.Equal(t, "Mediation Center", text(t, ev, ical.PropLocation))
	assert.Equal(t, "1", ev.Props.Get(ical.PropPriority).Value)
	description := text(t, ev, ical.PropDescription)
	assert.Contains(t, description, "Case: CAS-2026-004")
	assert.Contains(t, description, "Client: Anderson Corp")
	assert.Contains(t, description, "Attendees: Sarah Mitchell, James Wilson")
	assert.Contains(t, description, "Bring settlement draft")
}

func TestRender_TimesAreFloating(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []event.Event{mediation()}, stamp))

	out := buf.String()
	assert.NotContains(t, out, "TZID=")
	assert.Contains(t, out, "DTSTART:20260210T090000\r\n")
	assert.Contains(t, out, "DTEND:20260210T120000\r\n")
}

func TestRender_UnparseableTimeIsAllDay(t *testing.T) {
	e := mediation()
	e.StartTime = "morning"

	ev := decode(t, []event.Event{e})[0]

	start := ev.Props.Get(ical.PropDateTimeStart)
	require.NotNil(t, start)
	assert.Equal(t, ical.ValueDate, start.ValueType())
	assert.Equal(t, "20260210", start.Value)
	assert.Equal(t, "20260211", ev.Props.Get(ical.PropDateTimeEnd).Value)
}

func TestRender_EndNotAfterStartIsOmitted(t *testing.T) {
	e := mediation()
	e.StartTime = "5:00 PM"
	e.EndTime = "5:00 PM"

	ev := decode(t, []event.Event{e})[0]

	assert.NotNil(t, ev.Props.Get(ical.PropDateTimeStart))
	assert.Nil(t, ev.Props.Get(ical.PropDateTimeEnd))
}

func TestRender_CancelledAndVirtual(t *testing.T) {
	e := mediation()
	e.Status = event.Cancelled
	e.Priority = event.Low
	e.IsVirtual = true
	e.Location = ""

	ev := decode(t, []event.Event{e})[0]

	assert.Equal(t, "CANCELLED", text(t, ev, ical.PropStatus))
	assert.Equal(t, "Virtual", text(t, ev, ical.PropLocation))
	assert.Equal(t, "9", ev.Props.Get(ical.PropPriority).Value)
}

func TestUID_StablePerId(t *testing.T) {
	assert.Equal(t, UID(3), UID(3))
	assert.NotEqual(t, UID(3), UID(4))
}
