package view

import (
	"errors"
	"fmt"
	"time"

	"github.com/klokku/docket/pkg/event"
	"github.com/klokku/docket/pkg/filter"
)

type Mode string

const (
	DayMode   Mode = "day"
	WeekMode  Mode = "week"
	MonthMode Mode = "month"
)

var ErrUnknownMode = errors.New("unknown view mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case DayMode, WeekMode, MonthMode:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type Options struct {
	WeekStart         time.Weekday
	WeekDayEventLimit int
	DayStartHour      int
	DayEndHour        int
}

func DefaultOptions() Options {
	return Options{
		WeekStart:         time.Sunday,
		WeekDayEventLimit: 3,
		DayStartHour:      8,
		DayEndHour:        19,
	}
}

type Bucket struct {
	Hour   int
	Label  string
	Events []event.Event
}

type DayView struct {
	Date    time.Time
	Buckets []Bucket
}

type WeekDay struct {
	Date       time.Time
	Events     []event.Event
	Overflow   int
	Total      int
	IsToday    bool
	IsSelected bool
}

type WeekView struct {
	Start time.Time
	End   time.Time
	Days  []WeekDay
}

type MonthView struct {
	Date   time.Time
	Events []event.Event
}

// Projection carries the shape of exactly one mode.
type Projection struct {
	Mode  Mode
	Date  time.Time
	Day   *DayView
	Week  *WeekView
	Month *MonthView
}

// Day groups the events on date into hourly buckets. Events starting outside
// the configured hours, or whose start time has no leading hour, are left out.
func Day(events []event.Event, date time.Time, opts Options) DayView {
	onDate := filter.OnDate(events, date)

	buckets := make([]Bucket, 0, opts.DayEndHour-opts.DayStartHour+1)
	index := map[int]int{}
	for hour := opts.DayStartHour; hour <= opts.DayEndHour; hour++ {
		index[hour] = len(buckets)
		buckets = append(buckets, Bucket{Hour: hour, Label: HourLabel(hour), Events: []event.Event{}})
	}

	for _, e := range onDate {
		hour, ok := StartHour(e.StartTime)
		if !ok {
			continue
		}
		if i, inRange := index[hour]; inRange {
			buckets[i].Events = append(buckets[i].Events, e)
		}
	}

	return DayView{Date: startOfDay(date), Buckets: buckets}
}

// Week lays out the seven days of the week containing date. Each day shows at
// most opts.WeekDayEventLimit events and counts the rest as overflow.
func Week(events []event.Event, date time.Time, today time.Time, opts Options) WeekView {
	start := StartOfWeek(date, opts.WeekStart)

	days := make([]WeekDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		dayEvents := filter.OnDate(events, day)
		shown := dayEvents
		overflow := 0
		if len(dayEvents) > opts.WeekDayEventLimit {
			shown = dayEvents[:opts.WeekDayEventLimit]
			overflow = len(dayEvents) - opts.WeekDayEventLimit
		}
		days = append(days, WeekDay{
			Date:       day,
			Events:     shown,
			Overflow:   overflow,
			Total:      len(dayEvents),
			IsToday:    filter.SameDay(today, day),
			IsSelected: filter.SameDay(date, day),
		})
	}

	return WeekView{
		Start: start,
		End:   start.AddDate(0, 0, 6),
		Days:  days,
	}
}

// Month lists every event on the selected date. The month grid itself is
// drawn by the date picker.
func Month(events []event.Event, date time.Time) MonthView {
	return MonthView{
		Date:   startOfDay(date),
		Events: filter.OnDate(events, date),
	}
}

func Project(mode Mode, events []event.Event, date time.Time, today time.Time, opts Options) (Projection, error) {
	p := Projection{Mode: mode, Date: startOfDay(date)}
	switch mode {
	case DayMode:
		v := Day(events, date, opts)
		p.Day = &v
	case WeekMode:
		v := Week(events, date, today, opts)
		p.Week = &v
	case MonthMode:
		v := Month(events, date)
		p.Month = &v
	default:
		return Projection{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return p, nil
}

// StartOfWeek returns midnight of the first day of the week containing date.
func StartOfWeek(date time.Time, weekStart time.Weekday) time.Time {
	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = time.Sunday
	}
	delta := (int(date.Weekday()) - int(weekStart) + 7) % 7
	return startOfDay(date).AddDate(0, 0, -delta)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
