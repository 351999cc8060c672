package view

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// StartHour derives the 24h bucket hour from a display time such as "2:00 PM".
// It reads the leading integer and adds 12 for PM hours other than 12. Any
// string without a leading integer reports false.
func StartHour(startTime string) (int, bool) {
	s := strings.TrimLeftFunc(startTime, unicode.IsSpace)
	end := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, false
	}
	hour, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	if strings.Contains(startTime, "PM") && hour != 12 {
		hour += 12
	}
	return hour, true
}

// HourLabel renders a 24h hour the way the day view shows it, e.g. "2:00 PM".
func HourLabel(hour int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, suffix)
}
