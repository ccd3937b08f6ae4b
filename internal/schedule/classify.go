// Package schedule derives display views from a catalog snapshot.
//
// Everything here is pure: functions of the event collection, the
// caller's clock, and the current filter selection. Nothing is cached
// or mutated.
package schedule

import (
	"strconv"
	"time"
)

// Status is the temporal classification of an event relative to "now".
type Status string

const (
	StatusPast     Status = "past"
	StatusToday    Status = "today"
	StatusTomorrow Status = "tomorrow"
	StatusUpcoming Status = "upcoming"
	StatusFuture   Status = "future"
)

// InvalidDateLabel replaces day keys and date text for unparseable timestamps.
const InvalidDateLabel = "Invalid date"

// ParseTimestamp parses an ISO-8601 timestamp from the catalog or
// reminder wire format. ok is false for unparseable input; callers
// treat that as an already-past placeholder rather than an error.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Classify buckets an event start time relative to now.
//
// The whole-day difference is floor(floor(diffMs/3600000)/24): truncated
// hours, then truncated days. This truncation is the contract — two
// events 24h and 23h59m out classify differently even when they share a
// calendar date. Unparseable input classifies as past; Classify is total.
func Classify(startUTC string, now time.Time) Status {
	start, ok := ParseTimestamp(startUTC)
	if !ok {
		return StatusPast
	}
	diffMs := start.Sub(now).Milliseconds()
	if diffMs < 0 {
		return StatusPast
	}
	diffDays := diffMs / 3600000 / 24
	switch {
	case diffDays == 0:
		return StatusToday
	case diffDays == 1:
		return StatusTomorrow
	case diffDays <= 7:
		return StatusUpcoming
	default:
		return StatusFuture
	}
}

// Label renders the user-facing status text for an event start time.
func Label(startUTC string, now time.Time) string {
	switch status := Classify(startUTC, now); status {
	case StatusPast:
		return "Completed"
	case StatusToday:
		return "Today"
	case StatusTomorrow:
		return "Tomorrow"
	default:
		// Upcoming and future both land here with diffDays >= 2;
		// day-difference 1 is always StatusTomorrow.
		start, _ := ParseTimestamp(startUTC)
		diffDays := start.Sub(now).Milliseconds() / 3600000 / 24
		return strconv.FormatInt(diffDays, 10) + " days"
	}
}

// DayKey maps an event start time to its calendar-day bucket label in
// the display location, e.g. "Mon, Nov 17". Two timestamps share a key
// iff they fall on the same calendar day in that location.
func DayKey(startUTC string, loc *time.Location) string {
	start, ok := ParseTimestamp(startUTC)
	if !ok {
		return InvalidDateLabel
	}
	if loc == nil {
		loc = time.Local
	}
	return start.In(loc).Format("Mon, Jan 2")
}

// startOrZero returns the parsed start time, or the zero time for
// unparseable input so invalid entries sort first, consistent with
// their past classification.
func startOrZero(startUTC string) time.Time {
	start, ok := ParseTimestamp(startUTC)
	if !ok {
		return time.Time{}
	}
	return start
}
