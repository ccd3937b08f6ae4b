package schedule

import (
	"sort"
	"time"

	"github.com/craycray/rocky/internal/catalog"
)

// Category is the category-axis filter over the catalog.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryCore     Category = "core"
	CategoryToday    Category = "today"
	CategoryUpcoming Category = "upcoming"
)

// AllDays selects every day on the day-axis filter.
const AllDays = "all"

// Selection is the current filter state. The two axes compose by AND.
type Selection struct {
	Category Category
	Day      string
}

// DefaultSelection shows the whole catalog.
func DefaultSelection() Selection {
	return Selection{Category: CategoryAll, Day: AllDays}
}

// DayGroup is one calendar day's slice of the filtered schedule.
type DayGroup struct {
	Day    string
	Events []catalog.Event
}

// keeps reports whether an event passes the category axis.
// Unknown categories behave like CategoryAll.
func (s Selection) keeps(ev catalog.Event, now time.Time) bool {
	switch s.Category {
	case CategoryCore:
		if !ev.IsCoreEvent {
			return false
		}
	case CategoryToday:
		if Classify(ev.Record.StartUTC, now) != StatusToday {
			return false
		}
	case CategoryUpcoming:
		switch Classify(ev.Record.StartUTC, now) {
		case StatusUpcoming, StatusTomorrow, StatusFuture:
		default:
			return false
		}
	}
	return true
}

// Apply filters the snapshot by the selection and stable-sorts the
// survivors ascending by start time. Ties keep their snapshot order.
func Apply(events []catalog.Event, now time.Time, loc *time.Location, sel Selection) []catalog.Event {
	filtered := make([]catalog.Event, 0, len(events))
	for _, ev := range events {
		if !sel.keeps(ev, now) {
			continue
		}
		if sel.Day != "" && sel.Day != AllDays && DayKey(ev.Record.StartUTC, loc) != sel.Day {
			continue
		}
		filtered = append(filtered, ev)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return startOrZero(filtered[i].Record.StartUTC).Before(startOrZero(filtered[j].Record.StartUTC))
	})
	return filtered
}

// EventDays returns the distinct day keys present in the snapshot, in
// chronological order of the days they represent.
func EventDays(events []catalog.Event, loc *time.Location) []string {
	earliest := make(map[string]time.Time, len(events))
	for _, ev := range events {
		key := DayKey(ev.Record.StartUTC, loc)
		start := startOrZero(ev.Record.StartUTC)
		if seen, ok := earliest[key]; !ok || start.Before(seen) {
			earliest[key] = start
		}
	}
	days := make([]string, 0, len(earliest))
	for key := range earliest {
		days = append(days, key)
	}
	sort.Slice(days, func(i, j int) bool {
		return earliest[days[i]].Before(earliest[days[j]])
	})
	return days
}

// GroupByDay partitions the filtered, sorted schedule into day groups.
//
// With the day axis on AllDays, one group exists per distinct day key,
// ordered chronologically, each preserving the post-sort order of its
// members. With a specific day selected there is exactly one group.
func GroupByDay(events []catalog.Event, now time.Time, loc *time.Location, sel Selection) []DayGroup {
	filtered := Apply(events, now, loc, sel)

	if sel.Day != "" && sel.Day != AllDays {
		return []DayGroup{{Day: sel.Day, Events: filtered}}
	}

	byDay := make(map[string][]catalog.Event)
	order := make([]string, 0)
	for _, ev := range filtered {
		key := DayKey(ev.Record.StartUTC, loc)
		if _, ok := byDay[key]; !ok {
			order = append(order, key)
		}
		byDay[key] = append(byDay[key], ev)
	}

	// The filtered set is sorted ascending, so first-appearance order of
	// keys is already chronological.
	groups := make([]DayGroup, 0, len(order))
	for _, key := range order {
		groups = append(groups, DayGroup{Day: key, Events: byDay[key]})
	}
	return groups
}
