// Package templates renders the mini-app pages as templ components.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/url"

	"github.com/a-h/templ"
)

// ScheduleEvent is one rendered row of the public schedule.
type ScheduleEvent struct {
	Title     string
	Label     string
	Location  string
	Organizer string
	EventType string
	Core      bool
}

// ScheduleGroup is one day section of the schedule list.
type ScheduleGroup struct {
	Day    string
	Events []ScheduleEvent
}

// SchedulePageData feeds the full-schedule page.
type SchedulePageData struct {
	Filter  string
	Day     string
	Days    []string
	Groups  []ScheduleGroup
	LoadErr bool
}

func writeHead(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<link rel="stylesheet" href="/static/app.css">
</head>
<body>`, html.EscapeString(title))
	return err
}

func writeTail(w io.Writer) error {
	_, err := io.WriteString(w, "</body>\n</html>\n")
	return err
}

func writeNav(w io.Writer, active string) error {
	tabs := []struct {
		href  string
		label string
		key   string
	}{
		{"/", "Presentation", "presentation"},
		{"/schedule", "Full Schedule", "schedule"},
	}
	if _, err := io.WriteString(w, `<nav class="tabs">`); err != nil {
		return err
	}
	for _, tab := range tabs {
		class := "tab"
		if tab.key == active {
			class = "tab active"
		}
		if _, err := fmt.Fprintf(w, `<a class="%s" href="%s">%s</a>`, class, tab.href, html.EscapeString(tab.label)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</nav>\n")
	return err
}

// PresentationPage renders the static presentation shell.
func PresentationPage() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeHead(w, "Rocky - DevConnect Companion"); err != nil {
			return err
		}
		if err := writeNav(w, "presentation"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="presentation">
<h1>Rocky Event Agent</h1>
<p>Your personal event assistant for DevConnect</p>
<section class="deck">
<article class="slide"><h2>Never miss a session</h2><p>Rocky keeps your reminders in one place and nudges you before each talk starts.</p></article>
<article class="slide"><h2>Browse the full schedule</h2><p>Every DevConnect event, filterable by day, core track, and what is coming up next.</p></article>
<article class="slide"><h2>Share your plan</h2><p>Post your locked-in schedule straight from the app.</p></article>
</section>
</main>
`); err != nil {
			return err
		}
		return writeTail(w)
	})
}

// SchedulePage renders the public schedule with filter and day controls.
func SchedulePage(data SchedulePageData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := writeHead(w, "DevConnect Schedule"); err != nil {
			return err
		}
		if err := writeNav(w, "schedule"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main class="schedule">
<h1>DevConnect Schedule</h1>
`); err != nil {
			return err
		}
		if data.LoadErr {
			if _, err := fmt.Fprintf(w, `<div class="error-panel"><p>Unable to load events.</p><a class="retry" href="%s">Retry</a></div>
</main>
`, html.EscapeString(scheduleHref(data.Filter, data.Day))); err != nil {
				return err
			}
			return writeTail(w)
		}
		if err := writeFilters(w, data); err != nil {
			return err
		}
		if len(data.Groups) == 0 {
			if _, err := io.WriteString(w, `<p class="empty">No events match the selected filters.</p>
</main>
`); err != nil {
				return err
			}
			return writeTail(w)
		}
		for _, group := range data.Groups {
			if _, err := fmt.Fprintf(w, `<section class="day-group"><h2>%s</h2>
`, html.EscapeString(group.Day)); err != nil {
				return err
			}
			for _, ev := range group.Events {
				class := "event"
				if ev.Core {
					class = "event core"
				}
				if _, err := fmt.Fprintf(w, `<article class="%s"><h3>%s</h3><p class="when">%s</p>`,
					class, html.EscapeString(ev.Title), html.EscapeString(ev.Label)); err != nil {
					return err
				}
				if ev.Location != "" {
					if _, err := fmt.Fprintf(w, `<p class="where">%s</p>`, html.EscapeString(ev.Location)); err != nil {
						return err
					}
				}
				if ev.Organizer != "" {
					if _, err := fmt.Fprintf(w, `<p class="who">%s</p>`, html.EscapeString(ev.Organizer)); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, "</article>\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, "</section>\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</main>\n"); err != nil {
			return err
		}
		return writeTail(w)
	})
}

func writeFilters(w io.Writer, data SchedulePageData) error {
	filters := []struct {
		key   string
		label string
	}{
		{"all", "All Events"},
		{"core", "Core Events"},
		{"today", "Today"},
		{"upcoming", "Upcoming"},
	}
	if _, err := io.WriteString(w, `<div class="filters">`); err != nil {
		return err
	}
	for _, f := range filters {
		class := "filter"
		if f.key == data.Filter {
			class = "filter active"
		}
		if _, err := fmt.Fprintf(w, `<a class="%s" href="%s">%s</a>`,
			class, html.EscapeString(scheduleHref(f.key, data.Day)), html.EscapeString(f.label)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</div>\n"); err != nil {
		return err
	}

	if _, err := io.WriteString(w, `<div class="days">`); err != nil {
		return err
	}
	class := "day"
	if data.Day == "all" || data.Day == "" {
		class = "day active"
	}
	if _, err := fmt.Fprintf(w, `<a class="%s" href="%s">All Days</a>`,
		class, html.EscapeString(scheduleHref(data.Filter, "all"))); err != nil {
		return err
	}
	for _, day := range data.Days {
		class := "day"
		if day == data.Day {
			class = "day active"
		}
		if _, err := fmt.Fprintf(w, `<a class="%s" href="%s">%s</a>`,
			class, html.EscapeString(scheduleHref(data.Filter, day)), html.EscapeString(day)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>\n")
	return err
}

func scheduleHref(filter, day string) string {
	if filter == "" {
		filter = "all"
	}
	if day == "" {
		day = "all"
	}
	return "/schedule?filter=" + url.QueryEscape(filter) + "&day=" + url.QueryEscape(day)
}
