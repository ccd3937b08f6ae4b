// Package reminder models personal event reminders and the client-side
// gateway that fetches them from the concierge backend.
package reminder

import (
	"strconv"
	"time"

	"github.com/craycray/rocky/internal/catalog"
)

// Reminder is one pending reminder as seen by the mini-app. Reminders
// sourced from the gateway are always pending (sent = false) by backend
// contract; only local placeholder or synthesized entries exist outside
// that path.
type Reminder struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Time        string `json:"time"`
	Sent        bool   `json:"sent"`
}

// descriptionLimit caps the catalog description copied into a reminder.
const descriptionLimit = 100

// catalogIDPrefix namespaces reminders synthesized from catalog events so
// they cannot collide with agent-created reminder ids.
const catalogIDPrefix = "devconnect-"

// catalogLabel prefixes the synthesized description.
const catalogLabel = "DevConnect event: "

// FromCatalogEvent copies a catalog event into a new local reminder.
// This is a one-shot snapshot: the reminder keeps no link back to the
// catalog entry.
func FromCatalogEvent(ev catalog.Event) Reminder {
	description := ev.Record.Description
	// The limit counts characters, not bytes.
	if runes := []rune(description); len(runes) > descriptionLimit {
		description = string(runes[:descriptionLimit]) + "..."
	}
	return Reminder{
		ID:          catalogIDPrefix + strconv.FormatInt(ev.ID, 10),
		Title:       ev.Record.Title,
		Description: catalogLabel + description,
		Time:        ev.Record.StartUTC,
		Sent:        false,
	}
}

// Placeholders returns the fixed two-item fallback list shown whenever
// the backend cannot be reached, so the schedule view always renders.
func Placeholders(now time.Time) []Reminder {
	return []Reminder{
		{
			ID:          "1",
			Title:       "Welcome to DevConnect!",
			Description: "Opening ceremony and keynote presentation",
			Time:        now.Add(time.Hour).UTC().Format(time.RFC3339),
			Sent:        false,
		},
		{
			ID:          "2",
			Title:       "Blockchain Security Workshop",
			Description: "Learn about smart contract security best practices",
			Time:        now.Add(2 * time.Hour).UTC().Format(time.RFC3339),
			Sent:        false,
		},
	}
}
