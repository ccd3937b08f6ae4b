// Package catalog fetches the public DevConnect event catalog.
//
// The catalog is owned by the external calendar provider; this package
// holds a read-only snapshot valid for one load cycle and never mutates
// it. Derived views (filtering, grouping) live in internal/schedule.
package catalog

// DefaultURL is the public calendar endpoint serving the event catalog.
const DefaultURL = "https://at-slurper.onrender.com/calendar-events"

// Location describes where an event takes place.
type Location struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Organizer identifies who runs an event.
type Organizer struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Record holds the reviewed event payload nested inside a catalog entry.
type Record struct {
	Type           string    `json:"$type"`
	Title          string    `json:"title"`
	StartUTC       string    `json:"start_utc"`
	EndUTC         string    `json:"end_utc"`
	Location       Location  `json:"location"`
	Organizer      Organizer `json:"organizer"`
	Description    string    `json:"description"`
	EventType      string    `json:"event_type"`
	Expertise      string    `json:"expertise"`
	RequiresTicket bool      `json:"requires_ticket"`
	SoldOut        bool      `json:"sold_out"`
	MainURL        string    `json:"main_url,omitempty"`
	TicketsURL     string    `json:"tickets_url,omitempty"`
}

// Event is one entry in the catalog snapshot. IDs are unique within a
// snapshot; StartUTC <= EndUTC by provider contract (violations degrade
// to undefined display order, never a crash).
type Event struct {
	ID          int64  `json:"id"`
	RKey        string `json:"rkey"`
	CreatedBy   string `json:"created_by"`
	Record      Record `json:"record_passed_review"`
	IsCoreEvent bool   `json:"is_core_event"`
	UpdatedAt   string `json:"updated_at"`
}
