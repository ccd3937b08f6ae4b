package reminder

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/craycray/rocky/internal/catalog"
)

func TestFromCatalogEventCopiesFields(t *testing.T) {
	t.Parallel()

	ev := catalog.Event{
		ID: 42,
		Record: catalog.Record{
			Title:       "Opening Ceremony",
			StartUTC:    "2025-11-17T12:00:00.000Z",
			Description: "Short blurb",
		},
	}
	got := FromCatalogEvent(ev)

	if got.ID != "devconnect-42" {
		t.Fatalf("id = %q, want devconnect-42", got.ID)
	}
	if got.Title != "Opening Ceremony" {
		t.Fatalf("title = %q", got.Title)
	}
	if got.Description != "DevConnect event: Short blurb" {
		t.Fatalf("description = %q", got.Description)
	}
	if got.Time != "2025-11-17T12:00:00.000Z" {
		t.Fatalf("time = %q", got.Time)
	}
	if got.Sent {
		t.Fatal("synthesized reminder must start unsent")
	}
}

func TestFromCatalogEventTruncatesLongDescriptions(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 150)
	got := FromCatalogEvent(catalog.Event{ID: 7, Record: catalog.Record{Description: long}})

	want := "DevConnect event: " + strings.Repeat("x", 100) + "..."
	if got.Description != want {
		t.Fatalf("description = %q, want 100-char prefix with ellipsis", got.Description)
	}

	// Exactly at the limit there is nothing to truncate.
	exact := strings.Repeat("y", 100)
	got = FromCatalogEvent(catalog.Event{ID: 8, Record: catalog.Record{Description: exact}})
	if strings.HasSuffix(got.Description, "...") {
		t.Fatalf("description = %q, want no ellipsis at the limit", got.Description)
	}
}

func TestFromCatalogEventTruncatesOnRuneBoundaries(t *testing.T) {
	t.Parallel()

	// 99 ASCII characters followed by multi-byte runes: byte 100 falls
	// inside "é", so a byte-wise cut would emit invalid UTF-8.
	accented := strings.Repeat("x", 99) + "ééé"
	got := FromCatalogEvent(catalog.Event{ID: 9, Record: catalog.Record{Description: accented}})

	if !utf8.ValidString(got.Description) {
		t.Fatalf("description is not valid UTF-8: %q", got.Description)
	}
	want := "DevConnect event: " + strings.Repeat("x", 99) + "é..."
	if got.Description != want {
		t.Fatalf("description = %q, want 100-rune prefix with ellipsis", got.Description)
	}

	// A description of exactly 100 runes but more than 100 bytes is
	// within the limit and must not be truncated.
	exact := strings.Repeat("é", 100)
	got = FromCatalogEvent(catalog.Event{ID: 10, Record: catalog.Record{Description: exact}})
	if got.Description != "DevConnect event: "+exact {
		t.Fatalf("description = %q, want untruncated 100-rune text", got.Description)
	}
}

func TestPlaceholdersAreTwoPendingUpcomingEntries(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)
	got := Placeholders(now)
	if len(got) != 2 {
		t.Fatalf("placeholders = %d, want 2", len(got))
	}
	if got[0].Title != "Welcome to DevConnect!" {
		t.Fatalf("first title = %q", got[0].Title)
	}
	for i, r := range got {
		if r.Sent {
			t.Fatalf("placeholder %d marked sent", i)
		}
		target, err := time.Parse(time.RFC3339, r.Time)
		if err != nil {
			t.Fatalf("placeholder %d time %q: %v", i, r.Time, err)
		}
		if !target.After(now) {
			t.Fatalf("placeholder %d time %v not in the future", i, target)
		}
	}
}
