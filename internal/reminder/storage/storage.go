// Package storage defines persistence contracts for reminder state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested reminder record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a reminder with the same id already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Reminder stores one agent-created reminder row. Rows are written by
// the concierge agent and read by the mini-app backend; this service
// never mutates them apart from the agent's mark-sent transition.
type Reminder struct {
	ID             string
	InboxID        string
	ConversationID string
	Title          string
	Description    string
	TargetTime     time.Time
	Sent           bool
	CreatedAt      time.Time
}

// PendingStore persists reminder records keyed by inbox.
type PendingStore interface {
	CreateReminder(ctx context.Context, reminder Reminder) error
	// ListPendingForInbox returns unsent reminders for the inbox ordered
	// by target time ascending.
	ListPendingForInbox(ctx context.Context, inboxID string) ([]Reminder, error)
	MarkSent(ctx context.Context, id string) error
}
