// Package myschedule renders the personal schedule view: countdown
// labels for reminders, the share message, and the share fallback
// chain over host and platform capabilities.
package myschedule

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/craycray/rocky/internal/host"
	"github.com/craycray/rocky/internal/reminder"
)

// ShareURL is appended to shared schedules so readers can open the app.
const ShareURL = "https://www.craycray.xyz/"

const clipboardConfirmation = "Schedule copied to clipboard!"
const shareFailureNotice = "Unable to share schedule right now."

// TimeUntil renders a countdown label for a reminder target time.
// Hours and minutes truncate toward zero, so anything due, past, or
// unparseable collapses to "soon!".
func TimeUntil(target string, now time.Time) string {
	parsed, err := time.Parse(time.RFC3339, target)
	if err != nil {
		return "soon!"
	}
	diff := parsed.Sub(now)
	hours := int(diff / time.Hour)
	minutes := int((diff % time.Hour) / time.Minute)
	switch {
	case hours > 24:
		return fmt.Sprintf("in %dd", hours/24)
	case hours > 0:
		return fmt.Sprintf("in %dh", hours)
	case minutes > 0:
		return fmt.Sprintf("in %dm", minutes)
	default:
		return "soon!"
	}
}

// ShareMessage builds the share post text. A non-empty schedule embeds
// the reminder count.
func ShareMessage(count int) string {
	if count > 0 {
		return fmt.Sprintf("🚀 DevConnect schedule is locked and loaded! %d sessions planned and Rocky Event Agent is keeping me organized. This is gonna be epic! #DevConnect #BaseChain #RockyAgent", count)
	}
	return "🚀 DevConnect schedule is locked and loaded! Rocky Event Agent is keeping me organized. This is gonna be epic! #DevConnect #BaseChain #RockyAgent"
}

// Platform exposes the device-level share capabilities used when the
// host composer is unavailable.
type Platform interface {
	Share(ctx context.Context, text string) error
	CopyToClipboard(ctx context.Context, text string) error
}

// Sharer walks the share fallback chain: host composer, then platform
// share, then clipboard copy. Exactly one path executes per call.
type Sharer struct {
	Runtime  host.Runtime
	Platform Platform
}

// Share posts the schedule message through the first working channel.
// It returns the user-visible notice for the path taken; exhausting
// every path returns the failure notice as an error.
func (s Sharer) Share(ctx context.Context, reminders []reminder.Reminder) (string, error) {
	text := ShareMessage(len(reminders))

	if s.Runtime != nil {
		err := s.Runtime.ComposeShare(ctx, text)
		if err == nil {
			return "", nil
		}
		log.Printf("myschedule: host compose failed: %v", err)
	}
	if s.Platform != nil {
		err := s.Platform.Share(ctx, text)
		if err == nil {
			return "", nil
		}
		log.Printf("myschedule: platform share failed: %v", err)

		err = s.Platform.CopyToClipboard(ctx, text+"\n"+ShareURL)
		if err == nil {
			return clipboardConfirmation, nil
		}
		log.Printf("myschedule: clipboard copy failed: %v", err)
	}
	return "", errors.New(shareFailureNotice)
}
