// Package session drives the mini-app's connection and sign-in flow
// against the host runtime. The flow owns its view state and is not
// safe for concurrent use; callers drive it from a single goroutine.
package session

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/craycray/rocky/internal/catalog"
	"github.com/craycray/rocky/internal/host"
	"github.com/craycray/rocky/internal/reminder"
)

// State identifies where the flow sits between launch and sign-in.
type State int

const (
	// StateDisconnected means no host identity is present.
	StateDisconnected State = iota
	// StateConnected means a host identity exists but is not verified.
	StateConnected
	// StateAuthenticated means the backend verified the user's token.
	StateAuthenticated
)

// Status strings shown to the user. There is no sign-out transition;
// the session lives for the lifetime of the page.
const (
	statusConnecting    = "Connecting to Base..."
	statusDevelopment   = "Development Mode"
	statusConnected     = "Connected - Sign in to view schedule"
	statusSigningIn     = "Signing in..."
	statusSignedIn      = "Connected - Signed in"
	statusSignInFailure = "Authentication failed - try again"
)

// Flow holds the session view state for one app instance.
type Flow struct {
	runtime   host.Runtime
	gateway   *reminder.Gateway
	verifyURL string

	// Client performs the verify request. Defaults to http.DefaultClient.
	Client *http.Client
	// Now supplies the current time for placeholder synthesis.
	Now func() time.Time

	started   bool
	state     State
	status    string
	user      host.User
	token     string
	reminders []reminder.Reminder
	added     map[int64]bool
}

// NewFlow builds a session flow over a host runtime and reminder gateway.
func NewFlow(runtime host.Runtime, gateway *reminder.Gateway, verifyURL string) *Flow {
	return &Flow{
		runtime:   runtime,
		gateway:   gateway,
		verifyURL: verifyURL,
		Client:    http.DefaultClient,
		Now:       time.Now,
		status:    statusConnecting,
		added:     map[int64]bool{},
	}
}

// State returns the current flow state.
func (f *Flow) State() State { return f.state }

// Status returns the current user-facing status line.
func (f *Flow) Status() string { return f.status }

// User returns the host identity, if any.
func (f *Flow) User() host.User { return f.user }

// Reminders returns the current reminder list.
func (f *Flow) Reminders() []reminder.Reminder { return f.reminders }

// Start signals readiness to the host and reads the ambient identity.
// It fires once; repeat calls are no-ops.
func (f *Flow) Start(ctx context.Context) {
	if f.started {
		return
	}
	f.started = true

	if err := f.runtime.SignalReady(ctx); err != nil {
		log.Printf("session: signal ready: %v", err)
	}

	user, ok, err := f.runtime.IdentityContext(ctx)
	if err != nil || !ok {
		f.state = StateDisconnected
		f.status = statusDevelopment
		f.reminders = f.placeholders()
		return
	}
	f.user = user
	f.state = StateConnected
	f.status = statusConnected
	f.reminders = f.placeholders()
}

// SignIn requests a token from the host and verifies it with the
// backend. On any failure the flow stays connected and the user can
// retry; nothing is retried implicitly.
func (f *Flow) SignIn(ctx context.Context) {
	if f.state == StateDisconnected {
		return
	}
	f.status = statusSigningIn

	token, err := f.runtime.RequestToken(ctx)
	if err != nil || strings.TrimSpace(token) == "" {
		f.failSignIn()
		return
	}
	if !f.verifyToken(ctx, token) {
		f.failSignIn()
		return
	}

	f.token = token
	f.state = StateAuthenticated
	f.status = statusSignedIn
	f.loadReminders(ctx)
}

func (f *Flow) failSignIn() {
	f.state = StateConnected
	f.status = statusSignInFailure
}

func (f *Flow) verifyToken(ctx context.Context, token string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.verifyURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Authorization", "Bearer "+token)
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// loadReminders queries the gateway for the signed-in user's pending
// reminders. The gateway is only consulted while authenticated with a
// known address; everything else sees placeholder data.
func (f *Flow) loadReminders(ctx context.Context) {
	if f.state != StateAuthenticated || strings.TrimSpace(f.user.Address) == "" {
		f.reminders = f.placeholders()
		return
	}
	f.gateway.Token = f.token
	f.reminders = f.gateway.ListPending(ctx, f.user.Address)
}

func (f *Flow) placeholders() []reminder.Reminder {
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	return reminder.Placeholders(now)
}

// AddToSchedule appends a reminder synthesized from a catalog event.
// Adds are idempotent per event: a second add neither re-marks nor
// duplicates the list entry. It reports whether the event was new.
func (f *Flow) AddToSchedule(ev catalog.Event) bool {
	if f.added == nil {
		f.added = map[int64]bool{}
	}
	if f.added[ev.ID] {
		return false
	}
	f.added[ev.ID] = true
	f.reminders = append(f.reminders, reminder.FromCatalogEvent(ev))
	return true
}

// Added reports whether an event is already on the personal schedule.
func (f *Flow) Added(eventID int64) bool {
	return f.added[eventID]
}
