// Package main runs a headless walkthrough of the mini-app client:
// connect, optionally sign in, print reminders, and print the grouped
// public schedule. Useful for poking at a running backend without a
// host client.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/craycray/rocky/internal/catalog"
	"github.com/craycray/rocky/internal/host"
	"github.com/craycray/rocky/internal/myschedule"
	"github.com/craycray/rocky/internal/reminder"
	"github.com/craycray/rocky/internal/schedule"
	"github.com/craycray/rocky/internal/session"
)

// staticRuntime impersonates a host client with a fixed identity and
// token, so sign-in can be exercised from the command line.
type staticRuntime struct {
	user  host.User
	token string
}

func (r staticRuntime) SignalReady(context.Context) error { return nil }

func (r staticRuntime) IdentityContext(context.Context) (host.User, bool, error) {
	return r.user, true, nil
}

func (r staticRuntime) RequestToken(context.Context) (string, error) {
	return r.token, nil
}

func (r staticRuntime) ComposeShare(_ context.Context, text string) error {
	fmt.Println("compose:", text)
	return nil
}

func defaultStateDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".rocky"
	}
	return filepath.Join(base, "rocky")
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "rocky backend base URL")
	catalogURL := flag.String("catalog-url", "", "calendar events endpoint (defaults to the public provider)")
	address := flag.String("address", "", "inbox address to sign in as")
	token := flag.String("token", "", "quick auth token to sign in with")
	filter := flag.String("filter", "all", "schedule category filter (all, core, today, upcoming)")
	day := flag.String("day", "all", "schedule day filter")
	tz := flag.String("display-tz", "UTC", "timezone for day grouping")
	stateDir := flag.String("state-dir", defaultStateDir(), "directory for persisted client state")
	flag.Parse()

	log.SetPrefix("[COMPANION] ")
	ctx := context.Background()

	if onboarding, err := myschedule.NewOnboardingStore(*stateDir); err != nil {
		log.Printf("onboarding state unavailable: %v", err)
	} else if !onboarding.Seen() {
		fmt.Println("Welcome to Rocky Event Schedule")
		fmt.Println("Your personal event assistant for DevConnect")
		fmt.Println()
		if err := onboarding.MarkSeen(); err != nil {
			log.Printf("persist onboarding flag: %v", err)
		}
	}

	loc, err := time.LoadLocation(*tz)
	if err != nil {
		log.Fatalf("load timezone: %v", err)
	}

	var runtime host.Runtime = host.DevRuntime{}
	if *address != "" && *token != "" {
		runtime = staticRuntime{user: host.User{Address: *address}, token: *token}
	}

	flow := session.NewFlow(runtime, reminder.NewGateway(*baseURL), *baseURL+"/api/auth")
	flow.Start(ctx)
	fmt.Println("status:", flow.Status())

	if flow.State() == session.StateConnected && *token != "" {
		flow.SignIn(ctx)
		fmt.Println("status:", flow.Status())
	}

	now := time.Now()
	fmt.Println("\nreminders:")
	for _, r := range flow.Reminders() {
		fmt.Printf("  %s (%s)\n", r.Title, myschedule.TimeUntil(r.Time, now))
	}

	fmt.Println("\nschedule:")
	events, err := catalog.NewGateway(*catalogURL).Load(ctx)
	if err != nil {
		fmt.Println("  unable to load events:", err)
		os.Exit(1)
	}
	sel := schedule.Selection{Category: schedule.Category(*filter), Day: *day}
	groups := schedule.GroupByDay(events, now, loc, sel)
	if len(groups) == 0 {
		fmt.Println("  no events match the selected filters")
		return
	}
	for _, group := range groups {
		fmt.Println(" ", group.Day)
		for _, ev := range group.Events {
			marker := " "
			if ev.IsCoreEvent {
				marker = "*"
			}
			fmt.Printf("   %s %s (%s)\n", marker, ev.Record.Title, schedule.Label(ev.Record.StartUTC, now))
		}
	}
}
