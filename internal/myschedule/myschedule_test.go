package myschedule

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/craycray/rocky/internal/host"
	"github.com/craycray/rocky/internal/reminder"
)

var scheduleNow = time.Date(2025, time.November, 10, 12, 0, 0, 0, time.UTC)

func TestTimeUntilLabels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		offset time.Duration
		want   string
	}{
		{"three days out", 3*24*time.Hour + 2*time.Hour, "in 3d"},
		{"exactly 25 hours", 25 * time.Hour, "in 1d"},
		{"exactly 24 hours", 24 * time.Hour, "in 24h"},
		{"five hours", 5 * time.Hour, "in 5h"},
		{"ninety minutes", 90 * time.Minute, "in 1h"},
		{"forty minutes", 40 * time.Minute, "in 40m"},
		{"thirty seconds", 30 * time.Second, "soon!"},
		{"now", 0, "soon!"},
		{"in the past", -2 * time.Hour, "soon!"},
	}
	for _, tc := range cases {
		target := scheduleNow.Add(tc.offset).Format(time.RFC3339)
		if got := TimeUntil(target, scheduleNow); got != tc.want {
			t.Errorf("%s: TimeUntil = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTimeUntilUnparseable(t *testing.T) {
	t.Parallel()

	if got := TimeUntil("not-a-timestamp", scheduleNow); got != "soon!" {
		t.Fatalf("TimeUntil = %q, want soon!", got)
	}
}

func TestShareMessageEmbedsCount(t *testing.T) {
	t.Parallel()

	got := ShareMessage(3)
	if !strings.Contains(got, "3 sessions planned") {
		t.Fatalf("message = %q, want it to contain %q", got, "3 sessions planned")
	}

	empty := ShareMessage(0)
	if strings.Contains(empty, "sessions planned") {
		t.Fatalf("empty-schedule message = %q, want no session count", empty)
	}
	if empty == got {
		t.Fatal("expected distinct templates for empty and non-empty schedules")
	}
}

// scriptedRuntime fails or succeeds compose on demand.
type scriptedRuntime struct {
	composeErr   error
	composeCalls int
	lastText     string
}

func (r *scriptedRuntime) SignalReady(context.Context) error { return nil }

func (r *scriptedRuntime) IdentityContext(context.Context) (host.User, bool, error) {
	return host.User{}, false, nil
}

func (r *scriptedRuntime) RequestToken(context.Context) (string, error) {
	return "", host.ErrUnsupported
}

func (r *scriptedRuntime) ComposeShare(_ context.Context, text string) error {
	r.composeCalls++
	r.lastText = text
	return r.composeErr
}

// scriptedPlatform records which device share paths ran.
type scriptedPlatform struct {
	shareErr     error
	clipboardErr error
	shareCalls   int
	copyCalls    int
	copiedText   string
}

func (p *scriptedPlatform) Share(_ context.Context, _ string) error {
	p.shareCalls++
	return p.shareErr
}

func (p *scriptedPlatform) CopyToClipboard(_ context.Context, text string) error {
	p.copyCalls++
	p.copiedText = text
	return p.clipboardErr
}

func threeReminders() []reminder.Reminder {
	return []reminder.Reminder{{ID: "a"}, {ID: "b"}, {ID: "c"}}
}

func TestShareUsesHostComposerFirst(t *testing.T) {
	t.Parallel()

	runtime := &scriptedRuntime{}
	platform := &scriptedPlatform{}
	sharer := Sharer{Runtime: runtime, Platform: platform}

	notice, err := sharer.Share(context.Background(), threeReminders())
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if notice != "" {
		t.Fatalf("notice = %q, want none for composer path", notice)
	}
	if runtime.composeCalls != 1 || platform.shareCalls != 0 || platform.copyCalls != 0 {
		t.Fatalf("calls = compose %d share %d copy %d, want exactly one compose",
			runtime.composeCalls, platform.shareCalls, platform.copyCalls)
	}
	if !strings.Contains(runtime.lastText, "3 sessions planned") {
		t.Fatalf("composed text = %q", runtime.lastText)
	}
}

func TestShareFallsThroughToPlatformShare(t *testing.T) {
	t.Parallel()

	runtime := &scriptedRuntime{composeErr: host.ErrUnsupported}
	platform := &scriptedPlatform{}
	sharer := Sharer{Runtime: runtime, Platform: platform}

	if _, err := sharer.Share(context.Background(), nil); err != nil {
		t.Fatalf("share: %v", err)
	}
	if platform.shareCalls != 1 || platform.copyCalls != 0 {
		t.Fatalf("calls = share %d copy %d, want platform share only", platform.shareCalls, platform.copyCalls)
	}
}

func TestShareFallsBackToClipboardWithConfirmation(t *testing.T) {
	t.Parallel()

	runtime := &scriptedRuntime{composeErr: host.ErrUnsupported}
	platform := &scriptedPlatform{shareErr: errors.New("no native share")}
	sharer := Sharer{Runtime: runtime, Platform: platform}

	notice, err := sharer.Share(context.Background(), threeReminders())
	if err != nil {
		t.Fatalf("share: %v", err)
	}
	if notice != "Schedule copied to clipboard!" {
		t.Fatalf("notice = %q", notice)
	}
	if !strings.HasSuffix(platform.copiedText, "\n"+ShareURL) {
		t.Fatalf("copied text = %q, want trailing app URL", platform.copiedText)
	}
}

func TestShareExhaustionReturnsFailureNotice(t *testing.T) {
	t.Parallel()

	runtime := &scriptedRuntime{composeErr: host.ErrUnsupported}
	platform := &scriptedPlatform{shareErr: errors.New("no"), clipboardErr: errors.New("denied")}
	sharer := Sharer{Runtime: runtime, Platform: platform}

	_, err := sharer.Share(context.Background(), nil)
	if err == nil {
		t.Fatal("expected failure after exhausting every path")
	}
	if err.Error() != "Unable to share schedule right now." {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestOnboardingFlagSurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := NewOnboardingStore(dir)
	if err != nil {
		t.Fatalf("new onboarding store: %v", err)
	}
	if store.Seen() {
		t.Fatal("fresh store must not report onboarding as seen")
	}
	if err := store.MarkSeen(); err != nil {
		t.Fatalf("mark seen: %v", err)
	}

	reopened, err := NewOnboardingStore(dir)
	if err != nil {
		t.Fatalf("reopen onboarding store: %v", err)
	}
	if !reopened.Seen() {
		t.Fatal("flag must survive across store instances")
	}
}

func TestOnboardingStoreRequiresDir(t *testing.T) {
	t.Parallel()

	if _, err := NewOnboardingStore("  "); err == nil {
		t.Fatal("expected error for empty dir")
	}
}
