package host

import (
	"context"
	"errors"
	"testing"
)

func TestDevRuntimeHasNoIdentity(t *testing.T) {
	t.Parallel()

	runtime := DevRuntime{}
	if err := runtime.SignalReady(context.Background()); err != nil {
		t.Fatalf("signal ready: %v", err)
	}
	user, ok, err := runtime.IdentityContext(context.Background())
	if err != nil {
		t.Fatalf("identity context: %v", err)
	}
	if ok {
		t.Fatalf("expected no ambient identity, got %+v", user)
	}
}

func TestDevRuntimeRejectsHostOnlyCapabilities(t *testing.T) {
	t.Parallel()

	runtime := DevRuntime{}
	if _, err := runtime.RequestToken(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("request token = %v, want ErrUnsupported", err)
	}
	if err := runtime.ComposeShare(context.Background(), "hello"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("compose share = %v, want ErrUnsupported", err)
	}
}
