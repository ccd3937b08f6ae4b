// Package host bridges the mini-app to the capabilities of the client
// it runs inside. A real host injects identity, auth tokens, and a
// share composer; outside a host none of those exist and callers fall
// back to development behavior.
package host

import (
	"context"
	"errors"
)

// ErrUnsupported indicates the current runtime does not provide the
// requested capability.
var ErrUnsupported = errors.New("capability not supported by host runtime")

// User describes the signed-in identity provided by the host client.
type User struct {
	Address  string
	Username string
	Avatar   string
	FID      string
}

// Runtime exposes the host client capabilities the mini-app consumes.
type Runtime interface {
	// SignalReady tells the host the app finished loading so it can
	// dismiss its splash screen. Hosts ignore repeat calls.
	SignalReady(ctx context.Context) error
	// IdentityContext returns the ambient user identity and whether one
	// is present. No identity is not an error.
	IdentityContext(ctx context.Context) (User, bool, error)
	// RequestToken asks the host to mint a Quick Auth token for the
	// current user.
	RequestToken(ctx context.Context) (string, error)
	// ComposeShare opens the host's share composer prefilled with text.
	ComposeShare(ctx context.Context, text string) error
}

// DevRuntime is the offline runtime used when no host client is
// present. It carries no identity and cannot mint tokens or share.
type DevRuntime struct{}

// SignalReady is a no-op outside a host client.
func (DevRuntime) SignalReady(context.Context) error { return nil }

// IdentityContext reports no ambient identity.
func (DevRuntime) IdentityContext(context.Context) (User, bool, error) {
	return User{}, false, nil
}

// RequestToken fails: there is no host to mint tokens.
func (DevRuntime) RequestToken(context.Context) (string, error) {
	return "", ErrUnsupported
}

// ComposeShare fails: there is no composer to open.
func (DevRuntime) ComposeShare(context.Context, string) error {
	return ErrUnsupported
}
