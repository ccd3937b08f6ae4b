// Package quickauth verifies Quick Auth bearer tokens issued by the
// host platform. Tokens are EdDSA-signed JWTs whose audience is the
// mini-app domain and whose subject is the signed-in user identifier.
package quickauth

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/craycray/rocky/internal/platform/errors"
)

// quickAuthEnv holds raw env values before post-parse validation.
type quickAuthEnv struct {
	Issuer    string `env:"ROCKY_QUICKAUTH_ISSUER"`
	Domain    string `env:"ROCKY_QUICKAUTH_DOMAIN"`
	PublicKey string `env:"ROCKY_QUICKAUTH_PUBLIC_KEY"`
}

// Config defines how Quick Auth tokens are verified.
type Config struct {
	Issuer string
	Domain string
	Key    ed25519.PublicKey
	Now    func() time.Time
}

// Claims captures validated Quick Auth token claims.
type Claims struct {
	Subject   string
	Issuer    string
	Audience  []string
	ExpiresAt time.Time
	NotBefore time.Time
	IssuedAt  time.Time
}

// tokenClaims is the internal claims type used for JWT parsing.
type tokenClaims struct {
	jwt.RegisteredClaims
}

// LoadConfigFromEnv reads Quick Auth verification configuration.
func LoadConfigFromEnv(now func() time.Time) (Config, error) {
	var raw quickAuthEnv
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("parse quick auth env: %w", err)
	}
	issuer := strings.TrimSpace(raw.Issuer)
	domain := strings.TrimSpace(raw.Domain)
	publicKey := strings.TrimSpace(raw.PublicKey)
	if issuer == "" {
		return Config{}, fmt.Errorf("ROCKY_QUICKAUTH_ISSUER is required")
	}
	if domain == "" {
		return Config{}, fmt.Errorf("ROCKY_QUICKAUTH_DOMAIN is required")
	}
	if publicKey == "" {
		return Config{}, fmt.Errorf("ROCKY_QUICKAUTH_PUBLIC_KEY is required")
	}
	keyBytes, err := decodeBase64(publicKey)
	if err != nil {
		return Config{}, fmt.Errorf("decode quick auth public key: %w", err)
	}
	if len(keyBytes) != ed25519.PublicKeySize {
		return Config{}, fmt.Errorf("quick auth public key must be %d bytes", ed25519.PublicKeySize)
	}
	if now == nil {
		now = time.Now
	}
	return Config{
		Issuer: issuer,
		Domain: domain,
		Key:    ed25519.PublicKey(keyBytes),
		Now:    now,
	}, nil
}

// Verify checks a Quick Auth token and returns its validated claims.
func Verify(token string, cfg Config) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.E(apperrors.KindUnauthorized, "token is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Issuer == "" || cfg.Domain == "" || len(cfg.Key) != ed25519.PublicKeySize {
		return Claims{}, errors.New("quick auth verifier is not configured")
	}

	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(token *jwt.Token) (any, error) {
		return cfg.Key, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}

	if parsed.Issuer == "" || parsed.Issuer != cfg.Issuer {
		return Claims{}, apperrors.E(apperrors.KindUnauthorized, "token issuer mismatch")
	}
	if !audienceContains(parsed.Audience, cfg.Domain) {
		return Claims{}, apperrors.E(apperrors.KindUnauthorized, "token audience mismatch")
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Claims{}, apperrors.E(apperrors.KindUnauthorized, "token subject is required")
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, apperrors.E(apperrors.KindUnauthorized, "token exp is required")
	}

	now := cfg.Now().UTC()
	exp := parsed.ExpiresAt.Time.UTC()
	if !exp.After(now) {
		return Claims{}, apperrors.E(apperrors.KindUnauthorized, "token is expired")
	}
	if parsed.NotBefore != nil {
		nbf := parsed.NotBefore.Time.UTC()
		if now.Before(nbf) {
			return Claims{}, apperrors.E(apperrors.KindUnauthorized, "token not active yet")
		}
	}

	claims := Claims{
		Subject:   parsed.Subject,
		Issuer:    parsed.Issuer,
		Audience:  []string(parsed.Audience),
		ExpiresAt: exp,
	}
	if parsed.NotBefore != nil {
		claims.NotBefore = parsed.NotBefore.Time.UTC()
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return apperrors.E(apperrors.KindUnauthorized, "token signature is invalid")
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.E(apperrors.KindUnauthorized, "token alg is invalid")
	}
	return apperrors.E(apperrors.KindUnauthorized, "token is invalid")
}

// audienceContains reports whether the audience list contains the given value.
func audienceContains(aud jwt.ClaimStrings, value string) bool {
	for _, item := range aud {
		if item == value {
			return true
		}
	}
	return false
}

func decodeBase64(value string) ([]byte, error) {
	if value == "" {
		return nil, errors.New("empty base64 value")
	}
	decoded, err := base64.RawStdEncoding.DecodeString(value)
	if err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}
