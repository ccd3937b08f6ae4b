package myschedule

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const onboardingKey = "rocky-onboarding-seen"

// OnboardingStore persists the seen-onboarding flag across runs on the
// same device. The flag is a single file named after the key.
type OnboardingStore struct {
	dir string
}

// NewOnboardingStore builds a store rooted at dir.
func NewOnboardingStore(dir string) (*OnboardingStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("onboarding store dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create onboarding store dir: %w", err)
	}
	return &OnboardingStore{dir: dir}, nil
}

func (s *OnboardingStore) path() string {
	return filepath.Join(s.dir, onboardingKey)
}

// Seen reports whether the onboarding panel was dismissed before.
func (s *OnboardingStore) Seen() bool {
	if s == nil {
		return false
	}
	_, err := os.Stat(s.path())
	return err == nil
}

// MarkSeen records that the onboarding panel was dismissed.
func (s *OnboardingStore) MarkSeen() error {
	if s == nil {
		return fmt.Errorf("onboarding store is not configured")
	}
	if err := os.WriteFile(s.path(), []byte("true\n"), 0o644); err != nil {
		return fmt.Errorf("write onboarding flag: %w", err)
	}
	return nil
}
