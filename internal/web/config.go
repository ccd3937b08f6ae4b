package web

import (
	"fmt"
	"strings"
	"time"

	"github.com/craycray/rocky/internal/platform/config"
)

// Config defines the inputs for the web server.
type Config struct {
	HTTPAddr        string `env:"ROCKY_HTTP_ADDR" envDefault:":8080"`
	DBPath          string `env:"ROCKY_DB_PATH"`
	CatalogURL      string `env:"ROCKY_CATALOG_URL"`
	DisplayTimezone string `env:"ROCKY_DISPLAY_TIMEZONE" envDefault:"UTC"`
}

// LoadConfig reads server configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load web config: %w", err)
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return Config{}, fmt.Errorf("ROCKY_HTTP_ADDR is required")
	}
	return cfg, nil
}

// location resolves the display timezone used to bucket schedule days.
func (c Config) location() (*time.Location, error) {
	tz := strings.TrimSpace(c.DisplayTimezone)
	if tz == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %q: %w", tz, err)
	}
	return loc, nil
}
