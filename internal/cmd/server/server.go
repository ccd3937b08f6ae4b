// Package server wires configuration, tracing, and the web server for
// the rocky backend process.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/craycray/rocky/internal/platform/otel"
	"github.com/craycray/rocky/internal/web"
)

// Config holds the server command configuration.
type Config struct {
	Web web.Config
}

// ParseConfig reads environment configuration and applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	webCfg, err := web.LoadConfig()
	if err != nil {
		return Config{}, err
	}

	fs.StringVar(&webCfg.HTTPAddr, "http-addr", webCfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&webCfg.DBPath, "db-path", webCfg.DBPath, "SQLite reminder database path")
	fs.StringVar(&webCfg.CatalogURL, "catalog-url", webCfg.CatalogURL, "Calendar events endpoint")
	fs.StringVar(&webCfg.DisplayTimezone, "display-tz", webCfg.DisplayTimezone, "Timezone for schedule day grouping")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Config{Web: webCfg}, nil
}

// Run starts the backend server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "rocky-server")
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	server, err := web.NewServer(cfg.Web)
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}
