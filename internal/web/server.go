// Package web hosts the mini-app backend: the JSON API consumed by the
// embedded client and the server-rendered presentation and schedule
// pages.
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/craycray/rocky/internal/auth/quickauth"
	"github.com/craycray/rocky/internal/catalog"
	"github.com/craycray/rocky/internal/reminder/storage"
	"github.com/craycray/rocky/internal/reminder/storage/sqlite"
)

// Server hosts the mini-app HTTP endpoints.
type Server struct {
	httpAddr   string
	store      storage.PendingStore
	storeErr   error
	auth       quickauth.Config
	authErr    error
	catalog    *catalog.Gateway
	loc        *time.Location
	now        func() time.Time
	httpServer *http.Server
	closeStore func() error
}

// NewServer builds a configured web server. Missing auth or database
// configuration is tolerated at startup and surfaced as 500s on the
// API routes that need them.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	loc, err := config.location()
	if err != nil {
		return nil, err
	}

	s := &Server{
		httpAddr: httpAddr,
		catalog:  catalog.NewGateway(config.CatalogURL),
		loc:      loc,
		now:      time.Now,
	}

	if strings.TrimSpace(config.DBPath) == "" {
		s.storeErr = errors.New("database is not configured")
	} else {
		store, err := sqlite.Open(config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open reminder store: %w", err)
		}
		s.store = store
		s.closeStore = store.Close
	}

	authCfg, err := quickauth.LoadConfigFromEnv(nil)
	if err != nil {
		log.Printf("quick auth not configured: %v", err)
		s.authErr = err
	} else {
		s.auth = authCfg
	}

	s.httpServer = &http.Server{
		Addr:              httpAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	log.Printf("web listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases resources held by the server.
func (s *Server) Close() {
	if s == nil || s.closeStore == nil {
		return
	}
	if err := s.closeStore(); err != nil {
		log.Printf("close reminder store: %v", err)
	}
}
