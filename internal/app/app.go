package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/docket/internal/clock"
	"github.com/klokku/docket/internal/config"
	"github.com/klokku/docket/internal/seed"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, the event engine, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	deps := BuildDependencies(cfg, clock.SystemClock{})
	if err := Seed(context.Background(), deps, cfg.Seed); err != nil {
		return nil, err
	}

	r := NewRouter(deps)

	read, write, idle := cfg.Server.Timeouts()
	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Server.Addr,
		WriteTimeout: write,
		ReadTimeout:  read,
		IdleTimeout:  idle,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// NewRouter builds the router with middleware and all API routes.
func NewRouter(deps *Dependencies) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)
	return r
}

// Seed loads the demo calendar and then the fixture file, when configured.
func Seed(ctx context.Context, deps *Dependencies, cfg config.Seed) error {
	if cfg.Demo {
		seed.Insert(ctx, deps.EventService, seed.Demo())
	}
	if cfg.Path != "" {
		drafts, err := seed.LoadFile(cfg.Path)
		if err != nil {
			return err
		}
		seed.Insert(ctx, deps.EventService, drafts)
	}
	return nil
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	serveDone := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveDone <- err
		}
		close(serveDone)
	}()

	select {
	case err := <-serveDone:
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.deps.Close()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
