// Package internal wires the canva-front application: an HTTP bridge that
// lets a conversational assistant act against the Canva Connect API on a
// user's behalf, with all per-user state held in an encrypted browser cookie.
package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgellow/canva-front/internal/canva"
	"github.com/dgellow/canva-front/internal/config"
	"github.com/dgellow/canva-front/internal/crypto"
	"github.com/dgellow/canva-front/internal/envutil"
	"github.com/dgellow/canva-front/internal/log"
	"github.com/dgellow/canva-front/internal/oauth"
	"github.com/dgellow/canva-front/internal/server"
	"github.com/dgellow/canva-front/internal/session"
)

const shutdownTimeout = 10 * time.Second

// CanvaFront represents the complete bridge application
type CanvaFront struct {
	config     config.Config
	httpServer *server.HTTPServer
}

// NewCanvaFront builds the application with all dependencies.
func NewCanvaFront(cfg config.Config) (*CanvaFront, error) {
	// Probe the random source up front so a broken one fails startup
	// instead of the first login.
	if _, err := oauth.GeneratePKCE(); err != nil {
		return nil, fmt.Errorf("random source unavailable: %w", err)
	}

	if cfg.InsecureSessionSecret {
		log.LogWarn("SESSION_SECRET is not set; using a built-in insecure default. Do not run this in production.")
	}
	if envutil.IsDev() {
		log.LogWarn("Development mode enabled - session cookies are not marked Secure")
	}

	sealer, err := crypto.NewSealer(string(cfg.SessionSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to create session sealer: %w", err)
	}

	provider := oauth.NewProvider(
		cfg.ClientID,
		string(cfg.ClientSecret),
		cfg.RedirectURI,
		cfg.AuthURL,
		cfg.TokenURL,
	)

	handlers := server.NewHandlers(
		cfg,
		provider,
		session.NewStore(sealer),
		canva.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout),
	)

	return &CanvaFront{
		config:     cfg,
		httpServer: server.NewHTTPServer(server.NewRouter(handlers), cfg.Addr()),
	}, nil
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (c *CanvaFront) Run() error {
	log.LogInfoWithFields("canvafront", "Starting canva-front", map[string]any{
		"addr":     c.config.Addr(),
		"baseURL":  c.config.BaseURL,
		"redirect": c.config.RedirectURI,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.httpServer.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Logf("Received signal %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return c.httpServer.Stop(ctx)
}
