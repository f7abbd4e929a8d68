// Package server wires the HTTP surface: the OAuth login/callback pair, the
// authenticated design proxy routes, and the health check.
package server

import (
	"net/http"

	"github.com/dgellow/canva-front/internal/canva"
	"github.com/dgellow/canva-front/internal/config"
	"github.com/dgellow/canva-front/internal/oauth"
	"github.com/dgellow/canva-front/internal/session"
)

// Handlers holds the dependencies shared by all routes.
type Handlers struct {
	config   config.Config
	provider *oauth.Provider
	sessions *session.Store
	canva    *canva.Client
}

// NewHandlers creates the handler set with dependency injection.
func NewHandlers(cfg config.Config, provider *oauth.Provider, sessions *session.Store, canvaClient *canva.Client) *Handlers {
	return &Handlers{
		config:   cfg,
		provider: provider,
		sessions: sessions,
		canva:    canvaClient,
	}
}

// NewRouter builds the route table. The three proxy routes sit behind the
// session gateway; everything else is public.
func NewRouter(h *Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", h.HealthHandler)
	mux.HandleFunc("GET /oauth/login", h.LoginHandler)
	mux.HandleFunc("GET /oauth/callback", h.CallbackHandler)

	gateway := h.RequireSession
	mux.Handle("GET /designs", gateway(http.HandlerFunc(h.ListDesignsHandler)))
	mux.Handle("GET /designs/{id}", gateway(http.HandlerFunc(h.GetDesignHandler)))
	mux.Handle("POST /imports/url", gateway(http.HandlerFunc(h.ImportURLHandler)))

	return ChainMiddleware(mux, NewLoggerMiddleware("http"))
}

// HealthHandler reports liveness; used by the assistant to probe the bridge.
func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("canva-front is running. Visit /oauth/login to connect your Canva account.\n"))
}
