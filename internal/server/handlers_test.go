package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgellow/canva-front/internal/canva"
	"github.com/dgellow/canva-front/internal/config"
	"github.com/dgellow/canva-front/internal/crypto"
	"github.com/dgellow/canva-front/internal/oauth"
	"github.com/dgellow/canva-front/internal/session"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   http.Handler
	sessions *session.Store
	config   config.Config
}

// newTestEnv builds the full route table against the given upstream token
// and API endpoints.
func newTestEnv(t *testing.T, tokenURL, apiBaseURL string) *testEnv {
	t.Helper()

	cfg := config.Config{
		ClientID:        "test-client-id",
		ClientSecret:    "test-client-secret",
		BaseURL:         "https://bridge.example.com",
		RedirectURI:     "https://bridge.example.com/oauth/callback",
		SessionSecret:   "test-session-secret",
		Port:            "3000",
		AuthURL:         "https://www.canva.com/api/oauth/authorize",
		TokenURL:        tokenURL,
		APIBaseURL:      apiBaseURL,
		UpstreamTimeout: 2 * time.Second,
	}

	sealer, err := crypto.NewSealer(string(cfg.SessionSecret))
	require.NoError(t, err)
	sessions := session.NewStore(sealer)

	provider := oauth.NewProvider(cfg.ClientID, string(cfg.ClientSecret), cfg.RedirectURI, cfg.AuthURL, cfg.TokenURL)
	handlers := NewHandlers(cfg, provider, sessions, canva.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout))

	return &testEnv{
		router:   NewRouter(handlers),
		sessions: sessions,
		config:   cfg,
	}
}

// seedSession returns a cookie holding the given session data.
func (e *testEnv) seedSession(t *testing.T, data session.Data) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, e.sessions.Write(rec, data))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// readSession decodes the session cookie a handler set on the response.
func (e *testEnv) readSession(t *testing.T, rec *httptest.ResponseRecorder) session.Data {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return e.sessions.Read(req)
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
