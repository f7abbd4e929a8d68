// Package session carries per-browser state in an encrypted cookie. There is
// no server-side store: the cookie is the session, and the cookie is the
// user's identity.
package session

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dgellow/canva-front/internal/crypto"
	"github.com/dgellow/canva-front/internal/envutil"
	"github.com/dgellow/canva-front/internal/log"
)

// CookieName is the session cookie set on the bridge's own origin.
const CookieName = "canva_session"

// TTL is how long a browser session lives. Tokens inside a session are not
// refreshed; an expired access token is forwarded upstream and fails there.
const TTL = 24 * time.Hour

// Data is the session payload. OAuthState and CodeVerifier are transient:
// set together at login, consumed together at callback.
type Data struct {
	OAuthState   string    `json:"oauth_state,omitempty"`
	CodeVerifier string    `json:"code_verifier,omitempty"`
	AccessToken  string    `json:"access_token,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
}

// Authenticated reports whether the session holds an access token. Expiry is
// deliberately not checked here; see package doc.
func (d Data) Authenticated() bool {
	return d.AccessToken != ""
}

// Store reads and writes session cookies.
type Store struct {
	sealer *crypto.Sealer
}

func NewStore(sealer *crypto.Sealer) *Store {
	return &Store{sealer: sealer}
}

// Read returns the session for the request. A missing, tampered, or
// undecodable cookie yields an empty session rather than an error: the
// caller just sees an unauthenticated browser.
func (s *Store) Read(r *http.Request) Data {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Data{}
	}

	plaintext, err := s.sealer.Open(cookie.Value)
	if err != nil {
		log.LogDebugWithFields("session", "Discarding undecryptable session cookie", map[string]any{
			"error": err.Error(),
		})
		return Data{}
	}

	var data Data
	if err := json.Unmarshal(plaintext, &data); err != nil {
		log.LogDebugWithFields("session", "Discarding malformed session cookie", map[string]any{
			"error": err.Error(),
		})
		return Data{}
	}
	return data
}

// Write seals the session and sets the cookie. SameSite is Lax, not Strict:
// the OAuth callback is a cross-site navigation from Canva and must carry
// the cookie.
func (s *Store) Write(w http.ResponseWriter, data Data) error {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	sealed, err := s.sealer.Seal(plaintext)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		HttpOnly: true,
		Secure:   !envutil.IsDev(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(TTL.Seconds()),
	})
	return nil
}
