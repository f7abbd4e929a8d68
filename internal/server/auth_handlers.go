package server

import (
	"errors"
	"net/http"

	"github.com/dgellow/canva-front/internal/jsonwriter"
	"github.com/dgellow/canva-front/internal/log"
	"github.com/dgellow/canva-front/internal/oauth"
	"golang.org/x/oauth2"
)

// LoginHandler starts a login attempt: generates a fresh state/PKCE pair,
// stores both in the session, and redirects to Canva's authorize URL.
// A new attempt overwrites any pending pair — the most recent login wins.
func (h *Handlers) LoginHandler(w http.ResponseWriter, r *http.Request) {
	pkce, err := oauth.GeneratePKCE()
	if err != nil {
		// Random source failure is unrecoverable; crash-and-restart beats
		// handing out guessable PKCE material.
		log.LogError("Random source failure generating PKCE pair: %v", err)
		panic(err)
	}

	state, err := oauth.GenerateState()
	if err != nil {
		log.LogError("Random source failure generating state: %v", err)
		panic(err)
	}

	data := h.sessions.Read(r)
	data.OAuthState = state
	data.CodeVerifier = pkce.CodeVerifier

	if err := h.sessions.Write(w, data); err != nil {
		log.LogError("Failed to write session: %v", err)
		jsonwriter.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to start login")
		return
	}

	authURL := h.provider.AuthCodeURL(state, pkce)
	log.LogDebugWithFields("auth", "Redirecting to Canva authorize URL", map[string]any{
		"state": state,
	})
	http.Redirect(w, r, authURL, http.StatusFound)
}

// CallbackHandler completes a login attempt. It validates the returned state
// against the session (the CSRF/replay defense), exchanges the code plus
// the original verifier for tokens, and rewrites the session with the result.
func (h *Handlers) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		log.LogWarnWithFields("auth", "Canva returned an authorization error", map[string]any{
			"error":       errParam,
			"description": query.Get("error_description"),
		})
		jsonwriter.WriteBadRequest(w, jsonwriter.ErrInvalidState, "Authorization was not granted")
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		log.LogWarn("Callback missing code or state")
		jsonwriter.WriteBadRequest(w, jsonwriter.ErrInvalidState, "Invalid callback parameters")
		return
	}

	data := h.sessions.Read(r)
	if data.OAuthState == "" || data.CodeVerifier == "" || state != data.OAuthState {
		log.LogWarn("Callback state does not match session")
		jsonwriter.WriteBadRequest(w, jsonwriter.ErrInvalidState, "Invalid state parameter")
		return
	}

	token, err := h.provider.Exchange(r.Context(), code, data.CodeVerifier)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// Upstream rejected the grant. The body can name our client and
			// grant internals, so it is logged, never forwarded.
			log.LogErrorWithFields("auth", "Token exchange rejected", map[string]any{
				"status": retrieveErr.Response.StatusCode,
				"body":   string(retrieveErr.Body),
			})
			jsonwriter.WriteBadRequest(w, jsonwriter.ErrTokenExchangeFailed, "Token exchange failed")
			return
		}

		log.LogError("Token exchange unreachable: %v", err)
		jsonwriter.WriteUpstreamUnreachable(w)
		return
	}

	// Rewrite the session: tokens in, state and verifier out. Clearing the
	// pair closes the callback replay window.
	data.OAuthState = ""
	data.CodeVerifier = ""
	data.AccessToken = token.AccessToken
	data.RefreshToken = token.RefreshToken
	data.ExpiresAt = token.Expiry

	if err := h.sessions.Write(w, data); err != nil {
		log.LogError("Failed to persist session after exchange: %v", err)
		jsonwriter.WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to store session")
		return
	}

	log.Logf("Canva account connected")

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Canva account connected. You can close this tab and return to your assistant.\n"))
}
