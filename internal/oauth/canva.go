// Package oauth implements the client side of the Canva Connect OAuth 2.0
// Authorization Code flow with PKCE.
package oauth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// Scope is the fixed set of Connect API scopes requested at login.
// Scope management beyond this single string is out of scope.
const Scope = "design:meta:read design:content:read design:content:write"

// ExchangeTimeout bounds the server-to-server token exchange. Without it an
// unresponsive token endpoint would hang the callback request indefinitely.
const ExchangeTimeout = 30 * time.Second

// Provider wraps the oauth2 client configuration for Canva Connect.
type Provider struct {
	config oauth2.Config
}

// NewProvider creates a Canva OAuth provider. authURL and tokenURL default to
// the production Canva endpoints in config; tests point them at local servers.
func NewProvider(clientID, clientSecret, redirectURI, authURL, tokenURL string) *Provider {
	return &Provider{
		config: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       strings.Fields(Scope),
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
				// Canva's token endpoint takes client credentials as HTTP Basic auth
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
	}
}

// AuthCodeURL builds the authorization URL with the PKCE challenge and the
// CSRF state parameter.
func (p *Provider) AuthCodeURL(state string, pkce *PKCE) string {
	return p.config.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", pkce.CodeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", pkce.CodeChallengeMethod),
	)
}

// Exchange swaps the authorization code for a token pair. The code verifier
// from the originating login attempt proves possession of that attempt, and
// the redirect URI must match the authorize-time value byte for byte.
//
// Upstream HTTP rejections come back as *oauth2.RetrieveError; any other
// error is a network-level failure.
func (p *Provider) Exchange(ctx context.Context, code, codeVerifier string) (*oauth2.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, ExchangeTimeout)
	defer cancel()

	return p.config.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
}
