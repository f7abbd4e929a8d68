// Package config loads the bridge configuration from the environment and
// validates it at startup. Missing required variables abort startup instead
// of limping along into guaranteed OAuth failures later.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Production Canva Connect endpoints. Overridable via env for tests and staging.
const (
	defaultAuthURL    = "https://www.canva.com/api/oauth/authorize"
	defaultTokenURL   = "https://api.canva.com/rest/v1/oauth/token"
	defaultAPIBaseURL = "https://api.canva.com/rest/v1"
)

// insecureSessionSecret is the fallback when SESSION_SECRET is unset.
// Anyone who knows it can forge session cookies; never run production with it.
const insecureSessionSecret = "canva-front-insecure-dev-secret"

const defaultPort = "3000"

// Secret is a string type that redacts itself when printed
type Secret string

// String implements fmt.Stringer to redact the secret
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "***"
}

// MarshalJSON implements json.Marshaler to prevent secrets in JSON logs
func (s Secret) MarshalJSON() ([]byte, error) {
	if s == "" {
		return json.Marshal("")
	}
	return json.Marshal("***")
}

// Config is the typed bridge configuration.
type Config struct {
	// ClientID and ClientSecret identify this integration to Canva.
	ClientID     string
	ClientSecret Secret

	// BaseURL is the public base URL of this server, used to build the
	// authUrl pointer returned on 401s.
	BaseURL string

	// RedirectURI is the OAuth callback URL registered with Canva. It must
	// match the authorize-time value byte for byte at token-exchange time.
	RedirectURI string

	// SessionSecret keys the session cookie encryption.
	SessionSecret Secret

	// InsecureSessionSecret is set when the built-in fallback secret is in
	// use, so startup can warn loudly.
	InsecureSessionSecret bool

	// Port the HTTP server listens on.
	Port string

	// Canva endpoint overrides.
	AuthURL    string
	TokenURL   string
	APIBaseURL string

	// UpstreamTimeout bounds proxied Canva API calls.
	UpstreamTimeout time.Duration
}

// FromEnv builds the configuration from environment variables. All missing
// required variables are reported in one error.
func FromEnv() (Config, error) {
	cfg := Config{
		ClientID:        os.Getenv("CANVA_CLIENT_ID"),
		ClientSecret:    Secret(os.Getenv("CANVA_CLIENT_SECRET")),
		BaseURL:         strings.TrimSuffix(os.Getenv("BASE_URL"), "/"),
		RedirectURI:     os.Getenv("REDIRECT_URI"),
		Port:            getEnv("PORT", defaultPort),
		AuthURL:         getEnv("CANVA_AUTH_URL", defaultAuthURL),
		TokenURL:        getEnv("CANVA_TOKEN_URL", defaultTokenURL),
		APIBaseURL:      strings.TrimSuffix(getEnv("CANVA_API_BASE_URL", defaultAPIBaseURL), "/"),
		UpstreamTimeout: 30 * time.Second,
	}

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, "CANVA_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		missing = append(missing, "CANVA_CLIENT_SECRET")
	}
	if cfg.BaseURL == "" {
		missing = append(missing, "BASE_URL")
	}
	if cfg.RedirectURI == "" {
		missing = append(missing, "REDIRECT_URI")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg.SessionSecret = Secret(os.Getenv("SESSION_SECRET"))
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = insecureSessionSecret
		cfg.InsecureSessionSecret = true
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// LoginURL returns the absolute URL of the login endpoint, the authUrl
// callers are pointed at on 401.
func (c Config) LoginURL() string {
	return c.BaseURL + "/oauth/login"
}

func getEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
