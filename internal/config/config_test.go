package config

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CANVA_CLIENT_ID", "client-id")
	t.Setenv("CANVA_CLIENT_SECRET", "client-secret")
	t.Setenv("BASE_URL", "https://bridge.example.com")
	t.Setenv("REDIRECT_URI", "https://bridge.example.com/oauth/callback")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("PORT", "")
	t.Setenv("CANVA_AUTH_URL", "")
	t.Setenv("CANVA_TOKEN_URL", "")
	t.Setenv("CANVA_API_BASE_URL", "")
}

func TestFromEnv(t *testing.T) {
	t.Run("all required set", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, "client-id", cfg.ClientID)
		assert.Equal(t, Secret("client-secret"), cfg.ClientSecret)
		assert.Equal(t, "https://bridge.example.com", cfg.BaseURL)
		assert.Equal(t, "https://bridge.example.com/oauth/callback", cfg.RedirectURI)
		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, ":3000", cfg.Addr())
		assert.Equal(t, "https://bridge.example.com/oauth/login", cfg.LoginURL())
		assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	})

	t.Run("missing required variables are all reported", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("CANVA_CLIENT_ID", "")
		t.Setenv("REDIRECT_URI", "")

		_, err := FromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "CANVA_CLIENT_ID")
		assert.Contains(t, err.Error(), "REDIRECT_URI")
		assert.NotContains(t, err.Error(), "CANVA_CLIENT_SECRET")
	})

	t.Run("session secret falls back to insecure default", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.True(t, cfg.InsecureSessionSecret)
		assert.NotEmpty(t, cfg.SessionSecret)
	})

	t.Run("explicit session secret is not flagged", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SESSION_SECRET", "a-real-secret")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.False(t, cfg.InsecureSessionSecret)
		assert.Equal(t, Secret("a-real-secret"), cfg.SessionSecret)
	})

	t.Run("port override", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("PORT", "8080")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr())
	})

	t.Run("canva endpoints default to production", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "https://www.canva.com/api/oauth/authorize", cfg.AuthURL)
		assert.Equal(t, "https://api.canva.com/rest/v1/oauth/token", cfg.TokenURL)
		assert.Equal(t, "https://api.canva.com/rest/v1", cfg.APIBaseURL)
	})

	t.Run("trailing slashes trimmed", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("BASE_URL", "https://bridge.example.com/")
		t.Setenv("CANVA_API_BASE_URL", "http://localhost:9999/v1/")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, "https://bridge.example.com", cfg.BaseURL)
		assert.Equal(t, "http://localhost:9999/v1", cfg.APIBaseURL)
	})
}

func TestSecret_Redaction(t *testing.T) {
	s := Secret("super-secret")
	assert.Equal(t, "***", s.String())
	assert.Equal(t, "***", fmt.Sprintf("%v", s))

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `"***"`, string(data))

	var empty Secret
	assert.Equal(t, "", empty.String())
}
