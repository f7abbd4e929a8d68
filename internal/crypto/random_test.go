package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureToken(t *testing.T) {
	t.Run("is url-safe base64 of 32 bytes", func(t *testing.T) {
		token, err := GenerateSecureToken()
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)
	})

	t.Run("does not repeat", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			token, err := GenerateSecureToken()
			require.NoError(t, err)
			assert.False(t, seen[token], "token collision after %d generations", i)
			seen[token] = true
		}
	})
}
