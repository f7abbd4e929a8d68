package oauth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/dgellow/canva-front/internal/crypto"
)

// PKCE represents a PKCE (Proof Key for Code Exchange) verifier/challenge pair.
// The verifier stays in the session and is only sent to the token endpoint;
// the challenge goes into the authorization request.
type PKCE struct {
	// CodeVerifier is the secret random string (43 base64url chars from 32
	// bytes of entropy)
	CodeVerifier string

	// CodeChallenge is the SHA256 hash of the verifier, base64url encoded
	CodeChallenge string

	// CodeChallengeMethod is always "S256"
	CodeChallengeMethod string
}

// GeneratePKCE generates a new PKCE code verifier and challenge.
// Failure of the random source is unrecoverable; callers treat it as fatal.
func GeneratePKCE() (*PKCE, error) {
	verifierBytes := make([]byte, 32)
	if _, err := rand.Read(verifierBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}

	verifier := base64.RawURLEncoding.EncodeToString(verifierBytes)
	hash := sha256.Sum256([]byte(verifier))
	challenge := base64.RawURLEncoding.EncodeToString(hash[:])

	return &PKCE{
		CodeVerifier:        verifier,
		CodeChallenge:       challenge,
		CodeChallengeMethod: "S256",
	}, nil
}

// GenerateState generates the random state parameter round-tripped through
// the authorization redirect to prevent CSRF on the callback.
func GenerateState() (string, error) {
	return crypto.GenerateSecureToken()
}

// VerifyPKCE reports whether challenge is the S256 challenge for verifier.
func VerifyPKCE(verifier, challenge string) bool {
	h := sha256.Sum256([]byte(verifier))
	computed := base64.RawURLEncoding.EncodeToString(h[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(challenge)) == 1
}
