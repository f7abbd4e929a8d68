package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgellow/canva-front/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sealer, err := crypto.NewSealer("test-session-secret")
	require.NoError(t, err)
	return NewStore(sealer)
}

func requestWithCookies(t *testing.T, rec *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/designs", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	written := Data{
		OAuthState:   "state-1",
		CodeVerifier: "verifier-1",
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		ExpiresAt:    time.Now().Add(4 * time.Hour).Truncate(time.Second),
	}

	rec := httptest.NewRecorder()
	require.NoError(t, store.Write(rec, written))

	read := store.Read(requestWithCookies(t, rec))
	assert.Equal(t, written.OAuthState, read.OAuthState)
	assert.Equal(t, written.CodeVerifier, read.CodeVerifier)
	assert.Equal(t, written.AccessToken, read.AccessToken)
	assert.Equal(t, written.RefreshToken, read.RefreshToken)
	assert.WithinDuration(t, written.ExpiresAt, read.ExpiresAt, time.Second)
}

func TestStore_CookieAttributes(t *testing.T) {
	store := newTestStore(t)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Write(rec, Data{AccessToken: "at"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, CookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, int(TTL.Seconds()), c.MaxAge)
	assert.NotContains(t, c.Value, "at")
}

func TestStore_MissingCookie(t *testing.T) {
	store := newTestStore(t)

	req := httptest.NewRequest(http.MethodGet, "/designs", nil)
	data := store.Read(req)
	assert.Equal(t, Data{}, data)
	assert.False(t, data.Authenticated())
}

func TestStore_TamperedCookie(t *testing.T) {
	store := newTestStore(t)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Write(rec, Data{AccessToken: "at"}))

	req := httptest.NewRequest(http.MethodGet, "/designs", nil)
	c := rec.Result().Cookies()[0]
	c.Value = c.Value[:len(c.Value)-2] + "zz"
	req.AddCookie(c)

	assert.Equal(t, Data{}, store.Read(req))
}

func TestStore_WrongKey(t *testing.T) {
	store := newTestStore(t)

	otherSealer, err := crypto.NewSealer("another-secret")
	require.NoError(t, err)
	other := NewStore(otherSealer)

	rec := httptest.NewRecorder()
	require.NoError(t, store.Write(rec, Data{AccessToken: "at"}))

	assert.Equal(t, Data{}, other.Read(requestWithCookies(t, rec)))
}

func TestData_Authenticated(t *testing.T) {
	assert.False(t, Data{}.Authenticated())
	assert.False(t, Data{OAuthState: "s", CodeVerifier: "v"}.Authenticated())
	assert.True(t, Data{AccessToken: "at"}.Authenticated())

	// Expiry is informational only; an expired token still counts
	assert.True(t, Data{AccessToken: "at", ExpiresAt: time.Now().Add(-time.Hour)}.Authenticated())
}
