package server

import (
	"context"
	"net/http"
	"time"

	"github.com/dgellow/canva-front/internal/jsonwriter"
	"github.com/dgellow/canva-front/internal/log"
	"github.com/google/uuid"
)

type contextKey string

const accessTokenContextKey contextKey = "access_token"

// accessTokenFromContext returns the bearer token the gateway stored for
// this request. Only reachable behind RequireSession, so the empty string
// never leaks into an upstream call.
func accessTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(accessTokenContextKey).(string)
	return token
}

// RequireSession is the authenticated gateway: proxy routes short-circuit
// with a 401 and a pointer back to the login endpoint when the session holds
// no access token. The upstream API is never contacted in that case.
//
// Token expiry is not checked here — an expired token is forwarded upstream
// and the upstream failure passes through to the caller.
func (h *Handlers) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := h.sessions.Read(r)
		if !data.Authenticated() {
			log.LogDebugWithFields("gateway", "Rejecting unauthenticated request", map[string]any{
				"path": r.URL.Path,
			})
			jsonwriter.WriteNotAuthenticated(w, h.config.LoginURL())
			return
		}

		ctx := context.WithValue(r.Context(), accessTokenContextKey, data.AccessToken)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MiddlewareFunc is a function that wraps an http.Handler
type MiddlewareFunc func(http.Handler) http.Handler

// ChainMiddleware chains multiple middleware functions
func ChainMiddleware(h http.Handler, middlewares ...MiddlewareFunc) http.Handler {
	for _, mw := range middlewares {
		h = mw(h)
	}
	return h
}

// responseWriterDelegator wraps http.ResponseWriter to capture status and
// bytes written
type responseWriterDelegator struct {
	http.ResponseWriter
	status      int
	written     int
	wroteHeader bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriterDelegator {
	return &responseWriterDelegator{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

func (r *responseWriterDelegator) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.status = code
	r.wroteHeader = true
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseWriterDelegator) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.written += n
	return n, err
}

// Unwrap returns the underlying ResponseWriter for interface detection
func (r *responseWriterDelegator) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// NewLoggerMiddleware adds request/response logging with a per-request ID.
func NewLoggerMiddleware(prefix string) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			w.Header().Set("X-Request-Id", requestID)

			wrapped := wrapResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			fields := map[string]any{
				"request_id":  requestID,
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      wrapped.status,
				"duration_ms": time.Since(start).Milliseconds(),
				"bytes":       wrapped.written,
				"remote_addr": r.RemoteAddr,
			}
			if r.URL.RawQuery != "" {
				fields["query"] = r.URL.RawQuery
			}

			// Health probes are noise at info level
			if r.URL.Path == "/" {
				log.LogDebugWithFields(prefix, "request", fields)
				return
			}
			log.LogInfoWithFields(prefix, "request", fields)
		})
	}
}
