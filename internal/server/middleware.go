package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/logsheet/pkg/errors"
	"github.com/matzehuels/logsheet/pkg/observability"
	"github.com/matzehuels/logsheet/pkg/store"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate returns middleware that resolves the caller from a bearer
// token signed with secret. With an empty secret every request is the
// local user.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := Identity{Username: store.LocalOwner}
			if secret != "" {
				token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
				if !ok || token == "" {
					writeError(w, errors.New(errors.ErrCodeUnauthorized, "missing bearer token"))
					return
				}
				var err error
				if id, err = ParseToken(secret, token); err != nil {
					writeError(w, err)
					return
				}
			}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// identityFromContext returns the caller set by [Authenticate], falling back
// to the local user.
func identityFromContext(r *http.Request) Identity {
	if id, ok := r.Context().Value(identityKey).(Identity); ok {
		return id
	}
	return Identity{Username: store.LocalOwner}
}

// RequestLogging returns middleware that logs each request and reports it to
// the registered HTTP hooks.
func RequestLogging(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			hooks := observability.HTTP()
			hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			dur := time.Since(start)
			hooks.OnResponse(r.Context(), r.Method, r.URL.Path, sw.status, dur)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", dur.String(),
			)
		})
	}
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
