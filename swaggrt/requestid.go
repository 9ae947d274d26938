package swaggrt

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader carries the request ID unless RequestIDConfig
// names another header.
const DefaultRequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFromContext returns the ID stored by RequestIDMiddleware, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDConfig configures RequestIDMiddleware.
type RequestIDConfig struct {
	// Header defaults to DefaultRequestIDHeader.
	Header string
	// Generate returns a new ID. Defaults to NewUUIDv4.
	Generate func(r *http.Request) string
	// TrustIncoming reuses the ID sent by the client when present.
	TrustIncoming bool
}

// RequestIDMiddleware sets a request ID on the request header, the response
// header and the request context.
func RequestIDMiddleware(cfg RequestIDConfig) func(http.Handler) http.Handler {
	header := cfg.Header
	if header == "" {
		header = DefaultRequestIDHeader
	}
	generate := cfg.Generate
	if generate == nil {
		generate = NewUUIDv4
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if cfg.TrustIncoming {
				id = r.Header.Get(header)
			}
			if id == "" {
				id = generate(r)
			}
			if id != "" {
				r.Header.Set(header, id)
				w.Header().Set(header, id)
				r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// NewUUIDv4 returns a random UUID.
func NewUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// NewUUIDv7 returns a time-ordered UUID.
func NewUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
