package middleware

import (
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"donorpath/internal/infra/geoip"
)

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logger emits one access-log line per request. When a country resolver
// is configured the client's country code is attached.
func Logger(l zerolog.Logger, countries geoip.CountryResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			evt := l.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.status).
				Dur("duration", time.Since(start)).
				Str("request_id", RequestIDFromContext(r.Context()))
			if countries != nil {
				if country, err := countries.CountryCode(clientIP(r)); err == nil && country != "" {
					evt = evt.Str("country", country)
				}
			}
			evt.Msg("request")
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
