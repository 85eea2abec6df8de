// Request middleware: access logging and per-IP upload rate limiting.

package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rosterd/rosterd/internal/server/dto"
	"github.com/rosterd/rosterd/internal/server/ratelimit"
)

// clientIP extracts the client IP from an HTTP request, checking
// X-Forwarded-For and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs: "client, proxy1, proxy2".
	// The leftmost IP is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	// Fall back to RemoteAddr, stripping the port. IPv6 looks like [::1]:8080.
	addr := r.RemoteAddr
	if strings.HasPrefix(addr, "[") {
		if host, _, found := strings.Cut(addr, "]:"); found {
			return host[1:]
		}
		return strings.Trim(addr, "[]")
	}
	if host, _, found := strings.Cut(addr, ":"); found {
		return host
	}
	return addr
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// accessLog logs one line per request with method, path, status and latency.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		slog.InfoContext(r.Context(), "Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.status,
			"duration", time.Since(start).Round(time.Millisecond),
			"ip", clientIP(r))
	})
}

// rateLimited rejects requests over the per-IP budget with a 429 before the
// body is read.
func rateLimited(l *ratelimit.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := l.Allow(clientIP(r))
		if !result.Allowed {
			retry := int(result.RetryAfter.Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			apiErr := dto.RateLimited(retry)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(apiErr.StatusCode())
			resp := dto.ErrorResponse{
				Error:   dto.ErrorDetails{Code: apiErr.Code(), Message: apiErr.Error()},
				Details: apiErr.Details(),
			}
			if err := json.NewEncoder(w).Encode(&resp); err != nil {
				slog.ErrorContext(r.Context(), "Failed to encode error response", "err", err)
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}
