package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/qcharged/product-service/pkg/logger"
	"github.com/qcharged/product-service/pkg/metrics"
	"github.com/qcharged/product-service/pkg/ratelimit"
	"github.com/qcharged/product-service/pkg/response"
)

// RateLimit limits each client IP through l. When the store fails the
// request is let through and the failure logged.
//
// trustProxy makes the first X-Forwarded-For entry the client IP. Enable it
// only when a proxy that overwrites the header sits in front of the service.
func RateLimit(l *ratelimit.Limiter, trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := l.Allow(r.Context(), clientIP(r, trustProxy))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rate limit store unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				metrics.RateLimited.WithLabelValues(l.Store().Name()).Inc()
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(res.ResetIn.Seconds()))))
				response.Error(w, r, http.StatusTooManyRequests, response.TitleTooManyRequests,
					"Rate limit exceeded, retry later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP is the first X-Forwarded-For entry when trustProxy is set and
// the header is present, otherwise RemoteAddr's host.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	return remoteHost(r)
}

func remoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
