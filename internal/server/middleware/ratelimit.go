package middleware

import (
	"net/http"
	"net/netip"
	"strconv"

	"github.com/garrettladley/wellness/internal/metrics"
	"github.com/garrettladley/wellness/internal/storage"
	"github.com/garrettladley/wellness/internal/xerrors"
	"github.com/garrettladley/wellness/internal/xhttp"
	"github.com/garrettladley/wellness/internal/xslog"
)

const reasonIPRateLimit = "ip_rate_limit"

// RateLimit limits requests per client IP and reports the remaining quota in
// X-RateLimit-* headers. Forwarding headers count only when they come from one
// of trustedProxies. A limiter failure rejects the request rather than letting
// it through unmetered.
func RateLimit(limiter storage.RateLimiter, trustedProxies []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := xhttp.ClientIP(r, trustedProxies)

			result, err := limiter.Allow(ctx, ip)
			if err != nil {
				xslog.FromContext(ctx).ErrorContext(ctx, "rate limit check failed",
					xslog.ErrorGroup(err),
					xslog.IP(ip),
				)
				xerrors.WriteError(ctx, w, xerrors.ServiceUnavailable(
					xerrors.WithCode("rate_limit_unavailable"),
					xerrors.WithMessage("rate limit check failed"),
				))
				return
			}

			if result.Limit > 0 {
				h := w.Header()
				h.Set(xhttp.XRateLimitLimit, strconv.Itoa(result.Limit))
				h.Set(xhttp.XRateLimitRemain, strconv.Itoa(result.Remaining))
			}

			if !result.Allowed {
				metrics.RecordRateLimited()
				xerrors.WriteError(ctx, w, xerrors.TooManyRequests(
					xerrors.WithRetryAfter(result.RetryAfter),
					xerrors.WithReason(reasonIPRateLimit),
				))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
