package xhttp

import (
	"net/http"
	"strconv"
	"time"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	XRealIP          = "X-Real-IP"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	XXSSProtection   = "X-Xss-Protection"
	ReferrerPolicy   = "Referrer-Policy"
	XRateLimitReason = "X-Rate-Limit-Reason"
	XRateLimitLimit  = "X-RateLimit-Limit"
	XRateLimitRemain = "X-RateLimit-Remaining"
	XAPIKey          = "X-API-Key"
	XRequestID       = "X-Request-ID"
	CacheControl     = "Cache-Control"
	HSTS             = "Strict-Transport-Security"
)

const (
	ContentType     = "Content-Type"
	ContentEncoding = "Content-Encoding"
	ContentLength   = "Content-Length"
	AcceptEncoding  = "Accept-Encoding"
	Vary            = "Vary"
	Location        = "Location"
	RetryAfter      = "Retry-After"
)

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	const applicationJSON = "application/json"
	w.Header().Set(ContentType, applicationJSON)
}

// SetHeaderRetryAfter rounds up to whole seconds, never below one.
func SetHeaderRetryAfter(w http.ResponseWriter, retryAfter time.Duration) {
	seconds := int((retryAfter + time.Second - 1) / time.Second)
	w.Header().Set(RetryAfter, strconv.Itoa(max(seconds, 1)))
}

func SetHeaderLocation(w http.ResponseWriter, location string) {
	w.Header().Set(Location, location)
}

func GetRequestHeaderAPIKey(r *http.Request) string {
	return r.Header.Get(XAPIKey)
}
