package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/garrettladley/wellness/internal/xhttp"
)

type CORSConfig struct {
	AllowedOrigins []string
	Debug          bool
}

// CORS lets the browser dashboard call the API. Preflight requests are
// answered here and never reach auth or rate limiting.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
		},
		AllowedHeaders: []string{xhttp.ContentType, xhttp.XAPIKey, xhttp.XRequestID},
		ExposedHeaders: []string{
			xhttp.XRequestID,
			xhttp.XRateLimitReason,
			xhttp.XRateLimitLimit,
			xhttp.XRateLimitRemain,
			xhttp.RetryAfter,
			xhttp.Location,
		},
		MaxAge: 600,
		Debug:  cfg.Debug,
	})
	return c.Handler
}
