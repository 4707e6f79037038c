package middleware

import (
	"net/http"
	"slices"
)

type Middleware = func(http.Handler) http.Handler

// Chain wraps h so that the first middleware listed runs first. Nil entries
// are skipped.
func Chain(h http.Handler, middleware ...Middleware) http.Handler {
	for _, m := range slices.Backward(middleware) {
		if m != nil {
			h = m(h)
		}
	}
	return h
}

// When returns m if enabled is true and nil otherwise, for use in Chain.
func When(enabled bool, m Middleware) Middleware {
	if !enabled {
		return nil
	}
	return m
}
