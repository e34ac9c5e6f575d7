package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/transport"
)

// RateLimit returns a middleware that limits requests by IP address
// based on the configured limits and window duration.
func RateLimit(requests int, windowStr, message string) func(next http.Handler) http.Handler {
	window, err := time.ParseDuration(windowStr)
	if err != nil {
		window = 15 * time.Minute
	}

	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			transport.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", message)
		}),
	)
}
