package observability

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ReadinessCheck is one dependency the service cannot serve without.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func HealthLiveHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HealthReadyHandler runs every check and reports the first failing one as
// NAME_UNAVAILABLE with a 503.
func HealthReadyHandler(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				GetLogger(r.Context()).Warn("readiness check failed", zap.String("check", c.Name), zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(strings.ToUpper(c.Name) + "_UNAVAILABLE"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
