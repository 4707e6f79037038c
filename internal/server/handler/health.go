package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/wellness/internal/version"
	"github.com/garrettladley/wellness/internal/xhttp"
	"github.com/garrettladley/wellness/internal/xslog"
)

const healthCheckTimeout = 2 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

type Health struct {
	checks map[string]Check
}

func NewHealth(checks map[string]Check) *Health {
	return &Health{checks: checks}
}

type healthResponse struct {
	Status string            `json:"status"`
	Build  version.Info      `json:"build"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleHealth handles GET /health requests. Checks run concurrently and
// any failure marks the service degraded.
func (h *Health) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status: "ok",
		Build:  version.Read(),
		Checks: make(map[string]string, len(h.checks)),
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for name, check := range h.checks {
		g.Go(func() error {
			result := "ok"
			if err := check(ctx); err != nil {
				xslog.FromContext(ctx).WarnContext(ctx, "health check failed",
					xslog.Check(name),
					xslog.Error(err))
				result = "unavailable"
			}
			mu.Lock()
			resp.Checks[name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := http.StatusOK
	for _, result := range resp.Checks {
		if result != "ok" {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	xhttp.WriteJSON(w, status, resp)
}
