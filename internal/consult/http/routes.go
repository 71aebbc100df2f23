// Package consulthttp exposes consultations, filtering and statistics over a
// JSON API.
package consulthttp

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/odyssey-erp/odyssey-advisor/internal/platform/httpx"
)

// ClientIDHeader lets trusted frontends rate limit per end user.
const ClientIDHeader = "X-Client-ID"

// MountRoutes registers the advisor API under /api.
func (h *Handler) MountRoutes(r chi.Router) {
	if h == nil {
		return
	}
	r.Route("/api", func(r chi.Router) {
		r.Group(func(gr chi.Router) {
			gr.Use(h.rateLimit)
			gr.Post("/consult", h.handleConsult)
		})
		r.Get("/intent", h.handleIntent)
		r.Post("/products/filter", h.handleFilter)
		r.Get("/stats/report", h.handleReport)
		r.Post("/stats/invalidate", h.handleInvalidate)
		r.Get("/stats/{view}", h.handleRank)
	})
}

func newRateLimiter(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(rateLimitKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.Problem(w, http.StatusTooManyRequests, "Too Many Requests", "consultation rate limit exceeded")
		}),
	)
}

func rateLimitKey(r *http.Request) (string, error) {
	if client := strings.TrimSpace(r.Header.Get(ClientIDHeader)); client != "" {
		return "client:" + client, nil
	}
	key, err := httprate.KeyByIP(r)
	if err != nil {
		return "", err
	}
	return "ip:" + key, nil
}
