package rest

import "net/http"

// Handlers groups everything the router mounts. GenerationLimit, when set,
// wraps the two provider-backed endpoints with a stricter rate limit than
// the rest of the API.
type Handlers struct {
	Dream   *DreamHandler
	Tag     *TagHandler
	Account *AccountHandler
	Health  *HealthHandler

	GenerationLimit func(http.Handler) http.Handler
}

// NewRouter mounts all REST routes on a fresh mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("POST /api/analyze-dream", h.limited(http.HandlerFunc(h.Dream.Analyze)))
	mux.Handle("POST /api/visualize-dream", h.limited(http.HandlerFunc(h.Dream.Visualize)))
	mux.HandleFunc("GET /api/dreams", h.Dream.List)
	mux.HandleFunc("GET /api/popular-tags", h.Tag.Popular)
	mux.HandleFunc("POST /api/merge-accounts", h.Account.Merge)

	mux.HandleFunc("GET /health", h.Health.Health)
	mux.HandleFunc("GET /health/live", h.Health.Live)
	mux.HandleFunc("GET /health/ready", h.Health.Ready)

	return mux
}

func (h Handlers) limited(next http.Handler) http.Handler {
	if h.GenerationLimit == nil {
		return next
	}
	return h.GenerationLimit(next)
}
