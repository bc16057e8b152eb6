package server

import "net/http"

// NewMux wires the API routes. Rate limiting sits inside CORS so preflight
// requests are never throttled.
func NewMux(h *Handler, rps float64, burst int) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.HandleHealth)

	// Stateless API
	mux.HandleFunc("POST /api/analyze", h.HandleAnalyze)
	mux.HandleFunc("POST /api/recommendations", h.HandleRecommendations)

	// Dashboard sessions
	mux.HandleFunc("POST /api/sessions", h.HandleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", h.HandleGetSession)
	mux.HandleFunc("POST /api/sessions/{id}/analyze", h.HandleSubmit)
	mux.HandleFunc("POST /api/sessions/{id}/reset", h.HandleReset)
	mux.HandleFunc("POST /api/sessions/{id}/upgrade", h.HandleUpgrade)
	mux.HandleFunc("GET /api/sessions/{id}/dashboard", h.HandleDashboard)
	mux.HandleFunc("GET /api/sessions/{id}/watch", h.HandleWatch)

	return CORS(RateLimit(rps, burst, mux))
}
