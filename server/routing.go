package server

import "net/http"

// setupRoutes configures all HTTP handlers
func (s *BatonServer) setupRoutes() {
	s.mux.HandleFunc("/healthz", s.corsMiddleware(s.HandleHealth))
	s.mux.HandleFunc("/api/kinds", s.corsMiddleware(s.HandleKinds))     // Kind catalog for the editor palette
	s.mux.HandleFunc("/api/compile", s.corsMiddleware(s.HandleCompile)) // One-shot compile (POST)
	s.mux.HandleFunc("/api/status", s.corsMiddleware(s.HandleStatus))   // Uptime, counters, process usage
	s.mux.HandleFunc("/ws", s.corsMiddleware(s.HandleWebSocket))        // Editor session (compile per message)
}

// corsMiddleware adds CORS headers to HTTP responses using configured allowed origins.
// Uses the same origin validation as WebSocket connections (server.allowed_origins config).
func (s *BatonServer) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// If origin is present and allowed by config, set CORS headers
		if origin != "" && s.checkOrigin(r) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}
