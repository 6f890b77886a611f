package server

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// upgrader creates a WebSocket upgrader with origin checking from config
func (s *BatonServer) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     s.checkOrigin,
	}
}

// checkOrigin validates request origin against configured allowed origins
func (s *BatonServer) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Allow requests with no origin header (e.g., direct WebSocket clients, testing)
	if origin == "" {
		return true
	}

	if s.cfg == nil {
		// No config, use secure defaults (localhost only)
		return strings.HasPrefix(origin, "http://localhost") ||
			strings.HasPrefix(origin, "https://localhost")
	}

	// Check if origin matches any of the configured allowed origins.
	// We use prefix matching to allow any port number.
	for _, allowedOrigin := range s.cfg.GetServerAllowedOrigins() {
		if strings.HasPrefix(origin, allowedOrigin) {
			return true
		}
	}

	return false
}

// isPortAvailable checks if a port is available for binding
func isPortAvailable(port int) bool {
	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	_ = listener.Close() // Error ignored: best-effort port check, caller will retry on actual bind
	return true
}

// findAvailablePort tries to find an available port starting from the requested port
func findAvailablePort(requestedPort int) (int, error) {
	// Try the requested port first
	if isPortAvailable(requestedPort) {
		return requestedPort, nil
	}

	// Try the next few ports after the requested one
	for i := 1; i <= 10; i++ {
		port := requestedPort + i
		if isPortAvailable(port) {
			return port, nil
		}
	}

	return 0, fmt.Errorf("no available ports found (tried %d through %d)", requestedPort, requestedPort+10)
}
