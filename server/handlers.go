package server

// This file contains HTTP handler methods for BatonServer.
// It provides HTTP endpoints for:
// - Health checks (HandleHealth)
// - Kind catalog for the editor palette (HandleKinds)
// - One-shot patch compilation (HandleCompile)
// - Server status and resource usage (HandleStatus)
// - Editor WebSocket sessions (HandleWebSocket)

import (
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/tactus/baton/internal/version"
)

// HandleHealth serves the health check endpoint with version info
func (s *BatonServer) HandleHealth(w http.ResponseWriter, r *http.Request) {
	versionInfo := version.Get()

	health := map[string]interface{}{
		"status":     "ok",
		"version":    versionInfo.Version,
		"commit":     versionInfo.CommitHash,
		"build_time": versionInfo.BuildTime,
		"clients":    s.ClientCount(),
	}

	writeJSON(w, http.StatusOK, health)
}

// HandleKinds serves the kind catalog the editor builds its palette from
func (s *BatonServer) HandleKinds(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	registry := s.compiler.Registry()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"kinds": registry.Specs(),
		"count": registry.Len(),
	})
}

// HandleCompile compiles a patch document posted as the request body.
// With ?save=true the compiled program is also stored in the library.
func (s *BatonServer) HandleCompile(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxMessageSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	save := r.URL.Query().Get("save") == "true"

	start := time.Now()
	result, err := s.runCompile(data, save)
	if err != nil {
		body, status := errorBody(err)
		s.logger.Warnw("compile request failed",
			"code", body.Code,
			"error", err.Error(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		writeErrorBody(w, status, body)
		return
	}

	s.logger.Debugw("compile request served",
		"program_id", result.ID,
		"statements", result.Stats.Statements,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, result)
}

// HandleStatus serves uptime, compile counters, and process resource usage
func (s *BatonServer) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, http.StatusOK, s.statusSnapshot(version.Get().Version))
}

// HandleWebSocket upgrades an editor connection and starts its session
func (s *BatonServer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorw("WebSocket upgrade failed",
			"error", err.Error(),
			"remote", r.RemoteAddr,
		)
		return
	}

	client := &Client{
		server:  s,
		conn:    conn,
		send:    make(chan *ResultMessage, MaxClientMessageQueueSize),
		id:      uuid.New().String(),
		limiter: s.newClientLimiter(),
	}

	// Send version info BEFORE starting writePump (avoid concurrent writes)
	versionInfo := version.Get()
	helloMsg := map[string]interface{}{
		"type":    "hello",
		"version": versionInfo.Version,
		"commit":  versionInfo.Short(),
	}
	if err := conn.WriteJSON(helloMsg); err != nil {
		s.logger.Debugw("failed to send hello",
			"client_id", client.id,
			"error", err,
		)
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// newClientLimiter builds the per-client compile limiter from config.
// A zero compile rate disables limiting.
func (s *BatonServer) newClientLimiter() *rate.Limiter {
	if s.cfg == nil || s.cfg.Server.CompilesPerSecond <= 0 {
		return nil
	}

	burst := s.cfg.Server.CompileBurst
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(s.cfg.Server.CompilesPerSecond), burst)
}
