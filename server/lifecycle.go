package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tactus/baton/errors"
)

// getState returns the current server state
func (s *BatonServer) getState() ServerState {
	return ServerState(s.state.Load())
}

// setState atomically updates the server state
func (s *BatonServer) setState(newState ServerState) {
	s.state.Store(int32(newState))
	s.logger.Infow("server state changed", "new_state", stateString(newState))
}

// stateString returns human-readable state name
func stateString(state ServerState) string {
	switch state {
	case ServerStateRunning:
		return "running"
	case ServerStateDraining:
		return "draining"
	case ServerStateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Start starts the server on the specified port and blocks until it stops
func (s *BatonServer) Start(port int) error {
	// Start the hub in a goroutine
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run()
	}()

	// Find an available port
	actualPort, err := findAvailablePort(port)
	if err != nil {
		return errors.Wrap(err, "failed to find available port")
	}

	if actualPort != port {
		s.logger.Infow("port in use, using alternative",
			"requested_port", port,
			"actual_port", actualPort,
		)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", actualPort),
		Handler:      s.mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // WebSocket sessions are long-lived
		IdleTimeout:  120 * time.Second,
	}

	s.logger.Infow("server ready",
		"url", fmt.Sprintf("http://localhost:%d", actualPort),
		"port", actualPort,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "server failed")
	}
	return nil
}

// Stop gracefully shuts down the server and cleans up resources
func (s *BatonServer) Stop() error {
	s.logger.Infow("initiating server shutdown")

	s.setState(ServerStateDraining)

	// Close all client connections BEFORE cancelling context.
	// This ensures readPump/writePump exit cleanly before context cancellation.
	s.mu.Lock()
	clientsToClose := make([]*Client, 0, len(s.clients))
	for client := range s.clients {
		clientsToClose = append(clientsToClose, client)
		delete(s.clients, client)
	}
	s.mu.Unlock()

	if len(clientsToClose) > 0 {
		s.logger.Infow("closing client connections", "count", len(clientsToClose))
		for _, client := range clientsToClose {
			client.conn.Close() // Close connection to unblock readPump
		}
	}

	// Stop accepting HTTP requests
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warnw("HTTP server shutdown error", "error", err)
		}
	}

	// Cancel context to signal all server goroutines to stop
	if s.cancel != nil {
		s.cancel()
	}

	// Wait for goroutines with timeout
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Infow("all goroutines stopped cleanly")
	case <-time.After(ShutdownTimeout):
		s.logger.Warnw("goroutine shutdown timed out, forcing exit",
			"timeout", ShutdownTimeout,
		)
	}

	s.setState(ServerStateStopped)

	s.logger.Infow("server shutdown complete",
		"compiles", s.compileOK.Load(),
		"failures", s.compileFail.Load(),
	)

	return nil
}
