package server

import (
	"encoding/json"
	"time"

	"github.com/tactus/baton/ensemble"
)

const (
	// MaxClients is the maximum number of concurrent WebSocket clients
	MaxClients = 100
	// MaxClientMessageQueueSize is the size of per-client message queues
	MaxClientMessageQueueSize = 256
	// ShutdownTimeout is how long to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second
)

// ServerState represents the server lifecycle state
type ServerState int

const (
	ServerStateRunning  ServerState = iota // Normal operation
	ServerStateDraining                    // Graceful shutdown in progress
	ServerStateStopped                     // Shutdown complete
)

// ClientMessage represents a message from the editor over the WebSocket
type ClientMessage struct {
	Type      string          `json:"type"`       // "compile", "ping"
	RequestID string          `json:"request_id"` // Echoed back in the reply so the editor can correlate
	Document  json.RawMessage `json:"document"`   // Patch document to compile
	Save      bool            `json:"save"`       // Persist the program to the library on success
}

// ResultMessage represents a compile reply sent to the editor
type ResultMessage struct {
	Type      string         `json:"type"` // "result"
	RequestID string         `json:"request_id,omitempty"`
	Result    *CompileResult `json:"result,omitempty"`
	Error     *ErrorBody     `json:"error,omitempty"`
	Timestamp int64          `json:"timestamp"` // Unix timestamp
}

// CompileResult is the JSON body returned for a successful compile,
// shared by the HTTP endpoint and the WebSocket session.
type CompileResult struct {
	ID          string                `json:"id"` // Document fingerprint
	Name        string                `json:"name,omitempty"`
	Source      string                `json:"source"`
	Macros      []ensemble.Macro      `json:"macros,omitempty"`
	Diagnostics []ensemble.Diagnostic `json:"diagnostics,omitempty"`
	Stats       ensemble.Stats        `json:"stats"`
	Saved       bool                  `json:"saved,omitempty"`
}

// ErrorBody is the structured error JSON returned when a compile fails
type ErrorBody struct {
	Code     string   `json:"code"` // "invalid_document", "version_mismatch", "unknown_kind", ...
	Message  string   `json:"message"`
	NodeID   string   `json:"node_id,omitempty"`
	NodeKind string   `json:"node_kind,omitempty"`
	Slot     string   `json:"slot,omitempty"`
	Ref      string   `json:"ref,omitempty"`
	Hints    []string `json:"hints,omitempty"`
}
