package ensemble

import (
	"fmt"
	"strings"
)

// CompileError is a fatal compilation failure tied to a specific node.
// It wraps one of the compile sentinels in the errors package, so callers
// can branch with errors.Is while still reaching the node metadata here.
type CompileError struct {
	Err      error  // sentinel: ErrUnknownKind, ErrDanglingReference, ErrCyclicValueInput
	NodeID   string // node the failure was detected at
	NodeKind string // kind of that node, when it could be determined
	Slot     string // input or block slot involved (optional)
	Ref      string // referenced id that failed to resolve (optional)
	Detail   string // extra human-readable context (optional)
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Err.Error())
	sb.WriteString(" at node ")
	sb.WriteString(fmt.Sprintf("%q", e.NodeID))
	if e.NodeKind != "" {
		sb.WriteString(fmt.Sprintf(" (kind %s)", e.NodeKind))
	}
	if e.Slot != "" {
		sb.WriteString(fmt.Sprintf(", slot %q", e.Slot))
	}
	if e.Ref != "" {
		sb.WriteString(fmt.Sprintf(", reference %q", e.Ref))
	}
	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}
	return sb.String()
}

// Unwrap exposes the sentinel for errors.Is / errors.As chains.
func (e *CompileError) Unwrap() error {
	return e.Err
}

// newCompileError creates an error for the given sentinel and node.
func newCompileError(sentinel error, nodeID, nodeKind string) *CompileError {
	return &CompileError{Err: sentinel, NodeID: nodeID, NodeKind: nodeKind}
}

// WithSlot records the slot the failure occurred in.
func (e *CompileError) WithSlot(slot string) *CompileError {
	e.Slot = slot
	return e
}

// WithRef records the id of the reference that failed to resolve.
func (e *CompileError) WithRef(ref string) *CompileError {
	e.Ref = ref
	return e
}

// WithDetail attaches additional context to the message.
func (e *CompileError) WithDetail(detail string) *CompileError {
	e.Detail = detail
	return e
}

// Diagnostic is a non-fatal problem found during compilation. The compiler
// substitutes empty text for the broken slot and keeps going, so one loose
// wire never takes down the rest of the program.
type Diagnostic struct {
	NodeID   string `json:"node_id"`
	NodeKind string `json:"node_kind"`
	Slot     string `json:"slot,omitempty"`
	Message  string `json:"message"`
}

func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("node %q (kind %s)", d.NodeID, d.NodeKind))
	if d.Slot != "" {
		sb.WriteString(fmt.Sprintf(" slot %q", d.Slot))
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	return sb.String()
}
