package server

import (
	"context"
	"net/http"
	"time"

	"github.com/tactus/baton/ensemble"
	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/internal/version"
	"github.com/tactus/baton/patchio"
	"github.com/tactus/baton/store"
)

// saveTimeout bounds the library write so a stuck database cannot hang a
// compile reply.
const saveTimeout = 5 * time.Second

// runCompile runs the full pipeline for one request: parse the document,
// check its compiler requirement, compile the graph, and optionally save
// the program. Every request gets a fresh generation context.
func (s *BatonServer) runCompile(data []byte, save bool) (*CompileResult, error) {
	doc, err := patchio.Parse(data)
	if err != nil {
		s.compileFail.Add(1)
		return nil, err
	}

	if err := doc.CheckRequires(version.Get().Version); err != nil {
		s.compileFail.Add(1)
		return nil, err
	}

	graph, err := doc.Graph()
	if err != nil {
		s.compileFail.Add(1)
		return nil, err
	}

	program, err := s.compiler.Compile(graph)
	if err != nil {
		s.compileFail.Add(1)
		return nil, err
	}

	fingerprint, err := doc.Fingerprint()
	if err != nil {
		s.compileFail.Add(1)
		return nil, err
	}

	result := &CompileResult{
		ID:          fingerprint,
		Name:        doc.Name,
		Source:      program.Source,
		Macros:      program.Macros,
		Diagnostics: program.Diagnostics,
		Stats:       program.Stats,
	}

	if save {
		if err := s.saveProgram(doc, fingerprint, program.Source); err != nil {
			s.compileFail.Add(1)
			return nil, err
		}
		result.Saved = true
	}

	s.compileOK.Add(1)
	return result, nil
}

// saveProgram persists a compiled program to the library
func (s *BatonServer) saveProgram(doc *patchio.Document, fingerprint, source string) error {
	if s.store == nil {
		return errors.New("program library is not available on this server")
	}

	document, err := doc.JSON()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(s.ctx, saveTimeout)
	defer cancel()

	if err := s.store.Save(ctx, &store.Program{
		ID:       fingerprint,
		Name:     doc.Name,
		Document: document,
		Source:   source,
	}); err != nil {
		return err
	}

	s.logger.Infow("program saved",
		"program_id", fingerprint,
		"patch", doc.Name,
	)
	return nil
}

// compileDocument is the WebSocket-facing wrapper around runCompile
func (s *BatonServer) compileDocument(data []byte, save bool) (*CompileResult, *ErrorBody) {
	result, err := s.runCompile(data, save)
	if err != nil {
		body, _ := errorBody(err)
		return nil, body
	}
	return result, nil
}

// errorBody maps a pipeline error onto the structured error JSON and the
// HTTP status code it should be served with.
func errorBody(err error) (*ErrorBody, int) {
	body := &ErrorBody{
		Code:    "internal",
		Message: err.Error(),
		Hints:   errors.GetAllHints(err),
	}

	switch {
	case errors.IsInvalidDocumentError(err):
		body.Code = "invalid_document"
		return body, http.StatusBadRequest
	case errors.IsVersionMismatchError(err):
		body.Code = "version_mismatch"
		return body, http.StatusConflict
	case errors.IsCompileError(err):
		switch {
		case errors.Is(err, errors.ErrUnknownKind):
			body.Code = "unknown_kind"
		case errors.Is(err, errors.ErrDanglingReference):
			body.Code = "dangling_reference"
		case errors.Is(err, errors.ErrCyclicValueInput):
			body.Code = "cyclic_value_input"
		}

		var compileErr *ensemble.CompileError
		if errors.As(err, &compileErr) {
			body.NodeID = compileErr.NodeID
			body.NodeKind = compileErr.NodeKind
			body.Slot = compileErr.Slot
			body.Ref = compileErr.Ref
		}
		return body, http.StatusUnprocessableEntity
	}

	return body, http.StatusInternalServerError
}
