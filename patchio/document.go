// Package patchio reads and writes patch documents: the JSON files the
// Tactus editor saves and the Baton CLI, server, and store exchange.
package patchio

import (
	"crypto/sha256"
	"encoding/json"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/mr-tron/base58"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/logger"
	"github.com/tactus/baton/patch"
)

const (
	// FormatName tags every patch document.
	FormatName = "tactus-patch"
	// FormatVersion is the document schema version this build understands.
	FormatVersion = 1
)

// Document is the on-disk form of a patch.
type Document struct {
	Format   string        `json:"format"`
	Version  int           `json:"version"`
	Requires string        `json:"requires,omitempty"` // semver constraint on the compiler version
	Name     string        `json:"name,omitempty"`
	Root     string        `json:"root"`
	Nodes    []*patch.Node `json:"nodes"`
}

// Parse decodes and validates a patch document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrInvalidDocument, err.Error()),
			"the file does not contain valid JSON")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a patch document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read patch file %s", path)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "patch file %s", path)
	}
	return doc, nil
}

// Validate checks the document's structure: the format tag, the schema
// version, node id uniqueness, and that every input names exactly one of a
// source node or an inline literal. Reference targets are not resolved here;
// the compiler reports dangling references against the full graph.
func (d *Document) Validate() error {
	if d.Format != FormatName {
		return errors.NewInvalidDocumentError("format %q, want %q", d.Format, FormatName)
	}
	if d.Version != FormatVersion {
		err := errors.NewInvalidDocumentError("document version %d, this build reads version %d", d.Version, FormatVersion)
		return errors.WithHint(err, "the patch may have been saved by a newer editor")
	}
	seen := make(map[string]bool, len(d.Nodes))
	for i, n := range d.Nodes {
		if n == nil {
			return errors.NewInvalidDocumentError("node %d is null", i)
		}
		if n.ID == "" {
			return errors.NewInvalidDocumentError("node %d has no id", i)
		}
		if seen[n.ID] {
			return errors.NewInvalidDocumentError("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		if n.Kind == "" {
			return errors.NewInvalidDocumentError("node %q has no kind", n.ID)
		}
		for slot, in := range n.Inputs {
			hasNode := in.Node != ""
			hasLiteral := in.Literal != nil
			if hasNode == hasLiteral {
				return errors.NewInvalidDocumentError(
					"node %q input %q must name exactly one of a source node or a literal value", n.ID, slot)
			}
		}
	}
	return nil
}

// Graph builds the compiler's graph form of the document.
func (d *Document) Graph() (*patch.Graph, error) {
	g := patch.NewGraph(d.Root)
	for _, n := range d.Nodes {
		if err := g.Add(n); err != nil {
			return nil, errors.Wrap(errors.ErrInvalidDocument, err.Error())
		}
	}
	return g, nil
}

// JSON renders the document in the editor's on-disk form.
func (d *Document) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode patch document")
	}
	return append(data, '\n'), nil
}

// Fingerprint returns a stable content address for the document: sha256 over
// its canonical JSON, base58-encoded. Map keys marshal in sorted order, so
// two documents with the same content always share a fingerprint.
func (d *Document) Fingerprint() (string, error) {
	canonical, err := json.Marshal(d)
	if err != nil {
		return "", errors.Wrap(err, "failed to canonicalize patch document")
	}
	sum := sha256.Sum256(canonical)
	return base58.Encode(sum[:]), nil
}

// CheckRequires enforces the document's requires constraint against the
// given compiler version. Development builds carry an unparseable version
// and skip the check.
func (d *Document) CheckRequires(compilerVersion string) error {
	if d.Requires == "" {
		return nil
	}
	current, err := semver.NewVersion(compilerVersion)
	if err != nil {
		logger.Debugw("skipping requires check on unversioned build",
			logger.FieldPatch, d.Name,
			"compiler_version", compilerVersion)
		return nil
	}
	constraint, err := semver.NewConstraint(d.Requires)
	if err != nil {
		return errors.NewInvalidDocumentError("requires constraint %q: %v", d.Requires, err)
	}
	if !constraint.Check(current) {
		err := errors.Wrapf(errors.ErrVersionMismatch, "patch requires %s, compiler is %s", d.Requires, compilerVersion)
		return errors.WithHint(err, "update baton to compile this patch")
	}
	return nil
}
