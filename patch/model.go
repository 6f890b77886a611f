// Package patch holds the in-memory model of a block patch: the nodes the
// editor placed on the canvas, the connections between them, and the registry
// of node kinds the compiler understands.
package patch

import (
	"github.com/tactus/baton/errors"
)

// Input is one value connection arriving at a named input slot.
// Exactly one of Node and Literal is set: either the slot is wired to the
// output of another node, or the editor dropped a literal straight into it.
type Input struct {
	Node    string  `json:"node,omitempty"`
	Literal *string `json:"value,omitempty"`
}

// IsNode reports whether the input is wired to another node.
func (in Input) IsNode() bool {
	return in.Node != ""
}

// Node is one block instance in a patch.
type Node struct {
	ID     string            `json:"id"`
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"` // raw editor-side field text, keyed by field name
	Inputs map[string]Input  `json:"inputs,omitempty"` // value connections, keyed by slot name
	Blocks map[string]string `json:"blocks,omitempty"` // nested chains: slot name -> first node id
	Next   string            `json:"next,omitempty"`   // following statement in the chain, "" = end
}

// Field returns the raw text of a field, or "" when the editor left it unset.
func (n *Node) Field(name string) string {
	if n.Fields == nil {
		return ""
	}
	return n.Fields[name]
}

// FieldOK returns the raw text of a field and whether the editor set it at
// all, so an explicitly empty field can be told apart from a missing one.
func (n *Node) FieldOK(name string) (string, bool) {
	if n.Fields == nil {
		return "", false
	}
	v, ok := n.Fields[name]
	return v, ok
}

// Input returns the connection at a value slot and whether one exists.
func (n *Node) Input(name string) (Input, bool) {
	if n.Inputs == nil {
		return Input{}, false
	}
	in, ok := n.Inputs[name]
	return in, ok
}

// Block returns the first node id of a nested chain, "" when the slot is empty.
func (n *Node) Block(name string) string {
	if n.Blocks == nil {
		return ""
	}
	return n.Blocks[name]
}

// Graph is a complete patch: a root chain entry point plus every node by id.
// Graphs are immutable once handed to the compiler.
type Graph struct {
	Root  string
	nodes map[string]*Node
}

// NewGraph creates an empty graph rooted at the given node id.
// An empty root means the patch has no top-level chain.
func NewGraph(root string) *Graph {
	return &Graph{
		Root:  root,
		nodes: make(map[string]*Node),
	}
}

// Add inserts a node, rejecting duplicate ids.
func (g *Graph) Add(n *Node) error {
	if n.ID == "" {
		return errors.New("node has empty id")
	}
	if _, exists := g.nodes[n.ID]; exists {
		return errors.Newf("duplicate node id %q", n.ID)
	}
	g.nodes[n.ID] = n
	return nil
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NodeIDs returns all node ids in no particular order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	return ids
}
