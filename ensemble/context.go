package ensemble

import (
	"github.com/tactus/baton/patch"
)

// genContext carries all per-compilation state. Every Compile call builds a
// fresh one, so a compiler can be shared across goroutines and repeated runs
// never see stale scopes, macros, or diagnostics.
type genContext struct {
	graph    *patch.Graph
	registry *patch.Registry
	opts     Options

	// scopes is the stack of active scope tags, innermost last.
	scopes []string

	// macros collects hoisted definitions in the order their defining
	// nodes were first visited. Slots are reserved on entry so a motif
	// nested inside another still lands after its parent.
	macros     []Macro
	motifNames map[string]bool

	// valueStack tracks value nodes currently being resolved, for cycle
	// detection along input edges.
	valueStack []string
	onStack    map[string]bool

	diagnostics []Diagnostic
	stats       Stats
}

func newGenContext(g *patch.Graph, reg *patch.Registry, opts Options) *genContext {
	return &genContext{
		graph:      g,
		registry:   reg,
		opts:       opts,
		motifNames: map[string]bool{},
		onStack:    map[string]bool{},
	}
}

func (ctx *genContext) pushScope(tag string) {
	ctx.scopes = append(ctx.scopes, tag)
}

func (ctx *genContext) popScope() {
	ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
}

// currentScope returns the innermost scope tag, or "" outside any scope.
func (ctx *genContext) currentScope() string {
	if len(ctx.scopes) == 0 {
		return ""
	}
	return ctx.scopes[len(ctx.scopes)-1]
}

// inAnyScope reports whether compilation is inside at least one scoped block.
func (ctx *genContext) inAnyScope() bool {
	return len(ctx.scopes) > 0
}

// inScope reports whether the given tag appears anywhere on the scope stack.
func (ctx *genContext) inScope(tag string) bool {
	for _, s := range ctx.scopes {
		if s == tag {
			return true
		}
	}
	return false
}

// reserveMacro claims the next macro slot and returns its index. The source
// is filled in by finishMacro once the body has been generated.
func (ctx *genContext) reserveMacro(name string) int {
	ctx.macros = append(ctx.macros, Macro{Name: name})
	return len(ctx.macros) - 1
}

func (ctx *genContext) finishMacro(idx int, source string) {
	ctx.macros[idx].Source = source
}

// enterValue pushes a value node onto the resolution stack, reporting false
// when the node is already on it (a cycle through input edges).
func (ctx *genContext) enterValue(id string) bool {
	if ctx.onStack[id] {
		return false
	}
	ctx.onStack[id] = true
	ctx.valueStack = append(ctx.valueStack, id)
	return true
}

func (ctx *genContext) leaveValue() {
	id := ctx.valueStack[len(ctx.valueStack)-1]
	ctx.valueStack = ctx.valueStack[:len(ctx.valueStack)-1]
	delete(ctx.onStack, id)
}

// diagnose records a non-fatal problem against a node slot.
func (ctx *genContext) diagnose(n *patch.Node, slot, message string) {
	ctx.diagnostics = append(ctx.diagnostics, Diagnostic{
		NodeID:   n.ID,
		NodeKind: n.Kind,
		Slot:     slot,
		Message:  message,
	})
}
