package ensemble

import (
	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/patch"
)

// compileChain walks the linked statement chain starting at first, emitting
// one statement per node at the emitter's current depth. owner and ownerSlot
// attribute a dangling first id; they are nil/"" for the root chain.
func (ctx *genContext) compileChain(first string, owner *patch.Node, ownerSlot string, e *emitter) error {
	seen := map[string]bool{}
	prev, prevSlot := owner, ownerSlot
	for id := first; id != ""; {
		n, ok := ctx.graph.Node(id)
		if !ok {
			if prev == nil {
				return &CompileError{
					Err:    errors.ErrDanglingReference,
					NodeID: id,
					Detail: "root node not found",
				}
			}
			return newCompileError(errors.ErrDanglingReference, prev.ID, prev.Kind).
				WithSlot(prevSlot).
				WithRef(id)
		}
		if seen[id] {
			return newCompileError(errors.ErrCyclicValueInput, n.ID, n.Kind).
				WithDetail("statement chain loops back to this node")
		}
		seen[id] = true

		spec, err := ctx.registry.Lookup(n.Kind)
		if err != nil {
			return newCompileError(errors.ErrUnknownKind, n.ID, n.Kind)
		}
		if !spec.Stackable {
			ctx.diagnose(n, "", "kind cannot appear in a statement chain")
			prev, prevSlot = n, "next"
			id = n.Next
			continue
		}
		gen, ok := statementGenerators[spec.Kind]
		if !ok {
			return errors.AssertionFailedf("no statement generator for kind %q", spec.Kind)
		}
		ctx.stats.Nodes++
		ctx.stats.Statements++
		if err := gen(ctx, n, spec, e); err != nil {
			return err
		}
		prev, prevSlot = n, "next"
		id = n.Next
	}
	return nil
}

// block compiles the nested chain in the named block slot one indent level
// deeper. An empty slot is an empty block.
func (ctx *genContext) block(e *emitter, n *patch.Node, slot string) error {
	var err error
	e.withIndent(func() {
		err = ctx.compileChain(n.Block(slot), n, slot, e)
	})
	return err
}
