package ensemble

import (
	"fmt"
	"strings"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/patch"
)

// arg resolves an input slot for a position where any expression may appear
// bare, such as a call argument or the right-hand side of an assignment.
func (ctx *genContext) arg(n *patch.Node, spec patch.Spec, slot string) (string, error) {
	return ctx.resolveSlot(n, spec, slot, patch.TierOr)
}

// resolveSlot renders the expression arriving at the named input slot,
// parenthesized as needed for the consuming position.
func (ctx *genContext) resolveSlot(n *patch.Node, spec patch.Spec, slot string, consumer patch.Tier) (string, error) {
	slotSpec, ok := spec.InputSpec(slot)
	if !ok {
		return "", errors.AssertionFailedf("kind %q has no input slot %q", spec.Kind, slot)
	}
	return ctx.resolveInput(n, slotSpec, consumer)
}

// resolveInput renders whatever arrives at one input slot of n: a wired
// node, an inline literal, or the slot's declared default. A slot with
// neither a connection nor a default renders as empty text and records a
// diagnostic, so a half-built patch still compiles.
func (ctx *genContext) resolveInput(n *patch.Node, slotSpec patch.InputSpec, consumer patch.Tier) (string, error) {
	in, bound := n.Input(slotSpec.Name)
	if !bound {
		if slotSpec.Default == nil {
			ctx.diagnose(n, slotSpec.Name, "input not connected")
			return "", nil
		}
		text, err := renderTyped(slotSpec.Type, *slotSpec.Default)
		if err != nil {
			return "", errors.AssertionFailedf("default for %s.%s: %v", n.Kind, slotSpec.Name, err)
		}
		return text, nil
	}
	if !in.IsNode() {
		var raw string
		if in.Literal != nil {
			raw = *in.Literal
		}
		text, err := renderTyped(slotSpec.Type, raw)
		if err != nil {
			ctx.diagnose(n, slotSpec.Name, err.Error())
			return "", nil
		}
		return text, nil
	}
	text, tier, err := ctx.resolveValueNode(n, slotSpec.Name, in.Node)
	if err != nil {
		return "", err
	}
	if text != "" && tier > consumer {
		text = "(" + text + ")"
	}
	return text, nil
}

// resolveValueNode renders the expression produced by the node wired into a
// slot, returning its text and precedence tier. Dangling references, unknown
// kinds, and cycles along the input edges are fatal here.
func (ctx *genContext) resolveValueNode(consumer *patch.Node, slot, id string) (string, patch.Tier, error) {
	child, ok := ctx.graph.Node(id)
	if !ok {
		err := newCompileError(errors.ErrDanglingReference, consumer.ID, consumer.Kind).
			WithSlot(slot).
			WithRef(id)
		return "", 0, err
	}
	spec, err := ctx.registry.Lookup(child.Kind)
	if err != nil {
		return "", 0, newCompileError(errors.ErrUnknownKind, child.ID, child.Kind)
	}
	if !spec.Value {
		ctx.diagnose(consumer, slot, fmt.Sprintf("kind %s does not produce a value", child.Kind))
		return "", 0, nil
	}
	if !ctx.enterValue(child.ID) {
		err := newCompileError(errors.ErrCyclicValueInput, child.ID, child.Kind).
			WithDetail("resolution path " + ctx.cyclePath(child.ID))
		return "", 0, err
	}
	defer ctx.leaveValue()

	gen, ok := valueGenerators[spec.Kind]
	if !ok {
		return "", 0, errors.AssertionFailedf("no value generator for kind %q", spec.Kind)
	}
	ctx.stats.Nodes++
	text, err := gen(ctx, child, spec)
	if err != nil {
		return "", 0, err
	}
	return text, spec.Tier, nil
}

// cyclePath renders the currently resolving nodes up to and including the
// repeated id, for the error message.
func (ctx *genContext) cyclePath(repeat string) string {
	start := 0
	for i, id := range ctx.valueStack {
		if id == repeat {
			start = i
			break
		}
	}
	path := append(append([]string{}, ctx.valueStack[start:]...), repeat)
	return strings.Join(path, " -> ")
}

// fieldText renders a field's editor text by its declared type. Selector
// fields emit the catalog token for the chosen option; an option the catalog
// does not declare falls back to the default option's token.
func (ctx *genContext) fieldText(n *patch.Node, spec patch.Spec, name string) (string, error) {
	fs, ok := spec.FieldSpec(name)
	if !ok {
		return "", errors.AssertionFailedf("kind %q has no field %q", spec.Kind, name)
	}
	raw, set := n.FieldOK(name)
	if !set {
		raw = fs.Default
	}
	if fs.Type == patch.TypeSelect {
		if opt, ok := fs.Option(raw); ok {
			return opt.Token, nil
		}
		ctx.diagnose(n, name, fmt.Sprintf("unknown option %q", raw))
		if opt, ok := fs.Option(fs.Default); ok {
			return opt.Token, nil
		}
		return "", nil
	}
	text, err := renderTyped(fs.Type, raw)
	if err != nil {
		ctx.diagnose(n, name, err.Error())
		return "", nil
	}
	return text, nil
}
