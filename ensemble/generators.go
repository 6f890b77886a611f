package ensemble

import (
	"fmt"
	"strings"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/patch"
)

// statementGen emits the Ensemble statement(s) for one stackable node.
type statementGen func(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error

// valueGen renders the expression text for one value node. Parenthesization
// is the caller's job; generators return bare text.
type valueGen func(ctx *genContext, n *patch.Node, spec patch.Spec) (string, error)

// statementGenerators maps every stackable kind in the catalog to its
// generator. generators_test.go holds this table and the catalog to the
// same set of kinds.
var statementGenerators = map[string]statementGen{
	"set_tempo":     genSetTempo,
	"set_volume":    stmtCall("set_volume", "percent"),
	"play_note":     stmtCall("play_note", "pitch", "beats"),
	"play_synth":    stmtCall("play_synth", "notes", "beats"),
	"stop_sound":    stmtCall("stop_sound"),
	"with_effect":   genWithEffect,
	"play_drum":     fieldCall("play_drum", "drum"),
	"rest":          stmtCall("rest", "beats"),
	"motor_run":     genMotorRun,
	"motor_stop":    fieldCall("motor_stop", "port"),
	"set_light":     stmtCall("set_light", "color"),
	"broadcast_cue": fieldCall("broadcast_cue", "name"),
	"wait_cue":      fieldCall("wait_cue", "name"),
	"loop_count":    genLoopCount,
	"loop_forever":  genLoopForever,
	"if_then":       genIfThen,
	"if_else":       genIfElse,
	"set_var":       genSetVar,
	"score":         genScore,
	"define_motif":  genDefineMotif,
	"play_motif":    fieldCall("play_motif", "name"),
}

// valueGenerators maps every value kind in the catalog to its generator.
var valueGenerators = map[string]valueGen{
	"variable_get": fieldValue("name"),
	"number":       fieldValue("value"),
	"text":         fieldValue("value"),
	"boolean":      fieldValue("value"),
	"note_list":    fieldValue("notes"),
	"num_plus":     binaryOp("+"),
	"num_minus":    binaryOp("-"),
	"num_times":    binaryOp("*"),
	"num_divide":   binaryOp("/"),
	"num_mod":      binaryOp("%"),
	"num_neg":      unaryOp("-"),
	"compare_eq":   binaryOp("=="),
	"compare_neq":  binaryOp("!="),
	"compare_lt":   binaryOp("<"),
	"compare_gt":   binaryOp(">"),
	"compare_lte":  binaryOp("<="),
	"compare_gte":  binaryOp(">="),
	"logic_and":    binaryOp("and"),
	"logic_or":     binaryOp("or"),
	"logic_not":    unaryOp("not "),
	"random_range": genRandomRange,
	"sensor_read":  genSensorRead,
	"tempo_get":    genTempoGet,
}

// callArgs resolves the named input slots and joins them as call arguments.
func callArgs(ctx *genContext, n *patch.Node, spec patch.Spec, slots ...string) (string, error) {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		text, err := ctx.arg(n, spec, s)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", "), nil
}

// stmtCall builds a generator for a plain call statement whose arguments all
// come from input slots, in the given order.
func stmtCall(name string, slots ...string) statementGen {
	return func(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
		args, err := callArgs(ctx, n, spec, slots...)
		if err != nil {
			return err
		}
		e.linef("%s(%s)", name, args)
		return nil
	}
}

// fieldCall builds a generator for a call statement whose single argument is
// a field, typically a selector token or quoted name.
func fieldCall(name, field string) statementGen {
	return func(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
		v, err := ctx.fieldText(n, spec, field)
		if err != nil {
			return err
		}
		e.linef("%s(%s)", name, v)
		return nil
	}
}

// genSetTempo emits set_tempo at the top level but the scoped tempo form
// inside any scope, where the interpreter applies it locally.
func genSetTempo(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	bpm, err := ctx.arg(n, spec, "bpm")
	if err != nil {
		return err
	}
	if ctx.inAnyScope() {
		e.linef("tempo(%s)", bpm)
	} else {
		e.linef("set_tempo(%s)", bpm)
	}
	return nil
}

func genWithEffect(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	effect, err := ctx.fieldText(n, spec, "effect")
	if err != nil {
		return err
	}
	level, err := ctx.arg(n, spec, "level")
	if err != nil {
		return err
	}
	e.linef("with_effect(%s, %s) do", effect, level)
	ctx.pushScope(spec.Scope)
	err = ctx.block(e, n, "body")
	ctx.popScope()
	if err != nil {
		return err
	}
	e.line("end")
	return nil
}

func genMotorRun(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	port, err := ctx.fieldText(n, spec, "port")
	if err != nil {
		return err
	}
	args, err := callArgs(ctx, n, spec, "speed", "beats")
	if err != nil {
		return err
	}
	e.linef("motor_run(%s, %s)", port, args)
	return nil
}

func genLoopCount(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	times, err := ctx.arg(n, spec, "times")
	if err != nil {
		return err
	}
	e.linef("repeat %s do", times)
	if err := ctx.block(e, n, "body"); err != nil {
		return err
	}
	e.line("end")
	return nil
}

func genLoopForever(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	e.line("loop do")
	if err := ctx.block(e, n, "body"); err != nil {
		return err
	}
	e.line("end")
	return nil
}

func genIfThen(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	cond, err := ctx.arg(n, spec, "condition")
	if err != nil {
		return err
	}
	e.linef("if %s do", cond)
	if err := ctx.block(e, n, "then"); err != nil {
		return err
	}
	e.line("end")
	return nil
}

func genIfElse(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	cond, err := ctx.arg(n, spec, "condition")
	if err != nil {
		return err
	}
	e.linef("if %s do", cond)
	if err := ctx.block(e, n, "then"); err != nil {
		return err
	}
	e.line("else")
	if err := ctx.block(e, n, "else"); err != nil {
		return err
	}
	e.line("end")
	return nil
}

func genSetVar(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	name, err := ctx.fieldText(n, spec, "name")
	if err != nil {
		return err
	}
	value, err := ctx.arg(n, spec, "value")
	if err != nil {
		return err
	}
	e.linef("%s = %s", name, value)
	return nil
}

func genScore(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	name, err := ctx.fieldText(n, spec, "name")
	if err != nil {
		return err
	}
	e.linef("score %s do", name)
	ctx.pushScope(spec.Scope)
	err = ctx.block(e, n, "body")
	ctx.popScope()
	if err != nil {
		return err
	}
	e.line("end")
	return nil
}

// genDefineMotif compiles the definition into its own zero-depth emitter and
// hoists it to the macro section. The surrounding chain continues; nothing is
// emitted in place.
func genDefineMotif(ctx *genContext, n *patch.Node, spec patch.Spec, e *emitter) error {
	fs, ok := spec.FieldSpec("name")
	if !ok {
		return errors.AssertionFailedf("kind %q has no field %q", spec.Kind, "name")
	}
	name, set := n.FieldOK("name")
	if !set {
		name = fs.Default
	}
	if ctx.motifNames[name] {
		ctx.diagnose(n, "name", fmt.Sprintf("duplicate motif name %q", name))
	}
	ctx.motifNames[name] = true

	idx := ctx.reserveMacro(name)
	me := newEmitter(ctx.opts.Indent)
	me.linef("motif %s do", renderText(name))
	ctx.pushScope(spec.Scope)
	err := ctx.block(me, n, "body")
	ctx.popScope()
	if err != nil {
		return err
	}
	me.line("end")
	ctx.finishMacro(idx, me.String())
	return nil
}

// fieldValue builds a generator for an atom whose text is a single field.
func fieldValue(field string) valueGen {
	return func(ctx *genContext, n *patch.Node, spec patch.Spec) (string, error) {
		return ctx.fieldText(n, spec, field)
	}
}

// binaryOp builds a generator for an infix operator. The left operand may
// share the operator's own tier; the right operand must bind tighter, which
// keeps a chain of the same operator flat on the left and parenthesized on
// the right.
func binaryOp(op string) valueGen {
	return func(ctx *genContext, n *patch.Node, spec patch.Spec) (string, error) {
		left, err := ctx.resolveSlot(n, spec, "a", spec.Tier)
		if err != nil {
			return "", err
		}
		right, err := ctx.resolveSlot(n, spec, "b", spec.Tier-1)
		if err != nil {
			return "", err
		}
		return left + " " + op + " " + right, nil
	}
}

// unaryOp builds a generator for a prefix operator. Operands wrap unless
// they are atoms, so -(-x) and not (not x) read unambiguously.
func unaryOp(prefix string) valueGen {
	return func(ctx *genContext, n *patch.Node, spec patch.Spec) (string, error) {
		operand, err := ctx.resolveSlot(n, spec, "a", patch.TierAtom)
		if err != nil {
			return "", err
		}
		return prefix + operand, nil
	}
}

func genRandomRange(ctx *genContext, n *patch.Node, spec patch.Spec) (string, error) {
	args, err := callArgs(ctx, n, spec, "min", "max")
	if err != nil {
		return "", err
	}
	return "rand(" + args + ")", nil
}

func genSensorRead(ctx *genContext, n *patch.Node, spec patch.Spec) (string, error) {
	sensor, err := ctx.fieldText(n, spec, "sensor")
	if err != nil {
		return "", err
	}
	return "sensor(" + sensor + ")", nil
}

func genTempoGet(ctx *genContext, n *patch.Node, spec patch.Spec) (string, error) {
	return "current_tempo()", nil
}
