package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/patch"
)

func numNode(id, value string) *patch.Node {
	return &patch.Node{ID: id, Kind: "number", Fields: map[string]string{"value": value}}
}

func boolNode(id, value string) *patch.Node {
	return &patch.Node{ID: id, Kind: "boolean", Fields: map[string]string{"value": value}}
}

func opNode(id, kind string, a, b patch.Input) *patch.Node {
	return &patch.Node{ID: id, Kind: kind, Inputs: map[string]patch.Input{"a": a, "b": b}}
}

// assign wires the given expression node into a set_var so the rendered text
// shows up as the right-hand side of "x = ...".
func assign(t *testing.T, exprRoot string, nodes ...*patch.Node) string {
	t.Helper()
	all := append([]*patch.Node{
		{ID: "root", Kind: "set_var", Inputs: map[string]patch.Input{"value": ref(exprRoot)}},
	}, nodes...)
	g := buildGraph(t, "root", all...)
	p := mustCompile(t, g)
	return p.Source
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		root  string
		nodes []*patch.Node
		want  string
	}{
		{
			name: "left nesting of same tier stays flat",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "num_plus", ref("p2"), lit("3")),
				opNode("p2", "num_plus", lit("1"), lit("2")),
			},
			want: "x = 1 + 2 + 3\n",
		},
		{
			name: "right nesting of same tier parenthesizes",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "num_minus", lit("1"), ref("p2")),
				opNode("p2", "num_minus", lit("2"), lit("3")),
			},
			want: "x = 1 - (2 - 3)\n",
		},
		{
			name: "looser child under tighter consumer wraps",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "num_times", ref("p2"), lit("3")),
				opNode("p2", "num_plus", lit("1"), lit("2")),
			},
			want: "x = (1 + 2) * 3\n",
		},
		{
			name: "tighter child under looser consumer stays bare",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "num_plus", ref("p2"), lit("3")),
				opNode("p2", "num_times", lit("1"), lit("2")),
			},
			want: "x = 1 * 2 + 3\n",
		},
		{
			name: "comparison over arithmetic stays bare",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "compare_lt", ref("p2"), lit("10")),
				opNode("p2", "num_plus", lit("1"), lit("2")),
			},
			want: "x = 1 + 2 < 10\n",
		},
		{
			name: "or under and wraps",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "logic_and", ref("b1"), ref("p2")),
				opNode("p2", "logic_or", ref("b2"), ref("b3")),
				boolNode("b1", "true"),
				boolNode("b2", "false"),
				boolNode("b3", "true"),
			},
			want: "x = true and (false or true)\n",
		},
		{
			name: "and under or stays bare",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "logic_or", ref("p2"), ref("b3")),
				opNode("p2", "logic_and", ref("b1"), ref("b2")),
				boolNode("b1", "true"),
				boolNode("b2", "false"),
				boolNode("b3", "true"),
			},
			want: "x = true and false or true\n",
		},
		{
			name: "negation of negation wraps",
			root: "p1",
			nodes: []*patch.Node{
				{ID: "p1", Kind: "num_neg", Inputs: map[string]patch.Input{"a": ref("p2")}},
				{ID: "p2", Kind: "num_neg", Inputs: map[string]patch.Input{"a": ref("v1")}},
				{ID: "v1", Kind: "variable_get", Fields: map[string]string{"name": "y"}},
			},
			want: "x = -(-y)\n",
		},
		{
			name: "not over conjunction wraps",
			root: "p1",
			nodes: []*patch.Node{
				{ID: "p1", Kind: "logic_not", Inputs: map[string]patch.Input{"a": ref("p2")}},
				opNode("p2", "logic_and", ref("b1"), ref("b2")),
				boolNode("b1", "true"),
				boolNode("b2", "false"),
			},
			want: "x = not (true and false)\n",
		},
		{
			name: "negation of atom stays bare",
			root: "p1",
			nodes: []*patch.Node{
				{ID: "p1", Kind: "num_neg", Inputs: map[string]patch.Input{"a": ref("v1")}},
				{ID: "v1", Kind: "variable_get", Fields: map[string]string{"name": "y"}},
			},
			want: "x = -y\n",
		},
		{
			name: "deep mixed expression",
			root: "p1",
			nodes: []*patch.Node{
				opNode("p1", "num_times", ref("p2"), ref("p3")),
				opNode("p2", "num_plus", lit("1"), lit("2")),
				opNode("p3", "num_minus", lit("4"), ref("n1")),
				numNode("n1", "3"),
			},
			want: "x = (1 + 2) * (4 - 3)\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assign(t, tt.root, tt.nodes...)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Arguments of a call and block conditions accept any expression bare; the
// resolver never wraps at those positions.
func TestResolveCallPositionsNeverWrap(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "rest", Inputs: map[string]patch.Input{"beats": ref("p1")}, Next: "n2"},
		opNode("p1", "num_plus", lit("1"), lit("2")),
		&patch.Node{ID: "n2", Kind: "if_then", Inputs: map[string]patch.Input{"condition": ref("p2")}},
		opNode("p2", "logic_or", ref("b1"), ref("b2")),
		boolNode("b1", "true"),
		boolNode("b2", "false"),
	)
	p := mustCompile(t, g)
	want := "rest(1 + 2)\n" +
		"if true or false do\n" +
		"end\n"
	assert.Equal(t, want, p.Source)
}

func TestResolveUnboundSlotUsesDefault(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "set_tempo"},
	)
	p := mustCompile(t, g)
	assert.Equal(t, "set_tempo(120)\n", p.Source)
	assert.True(t, p.Clean())
}

func TestResolveUnboundSlotWithoutDefault(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "set_var", Inputs: map[string]patch.Input{"value": ref("p1")}},
		&patch.Node{ID: "p1", Kind: "logic_and", Inputs: map[string]patch.Input{"a": ref("b1")}},
		boolNode("b1", "true"),
	)
	p := mustCompile(t, g)
	assert.Equal(t, "x = true and \n", p.Source)
	require.Len(t, p.Diagnostics, 1)
	assert.Equal(t, "p1", p.Diagnostics[0].NodeID)
	assert.Equal(t, "b", p.Diagnostics[0].Slot)
}

func TestResolveBadLiteralDiagnoses(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "set_tempo", Inputs: map[string]patch.Input{"bpm": lit("fast")}},
	)
	p := mustCompile(t, g)
	assert.Equal(t, "set_tempo()\n", p.Source)
	require.Len(t, p.Diagnostics, 1)
	assert.Equal(t, "bpm", p.Diagnostics[0].Slot)
}

func TestResolveStatementInValueSlot(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "set_var", Inputs: map[string]patch.Input{"value": ref("n2")}},
		&patch.Node{ID: "n2", Kind: "stop_sound"},
	)
	p := mustCompile(t, g)
	assert.Equal(t, "x = \n", p.Source)
	require.Len(t, p.Diagnostics, 1)
	assert.Contains(t, p.Diagnostics[0].Message, "does not produce a value")
}

func TestResolveDanglingInputFatal(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "set_tempo", Inputs: map[string]patch.Input{"bpm": ref("ghost")}},
	)
	p, err := NewCompiler(nil, Options{}).Compile(g)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, errors.ErrDanglingReference))

	var cerr *CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "n1", cerr.NodeID)
	assert.Equal(t, "bpm", cerr.Slot)
	assert.Equal(t, "ghost", cerr.Ref)
}

func TestResolveUnknownSelectOption(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "play_drum", Fields: map[string]string{"drum": "gong"}},
	)
	p := mustCompile(t, g)
	assert.Equal(t, "play_drum(:kick)\n", p.Source, "falls back to the default option's token")
	require.Len(t, p.Diagnostics, 1)
	assert.Contains(t, p.Diagnostics[0].Message, `unknown option "gong"`)
}
