package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/patch"
)

func TestChainPreservesOrder(t *testing.T) {
	g := buildGraph(t, "n3",
		&patch.Node{ID: "n3", Kind: "play_drum", Next: "n1"},
		&patch.Node{ID: "n1", Kind: "rest", Next: "n2"},
		&patch.Node{ID: "n2", Kind: "stop_sound"},
	)
	p := mustCompile(t, g)
	assert.Equal(t, "play_drum(:kick)\nrest(1)\nstop_sound()\n", p.Source,
		"chain order comes from next pointers, not node ids")
}

func TestChainNestedBlocksIndent(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "loop_count", Inputs: map[string]patch.Input{"times": lit("2")}, Blocks: map[string]string{"body": "n2"}},
		&patch.Node{ID: "n2", Kind: "loop_forever", Blocks: map[string]string{"body": "n3"}},
		&patch.Node{ID: "n3", Kind: "play_drum", Next: "n4"},
		&patch.Node{ID: "n4", Kind: "rest"},
	)
	p := mustCompile(t, g)
	want := "repeat 2 do\n" +
		"  loop do\n" +
		"    play_drum(:kick)\n" +
		"    rest(1)\n" +
		"  end\n" +
		"end\n"
	assert.Equal(t, want, p.Source)
}

func TestChainValueNodeDiagnosed(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "stop_sound", Next: "n2"},
		&patch.Node{ID: "n2", Kind: "number", Fields: map[string]string{"value": "5"}, Next: "n3"},
		&patch.Node{ID: "n3", Kind: "rest"},
	)
	p := mustCompile(t, g)
	assert.Equal(t, "stop_sound()\nrest(1)\n", p.Source, "value node is skipped, chain continues")
	require.Len(t, p.Diagnostics, 1)
	assert.Equal(t, "n2", p.Diagnostics[0].NodeID)
	assert.Contains(t, p.Diagnostics[0].Message, "cannot appear in a statement chain")
}

func TestChainDanglingNext(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "stop_sound", Next: "ghost"},
	)
	p, err := NewCompiler(nil, Options{}).Compile(g)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, errors.ErrDanglingReference))

	var cerr *CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "n1", cerr.NodeID)
	assert.Equal(t, "next", cerr.Slot)
	assert.Equal(t, "ghost", cerr.Ref)
}

func TestChainDanglingBlockSlot(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "loop_forever", Blocks: map[string]string{"body": "ghost"}},
	)
	p, err := NewCompiler(nil, Options{}).Compile(g)
	require.Error(t, err)
	assert.Nil(t, p)
	assert.True(t, errors.Is(err, errors.ErrDanglingReference))

	var cerr *CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "n1", cerr.NodeID)
	assert.Equal(t, "body", cerr.Slot)
	assert.Equal(t, "ghost", cerr.Ref)
}

func TestChainStats(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "loop_count", Blocks: map[string]string{"body": "n2"}},
		&patch.Node{ID: "n2", Kind: "play_note", Inputs: map[string]patch.Input{"beats": ref("v1")}},
		&patch.Node{ID: "v1", Kind: "number", Fields: map[string]string{"value": "2"}},
	)
	p := mustCompile(t, g)
	assert.Equal(t, 2, p.Stats.Statements)
	assert.Equal(t, 3, p.Stats.Nodes, "value nodes count as visited")
}
