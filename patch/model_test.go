package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestGraphAddAndLookup(t *testing.T) {
	g := NewGraph("n1")

	n1 := &Node{ID: "n1", Kind: "set_tempo"}
	n2 := &Node{ID: "n2", Kind: "stop_sound"}

	require.NoError(t, g.Add(n1))
	require.NoError(t, g.Add(n2))

	assert.Equal(t, 2, g.Len())

	got, ok := g.Node("n1")
	require.True(t, ok)
	assert.Same(t, n1, got)

	_, ok = g.Node("missing")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"n1", "n2"}, g.NodeIDs())
}

func TestGraphRejectsDuplicates(t *testing.T) {
	g := NewGraph("n1")

	require.NoError(t, g.Add(&Node{ID: "n1", Kind: "set_tempo"}))

	err := g.Add(&Node{ID: "n1", Kind: "stop_sound"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestGraphRejectsEmptyID(t *testing.T) {
	g := NewGraph("")
	err := g.Add(&Node{Kind: "set_tempo"})
	require.Error(t, err)
}

func TestNodeAccessors(t *testing.T) {
	n := &Node{
		ID:   "n1",
		Kind: "play_synth",
		Fields: map[string]string{
			"name": "verse",
		},
		Inputs: map[string]Input{
			"beats": {Literal: strPtr("2")},
			"notes": {Node: "n2"},
		},
		Blocks: map[string]string{
			"body": "n3",
		},
	}

	assert.Equal(t, "verse", n.Field("name"))
	assert.Equal(t, "", n.Field("missing"))

	in, ok := n.Input("beats")
	require.True(t, ok)
	assert.False(t, in.IsNode())
	require.NotNil(t, in.Literal)
	assert.Equal(t, "2", *in.Literal)

	in, ok = n.Input("notes")
	require.True(t, ok)
	assert.True(t, in.IsNode())
	assert.Equal(t, "n2", in.Node)

	_, ok = n.Input("missing")
	assert.False(t, ok)

	assert.Equal(t, "n3", n.Block("body"))
	assert.Equal(t, "", n.Block("missing"))
}

func TestNodeAccessorsOnBareNode(t *testing.T) {
	n := &Node{ID: "n1", Kind: "stop_sound"}

	assert.Equal(t, "", n.Field("anything"))
	_, ok := n.Input("anything")
	assert.False(t, ok)
	assert.Equal(t, "", n.Block("anything"))
}
