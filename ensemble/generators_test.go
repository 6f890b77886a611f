package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactus/baton/patch"
)

// Every kind in the catalog must have exactly one generator, in the table
// matching its role, and the tables must not carry entries the catalog
// no longer declares.
func TestGeneratorTablesMatchCatalog(t *testing.T) {
	reg := patch.MustDefault()
	for _, spec := range reg.Specs() {
		if spec.Stackable {
			_, ok := statementGenerators[spec.Kind]
			assert.True(t, ok, "stackable kind %q has no statement generator", spec.Kind)
			_, ok = valueGenerators[spec.Kind]
			assert.False(t, ok, "stackable kind %q must not have a value generator", spec.Kind)
		}
		if spec.Value {
			_, ok := valueGenerators[spec.Kind]
			assert.True(t, ok, "value kind %q has no value generator", spec.Kind)
			_, ok = statementGenerators[spec.Kind]
			assert.False(t, ok, "value kind %q must not have a statement generator", spec.Kind)
		}
	}
	for kind := range statementGenerators {
		assert.True(t, reg.Has(kind), "statement generator %q has no catalog entry", kind)
	}
	for kind := range valueGenerators {
		assert.True(t, reg.Has(kind), "value generator %q has no catalog entry", kind)
	}
}

func TestStatementRenderings(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*patch.Node
		want  string
	}{
		{
			name:  "stop_sound",
			nodes: []*patch.Node{{ID: "n1", Kind: "stop_sound"}},
			want:  "stop_sound()\n",
		},
		{
			name:  "set_volume default",
			nodes: []*patch.Node{{ID: "n1", Kind: "set_volume"}},
			want:  "set_volume(80)\n",
		},
		{
			name:  "play_note defaults",
			nodes: []*patch.Node{{ID: "n1", Kind: "play_note"}},
			want:  "play_note(\"C4\", 1)\n",
		},
		{
			name:  "play_synth defaults",
			nodes: []*patch.Node{{ID: "n1", Kind: "play_synth"}},
			want:  "play_synth([], 1)\n",
		},
		{
			name:  "play_drum selected",
			nodes: []*patch.Node{{ID: "n1", Kind: "play_drum", Fields: map[string]string{"drum": "snare"}}},
			want:  "play_drum(:snare)\n",
		},
		{
			name: "rest wired beats",
			nodes: []*patch.Node{
				{ID: "n1", Kind: "rest", Inputs: map[string]patch.Input{"beats": lit("0.5")}},
			},
			want: "rest(0.5)\n",
		},
		{
			name: "motor_run",
			nodes: []*patch.Node{
				{ID: "n1", Kind: "motor_run", Fields: map[string]string{"port": "c"}, Inputs: map[string]patch.Input{"speed": lit("75")}},
			},
			want: "motor_run(:c, 75, 1)\n",
		},
		{
			name:  "motor_stop",
			nodes: []*patch.Node{{ID: "n1", Kind: "motor_stop", Fields: map[string]string{"port": "b"}}},
			want:  "motor_stop(:b)\n",
		},
		{
			name:  "set_light default",
			nodes: []*patch.Node{{ID: "n1", Kind: "set_light"}},
			want:  "set_light(\"#FFFFFF\")\n",
		},
		{
			name:  "broadcast_cue",
			nodes: []*patch.Node{{ID: "n1", Kind: "broadcast_cue", Fields: map[string]string{"name": "verse"}}},
			want:  "broadcast_cue(\"verse\")\n",
		},
		{
			name:  "wait_cue default",
			nodes: []*patch.Node{{ID: "n1", Kind: "wait_cue"}},
			want:  "wait_cue(\"go\")\n",
		},
		{
			name:  "set_var defaults",
			nodes: []*patch.Node{{ID: "n1", Kind: "set_var"}},
			want:  "x = 0\n",
		},
		{
			name: "score with empty body",
			nodes: []*patch.Node{
				{ID: "n1", Kind: "score"},
			},
			want: "score \"untitled\" do\nend\n",
		},
		{
			name: "with_effect",
			nodes: []*patch.Node{
				{ID: "n1", Kind: "with_effect", Fields: map[string]string{"effect": "echo"}, Inputs: map[string]patch.Input{"level": lit("30")}, Blocks: map[string]string{"body": "n2"}},
				{ID: "n2", Kind: "play_drum"},
			},
			want: "with_effect(:echo, 30) do\n  play_drum(:kick)\nend\n",
		},
		{
			name: "if_else",
			nodes: []*patch.Node{
				{ID: "n1", Kind: "if_else", Inputs: map[string]patch.Input{"condition": ref("b1")}, Blocks: map[string]string{"then": "n2", "else": "n3"}},
				{ID: "b1", Kind: "boolean"},
				{ID: "n2", Kind: "play_drum"},
				{ID: "n3", Kind: "rest"},
			},
			want: "if true do\n  play_drum(:kick)\nelse\n  rest(1)\nend\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(t, "n1", tt.nodes...)
			p := mustCompile(t, g)
			assert.Equal(t, tt.want, p.Source)
		})
	}
}

func TestValueRenderings(t *testing.T) {
	tests := []struct {
		name  string
		nodes []*patch.Node
		want  string
	}{
		{
			name:  "number float keeps decimal point",
			nodes: []*patch.Node{numNode("v1", "2.0")},
			want:  "x = 2.0\n",
		},
		{
			name:  "number integer stays integer",
			nodes: []*patch.Node{numNode("v1", "2")},
			want:  "x = 2\n",
		},
		{
			name: "text escapes quotes",
			nodes: []*patch.Node{
				{ID: "v1", Kind: "text", Fields: map[string]string{"value": `say "hi"`}},
			},
			want: "x = \"say \\\"hi\\\"\"\n",
		},
		{
			name:  "boolean default",
			nodes: []*patch.Node{{ID: "v1", Kind: "boolean"}},
			want:  "x = true\n",
		},
		{
			name:  "boolean false",
			nodes: []*patch.Node{boolNode("v1", "false")},
			want:  "x = false\n",
		},
		{
			name: "note_list",
			nodes: []*patch.Node{
				{ID: "v1", Kind: "note_list", Fields: map[string]string{"notes": "C4,E4 G4"}},
			},
			want: "x = [\"C4\",\"E4\",\"G4\"]\n",
		},
		{
			name: "variable_get",
			nodes: []*patch.Node{
				{ID: "v1", Kind: "variable_get", Fields: map[string]string{"name": "count"}},
			},
			want: "x = count\n",
		},
		{
			name:  "random_range defaults",
			nodes: []*patch.Node{{ID: "v1", Kind: "random_range"}},
			want:  "x = rand(1, 10)\n",
		},
		{
			name: "sensor_read",
			nodes: []*patch.Node{
				{ID: "v1", Kind: "sensor_read", Fields: map[string]string{"sensor": "distance"}},
			},
			want: "x = sensor(:distance)\n",
		},
		{
			name:  "tempo_get",
			nodes: []*patch.Node{{ID: "v1", Kind: "tempo_get"}},
			want:  "x = current_tempo()\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := append([]*patch.Node{
				{ID: "n1", Kind: "set_var", Inputs: map[string]patch.Input{"value": ref("v1")}},
			}, tt.nodes...)
			g := buildGraph(t, "n1", nodes...)
			p := mustCompile(t, g)
			assert.Equal(t, tt.want, p.Source)
		})
	}
}

// Inline literals dropped into an untyped slot keep their apparent type.
func TestAnySlotLiteralInference(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0", "x = 0\n"},
		{"3.5", "x = 3.5\n"},
		{"true", "x = true\n"},
		{"hello", "x = \"hello\"\n"},
	}
	for _, tt := range tests {
		g := buildGraph(t, "n1",
			&patch.Node{ID: "n1", Kind: "set_var", Inputs: map[string]patch.Input{"value": lit(tt.raw)}},
		)
		p := mustCompile(t, g)
		assert.Equal(t, tt.want, p.Source, "raw %q", tt.raw)
	}
}

func TestSetVarNamedField(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "set_var", Fields: map[string]string{"name": "bpm"}, Inputs: map[string]patch.Input{"value": lit("128")}},
	)
	p := mustCompile(t, g)
	assert.Equal(t, "bpm = 128\n", p.Source)
}

// The tempo write inside any scope renders the scoped form, however deep.
func TestScopedTempoNested(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "with_effect", Blocks: map[string]string{"body": "n2"}},
		&patch.Node{ID: "n2", Kind: "loop_forever", Blocks: map[string]string{"body": "n3"}},
		&patch.Node{ID: "n3", Kind: "set_tempo"},
	)
	p := mustCompile(t, g)
	want := "with_effect(:reverb, 50) do\n" +
		"  loop do\n" +
		"    tempo(120)\n" +
		"  end\n" +
		"end\n"
	assert.Equal(t, want, p.Source)
}

func TestMotifBodyStartsAtZeroDepth(t *testing.T) {
	g := buildGraph(t, "n1",
		&patch.Node{ID: "n1", Kind: "loop_forever", Blocks: map[string]string{"body": "n2"}},
		&patch.Node{ID: "n2", Kind: "define_motif", Fields: map[string]string{"name": "deep"}, Blocks: map[string]string{"body": "n3"}},
		&patch.Node{ID: "n3", Kind: "play_drum"},
	)
	p := mustCompile(t, g)

	want := "motif \"deep\" do\n" +
		"  play_drum(:kick)\n" +
		"end\n" +
		"\n" +
		"loop do\n" +
		"end\n"
	assert.Equal(t, want, p.Source, "hoisted definitions ignore the nesting they were defined at")
	require.Len(t, p.Macros, 1)
}
