package ensemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactus/baton/patch"
)

func TestRenderNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"0", "0"},
		{"120", "120"},
		{"-5", "-5"},
		{"007", "7"},
		{"2.0", "2.0"},
		{"2.5", "2.5"},
		{"-0.25", "-0.25"},
		{"3.1400", "3.14"},
		{"1e3", "1000.0"},
		{"1.5e2", "150.0"},
		{"1e300", "1e+300"},
		{" 42 ", "42"},
	}
	for _, tt := range tests {
		got, err := renderNumber(tt.raw)
		require.NoError(t, err, "raw %q", tt.raw)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

func TestRenderNumberErrors(t *testing.T) {
	for _, raw := range []string{"", "abc", "1.2.3", "0x10", "1_000", "nan", "inf"} {
		_, err := renderNumber(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

// Integer text never grows a decimal point; float text never loses one.
func TestRenderNumberKeepsSourceShape(t *testing.T) {
	intGot, err := renderNumber("2")
	require.NoError(t, err)
	assert.Equal(t, "2", intGot)

	floatGot, err := renderNumber("2.0")
	require.NoError(t, err)
	assert.Equal(t, "2.0", floatGot)
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", `""`},
		{"C4", `"C4"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"line\nbreak", `"line\nbreak"`},
		{"tab\there", `"tab\there"`},
		{"ünïcøde 𝄞", `"ünïcøde 𝄞"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, renderText(tt.raw), "raw %q", tt.raw)
	}
}

func TestRenderNotes(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "[]"},
		{"   ", "[]"},
		{"C4", `["C4"]`},
		{"C4 E4", `["C4","E4"]`},
		{"C4,E4", `["C4","E4"]`},
		{"C4, E4,  G4", `["C4","E4","G4"]`},
		{"c#4 Bb2", `["c#4","Bb2"]`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, renderNotes(tt.raw), "raw %q", tt.raw)
	}
}

func TestRenderTyped(t *testing.T) {
	tests := []struct {
		name string
		typ  patch.ValueType
		raw  string
		want string
	}{
		{"number", patch.TypeNumber, "42", "42"},
		{"text", patch.TypeText, "go", `"go"`},
		{"boolean true", patch.TypeBoolean, "true", "true"},
		{"boolean false", patch.TypeBoolean, "false", "false"},
		{"notes", patch.TypeNotes, "C4 E4", `["C4","E4"]`},
		{"identifier", patch.TypeIdentifier, "count", "count"},
		{"any number", patch.TypeAny, "3.5", "3.5"},
		{"any integer", patch.TypeAny, "7", "7"},
		{"any boolean", patch.TypeAny, "false", "false"},
		{"any string", patch.TypeAny, "hello", `"hello"`},
		{"any almost number", patch.TypeAny, "7up", `"7up"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderTyped(tt.typ, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderTypedErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  patch.ValueType
		raw  string
	}{
		{"bad number", patch.TypeNumber, "fast"},
		{"bad boolean", patch.TypeBoolean, "yes"},
		{"empty identifier", patch.TypeIdentifier, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := renderTyped(tt.typ, tt.raw)
			assert.Error(t, err)
		})
	}
}
