package patchio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tactus/baton/errors"
)

func testDocJSON(name string) string {
	return `{
  "format": "tactus-patch",
  "version": 1,
  "name": "` + name + `",
  "root": "n1",
  "nodes": [
    {"id": "n1", "kind": "set_tempo", "inputs": {"bpm": {"value": "120"}}, "next": "n2"},
    {"id": "n2", "kind": "play_synth", "inputs": {"notes": {"value": "C4 E4"}, "beats": {"value": "2"}}, "next": "n3"},
    {"id": "n3", "kind": "stop_sound"}
  ]
}`
}

func mustParse(t *testing.T, data string) *Document {
	t.Helper()
	doc, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseValidDocument(t *testing.T) {
	doc := mustParse(t, testDocJSON("demo"))
	if doc.Name != "demo" {
		t.Errorf("name = %q, want demo", doc.Name)
	}
	if doc.Root != "n1" {
		t.Errorf("root = %q, want n1", doc.Root)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(doc.Nodes))
	}
	in, ok := doc.Nodes[0].Input("bpm")
	if !ok || in.Literal == nil || *in.Literal != "120" {
		t.Errorf("n1 bpm input not decoded: %+v", in)
	}
}

func TestParseRejectsBadJSON(t *testing.T) {
	_, err := Parse([]byte("{not json"))
	if !errors.IsInvalidDocumentError(err) {
		t.Errorf("want ErrInvalidDocument, got %v", err)
	}
}

func TestParseRejectsWrongFormat(t *testing.T) {
	_, err := Parse([]byte(`{"format": "scratch-project", "version": 1, "root": "", "nodes": []}`))
	if !errors.IsInvalidDocumentError(err) {
		t.Errorf("want ErrInvalidDocument, got %v", err)
	}
}

func TestParseRejectsNewerVersion(t *testing.T) {
	_, err := Parse([]byte(`{"format": "tactus-patch", "version": 9, "root": "", "nodes": []}`))
	if !errors.IsInvalidDocumentError(err) {
		t.Fatalf("want ErrInvalidDocument, got %v", err)
	}
	hints := errors.GetAllHints(err)
	if len(hints) == 0 {
		t.Error("expected a hint about a newer editor")
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{
			name: "duplicate node id",
			json: `{"format": "tactus-patch", "version": 1, "root": "a",
				"nodes": [{"id": "a", "kind": "rest"}, {"id": "a", "kind": "rest"}]}`,
			want: "duplicate node id",
		},
		{
			name: "missing node id",
			json: `{"format": "tactus-patch", "version": 1, "root": "",
				"nodes": [{"kind": "rest"}]}`,
			want: "has no id",
		},
		{
			name: "missing kind",
			json: `{"format": "tactus-patch", "version": 1, "root": "a",
				"nodes": [{"id": "a"}]}`,
			want: "has no kind",
		},
		{
			name: "input with node and literal",
			json: `{"format": "tactus-patch", "version": 1, "root": "a",
				"nodes": [{"id": "a", "kind": "set_tempo", "inputs": {"bpm": {"node": "b", "value": "120"}}}]}`,
			want: "exactly one",
		},
		{
			name: "input with neither",
			json: `{"format": "tactus-patch", "version": 1, "root": "a",
				"nodes": [{"id": "a", "kind": "set_tempo", "inputs": {"bpm": {}}}]}`,
			want: "exactly one",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if !errors.IsInvalidDocumentError(err) {
				t.Fatalf("want ErrInvalidDocument, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDocumentGraph(t *testing.T) {
	doc := mustParse(t, testDocJSON("demo"))
	g, err := doc.Graph()
	if err != nil {
		t.Fatalf("Graph failed: %v", err)
	}
	if g.Root != "n1" {
		t.Errorf("graph root = %q, want n1", g.Root)
	}
	if g.Len() != 3 {
		t.Errorf("graph has %d nodes, want 3", g.Len())
	}
	n2, ok := g.Node("n2")
	if !ok {
		t.Fatal("n2 missing from graph")
	}
	if n2.Next != "n3" {
		t.Errorf("n2.Next = %q, want n3", n2.Next)
	}
}

func TestFingerprintStable(t *testing.T) {
	a := mustParse(t, testDocJSON("demo"))
	b := mustParse(t, testDocJSON("demo"))

	fa, err := a.Fingerprint()
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	fb, _ := b.Fingerprint()
	if fa != fb {
		t.Errorf("same content, different fingerprints: %s vs %s", fa, fb)
	}
	if fa == "" {
		t.Error("empty fingerprint")
	}

	c := mustParse(t, testDocJSON("renamed"))
	fc, _ := c.Fingerprint()
	if fc == fa {
		t.Error("different content, same fingerprint")
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := mustParse(t, testDocJSON("demo"))
	data, err := doc.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	again, err := Parse(data)
	if err != nil {
		t.Fatalf("re-Parse failed: %v", err)
	}
	fa, _ := doc.Fingerprint()
	fb, _ := again.Fingerprint()
	if fa != fb {
		t.Error("round trip changed the fingerprint")
	}
}

func TestCheckRequires(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		compiler string
		wantErr  error
	}{
		{"no constraint", "", "0.1.0", nil},
		{"satisfied", ">=0.1.0", "0.5.0", nil},
		{"satisfied with range", ">=0.1.0 <2.0.0", "1.9.3", nil},
		{"unsatisfied", ">=2.0.0", "0.5.0", errors.ErrVersionMismatch},
		{"dev build skips check", ">=2.0.0", "dev", nil},
		{"bad constraint", "newest", "1.0.0", errors.ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Format: FormatName, Version: FormatVersion, Requires: tt.requires}
			err := doc.CheckRequires(tt.compiler)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.json")
	if err := os.WriteFile(path, []byte(testDocJSON("demo")), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Name != "demo" {
		t.Errorf("name = %q, want demo", doc.Name)
	}
}
