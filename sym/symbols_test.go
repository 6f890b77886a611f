package sym

import (
	"testing"
	"unicode/utf8"
)

func TestGlyphAndNameAreBidirectional(t *testing.T) {
	for _, e := range registry {
		name := Name(e.glyph)
		if name != e.name {
			t.Errorf("Name(%q) = %q, want %q", e.glyph, name, e.name)
		}
		glyph := FromName(e.name)
		if glyph != e.glyph {
			t.Errorf("FromName(%q) = %q, want %q", e.name, glyph, e.glyph)
		}
	}
}

func TestUnknownLookups(t *testing.T) {
	if got := Name("☃"); got != "" {
		t.Errorf("Name(☃) = %q, want empty", got)
	}
	if got := FromName("nope"); got != "" {
		t.Errorf("FromName(nope) = %q, want empty", got)
	}
}

func TestDescriptionsCoverAllNames(t *testing.T) {
	for _, e := range registry {
		if _, ok := Descriptions[e.name]; !ok {
			t.Errorf("Descriptions missing entry for %q", e.name)
		}
	}
}

func TestDescriptionsHaveNoExtraEntries(t *testing.T) {
	for name := range Descriptions {
		if FromName(name) == "" {
			t.Errorf("Descriptions has entry for %q which is not in the registry", name)
		}
	}
}

func TestGlyphsAreValidUnicode(t *testing.T) {
	for _, e := range registry {
		if !utf8.ValidString(e.glyph) {
			t.Errorf("glyph %q is not valid UTF-8", e.glyph)
		}
		if utf8.RuneCountInString(e.glyph) == 0 {
			t.Errorf("glyph for %q is empty", e.name)
		}
	}
}

func TestNoDuplicateGlyphs(t *testing.T) {
	seen := make(map[string]string, len(registry))
	for _, e := range registry {
		if prev, ok := seen[e.glyph]; ok {
			t.Errorf("duplicate glyph %q: used by both %q and %q", e.glyph, prev, e.name)
		}
		seen[e.glyph] = e.name
	}
}

func TestNoDuplicateNames(t *testing.T) {
	seen := make(map[string]string, len(registry))
	for _, e := range registry {
		if prev, ok := seen[e.name]; ok {
			t.Errorf("duplicate name %q: used by both %q and %q", e.name, prev, e.glyph)
		}
		seen[e.name] = e.glyph
	}
}
