// Package sym defines canonical glyphs for Baton subsystems and operation markers.
// These glyphs are stable across CLI output, logs, and documentation.
package sym

// Subsystem glyphs prefix log lines and CLI banners so that output from
// different parts of the pipeline is recognizable at a glance.
const (
	Baton = "𝄞" // compile driver, the program as a whole
	Patch = "⧉" // block graphs arriving from the editor
	Chain = "♬" // statement chain traversal
	Motif = "𝄆" // named motif definitions hoisted to the macro section
	Cue   = "✦" // broadcast/wait cue pairs between devices
	Store = "⊟" // program library (sqlite)
	Live  = "≋" // live-compile sessions over websocket
	Watch = "◉" // file watch and recompile loop
)

// Lifecycle glyphs.
const (
	TuneUp   = "♯" // startup
	WindDown = "♭" // graceful shutdown
)

// entry binds a glyph to its subsystem name and description.
type entry struct {
	glyph       string
	name        string
	description string
}

// registry is the canonical mapping between glyphs and subsystem metadata.
var registry = []entry{
	{Baton, "baton", "Compile driver"},
	{Patch, "patch", "Block graphs from the editor"},
	{Chain, "chain", "Statement chain traversal"},
	{Motif, "motif", "Hoisted motif definitions"},
	{Cue, "cue", "Broadcast/wait cues between devices"},
	{Store, "store", "Program library"},
	{Live, "live", "Live-compile sessions"},
	{Watch, "watch", "File watch and recompile"},
	{TuneUp, "tune-up", "Startup"},
	{WindDown, "wind-down", "Graceful shutdown"},
}

// Lookup tables built from the registry at init time.
var (
	glyphToName map[string]string
	nameToGlyph map[string]string
)

func init() {
	glyphToName = make(map[string]string, len(registry))
	nameToGlyph = make(map[string]string, len(registry))
	for _, e := range registry {
		glyphToName[e.glyph] = e.name
		nameToGlyph[e.name] = e.glyph
	}
}

// Name returns the subsystem name for a glyph, or "" if unknown.
func Name(glyph string) string {
	return glyphToName[glyph]
}

// FromName returns the glyph for a subsystem name, or "" if unknown.
func FromName(name string) string {
	return nameToGlyph[name]
}

// Descriptions provides human-readable explanations keyed by subsystem name.
var Descriptions = map[string]string{
	"baton":     "Compile driver",
	"patch":     "Block graphs from the editor",
	"chain":     "Statement chain traversal",
	"motif":     "Hoisted motif definitions",
	"cue":       "Broadcast/wait cues between devices",
	"store":     "Program library",
	"live":      "Live-compile sessions",
	"watch":     "File watch and recompile",
	"tune-up":   "Startup",
	"wind-down": "Graceful shutdown",
}
