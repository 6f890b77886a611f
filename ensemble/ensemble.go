// Package ensemble turns block patches from the Tactus editor into Ensemble
// source text, the script language the performance runtime executes.
//
// A patch arrives as a graph of typed nodes: statement blocks snapped into
// chains, value blocks wired into input slots, and nested chains hanging off
// block slots. Compilation walks the root chain, renders each node through
// its kind's generator, and assembles the result:
//
//	motif "riff" do
//	  play_note("C4", 1)
//	end
//
//	set_tempo(120)
//	play_motif("riff")
//
// Hoisted definitions come first, then a blank line, then the body. Structural
// damage a musician can hear about later (an unfilled slot, a stray value
// block) degrades to empty text plus a Diagnostic; damage that would corrupt
// the program (unknown kinds, dangling references, cycles) aborts with a
// CompileError and no partial source.
package ensemble

import (
	"strings"

	"github.com/tactus/baton/errors"
	"github.com/tactus/baton/logger"
	"github.com/tactus/baton/patch"
)

const defaultIndent = "  "

// Options controls source rendering.
type Options struct {
	// Indent is the text for one nesting level. Defaults to two spaces.
	Indent string
}

// Macro is one hoisted definition, rendered at zero depth.
type Macro struct {
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Stats summarizes one compilation.
type Stats struct {
	// Nodes is the number of graph nodes visited.
	Nodes int `json:"nodes"`
	// Statements counts statement nodes compiled, including those inside
	// hoisted definitions.
	Statements int `json:"statements"`
	// Macros is the number of hoisted definitions.
	Macros int `json:"macros"`
}

// Program is the result of a successful compilation. Diagnostics may be
// non-empty even on success; they describe slots that rendered as empty text.
type Program struct {
	Source      string       `json:"source"`
	Macros      []Macro      `json:"macros,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Stats       Stats        `json:"stats"`
}

// Clean reports whether the program compiled without diagnostics.
func (p *Program) Clean() bool {
	return len(p.Diagnostics) == 0
}

// Compiler renders patches against a fixed kind registry. It holds no
// per-compilation state and is safe for concurrent use.
type Compiler struct {
	registry *patch.Registry
	opts     Options
}

// NewCompiler creates a compiler. A nil registry means the built-in catalog.
func NewCompiler(reg *patch.Registry, opts Options) *Compiler {
	if reg == nil {
		reg = patch.MustDefault()
	}
	if opts.Indent == "" {
		opts.Indent = defaultIndent
	}
	return &Compiler{registry: reg, opts: opts}
}

// Registry returns the kind registry the compiler renders against.
func (c *Compiler) Registry() *patch.Registry {
	return c.registry
}

// Compile renders the graph's root chain to Ensemble source. Each call runs
// in a fresh context; nothing carries over between compilations. On error
// the returned program is nil, never partial.
func (c *Compiler) Compile(g *patch.Graph) (*Program, error) {
	if g == nil {
		return nil, errors.New("nil graph")
	}
	ctx := newGenContext(g, c.registry, c.opts)
	body := newEmitter(c.opts.Indent)
	if g.Root != "" {
		if err := ctx.compileChain(g.Root, nil, "", body); err != nil {
			return nil, err
		}
	}
	ctx.stats.Macros = len(ctx.macros)

	parts := make([]string, 0, len(ctx.macros)+1)
	for _, m := range ctx.macros {
		parts = append(parts, m.Source)
	}
	if b := body.String(); b != "" {
		parts = append(parts, b)
	}

	logger.Debugw("patch compiled",
		logger.FieldRootID, g.Root,
		logger.FieldNodeCount, ctx.stats.Nodes,
		logger.FieldStatements, ctx.stats.Statements,
		logger.FieldMacros, ctx.stats.Macros,
	)
	return &Program{
		Source:      strings.Join(parts, "\n"),
		Macros:      ctx.macros,
		Diagnostics: ctx.diagnostics,
		Stats:       ctx.stats,
	}, nil
}
