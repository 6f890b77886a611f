package ensemble

import (
	"fmt"
	"strings"
)

// emitter accumulates generated statement lines at a running indent depth.
// Expression text never passes through here; expressions are built as plain
// strings by the resolver and land in a statement line.
type emitter struct {
	sb     strings.Builder
	indent string
	depth  int
}

func newEmitter(indent string) *emitter {
	return &emitter{indent: indent}
}

// line writes one indented, newline-terminated statement line.
func (e *emitter) line(s string) {
	for i := 0; i < e.depth; i++ {
		e.sb.WriteString(e.indent)
	}
	e.sb.WriteString(s)
	e.sb.WriteByte('\n')
}

func (e *emitter) linef(format string, args ...interface{}) {
	e.line(fmt.Sprintf(format, args...))
}

// withIndent runs fn with the depth increased by one level.
func (e *emitter) withIndent(fn func()) {
	e.depth++
	fn()
	e.depth--
}

func (e *emitter) String() string {
	return e.sb.String()
}
