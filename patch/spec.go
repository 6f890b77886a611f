package patch

import (
	"github.com/tactus/baton/errors"
	"gopkg.in/yaml.v3"
)

// Tier is a precedence tier for value-producing kinds. Lower binds tighter.
// The resolver parenthesizes a child expression exactly when the child's tier
// is numerically greater than the tier its consumer requires.
type Tier int

const (
	TierAtom    Tier = iota // literals, identifiers, calls, lists
	TierUnary               // not x, -x
	TierProduct             // * / %
	TierSum                 // + -
	TierCompare             // == != < > <= >=
	TierAnd                 // and
	TierOr                  // or
)

var tierNames = map[Tier]string{
	TierAtom:    "atom",
	TierUnary:   "unary",
	TierProduct: "product",
	TierSum:     "sum",
	TierCompare: "compare",
	TierAnd:     "and",
	TierOr:      "or",
}

var namedTiers = map[string]Tier{
	"atom":    TierAtom,
	"unary":   TierUnary,
	"product": TierProduct,
	"sum":     TierSum,
	"compare": TierCompare,
	"and":     TierAnd,
	"or":      TierOr,
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// UnmarshalYAML accepts tier names ("atom", "sum", ...) in the kind catalog.
func (t *Tier) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	tier, ok := namedTiers[name]
	if !ok {
		return errors.Newf("unknown precedence tier %q", name)
	}
	*t = tier
	return nil
}

// ValueType describes what a field or input slot holds, which drives how
// inline literals and defaults are rendered.
type ValueType string

const (
	TypeNumber     ValueType = "number"     // decimal source text
	TypeText       ValueType = "text"       // quoted string
	TypeBoolean    ValueType = "boolean"    // true / false token
	TypeNotes      ValueType = "notes"      // pitch list, rendered bracketed
	TypeIdentifier ValueType = "identifier" // emitted verbatim
	TypeSelect     ValueType = "select"     // one of the declared options
	TypeAny        ValueType = "any"        // inferred at render time
)

// SelectorOption binds an editor-side option value to the exact token the
// generated source carries.
type SelectorOption struct {
	Value string `yaml:"value" json:"value"`
	Token string `yaml:"token" json:"token"`
}

// FieldSpec declares one editable field on a block.
type FieldSpec struct {
	Name    string           `yaml:"name" json:"name"`
	Type    ValueType        `yaml:"type" json:"type"`
	Default string           `yaml:"default,omitempty" json:"default,omitempty"`
	Options []SelectorOption `yaml:"options,omitempty" json:"options,omitempty"`
}

// Option returns the selector option matching an editor-side value.
func (f FieldSpec) Option(value string) (SelectorOption, bool) {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return SelectorOption{}, false
}

// InputSpec declares one value input slot on a block. Default, when non-nil,
// is raw literal text rendered in the slot's type when the slot is unbound.
type InputSpec struct {
	Name    string    `yaml:"name" json:"name"`
	Type    ValueType `yaml:"type" json:"type"`
	Default *string   `yaml:"default,omitempty" json:"default,omitempty"`
}

// Spec describes one node kind: how it may connect and what it produces.
type Spec struct {
	Kind      string      `yaml:"kind" json:"kind"`
	Label     string      `yaml:"label" json:"label"`
	Category  string      `yaml:"category" json:"category"`
	Stackable bool        `yaml:"stackable,omitempty" json:"stackable,omitempty"`
	Value     bool        `yaml:"value,omitempty" json:"value,omitempty"`
	Tier      Tier        `yaml:"tier,omitempty" json:"tier,omitempty"`
	Scope     string      `yaml:"scope,omitempty" json:"scope,omitempty"`
	Hoist     bool        `yaml:"hoist,omitempty" json:"hoist,omitempty"`
	Fields    []FieldSpec `yaml:"fields,omitempty" json:"fields,omitempty"`
	Inputs    []InputSpec `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Blocks    []string    `yaml:"blocks,omitempty" json:"blocks,omitempty"`
}

// FieldSpec returns the declared field with the given name.
func (s Spec) FieldSpec(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// InputSpec returns the declared input slot with the given name.
func (s Spec) InputSpec(name string) (InputSpec, bool) {
	for _, in := range s.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return InputSpec{}, false
}

// DefinesScope reports whether nodes of this kind open a scope for their
// nested chains.
func (s Spec) DefinesScope() bool {
	return s.Scope != ""
}
