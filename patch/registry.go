package patch

import (
	_ "embed"
	"sync"

	"github.com/tactus/baton/errors"
	"gopkg.in/yaml.v3"
)

// kindsYAML is the built-in kind catalog. The editor palette, the compiler
// dispatch table, and the /api/kinds endpoint all derive from this file.
//
//go:embed kinds.yaml
var kindsYAML []byte

// Registry maps node kinds to their specs. Lookups during compilation go
// through here; a kind the registry does not know is a fatal compile error.
type Registry struct {
	specs map[string]Spec
	order []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		specs: make(map[string]Spec),
	}
}

// Register adds a spec, rejecting duplicates and malformed entries.
func (r *Registry) Register(spec Spec) error {
	if spec.Kind == "" {
		return errors.New("spec has empty kind")
	}
	if _, exists := r.specs[spec.Kind]; exists {
		return errors.Newf("kind %q already registered", spec.Kind)
	}
	if spec.Stackable && spec.Value {
		return errors.Newf("kind %q cannot be both stackable and a value", spec.Kind)
	}
	if spec.Hoist && spec.Scope == "" {
		return errors.Newf("hoisted kind %q must define a scope", spec.Kind)
	}
	for _, f := range spec.Fields {
		if f.Type == TypeSelect {
			if len(f.Options) == 0 {
				return errors.Newf("selector field %q on kind %q declares no options", f.Name, spec.Kind)
			}
			if f.Default != "" {
				if _, ok := f.Option(f.Default); !ok {
					return errors.Newf("selector field %q on kind %q defaults to undeclared option %q", f.Name, spec.Kind, f.Default)
				}
			}
		}
	}
	r.specs[spec.Kind] = spec
	r.order = append(r.order, spec.Kind)
	return nil
}

// Lookup returns the spec for a kind. Unknown kinds report ErrUnknownKind.
func (r *Registry) Lookup(kind string) (Spec, error) {
	spec, ok := r.specs[kind]
	if !ok {
		err := errors.Wrapf(errors.ErrUnknownKind, "kind %q", kind)
		return Spec{}, errors.WithHint(err, "the patch may come from a newer editor than this compiler")
	}
	return spec, nil
}

// Has reports whether a kind is registered.
func (r *Registry) Has(kind string) bool {
	_, ok := r.specs[kind]
	return ok
}

// Kinds returns all kind names in catalog order.
func (r *Registry) Kinds() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Specs returns all specs in catalog order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, 0, len(r.order))
	for _, kind := range r.order {
		out = append(out, r.specs[kind])
	}
	return out
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.specs)
}

type catalogFile struct {
	Kinds []Spec `yaml:"kinds"`
}

// loadCatalog builds a registry from YAML catalog bytes.
func loadCatalog(data []byte) (*Registry, error) {
	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "failed to parse kind catalog")
	}
	if len(catalog.Kinds) == 0 {
		return nil, errors.New("kind catalog is empty")
	}

	registry := NewRegistry()
	for _, spec := range catalog.Kinds {
		if err := registry.Register(spec); err != nil {
			return nil, errors.Wrap(err, "failed to load kind catalog")
		}
	}
	return registry, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded kind catalog.
// The catalog is parsed once; subsequent calls share the same registry.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = loadCatalog(kindsYAML)
	})
	return defaultRegistry, defaultErr
}

// MustDefault is Default for callers that treat a broken embedded catalog
// as a programmer error.
func MustDefault() *Registry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}
