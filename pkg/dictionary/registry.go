package dictionary

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bastiangx/morpho/pkg/lexicon"
)

// Factory builds the transform of a model from its manifest.
type Factory func(Manifest) (lexicon.Transform, error)

// Names of the built-in transforms.
const (
	TransformIdentity = "identity"
	TransformRules    = "rules"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

func init() {
	Register(TransformIdentity, func(Manifest) (lexicon.Transform, error) {
		return lexicon.Identity, nil
	})
	Register(TransformRules, func(m Manifest) (lexicon.Transform, error) {
		rules := make([]lexicon.Rule, 0, len(m.Rules))
		for _, r := range m.Rules {
			rules = append(rules, r.Rule())
		}
		return lexicon.RuleTransform{Rules: rules}, nil
	})
}

// Register makes a transform available to manifests under name. It panics if
// name is empty, factory is nil, or name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if name == "" {
		panic("dictionary: Register with empty name")
	}
	if factory == nil {
		panic("dictionary: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("dictionary: Register called twice for " + name)
	}
	registry[name] = factory
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[name]
	return f, ok
}

// Transforms returns the registered transform names, sorted.
func Transforms() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// transformName resolves the transform a manifest asks for. A manifest that
// names none uses rules when it has any and identity otherwise.
func transformName(m Manifest) string {
	switch {
	case m.Transform != "":
		return m.Transform
	case len(m.Rules) > 0:
		return TransformRules
	default:
		return TransformIdentity
	}
}

// buildTransform instantiates the manifest's transform.
func buildTransform(m Manifest) (string, lexicon.Transform, error) {
	name := transformName(m)
	factory, ok := Lookup(name)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	t, err := factory(m)
	if err != nil {
		return "", nil, fmt.Errorf("transform %q: %w", name, err)
	}
	return name, t, nil
}
