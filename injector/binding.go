package injector

import (
	"errors"
	"reflect"

	"github.com/junioryono/cdi"
	"github.com/junioryono/cdi/internal/reflection"
)

// binding describes how the injector produces one value.
type binding struct {
	// id is the ID of the first key; it identifies the binding in caches and
	// in the dependency graph.
	id string

	// keys are the keys the binding is reachable under.
	keys []cdi.TypeKey

	lifetime Lifetime

	info *reflection.ConstructorInfo

	// dependencies are the keys the constructor asks for.
	dependencies []cdi.TypeKey
}

func newBinding(analyzer *reflection.Analyzer, constructor any, lifetime Lifetime, opts ...AddOption) (*binding, error) {
	if constructor == nil {
		return nil, cdi.ValidationError{Cause: ErrConstructorNil}
	}

	if !lifetime.IsValid() {
		return nil, LifetimeError{Value: lifetime}
	}

	options := &addOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyAddOption(options)
		}
	}

	info, err := analyzer.Analyze(constructor)
	if err != nil {
		return nil, AnalysisError{Constructor: constructor, Cause: err}
	}

	if !info.IsFunc && lifetime != LifetimeSingleton {
		return nil, cdi.ValidationError{
			Type:  info.Result,
			Cause: errors.New("instances can only be bound as singletons"),
		}
	}

	if err := options.Validate(info.Result); err != nil {
		return nil, cdi.ValidationError{Type: info.Result, Cause: err}
	}

	b := &binding{
		keys:     options.keys(info.Result),
		lifetime: lifetime,
		info:     info,
	}
	b.id = b.keys[0].ID()

	for _, p := range info.Parameters {
		b.dependencies = append(b.dependencies, parameterKey(p))
	}

	return b, nil
}

// isInstance reports whether the binding always yields the same bound value.
func (b *binding) isInstance() bool {
	return !b.info.IsFunc
}

func (b *binding) label() string {
	return b.keys[0].String()
}

// parameterKey returns the key a constructor parameter or injection point asks for.
func parameterKey(p reflection.Parameter) cdi.TypeKey {
	if p.Name != "" {
		return cdi.NamedKey(p.Type, p.Name)
	}
	return cdi.Key(p.Type)
}

// reserved reports whether key is bound by every injector to itself.
func reserved(key cdi.TypeKey) bool {
	return !key.IsQualified() && (key.Type == injectorType || key.Type == registryType)
}

var (
	injectorType = reflect.TypeOf((*Injector)(nil))
	registryType = reflect.TypeOf((*cdi.Registry)(nil)).Elem()
)
