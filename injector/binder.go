package injector

import (
	"sync"

	"github.com/junioryono/cdi"
	"github.com/junioryono/cdi/internal/reflection"
)

// Binder collects bindings and builds them into an Injector.
//
// Binder follows a builder pattern: bindings are added with their lifetimes,
// then Build validates the dependency graph and returns the Injector. A Binder
// can be built once.
//
// Example:
//
//	b := injector.NewBinder()
//	b.AddSingleton(NewLogger)
//	b.AddSingleton(NewDatabase, injector.Name("primary"))
//	b.AddTransient(NewRequestHandler)
//
//	inj, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inj.Close()
type Binder struct {
	mu       sync.Mutex
	bindings []*binding
	index    map[string]*binding
	analyzer *reflection.Analyzer
	built    bool
}

// NewBinder creates an empty Binder.
func NewBinder() *Binder {
	return &Binder{
		index:    make(map[string]*binding),
		analyzer: reflection.New(),
	}
}

// AddSingleton binds a constructor or instance with singleton lifetime.
// A constructor runs at most once per Injector; an instance is returned as is.
func (b *Binder) AddSingleton(constructor any, opts ...AddOption) error {
	return b.add(constructor, LifetimeSingleton, opts...)
}

// AddTransient binds a constructor that runs on every resolution.
func (b *Binder) AddTransient(constructor any, opts ...AddOption) error {
	return b.add(constructor, LifetimeTransient, opts...)
}

func (b *Binder) add(constructor any, lifetime Lifetime, opts ...AddOption) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.built {
		return ErrBinderBuilt
	}

	bd, err := newBinding(b.analyzer, constructor, lifetime, opts...)
	if err != nil {
		return err
	}

	for _, key := range bd.keys {
		if reserved(key) {
			return cdi.ValidationError{Type: key.Type, Cause: ErrReservedBinding}
		}

		if _, exists := b.index[key.ID()]; exists {
			return DuplicateBindingError{Key: key}
		}
	}

	for _, key := range bd.keys {
		b.index[key.ID()] = bd
	}
	b.bindings = append(b.bindings, bd)

	return nil
}

// AddModules applies one or more modules to the Binder.
func (b *Binder) AddModules(modules ...ModuleOption) error {
	for _, module := range modules {
		if module == nil {
			continue
		}

		if err := module(b); err != nil {
			return err
		}
	}

	return nil
}

// Contains reports whether key is explicitly bound.
func (b *Binder) Contains(key cdi.TypeKey) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.index[key.ID()]
	return ok
}

// Count returns the number of bindings.
func (b *Binder) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.bindings)
}

// Build creates an Injector with default options.
func (b *Binder) Build() (*Injector, error) {
	return b.BuildWithOptions(nil)
}

// BuildWithOptions creates an Injector. It fails when the explicit bindings
// form a dependency cycle, or when an eager singleton cannot be created.
func (b *Binder) BuildWithOptions(options *Options) (*Injector, error) {
	b.mu.Lock()
	if b.built {
		b.mu.Unlock()
		return nil, ErrBinderBuilt
	}
	b.built = true

	bindings := make([]*binding, len(b.bindings))
	copy(bindings, b.bindings)

	index := make(map[string]*binding, len(b.index))
	for id, bd := range b.index {
		index[id] = bd
	}
	b.mu.Unlock()

	return newInjector(bindings, index, b.analyzer, options)
}
