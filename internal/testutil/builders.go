package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junioryono/cdi/injector"
)

// BinderBuilder provides a fluent interface for building test injectors
type BinderBuilder struct {
	t      *testing.T
	binder *injector.Binder
}

// NewBinderBuilder creates a new BinderBuilder
func NewBinderBuilder(t *testing.T) *BinderBuilder {
	return &BinderBuilder{
		t:      t,
		binder: injector.NewBinder(),
	}
}

// WithSingleton adds a singleton binding
func (b *BinderBuilder) WithSingleton(constructor any, opts ...injector.AddOption) *BinderBuilder {
	require.NoError(b.t, b.binder.AddSingleton(constructor, opts...))
	return b
}

// WithTransient adds a transient binding
func (b *BinderBuilder) WithTransient(constructor any, opts ...injector.AddOption) *BinderBuilder {
	require.NoError(b.t, b.binder.AddTransient(constructor, opts...))
	return b
}

// WithModule adds a module
func (b *BinderBuilder) WithModule(module injector.ModuleOption) *BinderBuilder {
	require.NoError(b.t, b.binder.AddModules(module))
	return b
}

// Build builds the injector and closes it when the test ends
func (b *BinderBuilder) Build() *injector.Injector {
	b.t.Helper()

	inj, err := b.binder.Build()
	require.NoError(b.t, err)
	b.t.Cleanup(func() { _ = inj.Close() })

	return inj
}
