// Package doregistry serves cdi lookups from a github.com/samber/do/v2 injector.
//
// Services are registered under the canonical ID of their cdi.TypeKey, so
// qualifiers of any kind map onto do's named services:
//
//	root := do.New()
//	r := doregistry.New(root)
//
//	doregistry.Provide(r, func(i do.Injector) (*TestBean, error) {
//	    return NewTestBean("test"), nil
//	}, cdi.ByName("testBean"))
//
//	manager, _ := cdi.NewBeanManager(r)
package doregistry

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/samber/do/v2"
	"go.uber.org/zap"

	"github.com/junioryono/cdi"
)

// Registry adapts a do injector to cdi.Registry.
type Registry struct {
	root   *do.RootScope
	logger *zap.Logger
}

var _ cdi.Registry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for debug events. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New wraps root. A nil root gets a fresh injector.
func New(root *do.RootScope, opts ...Option) *Registry {
	if root == nil {
		root = do.New()
	}

	r := &Registry{
		root:   root,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = r.logger.Named("doregistry")

	return r
}

// Injector returns the wrapped do injector.
func (r *Registry) Injector() *do.RootScope {
	return r.root
}

// HealthCheck runs the health checks of the wrapped injector.
func (r *Registry) HealthCheck() map[string]error {
	return r.root.HealthCheck()
}

// Resolve invokes the service registered for key.
func (r *Registry) Resolve(key cdi.TypeKey) (any, error) {
	if key.Type == nil {
		return nil, cdi.ValidationError{Cause: cdi.ErrBeanTypeNil}
	}

	instance, err := do.InvokeNamed[any](r.root, ServiceName(key))
	if err != nil {
		r.logger.Debug("resolution failed", zap.Stringer("key", key), zap.Error(err))

		if errors.Is(err, do.ErrServiceNotFound) {
			err = fmt.Errorf("%w: %w", cdi.ErrBindingNotFound, err)
		}
		return nil, cdi.ResolutionError{Key: key, Cause: err}
	}

	return instance, nil
}

// ServiceName returns the do service name for key.
func ServiceName(key cdi.TypeKey) string {
	return key.ID()
}

// Provide registers a lazy singleton for T.
func Provide[T any](r *Registry, provider func(do.Injector) (T, error), qualifier ...cdi.Qualifier) {
	do.ProvideNamed[any](r.root, ServiceName(cdi.KeyFor[T](qualifier...)), erase(provider))
}

// ProvideTransient registers a provider that runs on every resolution.
func ProvideTransient[T any](r *Registry, provider func(do.Injector) (T, error), qualifier ...cdi.Qualifier) {
	do.ProvideNamedTransient[any](r.root, ServiceName(cdi.KeyFor[T](qualifier...)), erase(provider))
}

// ProvideValue registers an existing value for T.
func ProvideValue[T any](r *Registry, value T, qualifier ...cdi.Qualifier) {
	do.ProvideNamedValue[any](r.root, ServiceName(cdi.KeyFor[T](qualifier...)), value)
}

// Invoke resolves T from inside a provider, honoring the naming used by
// Provide.
func Invoke[T any](i do.Injector, qualifier ...cdi.Qualifier) (T, error) {
	var zero T

	key := cdi.KeyFor[T](qualifier...)
	instance, err := do.InvokeNamed[any](i, ServiceName(key))
	if err != nil {
		return zero, err
	}

	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, cdi.TypeMismatchError{
			Expected: key.Type,
			Actual:   reflect.TypeOf(instance),
			Context:  "type assertion",
		}
	}

	return result, nil
}

// erase registers providers as any so every service shares one invocation path.
func erase[T any](provider func(do.Injector) (T, error)) func(do.Injector) (any, error) {
	return func(i do.Injector) (any, error) {
		return provider(i)
	}
}
