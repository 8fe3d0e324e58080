package injector

import (
	"errors"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/junioryono/cdi"
	"github.com/junioryono/cdi/internal/reflection"
)

// resolve produces the value for key. path holds the keys under
// construction on this call chain.
func (i *Injector) resolve(key cdi.TypeKey, path []cdi.TypeKey) (reflect.Value, error) {
	for n, k := range path {
		if k.Equal(key) {
			return reflect.Value{}, cdi.CircularDependencyError{Path: slices.Clone(path[n:])}
		}
	}

	if reserved(key) {
		return reflect.ValueOf(i), nil
	}

	if b, ok := i.bindings[key.ID()]; ok {
		return i.instantiate(b, key, path)
	}

	if key.IsQualified() || i.options.RequireExplicitBindings || key.Type.Kind() == reflect.Interface {
		return reflect.Value{}, cdi.ResolutionError{Key: key, Cause: cdi.ErrBindingNotFound}
	}

	if !reflection.IsTarget(key.Type) {
		return reflect.Value{}, cdi.ResolutionError{Key: key, Cause: cdi.ErrNoInjectableConstructor}
	}

	return i.justInTime(key, path)
}

// instantiate produces the value of an explicit binding.
func (i *Injector) instantiate(b *binding, key cdi.TypeKey, path []cdi.TypeKey) (reflect.Value, error) {
	if b.isInstance() {
		return b.info.Value, nil
	}

	path = append(slices.Clone(path), key)

	create := func() (reflect.Value, error) {
		args, err := reflection.BuildArguments(b.info, i.dependencyResolver(path))
		if err != nil {
			return reflect.Value{}, cdi.ResolutionError{Key: key, Cause: err}
		}

		v, err := reflection.Invoke(b.info, args)
		if err != nil {
			return reflect.Value{}, cdi.ResolutionError{Key: key, Cause: panicError(b.info.Type, err)}
		}

		i.logger.Debug("binding constructed",
			zap.Stringer("key", key),
			zap.Stringer("lifetime", b.lifetime),
		)

		return v, nil
	}

	if b.lifetime == LifetimeTransient {
		return create()
	}

	return i.singleton(b.id, create)
}

// justInTime constructs an unbound struct type from its injection points.
func (i *Injector) justInTime(key cdi.TypeKey, path []cdi.TypeKey) (reflect.Value, error) {
	info, err := i.analyzer.AnalyzeTarget(key.Type)
	if err != nil {
		return reflect.Value{}, cdi.ResolutionError{
			Key:   key,
			Cause: AnalysisError{Constructor: key.Type, Cause: err},
		}
	}

	path = append(slices.Clone(path), key)

	create := func() (reflect.Value, error) {
		v, err := reflection.Construct(info, i.dependencyResolver(path))
		if err != nil {
			return reflect.Value{}, cdi.ResolutionError{Key: key, Cause: panicError(key.Type, err)}
		}

		i.logger.Debug("just-in-time construction",
			zap.Stringer("key", key),
			zap.Bool("singleton", info.Singleton),
		)

		return v, nil
	}

	if !info.Singleton {
		return create()
	}

	return i.singleton("jit "+key.ID(), create)
}

// singleton returns the cached value for id, creating it at most once.
func (i *Injector) singleton(id string, create func() (reflect.Value, error)) (reflect.Value, error) {
	if v, ok := i.singletons.Load(id); ok {
		return v.(reflect.Value), nil
	}

	v, err, _ := i.group.Do(id, func() (any, error) {
		if v, ok := i.singletons.Load(id); ok {
			return v, nil
		}

		v, err := create()
		if err != nil {
			return nil, err
		}

		i.singletons.Store(id, v)
		i.track(v)

		return v, nil
	})
	if err != nil {
		return reflect.Value{}, err
	}

	return v.(reflect.Value), nil
}

// dependencyResolver resolves constructor parameters and injection points.
// Optional dependencies fall back to the zero value only when nothing is
// bound for them; failures inside a bound dependency still propagate.
func (i *Injector) dependencyResolver(path []cdi.TypeKey) reflection.ResolveFunc {
	return func(p reflection.Parameter) (reflect.Value, error) {
		key := parameterKey(p)

		v, err := i.resolve(key, path)
		if err != nil && p.Optional && missing(err, key) {
			return reflect.Value{}, nil
		}

		return v, err
	}
}

// missing reports whether err says that key itself has no binding.
func missing(err error, key cdi.TypeKey) bool {
	var re cdi.ResolutionError
	if !errors.As(err, &re) || !re.Key.Equal(key) {
		return false
	}

	return re.Cause == cdi.ErrBindingNotFound || re.Cause == cdi.ErrNoInjectableConstructor
}

// panicError converts a recovered constructor panic into a cdi.ConstructorPanicError.
func panicError(constructor reflect.Type, err error) error {
	var pe *reflection.PanicError
	if errors.As(err, &pe) {
		return cdi.ConstructorPanicError{
			Constructor: constructor,
			Panic:       pe.Value,
			Stack:       pe.Stack,
		}
	}

	return err
}
