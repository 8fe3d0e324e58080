package cdi

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// BeanManager is the lookup facade over a Registry.
//
// Every call is a single delegation to the Registry; the manager holds no
// instances and adds no caching, retries or fallbacks. Errors returned by the
// Registry reach the caller unchanged.
//
// Example:
//
//	manager, err := cdi.NewBeanManager(registry)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bean, err := manager.GetNamedBean(reflect.TypeOf(&TestBean{}), "testBean")
type BeanManager struct {
	registry Registry
	logger   *zap.Logger
}

// NewBeanManager creates a facade over registry.
func NewBeanManager(registry Registry, opts ...Option) (*BeanManager, error) {
	if registry == nil {
		return nil, ErrRegistryNil
	}

	o := newOptions(opts)
	return &BeanManager{
		registry: registry,
		logger:   o.logger.Named("cdi"),
	}, nil
}

// Registry returns the registry the manager delegates to.
func (m *BeanManager) Registry() Registry {
	return m.registry
}

// GetBean returns an instance of beanType.
func (m *BeanManager) GetBean(beanType reflect.Type) (any, error) {
	return m.resolve(TypeKey{Type: beanType})
}

// GetNamedBean returns the instance of beanType bound under name.
func (m *BeanManager) GetNamedBean(beanType reflect.Type, name string) (any, error) {
	return m.resolve(TypeKey{Type: beanType, Qualifier: ByName(name)})
}

// GetQualifiedBean returns the instance of beanType bound under the marker qualifier.
func (m *BeanManager) GetQualifiedBean(beanType reflect.Type, qualifier Qualifier) (any, error) {
	return m.resolve(TypeKey{Type: beanType, Qualifier: ByMarker(qualifier)})
}

// GetBeans returns exactly one instance: the result of GetBean.
//
// The registry exposes no way to enumerate every binding that satisfies a
// type, so callers must not expect more than one element even when several
// candidates exist.
func (m *BeanManager) GetBeans(beanType reflect.Type) ([]any, error) {
	bean, err := m.GetBean(beanType)
	if err != nil {
		return nil, err
	}

	return []any{bean}, nil
}

// ContainsBean always reports true.
//
// Registries may construct any type with an injectable constructor on demand,
// so existence cannot be decided without attempting construction. The
// manager reports existence instead of constructing just to answer the
// question, which makes ContainsBean useless for negative checks.
func (m *BeanManager) ContainsBean(beanType reflect.Type) bool {
	return true
}

func (m *BeanManager) resolve(key TypeKey) (any, error) {
	if key.Type == nil {
		return nil, ValidationError{Cause: ErrBeanTypeNil}
	}

	bean, err := m.registry.Resolve(key)
	if err != nil {
		m.logger.Debug("bean lookup failed", zap.Stringer("key", key), zap.Error(err))
		return nil, err
	}

	m.logger.Debug("bean resolved", zap.Stringer("key", key))
	return bean, nil
}

// Lookup is the facade surface the generic helpers operate on.
// *BeanManager and *CDI implement it.
type Lookup interface {
	GetBean(beanType reflect.Type) (any, error)
	GetNamedBean(beanType reflect.Type, name string) (any, error)
	GetQualifiedBean(beanType reflect.Type, qualifier Qualifier) (any, error)
	GetBeans(beanType reflect.Type) ([]any, error)
	ContainsBean(beanType reflect.Type) bool
}

var _ Lookup = (*BeanManager)(nil)

// Get resolves a bean of type T.
//
// Example:
//
//	service, err := cdi.Get[*UserService](manager)
func Get[T any](lookup Lookup) (T, error) {
	var zero T
	if lookup == nil {
		return zero, ErrRegistryNil
	}

	bean, err := lookup.GetBean(typeOf[T]())
	if err != nil {
		return zero, err
	}

	return assertBean[T](bean, "type assertion")
}

// GetNamed resolves the bean of type T bound under name.
//
// Example:
//
//	bean, err := cdi.GetNamed[*TestBean](manager, "testBean")
func GetNamed[T any](lookup Lookup, name string) (T, error) {
	var zero T
	if lookup == nil {
		return zero, ErrRegistryNil
	}

	bean, err := lookup.GetNamedBean(typeOf[T](), name)
	if err != nil {
		return zero, err
	}

	return assertBean[T](bean, "type assertion for named bean")
}

// GetQualified resolves the bean of type T bound under a marker qualifier.
func GetQualified[T any](lookup Lookup, qualifier Qualifier) (T, error) {
	var zero T
	if lookup == nil {
		return zero, ErrRegistryNil
	}

	bean, err := lookup.GetQualifiedBean(typeOf[T](), qualifier)
	if err != nil {
		return zero, err
	}

	return assertBean[T](bean, "type assertion for qualified bean")
}

// GetAll resolves the beans of type T. The result never holds more than one
// element; see BeanManager.GetBeans.
func GetAll[T any](lookup Lookup) ([]T, error) {
	if lookup == nil {
		return nil, ErrRegistryNil
	}

	beans, err := lookup.GetBeans(typeOf[T]())
	if err != nil {
		return nil, err
	}

	results := make([]T, 0, len(beans))
	for i, bean := range beans {
		result, err := assertBean[T](bean, fmt.Sprintf("type assertion for bean %d", i))
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Contains reports whether a bean of type T exists. It is always true for a
// non-nil lookup; see BeanManager.ContainsBean.
func Contains[T any](lookup Lookup) bool {
	if lookup == nil {
		return false
	}

	return lookup.ContainsBean(typeOf[T]())
}

// MustGet resolves a bean of type T and panics if it cannot.
// Use it during application initialization where a missing bean is fatal.
func MustGet[T any](lookup Lookup) T {
	bean, err := Get[T](lookup)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve bean: %v", err))
	}

	return bean
}

// MustGetNamed resolves a named bean of type T and panics if it cannot.
func MustGetNamed[T any](lookup Lookup, name string) T {
	bean, err := GetNamed[T](lookup, name)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve bean %q: %v", name, err))
	}

	return bean
}

func assertBean[T any](bean any, context string) (T, error) {
	result, ok := bean.(T)
	if !ok {
		var zero T
		return zero, TypeMismatchError{
			Expected: typeOf[T](),
			Actual:   reflect.TypeOf(bean),
			Context:  context,
		}
	}

	return result, nil
}
