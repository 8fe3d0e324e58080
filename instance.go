package cdi

import (
	"iter"
	"reflect"
	"slices"
)

// Instance is a lazy handle for beans of type T.
//
// Nothing is resolved when the handle is created or narrowed. Each call to
// Get performs a fresh lookup, so repeated calls may each trigger independent
// registry resolution; only the registry's own scoping decides whether the
// same instance comes back.
//
// Example:
//
//	handle := cdi.Select[*TestBean](bridge, cdi.ByName("testBean"))
//	bean, err := handle.Get()
type Instance[T any] struct {
	lookup     Lookup
	beanType   reflect.Type
	qualifiers []Qualifier
}

// InstanceHandle gives access to a single contextual instance and its
// destruction. Handles are not offered by the bridge.
type InstanceHandle[T any] interface {
	Get() (T, error)
	Destroy()
}

// NewInstance returns a handle that resolves T through lookup.
func NewInstance[T any](lookup Lookup, qualifiers ...Qualifier) Instance[T] {
	return Instance[T]{
		lookup:     lookup,
		beanType:   typeOf[T](),
		qualifiers: slices.Clone(qualifiers),
	}
}

// Type returns the bean type the handle resolves.
func (i Instance[T]) Type() reflect.Type {
	return i.beanType
}

// Qualifiers returns a copy of the handle's qualifiers.
func (i Instance[T]) Qualifiers() []Qualifier {
	return slices.Clone(i.qualifiers)
}

// Get resolves the bean. Only the first qualifier takes part in the lookup;
// registry keys carry a single qualifier.
func (i Instance[T]) Get() (T, error) {
	var zero T
	if i.lookup == nil {
		return zero, ErrRegistryNil
	}

	var (
		bean any
		err  error
	)
	if len(i.qualifiers) == 0 {
		bean, err = i.lookup.GetBean(i.beanType)
	} else {
		bean, err = i.lookup.GetQualifiedBean(i.beanType, i.qualifiers[0])
	}
	if err != nil {
		return zero, err
	}

	return assertBean[T](bean, "instance handle")
}

// Select returns a handle for the same type carrying exactly the given qualifiers.
func (i Instance[T]) Select(qualifiers ...Qualifier) Instance[T] {
	return Instance[T]{
		lookup:     i.lookup,
		beanType:   i.beanType,
		qualifiers: slices.Clone(qualifiers),
	}
}

// SelectType returns a handle for the narrower type U carrying the given qualifiers.
func SelectType[U, T any](i Instance[T], qualifiers ...Qualifier) Instance[U] {
	return NewInstance[U](i.lookup, qualifiers...)
}

// All yields exactly one element: the result of Get.
func (i Instance[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		yield(i.Get())
	}
}

// IsUnsatisfied always reports false; see BeanManager.ContainsBean.
func (i Instance[T]) IsUnsatisfied() bool {
	return false
}

// IsAmbiguous always reports false; lookups never yield more than one bean.
func (i Instance[T]) IsAmbiguous() bool {
	return false
}

// Destroy does nothing. The registry owns the lifecycle of its instances.
func (i Instance[T]) Destroy(T) {}

// Handle is not offered by the bridge.
func (i Instance[T]) Handle() (InstanceHandle[T], error) {
	return nil, NotImplementedError{Operation: "Instance.Handle"}
}

// Handles is not offered by the bridge.
func (i Instance[T]) Handles() ([]InstanceHandle[T], error) {
	return nil, NotImplementedError{Operation: "Instance.Handles"}
}

// dynamicInstance returns a handle for a type known only at runtime.
func dynamicInstance(lookup Lookup, beanType reflect.Type, qualifiers []Qualifier) Instance[any] {
	return Instance[any]{
		lookup:     lookup,
		beanType:   beanType,
		qualifiers: slices.Clone(qualifiers),
	}
}
