package cdi

import (
	"reflect"
)

// CDI is the bridge entry point: the facade and the standard adapter over one
// Registry. Create it once at process start and pass it to the code that
// needs it; there is no global instance.
//
// Example:
//
//	bridge, err := cdi.New(inj, cdi.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bean, err := cdi.GetNamed[*TestBean](bridge, "testBean")
type CDI struct {
	manager *BeanManager
	adapter *Adapter
}

var (
	_ Lookup   = (*CDI)(nil)
	_ Provider = (*CDI)(nil)
)

// New creates a CDI over registry.
func New(registry Registry, opts ...Option) (*CDI, error) {
	manager, err := NewBeanManager(registry, opts...)
	if err != nil {
		return nil, err
	}

	adapter, err := NewAdapter(manager, opts...)
	if err != nil {
		return nil, err
	}

	return &CDI{manager: manager, adapter: adapter}, nil
}

// BeanManager returns the lookup facade.
func (c *CDI) BeanManager() *BeanManager {
	return c.manager
}

// Adapter returns the standard bean manager contract implementation.
func (c *CDI) Adapter() *Adapter {
	return c.adapter
}

// Select returns a lazy handle for beanType. The type must be a plain named
// type or a pointer to one.
func (c *CDI) Select(beanType reflect.Type, qualifiers ...Qualifier) (Instance[any], error) {
	if err := checkNominal(beanType); err != nil {
		return Instance[any]{}, err
	}

	return dynamicInstance(c.manager, beanType, qualifiers), nil
}

// GetBean delegates to the BeanManager.
func (c *CDI) GetBean(beanType reflect.Type) (any, error) {
	return c.manager.GetBean(beanType)
}

// GetNamedBean delegates to the BeanManager.
func (c *CDI) GetNamedBean(beanType reflect.Type, name string) (any, error) {
	return c.manager.GetNamedBean(beanType, name)
}

// GetQualifiedBean delegates to the BeanManager.
func (c *CDI) GetQualifiedBean(beanType reflect.Type, qualifier Qualifier) (any, error) {
	return c.manager.GetQualifiedBean(beanType, qualifier)
}

// GetBeans delegates to the BeanManager.
func (c *CDI) GetBeans(beanType reflect.Type) ([]any, error) {
	return c.manager.GetBeans(beanType)
}

// ContainsBean delegates to the BeanManager.
func (c *CDI) ContainsBean(beanType reflect.Type) bool {
	return c.manager.ContainsBean(beanType)
}

// Select returns a lazy handle for T resolved through c.
func Select[T any](c *CDI, qualifiers ...Qualifier) Instance[T] {
	return NewInstance[T](c.manager, qualifiers...)
}
