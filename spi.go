package cdi

import (
	"reflect"

	"github.com/google/uuid"
)

// InjectionPoint describes a member that receives an injected bean.
type InjectionPoint struct {
	// Type is the requested bean type.
	Type reflect.Type

	// Qualifiers declared on the member.
	Qualifiers []Qualifier

	// Member is the field or parameter name, for diagnostics.
	Member string

	// Delegate marks decorator delegate injection points.
	Delegate bool
}

// AnnotatedType is the metadata of a type as seen by bean authoring extensions.
type AnnotatedType struct {
	Type reflect.Type
}

// BeanAttributes are the attributes a bean would be defined with.
type BeanAttributes struct {
	Types      []reflect.Type
	Qualifiers []Qualifier
	Name       string
	Scope      reflect.Type
}

// Bean is bean metadata. The bridge never produces Bean values; they exist so
// the authoring half of the contract has a shape.
type Bean struct {
	BeanAttributes

	BeanType reflect.Type
}

// Decorator describes a decorator bean. No decorators are ever applied.
type Decorator struct {
	BeanType       reflect.Type
	DecoratedTypes []reflect.Type
}

// Interceptor describes an interceptor bean. No interceptors are ever applied.
type Interceptor struct {
	BeanType reflect.Type
	Bindings []Qualifier
}

// ObserverMethod describes an event observer. No observers are ever notified.
type ObserverMethod struct {
	ObservedType reflect.Type
	Qualifiers   []Qualifier
}

// InterceptionType is the kind of lifecycle or business method interception.
type InterceptionType int

const (
	AroundInvoke InterceptionType = iota
	AroundConstruct
	AroundTimeout
	PostConstruct
	PreDestroy
	PrePassivate
	PostActivate
)

// CreationalContext tracks incomplete instances during bean creation.
// The registry has no creational lifecycle, so Push and Release do nothing.
type CreationalContext interface {
	// ID identifies the context in logs.
	ID() string

	// Push registers an incompletely initialized instance.
	Push(incompleteInstance any)

	// Release destroys dependent objects of the instance being created.
	Release()
}

type creationalContext struct {
	id         string
	contextual any
}

func newCreationalContext(contextual any) *creationalContext {
	return &creationalContext{
		id:         uuid.NewString(),
		contextual: contextual,
	}
}

func (c *creationalContext) ID() string { return c.id }

func (c *creationalContext) Push(any) {}

func (c *creationalContext) Release() {}
