package cdi

import (
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// Adapter implements the standard bean manager contract on top of a
// BeanManager.
//
// Only lookups and qualifier handling map onto the registry. Classification
// queries, decorators, interceptors, events and creational contexts are inert:
// calls are accepted and return false or empty results. Bean authoring,
// passivation and contexts fail with NotImplementedError. Supports reports
// which of these applies to each Capability.
type Adapter struct {
	manager *BeanManager
	logger  *zap.Logger
}

// NewAdapter creates an Adapter delegating lookups to manager.
func NewAdapter(manager *BeanManager, opts ...Option) (*Adapter, error) {
	if manager == nil {
		return nil, ErrRegistryNil
	}

	o := newOptions(opts)
	return &Adapter{
		manager: manager,
		logger:  o.logger.Named("cdi.adapter"),
	}, nil
}

// BeanManager returns the facade the adapter delegates to.
func (a *Adapter) BeanManager() *BeanManager {
	return a.manager
}

// Supports reports how the adapter handles a capability.
func (a *Adapter) Supports(c Capability) Support {
	if s, ok := capabilitySupport[c]; ok {
		return s
	}
	return Unsupported
}

// ========================================
// Lookups
// ========================================

// GetReference returns a contextual reference for beanType.
// Only plain named types and pointers to them are supported.
func (a *Adapter) GetReference(beanType reflect.Type, cc CreationalContext) (any, error) {
	if err := checkNominal(beanType); err != nil {
		return nil, err
	}

	return a.manager.GetBean(beanType)
}

// GetInjectableReference returns the reference to inject into ip.
// The lookup uses the injection point's type only.
func (a *Adapter) GetInjectableReference(ip InjectionPoint, cc CreationalContext) (any, error) {
	if err := checkNominal(ip.Type); err != nil {
		return nil, err
	}

	return a.manager.GetBean(ip.Type)
}

// Validate accepts every injection point; the registry validates lazily on lookup.
func (a *Adapter) Validate(ip InjectionPoint) error {
	return nil
}

// CreateInstance returns an untyped Instance handle. Narrow it with Select or
// SelectType before calling Get.
func (a *Adapter) CreateInstance() Instance[any] {
	return dynamicInstance(a.manager, typeOf[any](), nil)
}

// ========================================
// Qualifiers and interceptor bindings
// ========================================

// QualifiersEquivalent reports whether two qualifiers are structurally equal.
func (a *Adapter) QualifiersEquivalent(q1, q2 Qualifier) bool {
	return QualifiersEquivalent(q1, q2)
}

// QualifierHash returns a hash code consistent with QualifiersEquivalent.
func (a *Adapter) QualifierHash(q Qualifier) uint64 {
	return QualifierHash(q)
}

// InterceptorBindingsEquivalent reports whether two bindings are structurally equal.
func (a *Adapter) InterceptorBindingsEquivalent(b1, b2 any) bool {
	return QualifiersEquivalent(b1, b2)
}

// InterceptorBindingHash returns a hash code consistent with InterceptorBindingsEquivalent.
func (a *Adapter) InterceptorBindingHash(b any) uint64 {
	return QualifierHash(b)
}

// ========================================
// Classification (inert)
// ========================================

// IsScope always reports false; scope annotations are not modeled.
func (a *Adapter) IsScope(annotationType reflect.Type) bool { return false }

// IsNormalScope always reports false.
func (a *Adapter) IsNormalScope(annotationType reflect.Type) bool { return false }

// IsPassivatingScope always reports false.
func (a *Adapter) IsPassivatingScope(annotationType reflect.Type) bool { return false }

// IsQualifier always reports false; any value may act as a qualifier marker.
func (a *Adapter) IsQualifier(annotationType reflect.Type) bool { return false }

// IsStereotype always reports false.
func (a *Adapter) IsStereotype(annotationType reflect.Type) bool { return false }

// IsInterceptorBinding always reports false.
func (a *Adapter) IsInterceptorBinding(annotationType reflect.Type) bool { return false }

// StereotypeDefinition returns an empty, non-nil slice.
func (a *Adapter) StereotypeDefinition(stereotype reflect.Type) []any { return []any{} }

// InterceptorBindingDefinition returns an empty, non-nil slice.
func (a *Adapter) InterceptorBindingDefinition(bindingType reflect.Type) []any { return []any{} }

// IsMatchingBean always reports false; bean metadata is never produced.
func (a *Adapter) IsMatchingBean(beanTypes []reflect.Type, beanQualifiers []Qualifier, requiredType reflect.Type, requiredQualifiers []Qualifier) bool {
	return false
}

// IsMatchingEvent always reports false; events are never dispatched.
func (a *Adapter) IsMatchingEvent(eventType reflect.Type, eventQualifiers []Qualifier, observedType reflect.Type, observedQualifiers []Qualifier) bool {
	return false
}

// ========================================
// Decorators, interceptors and events (inert)
// ========================================

// ResolveDecorators returns no decorators.
func (a *Adapter) ResolveDecorators(types []reflect.Type, qualifiers ...Qualifier) []Decorator {
	return []Decorator{}
}

// ResolveInterceptors returns no interceptors.
func (a *Adapter) ResolveInterceptors(kind InterceptionType, bindings ...any) []Interceptor {
	return []Interceptor{}
}

// ResolveObserverMethods returns no observers.
func (a *Adapter) ResolveObserverMethods(event any, qualifiers ...Qualifier) []ObserverMethod {
	return []ObserverMethod{}
}

// FireEvent accepts the event without dispatching it.
func (a *Adapter) FireEvent(event any, qualifiers ...Qualifier) {
	a.logger.Debug("event dropped", zap.String("type", formatType(reflect.TypeOf(event))))
}

// Event returns an inert event handle.
func (a *Adapter) Event() Event {
	return inertEvent{}
}

// CreateCreationalContext returns a context whose Push and Release do nothing.
func (a *Adapter) CreateCreationalContext(contextual any) CreationalContext {
	return newCreationalContext(contextual)
}

// Contexts returns no contexts for any scope.
func (a *Adapter) Contexts(scopeType reflect.Type) []any {
	return []any{}
}

// ========================================
// Unsupported
// ========================================

// Context is not offered: the registry has no scope contexts.
func (a *Adapter) Context(scopeType reflect.Type) (any, error) {
	return nil, a.notImplemented("Context")
}

// Bean is not offered: the registry exposes no bean metadata.
func (a *Adapter) Bean(beanType reflect.Type, qualifiers ...Qualifier) (*Bean, error) {
	return nil, a.notImplemented("Bean")
}

// Beans is not offered: the registry cannot enumerate its bindings.
func (a *Adapter) Beans(beanType reflect.Type, qualifiers ...Qualifier) ([]*Bean, error) {
	return nil, a.notImplemented("Beans")
}

// BeansByName is not offered: the registry cannot enumerate its bindings.
func (a *Adapter) BeansByName(name string) ([]*Bean, error) {
	return nil, a.notImplemented("BeansByName")
}

// ResolveBean is not offered.
func (a *Adapter) ResolveBean(beans []*Bean) (*Bean, error) {
	return nil, a.notImplemented("ResolveBean")
}

// PassivationCapableBean is not offered.
func (a *Adapter) PassivationCapableBean(id string) (*Bean, error) {
	return nil, a.notImplemented("PassivationCapableBean")
}

// CreateAnnotatedType is not offered.
func (a *Adapter) CreateAnnotatedType(t reflect.Type) (*AnnotatedType, error) {
	return nil, a.notImplemented("CreateAnnotatedType")
}

// CreateBeanAttributes is not offered.
func (a *Adapter) CreateBeanAttributes(annotated *AnnotatedType) (*BeanAttributes, error) {
	return nil, a.notImplemented("CreateBeanAttributes")
}

// CreateBean is not offered: the bridge never adds bindings to the registry.
func (a *Adapter) CreateBean(attributes *BeanAttributes, beanType reflect.Type, factory any) (*Bean, error) {
	return nil, a.notImplemented("CreateBean")
}

// CreateInjectionPoint is not offered.
func (a *Adapter) CreateInjectionPoint(member reflect.StructField) (*InjectionPoint, error) {
	return nil, a.notImplemented("CreateInjectionPoint")
}

// InjectionTargetFactory is not offered.
func (a *Adapter) InjectionTargetFactory(annotated *AnnotatedType) (any, error) {
	return nil, a.notImplemented("InjectionTargetFactory")
}

// ProducerFactory is not offered.
func (a *Adapter) ProducerFactory(member reflect.StructField, declaringBean *Bean) (any, error) {
	return nil, a.notImplemented("ProducerFactory")
}

// CreateInterceptionFactory is not offered.
func (a *Adapter) CreateInterceptionFactory(cc CreationalContext, t reflect.Type) (any, error) {
	return nil, a.notImplemented("CreateInterceptionFactory")
}

// Extension is not offered: there is no extension registry.
func (a *Adapter) Extension(extensionType reflect.Type) (any, error) {
	return nil, a.notImplemented("Extension")
}

func (a *Adapter) notImplemented(op string) error {
	return NotImplementedError{Operation: op}
}

// checkNominal rejects type references that are not plain named types:
// unnamed composites such as []T or map[K]V, and instantiated generics.
// One level of pointer indirection is allowed.
func checkNominal(t reflect.Type) error {
	if t == nil {
		return ValidationError{Cause: ErrBeanTypeNil}
	}

	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	if base.Name() == "" {
		return UnsupportedConstructError{Type: t, Construct: "unnamed type"}
	}

	if strings.ContainsRune(base.Name(), '[') {
		return UnsupportedConstructError{Type: t, Construct: "generic type"}
	}

	return nil
}
