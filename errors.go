package cdi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// Typed errors below wrap these; match them with errors.Is.

var (
	// Lookup errors.
	ErrRegistryNil             = errors.New("registry cannot be nil")
	ErrBeanTypeNil             = errors.New("bean type cannot be nil")
	ErrBindingNotFound         = errors.New("no binding found")
	ErrNoInjectableConstructor = errors.New("no injectable constructor")
	ErrInjectorClosed          = errors.New("injector has been closed")

	// Adapter errors.
	ErrNotImplemented       = errors.New("not implemented")
	ErrUnsupportedConstruct = errors.New("unsupported construct")

	// Discovery errors.
	ErrNoProvider = errors.New("no bean manager provider found")
)

var (
	_ error = ResolutionError{}
	_ error = UnsupportedConstructError{}
	_ error = NotImplementedError{}
	_ error = TypeMismatchError{}
	_ error = ValidationError{}
	_ error = ModuleError{}
	_ error = CircularDependencyError{}
	_ error = ConstructorPanicError{}
)

// ResolutionError indicates the Registry could not produce an instance for a key:
// nothing is bound, no injectable constructor exists, the candidates are
// ambiguous or the constructor itself failed.
type ResolutionError struct {
	Key   TypeKey
	Cause error
}

func (e ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("unable to resolve ")
	b.WriteString(e.Key.String())

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// UnsupportedConstructError indicates a type reference the adapter cannot
// translate into a registry lookup, such as an unnamed composite type or an
// instantiated generic type.
type UnsupportedConstructError struct {
	Type      reflect.Type
	Construct string // "generic type", "unnamed type", "type descriptor", ...
}

func (e UnsupportedConstructError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("unsupported construct: %s", e.Construct)
	}
	return fmt.Sprintf("unsupported construct: %s %s (only plain named types are supported)", e.Construct, formatType(e.Type))
}

func (e UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupportedConstruct
}

// NotImplementedError indicates a capability of the standard bean manager
// contract the bridge does not offer. It is a programming error, never a
// transient failure.
type NotImplementedError struct {
	Operation string
}

func (e NotImplementedError) Error() string {
	return fmt.Sprintf("%s: not implemented (the bridge is read-only with respect to the registry)", e.Operation)
}

func (e NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// TypeMismatchError indicates a type assertion or conversion failed.
type TypeMismatchError struct {
	Expected reflect.Type
	Actual   reflect.Type
	Context  string // "type assertion", "instance handle", etc.
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Context, formatType(e.Expected), formatType(e.Actual))
}

// ValidationError indicates a validation failure.
type ValidationError struct {
	Type  reflect.Type
	Cause error
}

func (e ValidationError) Error() string {
	if e.Type != nil {
		return fmt.Sprintf("%s: %v", formatType(e.Type), e.Cause)
	}
	return e.Cause.Error()
}

func (e ValidationError) Unwrap() error {
	return e.Cause
}

// ModuleError wraps errors from module registration.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// CircularDependencyError indicates a binding depends on itself, directly or
// through other bindings.
type CircularDependencyError struct {
	Path []TypeKey
}

func (e CircularDependencyError) Error() string {
	var b strings.Builder
	b.WriteString("circular dependency detected:\n\n")

	for i, key := range e.Path {
		b.WriteString(fmt.Sprintf("    %s\n", key.String()))
		if i < len(e.Path)-1 {
			b.WriteString("      ↓\n")
		}
	}

	if len(e.Path) > 0 {
		b.WriteString("      ↓\n")
		b.WriteString(fmt.Sprintf("    %s (cycle)\n", e.Path[0].String()))
	}

	return b.String()
}

// ConstructorPanicError indicates a constructor panicked during invocation.
type ConstructorPanicError struct {
	Constructor reflect.Type
	Panic       any
	Stack       []byte
}

func (e ConstructorPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("constructor %s panicked: %v", formatType(e.Constructor), e.Panic))

	if len(e.Stack) > 0 {
		b.WriteString("\n\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// IsNotImplemented reports whether err signals an unoffered capability.
func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// IsUnsupported reports whether err signals an untranslatable type reference.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupportedConstruct)
}

// IsResolutionError reports whether err came from a failed registry lookup.
func IsResolutionError(err error) bool {
	var re ResolutionError
	return errors.As(err, &re)
}

// IsNotFound reports whether err means nothing could be bound for the key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBindingNotFound) || errors.Is(err, ErrNoInjectableConstructor)
}

// IsCircularDependency reports whether err is caused by a dependency cycle.
func IsCircularDependency(err error) bool {
	var ce CircularDependencyError
	return errors.As(err, &ce)
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind() {
	case reflect.Pointer:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "*" + elem.Name()
		}
		return t.String()
	case reflect.Slice:
		elem := t.Elem()
		if elem.PkgPath() != "" && elem.Name() != "" {
			return "[]" + elem.Name()
		}
		return t.String()
	case reflect.Func:
		return t.String()
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return t.String()
	}
}

// FormatType formats a reflect.Type the way cdi error messages do.
func FormatType(t reflect.Type) string {
	return formatType(t)
}
