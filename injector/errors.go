package injector

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/junioryono/cdi"
)

var (
	ErrBinderBuilt     = errors.New("binder has already been built")
	ErrConstructorNil  = errors.New("constructor cannot be nil")
	ErrReservedBinding = errors.New("binding is reserved by the injector")
)

var (
	_ error = LifetimeError{}
	_ error = DuplicateBindingError{}
	_ error = AnalysisError{}
)

// LifetimeError indicates an unknown lifetime value.
type LifetimeError struct {
	Value any
}

func (e LifetimeError) Error() string {
	return fmt.Sprintf("invalid lifetime: %v", e.Value)
}

// DuplicateBindingError indicates a key was bound twice.
type DuplicateBindingError struct {
	Key cdi.TypeKey
}

func (e DuplicateBindingError) Error() string {
	return fmt.Sprintf("%s is already bound", e.Key.String())
}

// AnalysisError indicates a constructor or injection target could not be analyzed.
type AnalysisError struct {
	Constructor any
	Cause       error
}

func (e AnalysisError) Error() string {
	if t, ok := e.Constructor.(reflect.Type); ok {
		return fmt.Sprintf("analyze %s: %v", cdi.FormatType(t), e.Cause)
	}
	return fmt.Sprintf("analyze %T: %v", e.Constructor, e.Cause)
}

func (e AnalysisError) Unwrap() error {
	return e.Cause
}
