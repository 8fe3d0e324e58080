package cdi

import "reflect"

// ============================================================================
// Shared Test Types
// ============================================================================

// TService is a basic bean for testing.
type TService struct {
	ID string
}

// TInterface is a basic interface for testing.
type TInterface interface {
	GetID() string
}

func (s *TService) GetID() string { return s.ID }

// TGeneric is a generic type; its instantiations are not plain named types.
type TGeneric[T any] struct {
	Value T
}

// TRegion is a marker qualifier with a member.
type TRegion struct {
	Name string
}

// TPrimary is a marker qualifier without members.
type TPrimary struct{}

// TSlice is a marker qualifier that is not comparable with ==.
type TSlice struct {
	Values []string
}

// TRef is a marker qualifier that refers to its member through a pointer.
type TRef struct {
	Name *string
}

// TLabels is a marker qualifier with a map member.
type TLabels struct {
	Labels map[string]int
}

// TAny is a marker qualifier with an interface member.
type TAny struct {
	Value any
}

var (
	serviceType = reflect.TypeOf((*TService)(nil))
	ifaceType   = reflect.TypeOf((*TInterface)(nil)).Elem()
)
