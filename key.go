package cdi

import (
	"reflect"
)

// TypeKey identifies a requested dependency: a type plus an optional qualifier.
//
// TypeKey may hold non-comparable markers, so it must not be used as a map key
// directly. Use ID for indexing and Equal for comparison.
type TypeKey struct {
	Type      reflect.Type
	Qualifier Qualifier
}

// Key returns the unqualified key for t.
func Key(t reflect.Type) TypeKey {
	return TypeKey{Type: t}
}

// NamedKey returns the key for t qualified by name.
func NamedKey(t reflect.Type, name string) TypeKey {
	return TypeKey{Type: t, Qualifier: ByName(name)}
}

// QualifiedKey returns the key for t qualified by marker.
func QualifiedKey(t reflect.Type, marker any) TypeKey {
	return TypeKey{Type: t, Qualifier: ByMarker(marker)}
}

// KeyFor returns the key for T with an optional qualifier.
//
// Example:
//
//	cdi.KeyFor[*Database]()
//	cdi.KeyFor[*Database](cdi.ByName("replica"))
func KeyFor[T any](qualifier ...Qualifier) TypeKey {
	key := TypeKey{Type: typeOf[T]()}
	if len(qualifier) > 0 {
		key.Qualifier = qualifier[0]
	}

	return key
}

// IsQualified reports whether the key carries a qualifier.
func (k TypeKey) IsQualified() bool {
	return k.Qualifier != nil
}

// Equal reports whether both keys address the same binding.
func (k TypeKey) Equal(other TypeKey) bool {
	return k.Type == other.Type && QualifiersEquivalent(k.Qualifier, other.Qualifier)
}

// ID returns a canonical string for the key. Equal keys have equal IDs.
func (k TypeKey) ID() string {
	id := "<nil>"
	if k.Type != nil {
		id = k.Type.String()
		if path := pkgPathOf(k.Type); path != "" {
			id = path + ":" + id
		}
	}

	if q := QualifierID(k.Qualifier); q != "" {
		id += " " + q
	}

	return id
}

// String returns a short, human readable form of the key.
func (k TypeKey) String() string {
	s := formatType(k.Type)
	if q := QualifierID(k.Qualifier); q != "" {
		s += " " + q
	}

	return s
}

// pkgPathOf returns the package path of the named type behind t, looking
// through pointers, slices and maps.
func pkgPathOf(t reflect.Type) string {
	for {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
			if t.Name() == "" {
				t = t.Elem()
				continue
			}
		}

		return t.PkgPath()
	}
}

// typeOf returns the reflect.Type of T, including interface types.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
