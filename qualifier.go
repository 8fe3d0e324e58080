package cdi

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Qualifier disambiguates bindings that share a type.
//
// A Qualifier is either nil (unqualified), a Named value, or any other marker
// value. Markers behave like annotations: two markers are equivalent when they
// have the same dynamic type and all of their fields are equal. Pointer
// markers are compared by the value they point to.
//
// Example:
//
//	type Replica struct {
//	    Region string
//	}
//
//	db, err := cdi.GetQualified[*sql.DB](manager, Replica{Region: "eu"})
type Qualifier = any

// Named is the name qualifier. It is the marker every string name is
// translated to before it reaches a Registry.
type Named struct {
	Value string
}

// String returns the annotation-like form of the qualifier, e.g. @Named("primary").
func (n Named) String() string {
	return "@Named(" + strconv.Quote(n.Value) + ")"
}

// ByName returns the qualifier for the given name. The name is used verbatim:
// it is not trimmed, case-folded or validated.
func ByName(name string) Qualifier {
	return Named{Value: name}
}

// ByMarker returns the marker unchanged. Registries understand marker
// qualifiers natively.
func ByMarker(marker any) Qualifier {
	return marker
}

// QualifiersEquivalent reports whether two qualifiers select the same bindings.
func QualifiersEquivalent(a, b Qualifier) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	av, bv := markerValue(a), markerValue(b)
	if !av.IsValid() || !bv.IsValid() {
		return av.IsValid() == bv.IsValid()
	}

	if av.Type() != bv.Type() {
		return false
	}

	return reflect.DeepEqual(av.Interface(), bv.Interface())
}

// QualifierID returns the canonical string form of a qualifier.
// Equivalent qualifiers always share the same ID, so it can be used as a map
// index where the marker itself is not comparable. The empty string denotes
// the absent qualifier.
func QualifierID(q Qualifier) string {
	if q == nil {
		return ""
	}

	if n, ok := q.(Named); ok {
		return n.String()
	}
	if n, ok := q.(*Named); ok && n != nil {
		return n.String()
	}

	v := markerValue(q)
	if !v.IsValid() {
		return "@nil"
	}

	t := v.Type()
	name := t.String()
	if t.PkgPath() != "" {
		name = t.PkgPath() + "." + t.Name()
	}

	var b strings.Builder
	b.WriteString("@" + name + "(")
	writeCanonical(&b, v, nil)
	b.WriteByte(')')

	return b.String()
}

// QualifierHash returns a hash code for the qualifier that is consistent with
// QualifiersEquivalent.
func QualifierHash(q Qualifier) uint64 {
	return xxhash.Sum64String(QualifierID(q))
}

// markerValue dereferences pointer markers. A nil pointer yields the zero Value.
func markerValue(q Qualifier) reflect.Value {
	v := reflect.ValueOf(q)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}

	return v
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// writeCanonical renders v by value so that deeply equal values render alike.
// Pointers are followed and map entries are ordered by their rendered key.
func writeCanonical(b *strings.Builder, v reflect.Value, seen map[visit]bool) {
	switch v.Kind() {
	case reflect.Invalid:
		b.WriteString("nil")
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		writeFloat(b, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		b.WriteByte('(')
		writeFloat(b, real(c))
		b.WriteByte(',')
		writeFloat(b, imag(c))
		b.WriteString("i)")
	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Pointer:
		if v.IsNil() {
			writeNil(b, v.Type())
			return
		}

		at := visit{ptr: v.Pointer(), typ: v.Type()}
		if seen[at] {
			b.WriteString("&<cycle>")
			return
		}
		if seen == nil {
			seen = make(map[visit]bool)
		}
		seen[at] = true
		b.WriteByte('&')
		writeCanonical(b, v.Elem(), seen)
		delete(seen, at)
	case reflect.Interface:
		if v.IsNil() {
			writeNil(b, v.Type())
			return
		}

		// The dynamic type takes part in equality.
		elem := v.Elem()
		b.WriteString(elem.Type().String() + "(")
		writeCanonical(b, elem, seen)
		b.WriteByte(')')
	case reflect.Struct:
		t := v.Type()
		b.WriteString(t.String() + "{")
		for i := 0; i < v.NumField(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(t.Field(i).Name + ":")
			writeCanonical(b, v.Field(i), seen)
		}
		b.WriteByte('}')
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			writeNil(b, v.Type())
			return
		}

		b.WriteString(v.Type().String() + "{")
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			writeCanonical(b, v.Index(i), seen)
		}
		b.WriteByte('}')
	case reflect.Map:
		if v.IsNil() {
			writeNil(b, v.Type())
			return
		}

		entries := make([][2]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			var key, elem strings.Builder
			writeCanonical(&key, iter.Key(), seen)
			writeCanonical(&elem, iter.Value(), seen)
			entries = append(entries, [2]string{key.String(), elem.String()})
		}
		slices.SortFunc(entries, func(x, y [2]string) int {
			return strings.Compare(x[0], y[0])
		})

		b.WriteString(v.Type().String() + "{")
		for i, e := range entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e[0] + ":" + e[1])
		}
		b.WriteByte('}')
	default:
		// Channels, funcs and unsafe pointers are only ever equal by identity.
		if v.IsNil() {
			writeNil(b, v.Type())
			return
		}
		fmt.Fprintf(b, "(%s)(%#x)", v.Type(), v.Pointer())
	}
}

func writeFloat(b *strings.Builder, f float64) {
	if f == 0 {
		f = 0 // drop the sign of negative zero
	}
	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func writeNil(b *strings.Builder, t reflect.Type) {
	b.WriteString("(" + t.String() + ")(nil)")
}
