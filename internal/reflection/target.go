package reflection

import (
	"fmt"
	"reflect"
)

// TargetInfo describes a struct type that can be constructed just in time.
type TargetInfo struct {
	// Type is the requested type: a struct or a pointer to a struct.
	Type reflect.Type

	// Struct is the struct type behind Type.
	Struct reflect.Type

	// Fields are the injection points, in declaration order.
	Fields []Parameter

	// Singleton is set when the struct embeds Singleton or ApplicationScoped.
	Singleton bool

	// PostConstruct is set when the constructed value implements PostConstructor.
	PostConstruct bool
}

// IsTarget reports whether t is a candidate for just-in-time construction:
// a named struct or a pointer to one that either opts in or carries no
// unexported state. A struct opts in by embedding Singleton or
// ApplicationScoped, by tagging a field with inject, or by implementing
// PostConstructor. Other structs with unexported fields are only usable when
// built by their constructor.
func IsTarget(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || t.Name() == "" {
		return false
	}

	if reflect.PointerTo(t).Implements(postConstructType) {
		return true
	}

	hidden := false
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Anonymous && (field.Type == singletonType || field.Type == applicationScopedType) {
			return true
		}
		if _, ok := field.Tag.Lookup("inject"); ok {
			return true
		}
		if !field.IsExported() {
			hidden = true
		}
	}

	return !hidden
}

// AnalyzeTarget discovers the injection points of a struct type.
//
// Exported fields tagged inject are injection points; a named tag adds a name
// qualifier. Tagged unexported fields are rejected since they cannot be set.
func (a *Analyzer) AnalyzeTarget(t reflect.Type) (*TargetInfo, error) {
	if !IsTarget(t) {
		return nil, fmt.Errorf("%v is not an injectable struct or pointer to struct", t)
	}

	a.mu.RLock()
	cached, ok := a.targets[t]
	a.mu.RUnlock()
	if ok {
		return cached, nil
	}

	structType := t
	if structType.Kind() == reflect.Pointer {
		structType = structType.Elem()
	}

	info := &TargetInfo{
		Type:   t,
		Struct: structType,
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Anonymous && (field.Type == singletonType || field.Type == applicationScopedType) {
			info.Singleton = true
			continue
		}

		tags := ParseFieldTags(field.Tag)
		if !tags.Inject || tags.Ignore {
			continue
		}

		if !field.IsExported() {
			return nil, fmt.Errorf("injection point %s.%s must be exported", structType.Name(), field.Name)
		}

		info.Fields = append(info.Fields, Parameter{
			Type:     field.Type,
			Name:     tags.Name,
			Optional: tags.Optional,
			Index:    i,
			Field:    field.Name,
		})
	}

	// Value receivers are visible from the pointer as well.
	info.PostConstruct = reflect.PointerTo(structType).Implements(postConstructType)

	a.mu.Lock()
	a.targets[t] = info
	a.mu.Unlock()

	return info, nil
}
