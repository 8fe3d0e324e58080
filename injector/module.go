package injector

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/junioryono/cdi"
)

// ModuleOption represents a registration action within a module.
type ModuleOption func(*Binder) error

// NewModule creates a new module with the given name and builders.
// Modules group related bindings so they can be installed together.
//
// Example:
//
//	var StorageModule = injector.NewModule("storage",
//	    injector.AddSingleton(NewDatabase),
//	    injector.AddSingleton(NewReplica, injector.Name("replica")),
//	    injector.AddTransient(NewUnitOfWork),
//	)
//
//	var AppModule = injector.NewModule("app",
//	    StorageModule,
//	    injector.BridgeModule(),
//	)
func NewModule(name string, builders ...ModuleOption) ModuleOption {
	return func(b *Binder) error {
		for _, builder := range builders {
			if builder == nil {
				continue
			}

			if err := builder(b); err != nil {
				return cdi.ModuleError{Module: name, Cause: err}
			}
		}

		return nil
	}
}

// AddSingleton creates a ModuleOption that binds a singleton.
func AddSingleton(constructor any, opts ...AddOption) ModuleOption {
	return func(b *Binder) error {
		return b.AddSingleton(constructor, opts...)
	}
}

// AddTransient creates a ModuleOption that binds a transient.
func AddTransient(constructor any, opts ...AddOption) ModuleOption {
	return func(b *Binder) error {
		return b.AddTransient(constructor, opts...)
	}
}

// An AddOption modifies the default behavior of AddSingleton and AddTransient.
type AddOption interface {
	applyAddOption(*addOptions)
}

type addOptions struct {
	Qualifier cdi.Qualifier
	As        []any
}

func (o *addOptions) Validate(result reflect.Type) error {
	if n, ok := o.Qualifier.(cdi.Named); ok && n.Value == "" {
		return fmt.Errorf("invalid injector.Name(%q): names cannot be empty", n.Value)
	}

	for _, i := range o.As {
		t := reflect.TypeOf(i)

		if t == nil {
			return fmt.Errorf("invalid injector.As(nil): argument must be a pointer to an interface")
		}

		if t.Kind() != reflect.Pointer {
			return fmt.Errorf("invalid injector.As(%v): argument must be a pointer to an interface", t)
		}

		iface := t.Elem()
		if iface.Kind() != reflect.Interface {
			return fmt.Errorf("invalid injector.As(*%v): argument must be a pointer to an interface", iface)
		}

		if !result.Implements(iface) {
			return fmt.Errorf("invalid injector.As(*%v): %v does not implement it", iface, result)
		}
	}

	return nil
}

// keys returns the keys a binding with these options is reachable under.
func (o *addOptions) keys(result reflect.Type) []cdi.TypeKey {
	if len(o.As) == 0 {
		return []cdi.TypeKey{{Type: result, Qualifier: o.Qualifier}}
	}

	keys := make([]cdi.TypeKey, 0, len(o.As))
	for _, i := range o.As {
		keys = append(keys, cdi.TypeKey{Type: reflect.TypeOf(i).Elem(), Qualifier: o.Qualifier})
	}

	return keys
}

// Name is an AddOption that qualifies the binding by name.
//
//	b.AddSingleton(NewReadOnlyConnection, injector.Name("ro"))
//	b.AddSingleton(NewReadWriteConnection, injector.Name("rw"))
//
// A dependency asks for a named binding with a name:"x" tag on an In struct
// field or a named:"x" tag on an injection point.
func Name(name string) AddOption {
	return addQualifierOption{qualifier: cdi.ByName(name)}
}

// Qualified is an AddOption that qualifies the binding by a marker value.
// Lookups match markers of the same type with equal values.
//
//	type Primary struct{}
//
//	b.AddSingleton(NewDatabase, injector.Qualified(Primary{}))
func Qualified(marker any) AddOption {
	return addQualifierOption{qualifier: cdi.ByMarker(marker)}
}

type addQualifierOption struct {
	qualifier cdi.Qualifier
}

func (o addQualifierOption) String() string {
	if n, ok := o.qualifier.(cdi.Named); ok {
		return fmt.Sprintf("Name(%q)", n.Value)
	}
	return fmt.Sprintf("Qualified(%s)", cdi.QualifierID(o.qualifier))
}

func (o addQualifierOption) applyAddOption(opts *addOptions) {
	opts.Qualifier = o.qualifier
}

// As is an AddOption that binds the constructed value under one or more
// interfaces instead of its own type.
//
// As expects pointers to the implemented interfaces. All of them share one
// binding, so a singleton is the same value under every interface.
//
//	b.AddSingleton(newBuffer, injector.As(new(io.Reader), new(io.Writer)))
//
// Combined with Name or Qualified, every interface carries the qualifier.
func As(i ...any) AddOption {
	return addAsOption(i)
}

type addAsOption []any

func (o addAsOption) String() string {
	buf := bytes.NewBufferString("As(")
	for i, iface := range o {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(reflect.TypeOf(iface).Elem().String())
	}
	buf.WriteString(")")
	return buf.String()
}

func (o addAsOption) applyAddOption(opts *addOptions) {
	opts.As = append(opts.As, o...)
}
