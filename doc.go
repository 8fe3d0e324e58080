// Package cdi exposes an existing dependency injection registry through the
// standard bean manager contract.
//
// # Overview
//
// Code written against the standard contract asks a bean manager for beans by
// type, by name or by qualifier. This package answers those questions by
// delegating to a Registry and never defines, stores or caches beans itself.
// The package provides:
//   - BeanManager: the lookup facade over a Registry
//   - Adapter: the standard bean manager contract on top of the facade
//   - Instance: lazy, narrowable lookup handles
//   - Qualifier translation: names become Named markers, markers pass through
//
// # Basic Usage
//
// Build a registry, wrap it, and look beans up:
//
//	b := injector.NewBinder()
//	b.AddSingleton(NewTestBean, injector.Name("testBean"))
//
//	inj, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inj.Close()
//
//	bridge, err := cdi.New(inj)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bean, err := cdi.GetNamed[*TestBean](bridge, "testBean")
//
// # Registries
//
// Any type implementing Registry can back the bridge. This module ships three:
//   - injector.Injector, a reflective injector with just-in-time bindings
//   - digregistry.Registry, over a go.uber.org/dig container
//   - doregistry.Registry, over a github.com/samber/do/v2 injector
//
// # Qualifiers
//
// A lookup key is a type plus at most one qualifier. ByName("x") and
// Named{Value: "x"} are the same qualifier. Any other value is a marker:
//
//	type Replica struct {
//	    Region string
//	}
//
//	db, err := cdi.GetQualified[*sql.DB](bridge, Replica{Region: "eu"})
//
// Markers are equivalent when their dynamic types match and their fields are
// deeply equal. Pointer markers compare by the value they point to.
//
// # Lookup Semantics
//
// The registry cannot enumerate its bindings, which shapes a few answers:
//   - GetBeans and Instance.All produce exactly one element
//   - ContainsBean and Contains are always true
//   - Instance.IsUnsatisfied and Instance.IsAmbiguous are always false
//
// Adapter lookups accept plain named types and pointers to them. Unnamed
// composites and instantiated generics fail with UnsupportedConstructError.
//
// # The Standard Contract
//
// Adapter.Supports reports how each Capability is handled. Lookups,
// qualifiers and instances are supported. Scopes, stereotypes, interceptors,
// decorators, events and creational contexts are inert. Bean authoring and
// passivation fail with NotImplementedError.
//
// # Thread Safety
//
// BeanManager, Adapter and CDI hold no mutable state and are safe for
// concurrent use as long as the Registry is.
//
// # Error Handling
//
// Registry errors reach the caller unchanged. The registries in this module
// report:
//   - ResolutionError: a key could not be resolved
//   - CircularDependencyError: a dependency cycle was found
//   - ConstructorPanicError: a constructor panicked
//
// The bridge itself reports:
//   - UnsupportedConstructError: a type reference cannot be translated
//   - NotImplementedError: the operation is not offered
//   - TypeMismatchError: a bean has the wrong type for a generic lookup
package cdi
