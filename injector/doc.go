// Package injector is a reflective dependency injector that serves as the
// native cdi.Registry.
//
// Bindings are collected on a Binder and built into an Injector:
//
//	b := injector.NewBinder()
//	b.AddSingleton(NewDatabase)
//	b.AddSingleton(NewTestBean, injector.Name("testBean"))
//	b.AddTransient(NewRequest)
//
//	inj, err := b.Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inj.Close()
//
// # Constructors
//
// A constructor is a function returning one value, optionally followed by an
// error. Its parameters are resolved from the Injector. A single parameter
// struct embedding In resolves field by field and honors name and optional
// tags. Any non-function value is an instance binding.
//
// # Just-in-time bindings
//
// Unqualified struct types, and pointers to them, need no binding when they
// opt in or have no unexported fields. A type opts in by tagging a field with
// inject, by embedding Singleton or ApplicationScoped, or by implementing
// PostConstructor. Anything else, such as *cdi.BeanManager, fails with
// cdi.ErrNoInjectableConstructor unless it is bound. The Injector allocates
// the struct, resolves exported fields tagged inject:""
// (named:"x" qualifies the field, inject:"optional" tolerates a missing
// binding) and then calls PostConstruct when the type implements
// PostConstructor. Embedding Singleton or ApplicationScoped caches the
// instance for the Injector's lifetime.
//
//	type Greeter struct {
//	    injector.Singleton
//
//	    Bean *TestBean `inject:"" named:"testBean"`
//	}
//
// # Errors
//
// Missing bindings are reported as cdi.ResolutionError wrapping
// cdi.ErrBindingNotFound or cdi.ErrNoInjectableConstructor. Dependency cycles
// are reported as cdi.CircularDependencyError: at Build for explicit
// bindings, at resolution time for just-in-time types.
//
// # Thread Safety
//
// An Injector is safe for concurrent use. Just-in-time cycle detection follows
// one resolution at a time, so two goroutines entering a cycle of
// just-in-time singletons from opposite ends can block each other. Bind such
// types explicitly to have the cycle reported at Build.
package injector
