package cdi

// Registry is the container the bridge reads from.
//
// Resolve returns an instance for the key, creating it on demand. A Registry
// must be safe for concurrent Resolve calls once configured, and failures
// should be reported as ResolutionError. The bridge never mutates a Registry.
//
// Implementations shipped with this module:
//   - injector.Injector: reflective injector with just-in-time bindings
//   - digregistry.Registry: go.uber.org/dig containers
//   - doregistry.Registry: github.com/samber/do/v2 injectors
type Registry interface {
	Resolve(key TypeKey) (any, error)
}

// RegistryFunc adapts a function to the Registry interface.
type RegistryFunc func(key TypeKey) (any, error)

// Resolve calls f(key).
func (f RegistryFunc) Resolve(key TypeKey) (any, error) {
	return f(key)
}
