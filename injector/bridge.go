package injector

import (
	"github.com/junioryono/cdi"
)

// BridgeModule binds the bean-manager bridge over the Injector itself:
// *cdi.CDI, *cdi.BeanManager and *cdi.Adapter become injectable singletons.
//
// Example:
//
//	b := injector.NewBinder()
//	b.AddModules(AppModule, injector.BridgeModule(cdi.WithLogger(logger)))
//
//	inj, _ := b.Build()
//	manager := injector.MustResolve[*cdi.BeanManager](inj)
func BridgeModule(opts ...cdi.Option) ModuleOption {
	return NewModule("cdi",
		AddSingleton(func(registry cdi.Registry) (*cdi.CDI, error) {
			return cdi.New(registry, opts...)
		}),
		AddSingleton(func(bridge *cdi.CDI) *cdi.BeanManager {
			return bridge.BeanManager()
		}),
		AddSingleton(func(bridge *cdi.CDI) *cdi.Adapter {
			return bridge.Adapter()
		}),
	)
}
