package cdi

// Provider hands out the BeanManager of a bridge. Hosts pass providers
// explicitly to the code that needs a bean manager instead of relying on
// implicit discovery.
type Provider interface {
	BeanManager() *BeanManager
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() *BeanManager

// BeanManager calls f().
func (f ProviderFunc) BeanManager() *BeanManager {
	return f()
}

// Discover returns the bean manager of the first provider that offers one.
// It fails with ErrNoProvider when none does.
func Discover(providers ...Provider) (*BeanManager, error) {
	for _, p := range providers {
		if p == nil {
			continue
		}

		if m := p.BeanManager(); m != nil {
			return m, nil
		}
	}

	return nil, ErrNoProvider
}
