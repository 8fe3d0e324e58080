package testutil

import (
	"sync"

	"github.com/junioryono/cdi"
)

// FakeRegistry is a map backed cdi.Registry that records every key it is asked for.
type FakeRegistry struct {
	mu    sync.Mutex
	beans map[string]any
	calls []cdi.TypeKey
	err   error
}

// NewFakeRegistry creates an empty FakeRegistry.
func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{beans: make(map[string]any)}
}

// Bind makes key resolve to bean.
func (r *FakeRegistry) Bind(key cdi.TypeKey, bean any) *FakeRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.beans[key.ID()] = bean
	return r
}

// FailWith makes every lookup fail with err.
func (r *FakeRegistry) FailWith(err error) *FakeRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

// Resolve implements cdi.Registry.
func (r *FakeRegistry) Resolve(key cdi.TypeKey) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, key)

	if r.err != nil {
		return nil, r.err
	}

	bean, ok := r.beans[key.ID()]
	if !ok {
		return nil, cdi.ResolutionError{Key: key, Cause: cdi.ErrBindingNotFound}
	}

	return bean, nil
}

// Calls returns the keys looked up so far.
func (r *FakeRegistry) Calls() []cdi.TypeKey {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]cdi.TypeKey(nil), r.calls...)
}
