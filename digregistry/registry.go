// Package digregistry serves cdi lookups from a go.uber.org/dig container.
//
// Every value in a dig container is a singleton. Qualifiers map onto dig
// names: a cdi.Named qualifier becomes the plain name, any other marker
// becomes its canonical cdi.QualifierID.
//
//	c := dig.New()
//	r := digregistry.New(c)
//	r.Provide(NewTestBean, cdi.ByName("testBean"))
//
//	manager, _ := cdi.NewBeanManager(r)
//	bean, _ := cdi.GetNamed[*TestBean](manager, "testBean")
package digregistry

import (
	"fmt"
	"reflect"
	"strconv"
	"sync"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/junioryono/cdi"
)

var (
	inType  = reflect.TypeOf(dig.In{})
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// Registry adapts a dig container to cdi.Registry.
type Registry struct {
	container *dig.Container
	logger    *zap.Logger

	// digMu serializes container access.
	digMu sync.Mutex

	mu       sync.RWMutex
	provided map[string]struct{}
}

var _ cdi.Registry = (*Registry)(nil)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for debug events. Nil is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New wraps container. A nil container gets a fresh one that recovers from
// constructor panics.
func New(container *dig.Container, opts ...Option) *Registry {
	if container == nil {
		container = dig.New(dig.RecoverFromPanics())
	}

	r := &Registry{
		container: container,
		logger:    zap.NewNop(),
		provided:  make(map[string]struct{}),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.logger = r.logger.Named("digregistry")

	return r
}

// Container returns the wrapped dig container.
func (r *Registry) Container() *dig.Container {
	return r.container
}

// Provide registers constructor with dig under the name derived from
// qualifier. Extra dig options are passed through.
func (r *Registry) Provide(constructor any, qualifier cdi.Qualifier, opts ...dig.ProvideOption) error {
	if qualifier != nil {
		opts = append(opts, dig.Name(Name(qualifier)))
	}

	r.digMu.Lock()
	err := r.container.Provide(constructor, opts...)
	r.digMu.Unlock()
	if err != nil {
		return err
	}

	r.mu.Lock()
	for _, t := range results(constructor) {
		r.provided[cdi.TypeKey{Type: t, Qualifier: qualifier}.ID()] = struct{}{}
	}
	r.mu.Unlock()

	return nil
}

// Resolve invokes the container with a parameter object asking for key.
//
// Failures for keys that were not provided through this Registry are reported
// as cdi.ErrBindingNotFound; failures for provided keys carry dig's error.
func (r *Registry) Resolve(key cdi.TypeKey) (any, error) {
	if key.Type == nil {
		return nil, cdi.ValidationError{Cause: cdi.ErrBeanTypeNil}
	}

	var tag reflect.StructTag
	if key.IsQualified() {
		tag = reflect.StructTag(`name:` + strconv.Quote(Name(key.Qualifier)))
	}

	param := reflect.StructOf([]reflect.StructField{
		{Name: "In", Type: inType, Anonymous: true},
		{Name: "Value", Type: key.Type, Tag: tag},
	})

	var result reflect.Value
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{param}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			result = args[0].Field(1)
			return nil
		},
	)

	r.digMu.Lock()
	err := r.container.Invoke(fn.Interface())
	r.digMu.Unlock()

	if err != nil {
		r.logger.Debug("resolution failed", zap.Stringer("key", key), zap.Error(err))

		if !r.isProvided(key) {
			err = fmt.Errorf("%w: %w", cdi.ErrBindingNotFound, dig.RootCause(err))
		}
		return nil, cdi.ResolutionError{Key: key, Cause: err}
	}

	return result.Interface(), nil
}

func (r *Registry) isProvided(key cdi.TypeKey) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.provided[key.ID()]
	return ok
}

// Name returns the dig name for a qualifier.
func Name(qualifier cdi.Qualifier) string {
	switch q := qualifier.(type) {
	case cdi.Named:
		return q.Value
	case *cdi.Named:
		if q != nil {
			return q.Value
		}
	}

	return cdi.QualifierID(qualifier)
}

// results lists the types a plain constructor provides.
func results(constructor any) []reflect.Type {
	t := reflect.TypeOf(constructor)
	if t == nil || t.Kind() != reflect.Func {
		return nil
	}

	types := make([]reflect.Type, 0, t.NumOut())
	for i := 0; i < t.NumOut(); i++ {
		out := t.Out(i)
		if out == errType || dig.IsOut(out) {
			continue
		}
		types = append(types, out)
	}

	return types
}

// IsCycle reports whether err comes from dig's cycle detection.
func IsCycle(err error) bool {
	return dig.IsCycleDetected(err)
}
