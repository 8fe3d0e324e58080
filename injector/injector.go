package injector

import (
	"context"
	"errors"
	"io"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/junioryono/cdi"
	"github.com/junioryono/cdi/internal/graph"
	"github.com/junioryono/cdi/internal/reflection"
)

// Options configures an Injector.
type Options struct {
	// Logger receives debug events for resolutions. Defaults to a no-op logger.
	Logger *zap.Logger

	// EagerSingletons creates every singleton binding during Build, in
	// dependency order.
	EagerSingletons bool

	// RequireExplicitBindings disables just-in-time construction.
	RequireExplicitBindings bool

	// DisposeTimeout bounds Close. Zero means no deadline.
	DisposeTimeout time.Duration
}

// Injector resolves keys to instances. It implements cdi.Registry.
//
// Explicit bindings are looked up first. An unqualified struct type, or
// pointer to one, that has no binding is constructed just in time when it
// opts in or has no unexported fields: its fields tagged inject:"" are
// resolved and PostConstruct runs afterwards. The Injector binds itself as
// *Injector and as cdi.Registry.
//
// Injector is safe for concurrent use. Cycles between just-in-time singletons
// are detected along a single resolution. Two goroutines that start from
// opposite ends of such a cycle at the same time block each other instead of
// failing with cdi.CircularDependencyError.
type Injector struct {
	id       string
	bindings map[string]*binding
	analyzer *reflection.Analyzer
	graph    *graph.DependencyGraph
	options  Options
	logger   *zap.Logger

	singletons sync.Map // binding id -> reflect.Value
	group      singleflight.Group

	mu          sync.Mutex
	disposables []any
	closed      atomic.Bool
}

var _ cdi.Registry = (*Injector)(nil)

func newInjector(bindings []*binding, index map[string]*binding, analyzer *reflection.Analyzer, options *Options) (*Injector, error) {
	if options == nil {
		options = &Options{}
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	i := &Injector{
		id:       uuid.NewString(),
		bindings: index,
		analyzer: analyzer,
		graph:    graph.NewDependencyGraph(),
		options:  *options,
	}
	i.logger = logger.Named("injector").With(zap.String("injector", i.id))

	byID := make(map[string]*binding, len(bindings))
	for _, b := range bindings {
		byID[b.id] = b

		deps := make([]string, 0, len(b.dependencies))
		for _, dep := range b.dependencies {
			if target, ok := index[dep.ID()]; ok {
				deps = append(deps, target.id)
			} else {
				deps = append(deps, dep.ID())
			}
		}

		i.graph.AddNode(b.id, b.label(), deps)
	}

	if err := i.graph.DetectCycles(); err != nil {
		return nil, cycleError(err, byID)
	}

	i.logger.Debug("injector built", zap.Int("bindings", len(bindings)))

	if options.EagerSingletons {
		if err := i.createSingletons(byID); err != nil {
			_ = i.Close()
			return nil, err
		}
	}

	return i, nil
}

// createSingletons instantiates every singleton in dependency order.
func (i *Injector) createSingletons(byID map[string]*binding) error {
	order, err := i.graph.TopologicalSort()
	if err != nil {
		return cycleError(err, byID)
	}

	for _, id := range order {
		b := byID[id]
		if b.lifetime != LifetimeSingleton || b.isInstance() {
			continue
		}

		if _, err := i.instantiate(b, b.keys[0], nil); err != nil {
			return err
		}
	}

	return nil
}

// cycleError converts a graph cycle into a cdi.CircularDependencyError.
func cycleError(err error, byID map[string]*binding) error {
	var ge *graph.CircularDependencyError
	if !errors.As(err, &ge) {
		return err
	}

	path := make([]cdi.TypeKey, 0, len(ge.Path))
	for _, id := range ge.Path {
		path = append(path, byID[id].keys[0])
	}

	return cdi.CircularDependencyError{Path: path}
}

// ID returns the unique identifier of the Injector.
func (i *Injector) ID() string {
	return i.id
}

// Resolve returns the instance bound to key. Errors are
// cdi.ResolutionError, cdi.CircularDependencyError or cdi.ValidationError.
func (i *Injector) Resolve(key cdi.TypeKey) (any, error) {
	if i.closed.Load() {
		return nil, cdi.ResolutionError{Key: key, Cause: cdi.ErrInjectorClosed}
	}

	if key.Type == nil {
		return nil, cdi.ValidationError{Cause: cdi.ErrBeanTypeNil}
	}

	v, err := i.resolve(key, nil)
	if err != nil {
		i.logger.Debug("resolution failed", zap.Stringer("key", key), zap.Error(err))
		return nil, err
	}

	if !v.IsValid() {
		return nil, nil
	}

	return v.Interface(), nil
}

// Contains reports whether key is explicitly bound or reserved by the Injector.
// Just-in-time types are not reported.
func (i *Injector) Contains(key cdi.TypeKey) bool {
	if reserved(key) {
		return true
	}

	_, ok := i.bindings[key.ID()]
	return ok
}

// WriteGraph writes the explicit bindings and their dependencies in Graphviz
// DOT format.
func (i *Injector) WriteGraph(w io.Writer) error {
	return i.graph.WriteDOT(w)
}

// IsClosed reports whether Close has been called.
func (i *Injector) IsClosed() bool {
	return i.closed.Load()
}

// Close disposes every singleton that implements Disposable or
// DisposableWithContext, in reverse creation order. Later calls are no-ops.
func (i *Injector) Close() error {
	ctx := context.Background()
	if i.options.DisposeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.options.DisposeTimeout)
		defer cancel()
	}

	return i.CloseContext(ctx)
}

// CloseContext is Close with a caller supplied context.
func (i *Injector) CloseContext(ctx context.Context) error {
	if !i.closed.CompareAndSwap(false, true) {
		return nil
	}

	i.mu.Lock()
	toDispose := i.disposables
	i.disposables = nil
	i.mu.Unlock()

	var errs []error
	for j := len(toDispose) - 1; j >= 0; j-- {
		if err := dispose(ctx, toDispose[j]); err != nil {
			errs = append(errs, err)
		}
	}

	i.logger.Debug("injector closed", zap.Int("disposed", len(toDispose)), zap.Int("errors", len(errs)))

	return errors.Join(errs...)
}

// track records a created singleton for disposal.
func (i *Injector) track(v reflect.Value) {
	if !v.IsValid() || !v.CanInterface() {
		return
	}

	instance := v.Interface()
	if instance == nil || !isDisposable(instance) {
		return
	}

	i.mu.Lock()
	if i.closed.Load() {
		i.mu.Unlock()
		_ = dispose(context.Background(), instance)
		return
	}
	i.disposables = append(i.disposables, instance)
	i.mu.Unlock()
}

// Resolve resolves T from the injector.
//
// Example:
//
//	db, err := injector.Resolve[*sql.DB](inj)
//	replica, err := injector.Resolve[*sql.DB](inj, cdi.ByName("replica"))
func Resolve[T any](i *Injector, qualifier ...cdi.Qualifier) (T, error) {
	var zero T

	instance, err := i.Resolve(cdi.KeyFor[T](qualifier...))
	if err != nil {
		return zero, err
	}

	if instance == nil {
		return zero, nil
	}

	result, ok := instance.(T)
	if !ok {
		return zero, cdi.TypeMismatchError{
			Expected: reflect.TypeOf(&zero).Elem(),
			Actual:   reflect.TypeOf(instance),
			Context:  "type assertion",
		}
	}

	return result, nil
}

// MustResolve resolves T and panics on failure.
func MustResolve[T any](i *Injector, qualifier ...cdi.Qualifier) T {
	result, err := Resolve[T](i, qualifier...)
	if err != nil {
		panic(err)
	}
	return result
}
