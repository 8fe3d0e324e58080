package injector

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ============================================================================
// Shared Test Types
// ============================================================================

// TService is a basic service for testing.
type TService struct {
	ID string
}

func (s *TService) GetID() string { return s.ID }

// TInterface is a basic interface for testing.
type TInterface interface {
	GetID() string
}

// TDependency is a basic dependency for testing.
type TDependency struct {
	Name string
}

// TServiceWithDeps demonstrates constructor injection.
type TServiceWithDeps struct {
	Svc *TService
	Dep *TDependency
}

func NewTService() *TService { return &TService{ID: "service"} }

func NewTDependency() *TDependency { return &TDependency{Name: "dependency"} }

func NewTServiceWithDeps(svc *TService, dep *TDependency) *TServiceWithDeps {
	return &TServiceWithDeps{Svc: svc, Dep: dep}
}

// TParams is a parameter object.
type TParams struct {
	In

	Primary  *TService
	Replica  *TService    `name:"replica"`
	Optional TInterface   `optional:"true"`
	Skipped  *TDependency `inject:"-"`
}

// TGreeter is built just in time.
type TGreeter struct {
	Service  *TService  `inject:""`
	Replica  *TService  `inject:"" named:"replica"`
	Missing  TInterface `inject:"optional"`
	Ignored  *TDependency
	Greeting string
}

func (g *TGreeter) PostConstruct() error {
	g.Greeting = "hello " + g.Service.ID
	return nil
}

// TClock is a just-in-time singleton.
type TClock struct {
	Singleton

	Service *TService `inject:""`
}

// TAppClock is a just-in-time singleton through ApplicationScoped.
type TAppClock struct {
	ApplicationScoped
}

// TFailingInit fails in PostConstruct.
type TFailingInit struct{}

func (TFailingInit) PostConstruct() error { return errors.New("init failed") }

// TOpaque only works when built by its constructor.
type TOpaque struct {
	svc *TService
}

// TCycleA and TCycleB depend on each other just in time.
type TCycleA struct {
	B *TCycleB `inject:""`
}

type TCycleB struct {
	A *TCycleA `inject:""`
}

// TBoundCycleA and TBoundCycleB depend on each other through constructors.
type TBoundCycleA struct{}

type TBoundCycleB struct{}

func NewTBoundCycleA(*TBoundCycleB) *TBoundCycleA { return &TBoundCycleA{} }

func NewTBoundCycleB(*TBoundCycleA) *TBoundCycleB { return &TBoundCycleB{} }

// TPrimary is a marker qualifier.
type TPrimary struct{}

// TZone is a marker qualifier whose member is a pointer.
type TZone struct {
	Name *string
}

// TDisposable records its disposal.
type TDisposable struct {
	Name   string
	closed atomic.Bool
	log    *closeLog
	err    error
}

func (d *TDisposable) Close() error {
	d.closed.Store(true)
	if d.log != nil {
		d.log.add(d.Name)
	}
	return d.err
}

func (d *TDisposable) IsClosed() bool {
	return d.closed.Load()
}

// TContextDisposable records the context it was closed with.
type TContextDisposable struct {
	ctx context.Context
}

func (d *TContextDisposable) Close(ctx context.Context) error {
	d.ctx = ctx
	return nil
}

// closeLog records close order.
type closeLog struct {
	mu    sync.Mutex
	names []string
}

func (l *closeLog) add(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *closeLog) order() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}
