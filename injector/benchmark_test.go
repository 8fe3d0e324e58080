package injector

import (
	"reflect"
	"testing"

	"github.com/junioryono/cdi"
)

// Benchmark service types
type BenchService struct {
	Name string
}

type BenchDep1 struct{ Value int }
type BenchDep2 struct{ Value int }
type BenchDep3 struct{ Value int }
type BenchDep4 struct{ Value int }
type BenchDep5 struct{ Value int }

type BenchServiceWith1Dep struct {
	Dep1 *BenchDep1
}

type BenchServiceWith3Deps struct {
	Dep1 *BenchDep1
	Dep2 *BenchDep2
	Dep3 *BenchDep3
}

type BenchServiceWith5Deps struct {
	Dep1 *BenchDep1
	Dep2 *BenchDep2
	Dep3 *BenchDep3
	Dep4 *BenchDep4
	Dep5 *BenchDep5
}

// BenchJIT is built just in time from its tagged fields.
type BenchJIT struct {
	Dep1 *BenchDep1 `inject:""`
	Dep2 *BenchDep2 `inject:""`
}

// Constructors for benchmarks
func NewBenchService() *BenchService {
	return &BenchService{Name: "bench"}
}

func NewBenchDep1() *BenchDep1 { return &BenchDep1{Value: 1} }
func NewBenchDep2() *BenchDep2 { return &BenchDep2{Value: 2} }
func NewBenchDep3() *BenchDep3 { return &BenchDep3{Value: 3} }
func NewBenchDep4() *BenchDep4 { return &BenchDep4{Value: 4} }
func NewBenchDep5() *BenchDep5 { return &BenchDep5{Value: 5} }

func NewBenchServiceWith1Dep(dep1 *BenchDep1) *BenchServiceWith1Dep {
	return &BenchServiceWith1Dep{Dep1: dep1}
}

func NewBenchServiceWith3Deps(dep1 *BenchDep1, dep2 *BenchDep2, dep3 *BenchDep3) *BenchServiceWith3Deps {
	return &BenchServiceWith3Deps{Dep1: dep1, Dep2: dep2, Dep3: dep3}
}

func NewBenchServiceWith5Deps(dep1 *BenchDep1, dep2 *BenchDep2, dep3 *BenchDep3, dep4 *BenchDep4, dep5 *BenchDep5) *BenchServiceWith5Deps {
	return &BenchServiceWith5Deps{Dep1: dep1, Dep2: dep2, Dep3: dep3, Dep4: dep4, Dep5: dep5}
}

var (
	benchDeps     = []any{NewBenchDep1, NewBenchDep2, NewBenchDep3, NewBenchDep4, NewBenchDep5}
	benchServices = map[int]any{
		0: NewBenchService,
		1: NewBenchServiceWith1Dep,
		3: NewBenchServiceWith3Deps,
		5: NewBenchServiceWith5Deps,
	}
)

// setupBenchInjector creates an injector with the specified configuration
func setupBenchInjector(b *testing.B, lifetime Lifetime, deps int) *Injector {
	b.Helper()

	binder := NewBinder()
	for _, ctor := range benchDeps[:deps] {
		if err := binder.add(ctor, lifetime); err != nil {
			b.Fatalf("failed to add dependency: %v", err)
		}
	}

	if err := binder.add(benchServices[deps], lifetime); err != nil {
		b.Fatalf("failed to add service: %v", err)
	}

	inj, err := binder.Build()
	if err != nil {
		b.Fatalf("failed to build injector: %v", err)
	}

	b.Cleanup(func() {
		inj.Close()
	})

	return inj
}

// BenchmarkResolution tests resolution performance for different lifetimes and dependency counts
func BenchmarkResolution(b *testing.B) {
	cases := []struct {
		name     string
		lifetime Lifetime
		deps     int
		target   reflect.Type
	}{
		{"Singleton/0deps", LifetimeSingleton, 0, reflect.TypeOf((*BenchService)(nil))},
		{"Singleton/1dep", LifetimeSingleton, 1, reflect.TypeOf((*BenchServiceWith1Dep)(nil))},
		{"Singleton/3deps", LifetimeSingleton, 3, reflect.TypeOf((*BenchServiceWith3Deps)(nil))},
		{"Singleton/5deps", LifetimeSingleton, 5, reflect.TypeOf((*BenchServiceWith5Deps)(nil))},
		{"Transient/0deps", LifetimeTransient, 0, reflect.TypeOf((*BenchService)(nil))},
		{"Transient/1dep", LifetimeTransient, 1, reflect.TypeOf((*BenchServiceWith1Dep)(nil))},
		{"Transient/3deps", LifetimeTransient, 3, reflect.TypeOf((*BenchServiceWith3Deps)(nil))},
		{"Transient/5deps", LifetimeTransient, 5, reflect.TypeOf((*BenchServiceWith5Deps)(nil))},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			inj := setupBenchInjector(b, tc.lifetime, tc.deps)
			key := cdi.Key(tc.target)

			// Warm up the singleton cache
			_, _ = inj.Resolve(key)

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				_, _ = inj.Resolve(key)
			}
		})
	}
}

// BenchmarkConcurrentResolution tests concurrent resolution performance
func BenchmarkConcurrentResolution(b *testing.B) {
	cases := []struct {
		name     string
		lifetime Lifetime
	}{
		{"Singleton/5deps", LifetimeSingleton},
		{"Transient/5deps", LifetimeTransient},
	}

	for _, tc := range cases {
		b.Run(tc.name, func(b *testing.B) {
			inj := setupBenchInjector(b, tc.lifetime, 5)
			key := cdi.KeyFor[*BenchServiceWith5Deps]()

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_, _ = inj.Resolve(key)
				}
			})
		})
	}
}

// BenchmarkJustInTime tests construction of unbound struct types
func BenchmarkJustInTime(b *testing.B) {
	inj := setupBenchInjector(b, LifetimeSingleton, 3)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = Resolve[*BenchJIT](inj)
	}
}

// BenchmarkBeanManager tests lookups through the bean manager facade
func BenchmarkBeanManager(b *testing.B) {
	inj := setupBenchInjector(b, LifetimeSingleton, 0)

	manager, err := cdi.NewBeanManager(inj)
	if err != nil {
		b.Fatalf("failed to create bean manager: %v", err)
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = cdi.Get[*BenchService](manager)
	}
}

// BenchmarkGenericResolve tests the generic Resolve function
func BenchmarkGenericResolve(b *testing.B) {
	inj := setupBenchInjector(b, LifetimeSingleton, 0)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = Resolve[*BenchService](inj)
	}
}

// BenchmarkBuild tests injector build performance
func BenchmarkBuild(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		binder := NewBinder()
		for _, ctor := range benchDeps {
			_ = binder.AddSingleton(ctor)
		}
		_ = binder.AddSingleton(NewBenchServiceWith5Deps)

		inj, _ := binder.BuildWithOptions(&Options{EagerSingletons: true})
		inj.Close()
	}
}
