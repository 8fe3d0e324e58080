package cdi_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/cdi"
	"github.com/junioryono/cdi/injector"
	"github.com/junioryono/cdi/internal/testutil"
)

func newBridge(t *testing.T, inj *injector.Injector) *cdi.CDI {
	t.Helper()

	bridge, err := cdi.New(inj)
	require.NoError(t, err)
	return bridge
}

func TestIntegrationNamedLookup(t *testing.T) {
	inj := testutil.NewBinderBuilder(t).
		WithSingleton(func() *testutil.TestBean { return testutil.NewTestBean("test") }, injector.Name("testBean")).
		Build()
	bridge := newBridge(t, inj)

	t.Run("facade", func(t *testing.T) {
		bean, err := bridge.BeanManager().GetNamedBean(testBeanType, "testBean")
		require.NoError(t, err)
		assert.Equal(t, "test", bean.(*testutil.TestBean).Name())
	})

	t.Run("generic", func(t *testing.T) {
		bean := testutil.AssertNamedBeanResolvable[*testutil.TestBean](t, bridge, "testBean")
		assert.Equal(t, "test", bean.Name())
	})

	t.Run("instance handle", func(t *testing.T) {
		bean, err := cdi.Select[*testutil.TestBean](bridge, cdi.ByName("testBean")).Get()
		require.NoError(t, err)
		assert.Equal(t, "test", bean.Name())
	})

	t.Run("singleton identity", func(t *testing.T) {
		first := cdi.MustGetNamed[*testutil.TestBean](bridge, "testBean")
		second := cdi.MustGetNamed[*testutil.TestBean](bridge, "testBean")
		assert.Same(t, first, second)
	})

	t.Run("different name is not found", func(t *testing.T) {
		testutil.AssertBeanNotFound[*testutil.TestBean](t, bridge, cdi.ByName("otherBean"))
	})
}

func TestIntegrationMarkerLookup(t *testing.T) {
	inj := testutil.NewBinderBuilder(t).
		WithSingleton(func() *testutil.TestBean { return testutil.NewTestBean("eu") }, injector.Qualified(testutil.Replica{Region: "eu"})).
		WithSingleton(func() *testutil.TestBean { return testutil.NewTestBean("primary") }, injector.Qualified(testutil.Primary{})).
		Build()
	bridge := newBridge(t, inj)

	eu, err := cdi.GetQualified[*testutil.TestBean](bridge, &testutil.Replica{Region: "eu"})
	require.NoError(t, err)
	assert.Equal(t, "eu", eu.Name())

	primary, err := cdi.GetQualified[*testutil.TestBean](bridge, testutil.Primary{})
	require.NoError(t, err)
	assert.Equal(t, "primary", primary.Name())

	testutil.AssertBeanNotFound[*testutil.TestBean](t, bridge, testutil.Replica{Region: "us"})
}

func TestIntegrationLookupSemantics(t *testing.T) {
	inj := testutil.NewBinderBuilder(t).
		WithTransient(testutil.NewTestService).
		Build()
	bridge := newBridge(t, inj)

	t.Run("transient beans differ per lookup", func(t *testing.T) {
		first := cdi.MustGet[*testutil.TestService](bridge)
		second := cdi.MustGet[*testutil.TestService](bridge)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("GetBeans has one element", func(t *testing.T) {
		beans, err := cdi.GetAll[*testutil.TestService](bridge)
		require.NoError(t, err)
		assert.Len(t, beans, 1)
	})

	t.Run("ContainsBean cannot answer no", func(t *testing.T) {
		assert.True(t, cdi.Contains[*testutil.NonExistentBean](bridge))
		assert.True(t, cdi.Contains[testutil.TestLogger](bridge))
	})

	t.Run("unbound interface", func(t *testing.T) {
		testutil.AssertBeanNotFound[testutil.TestLogger](t, bridge)
	})

	t.Run("just-in-time struct", func(t *testing.T) {
		bean, err := cdi.Get[*testutil.NonExistentBean](bridge)
		require.NoError(t, err)
		assert.NotNil(t, bean)
	})

	t.Run("bridge types are not built just in time", func(t *testing.T) {
		manager, err := cdi.Get[*cdi.BeanManager](bridge)
		require.Error(t, err)
		assert.Nil(t, manager)
		assert.ErrorIs(t, err, cdi.ErrNoInjectableConstructor)
	})

	t.Run("SPI is not implemented", func(t *testing.T) {
		_, err := bridge.Adapter().CreateBean(&cdi.BeanAttributes{}, testBeanType, nil)
		testutil.AssertNotImplemented(t, err, "CreateBean")
	})

	t.Run("qualifier equivalence", func(t *testing.T) {
		assert.True(t, bridge.Adapter().QualifiersEquivalent(cdi.ByName("testBean"), cdi.ByName("testBean")))
	})
}

func TestIntegrationClosedInjector(t *testing.T) {
	inj := testutil.NewBinderBuilder(t).
		WithSingleton(func() *testutil.TestBean { return testutil.NewTestBean("test") }).
		Build()
	bridge := newBridge(t, inj)

	require.NoError(t, inj.Close())

	_, err := cdi.Get[*testutil.TestBean](bridge)
	assert.ErrorIs(t, err, cdi.ErrInjectorClosed)
	assert.True(t, cdi.IsResolutionError(err))
}

func TestIntegrationBridgeModule(t *testing.T) {
	inj := testutil.NewBinderBuilder(t).
		WithSingleton(func() *testutil.TestBean { return testutil.NewTestBean("test") }, injector.Name("testBean")).
		WithModule(injector.BridgeModule()).
		Build()

	manager, err := injector.Resolve[*cdi.BeanManager](inj)
	require.NoError(t, err)
	assert.Same(t, inj, manager.Registry())

	bean := testutil.AssertNamedBeanResolvable[*testutil.TestBean](t, manager, "testBean")
	assert.Equal(t, "test", bean.Name())

	discovered, err := cdi.Discover(injector.MustResolve[*cdi.CDI](inj))
	require.NoError(t, err)
	assert.Same(t, manager, discovered)
}

func TestIntegrationConcurrentLookups(t *testing.T) {
	inj := testutil.NewBinderBuilder(t).
		WithSingleton(func() *testutil.TestBean { return testutil.NewTestBean("test") }, injector.Name("testBean")).
		Build()
	bridge := newBridge(t, inj)

	const goroutines = 50
	results := make([]*testutil.TestBean, goroutines)

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bean, err := cdi.GetNamed[*testutil.TestBean](bridge, "testBean")
			assert.NoError(t, err)
			results[i] = bean
		}()
	}
	wg.Wait()

	for _, bean := range results {
		assert.Same(t, results[0], bean)
	}
}
