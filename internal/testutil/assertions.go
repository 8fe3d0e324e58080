package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junioryono/cdi"
)

// AssertBeanResolvable checks that a bean of type T can be looked up
func AssertBeanResolvable[T any](t *testing.T, lookup cdi.Lookup) T {
	t.Helper()
	bean, err := cdi.Get[T](lookup)
	require.NoError(t, err, "failed to resolve bean of type %T", *new(T))
	require.NotNil(t, bean, "resolved bean is nil")
	return bean
}

// AssertNamedBeanResolvable checks that a named bean of type T can be looked up
func AssertNamedBeanResolvable[T any](t *testing.T, lookup cdi.Lookup, name string) T {
	t.Helper()
	bean, err := cdi.GetNamed[T](lookup, name)
	require.NoError(t, err, "failed to resolve bean of type %T named %q", *new(T), name)
	require.NotNil(t, bean, "resolved bean is nil")
	return bean
}

// AssertBeanNotFound checks that looking up T fails because nothing is bound
func AssertBeanNotFound[T any](t *testing.T, lookup cdi.Lookup, qualifier ...cdi.Qualifier) {
	t.Helper()

	var err error
	if len(qualifier) > 0 {
		_, err = cdi.GetQualified[T](lookup, qualifier[0])
	} else {
		_, err = cdi.Get[T](lookup)
	}

	require.Error(t, err)
	assert.True(t, cdi.IsNotFound(err), "expected bean not found error, got: %v", err)
	assert.True(t, cdi.IsResolutionError(err), "expected resolution error, got: %T", err)
}

// AssertNotImplemented checks that err reports an unoffered capability
func AssertNotImplemented(t *testing.T, err error, operation string) {
	t.Helper()

	var nie cdi.NotImplementedError
	require.ErrorAs(t, err, &nie)
	assert.Equal(t, operation, nie.Operation)
	assert.True(t, cdi.IsNotImplemented(err))
}
