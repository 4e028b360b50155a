package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fern-lang/fern/internal/generator"
	"github.com/fern-lang/fern/internal/introspect"
	"github.com/fern-lang/fern/pkg/engine"
)

func newInspector(t *testing.T) *introspect.Inspector {
	t.Helper()
	insp := introspect.NewInspector()
	require.NoError(t, insp.ParseDirectory("../../pkg/engine"))
	return insp
}

func TestBuildFilterCatalog(t *testing.T) {
	insp := newInspector(t)
	env := engine.DefaultEnvironment()

	cat, err := generator.BuildCallableCatalog(insp, env.Filters)
	require.NoError(t, err)
	assert.Equal(t, env.Filters.Len(), cat.Len())

	desc, ok := cat.Get("wordwrap")
	require.True(t, ok)
	assert.Equal(t, "Wrap text at a given line width.", desc.Brief)
	require.Len(t, desc.Parameters, 1)
	assert.Equal(t, "width", desc.Parameters[0].Name)
	require.NotNil(t, desc.Parameters[0].Default)
	assert.Equal(t, "80", *desc.Parameters[0].Default)
}

func TestBuildCatalogExcludesInjectedParameters(t *testing.T) {
	insp := newInspector(t)
	env := engine.DefaultEnvironment()

	cat, err := generator.BuildCallableCatalog(insp, env.Filters)
	require.NoError(t, err)

	// truncate declares (environment, s, length, killwords, end); the
	// catalog keeps only the user-facing tail
	desc, ok := cat.Get("truncate")
	require.True(t, ok)
	names := make([]string, len(desc.Parameters))
	for i, p := range desc.Parameters {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"length", "killwords", "end"}, names)
}

func TestBuildCatalogZeroParamEntries(t *testing.T) {
	insp := newInspector(t)
	env := engine.DefaultEnvironment()

	cat, err := generator.BuildCallableCatalog(insp, env.Filters)
	require.NoError(t, err)

	desc, ok := cat.Get("upper")
	require.True(t, ok)
	assert.Equal(t, "Convert a string to uppercase.", desc.Brief)
	require.NotNil(t, desc.Parameters)
	assert.Empty(t, desc.Parameters)
}

func TestBuildCatalogPreservesRegistrationOrder(t *testing.T) {
	insp := newInspector(t)
	env := engine.DefaultEnvironment()

	cat, err := generator.BuildCallableCatalog(insp, env.Tests)
	require.NoError(t, err)
	assert.Equal(t, env.Tests.Names(), cat.Keys())
}

func TestBuildGlobalCatalog(t *testing.T) {
	insp := newInspector(t)
	env := engine.DefaultEnvironment()

	cat, err := generator.BuildCallableCatalog(insp, env.Globals)
	require.NoError(t, err)

	// function globals lose their implicit context parameter
	desc, ok := cat.Get("range")
	require.True(t, ok)
	require.Len(t, desc.Parameters, 3)
	assert.Equal(t, "start", desc.Parameters[0].Name)
	assert.Equal(t, "step", desc.Parameters[2].Name)
	require.NotNil(t, desc.Parameters[2].Default)
	assert.Equal(t, "1", *desc.Parameters[2].Default)

	// constructible globals are documented through their type
	desc, ok = cat.Get("cycler")
	require.True(t, ok)
	assert.Equal(t, "Cycler cycles through a fixed set of values, one per call.", desc.Brief)
	require.Len(t, desc.Parameters, 1)
	assert.Equal(t, "values", desc.Parameters[0].Name)
	assert.Nil(t, desc.Parameters[0].Default)

	desc, ok = cat.Get("joiner")
	require.True(t, ok)
	require.Len(t, desc.Parameters, 1)
	assert.Equal(t, "sep", desc.Parameters[0].Name)
	require.NotNil(t, desc.Parameters[0].Default)
	assert.Equal(t, ", ", *desc.Parameters[0].Default)
}

func TestBuildCatalogFailsOnUndocumentedEntry(t *testing.T) {
	insp := newInspector(t)

	reg := engine.NewRegistry()
	reg.Add("shady", func(v engine.Value) engine.Value { return v })

	_, err := generator.BuildCallableCatalog(insp, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, introspect.ErrNotIntrospectable)
	assert.Contains(t, err.Error(), `"shady"`)
}
