package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fern-lang/fern/internal/generator"
	"github.com/fern-lang/fern/pkg/engine"
)

func buildTypeCatalog(t *testing.T) *generator.TypeCatalog {
	t.Helper()
	cat, err := generator.BuildTypeCatalog(newInspector(t), engine.DefaultSamples())
	require.NoError(t, err)
	return cat
}

func TestTypeCatalogCoversEverySample(t *testing.T) {
	cat := buildTypeCatalog(t)
	assert.Equal(t, []string{"str", "int", "float", "bool", "list", "dict", "loop"}, cat.Keys())
}

func TestStringTypeEntry(t *testing.T) {
	cat := buildTypeCatalog(t)

	td, ok := cat.Get("str")
	require.True(t, ok)
	assert.Equal(t, "str", td.Name)

	// strings iterate to chars, which are not sampled
	assert.Nil(t, td.ElementType)

	prop, ok := td.Properties.Get("upper")
	require.True(t, ok)
	require.NotNil(t, prop.Member)
	assert.Equal(t, "upper", prop.Member.Name)
	assert.Equal(t,
		"Upper returns a copy of the string with all characters uppercased.",
		prop.Member.Signature.Documentation)

	for _, name := range []string{"lower", "title", "capitalize", "trim", "split", "startsWith", "endsWith"} {
		_, ok := td.Properties.Get(name)
		assert.True(t, ok, "expected str member %q", name)
	}
}

func TestListTypeEntry(t *testing.T) {
	cat := buildTypeCatalog(t)

	td, ok := cat.Get("list")
	require.True(t, ok)
	require.NotNil(t, td.ElementType)
	assert.Equal(t, "int", *td.ElementType)

	for _, name := range []string{"first", "last", "reverse", "includes", "join"} {
		_, ok := td.Properties.Get(name)
		assert.True(t, ok, "expected list member %q", name)
	}
}

func TestDictTypeEntry(t *testing.T) {
	cat := buildTypeCatalog(t)

	td, ok := cat.Get("dict")
	require.True(t, ok)

	// dicts iterate their keys
	require.NotNil(t, td.ElementType)
	assert.Equal(t, "str", *td.ElementType)

	_, ok = td.Properties.Get("keys")
	assert.True(t, ok)

	// undocumented members never reach the catalog
	_, ok = td.Properties.Get("len")
	assert.False(t, ok)
}

func TestLoopTypeEntry(t *testing.T) {
	cat := buildTypeCatalog(t)

	td, ok := cat.Get("loop")
	require.True(t, ok)
	assert.Nil(t, td.ElementType)

	for name, want := range map[string]string{
		"index":    "int",
		"index0":   "int",
		"revindex": "int",
		"first":    "bool",
		"last":     "bool",
		"length":   "int",
	} {
		prop, ok := td.Properties.Get(name)
		require.True(t, ok, "expected loop field %q", name)
		assert.Equal(t, want, prop.TypeName)
		assert.Nil(t, prop.Member)
	}

	// parent holds a non-builtin pointer and is omitted
	_, ok = td.Properties.Get("parent")
	assert.False(t, ok)

	prop, ok := td.Properties.Get("cycle")
	require.True(t, ok)
	require.NotNil(t, prop.Member)
}

func TestScalarEntriesHaveNoElementType(t *testing.T) {
	cat := buildTypeCatalog(t)

	for _, name := range []string{"int", "float", "bool"} {
		td, ok := cat.Get(name)
		require.True(t, ok)
		assert.Nil(t, td.ElementType, "%s must not have an element type", name)
	}
}

func TestHeterogeneousListHasNoElementType(t *testing.T) {
	samples := []engine.Value{
		engine.Str("x"),
		engine.Int(1),
		engine.NewList(engine.Int(1), engine.Str("two")),
	}
	cat, err := generator.BuildTypeCatalog(newInspector(t), samples)
	require.NoError(t, err)

	td, ok := cat.Get("list")
	require.True(t, ok)
	assert.Nil(t, td.ElementType)
}

func TestElementTypeRequiresSampledElement(t *testing.T) {
	// a list of floats is homogeneous, but float is not in this sample set
	samples := []engine.Value{
		engine.NewList(engine.Float(1.0), engine.Float(2.0)),
	}
	cat, err := generator.BuildTypeCatalog(newInspector(t), samples)
	require.NoError(t, err)

	td, ok := cat.Get("list")
	require.True(t, ok)
	assert.Nil(t, td.ElementType)
}

func TestDuplicateSampleIsAnError(t *testing.T) {
	samples := []engine.Value{engine.Int(1), engine.Int(2)}
	_, err := generator.BuildTypeCatalog(newInspector(t), samples)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate sample")
}

func TestNonBuiltinSampleIsAnError(t *testing.T) {
	ctx := engine.NewContext(engine.DefaultEnvironment())
	cy, err := ctx.CallGlobal("cycler", engine.Str("a"))
	require.NoError(t, err)

	_, err = generator.BuildTypeCatalog(newInspector(t), []engine.Value{cy})
	require.Error(t, err)
}
