package generator

import (
	"fmt"

	"github.com/fern-lang/fern/internal/introspect"
	"github.com/fern-lang/fern/pkg/engine"
)

// paramFilter removes catalog-invisible parameters from a declared list.
type paramFilter func([]introspect.Param) []introspect.Param

// callableParamFilters is the exclusion policy applied to every namespace
// callable, in order: parameters named environment are renderer-injected and
// never user-facing, and the first remaining parameter is the implicit
// subject (the piped value for filters and tests, the render context for
// globals). Individual callables are never special-cased.
var callableParamFilters = []paramFilter{
	dropNamed("environment"),
	dropFirst,
}

func dropNamed(name string) paramFilter {
	return func(params []introspect.Param) []introspect.Param {
		out := params[:0]
		for _, p := range params {
			if p.Name != name {
				out = append(out, p)
			}
		}
		return out
	}
}

func dropFirst(params []introspect.Param) []introspect.Param {
	if len(params) == 0 {
		return params
	}
	return params[1:]
}

// BuildCallableCatalog walks a namespace in registration order and produces
// one descriptor per entry. The default namespaces are curated and fully
// introspectable by contract, so any introspection failure aborts the build
// rather than dropping the entry.
func BuildCallableCatalog(insp *introspect.Inspector, reg *engine.Registry) (*CallableCatalog, error) {
	cat := NewOrderedMap[CallableDescriptor]()
	for _, name := range reg.Names() {
		b, ok := reg.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("registry entry %q disappeared during build", name)
		}
		info, err := insp.Inspect(b)
		if err != nil {
			return nil, fmt.Errorf("introspect %q: %w", name, err)
		}
		params := info.Params
		for _, filter := range callableParamFilters {
			params = filter(params)
		}
		cat.Set(name, CallableDescriptor{
			Brief:      info.Brief,
			Parameters: toParameterDescriptors(params),
		})
	}
	return cat, nil
}

func toParameterDescriptors(params []introspect.Param) []ParameterDescriptor {
	out := make([]ParameterDescriptor, 0, len(params))
	for _, p := range params {
		out = append(out, ParameterDescriptor{Name: p.Name, Default: p.Default})
	}
	return out
}
