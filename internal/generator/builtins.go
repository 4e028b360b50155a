package generator

import (
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/fern-lang/fern/internal/introspect"
	"github.com/fern-lang/fern/pkg/engine"
)

// BuildTypeCatalog derives one catalog entry per sample value. Samples are
// the closed set of built-in types the language server recognizes; element
// and property classification is a lookup against that set.
func BuildTypeCatalog(insp *introspect.Inspector, samples []engine.Value) (*TypeCatalog, error) {
	sampled := map[reflect.Type]string{}
	for _, s := range samples {
		name, ok := engine.TypeName(s)
		if !ok {
			return nil, fmt.Errorf("sample %T is not a built-in value type", s)
		}
		if _, dup := sampled[reflect.TypeOf(s)]; dup {
			return nil, fmt.Errorf("duplicate sample for type %q", name)
		}
		sampled[reflect.TypeOf(s)] = name
	}

	cat := NewOrderedMap[TypeDescriptor]()
	for _, s := range samples {
		name, _ := engine.TypeName(s)
		td := TypeDescriptor{
			Name:       name,
			Properties: NewOrderedMap[PropertyDescriptor](),
		}
		if elemName, ok := unifiedElementType(s, sampled); ok {
			td.ElementType = &elemName
		}
		walkMembers(insp, s, sampled, td.Properties)
		cat.Set(name, td)
	}
	return cat, nil
}

// unifiedElementType reports the single element type of an iterable sample.
// Non-iterable samples, empty or heterogeneous collections, and elements
// whose type is not itself sampled all leave the element type unset; none of
// those is an error.
func unifiedElementType(s engine.Value, sampled map[reflect.Type]string) (string, bool) {
	elems, ok := engine.Iterate(s)
	if !ok || len(elems) == 0 {
		return "", false
	}
	var t reflect.Type
	for _, e := range elems {
		et := reflect.TypeOf(e)
		if t == nil {
			t = et
			continue
		}
		if t != et {
			return "", false
		}
	}
	name, ok := sampled[t]
	return name, ok
}

// walkMembers records every introspectable exported member of s. Exported
// fields holding a sampled built-in type become plain type-name properties;
// exported methods become nested documentation records. Members that resolve
// to neither are silently omitted.
func walkMembers(insp *introspect.Inspector, s engine.Value, sampled map[reflect.Type]string, props *PropertyMap) {
	rv := reflect.ValueOf(s)
	rt := rv.Type()

	if rt.Kind() == reflect.Struct {
		for i := 0; i < rt.NumField(); i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				continue
			}
			fv := rv.Field(i).Interface()
			if fv == nil {
				continue
			}
			key := memberName(field.Name)
			if name, ok := sampled[reflect.TypeOf(fv)]; ok {
				props.Set(key, PropertyDescriptor{TypeName: name})
				continue
			}
			if info, err := insp.Inspect(fv); err == nil {
				props.Set(key, PropertyDescriptor{Member: &MemberDescriptor{
					Name:      key,
					Signature: MemberSignature{Documentation: info.Brief},
				}})
			}
		}
	}

	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		info, err := insp.Inspect(method.Func)
		if err != nil {
			continue
		}
		key := memberName(method.Name)
		props.Set(key, PropertyDescriptor{Member: &MemberDescriptor{
			Name:      key,
			Signature: MemberSignature{Documentation: info.Brief},
		}})
	}
}

// memberName maps a Go member name to its template-facing spelling: first
// rune lowercased.
func memberName(goName string) string {
	r, size := utf8.DecodeRuneInString(goName)
	if r == utf8.RuneError {
		return goName
	}
	return string(unicode.ToLower(r)) + goName[size:]
}
