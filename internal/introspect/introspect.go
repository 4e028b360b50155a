// Package introspect implements best-effort signature and documentation
// discovery for the engine's runtime objects. Go keeps parameter names, doc
// comments and defaults out of reach of the reflect package, so the
// inspector pairs runtime symbol resolution (runtime.FuncForPC) with a
// one-time parse of the engine's source tree, and reads declared defaults
// from the registration metadata each builtin carries.
package introspect

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/fern-lang/fern/pkg/engine"
)

var (
	// ErrNotIntrospectable marks objects the inspector cannot resolve to a
	// declaration: closures, natively implemented callables, plain values.
	ErrNotIntrospectable = errors.New("object is not introspectable")

	// ErrMissingDoc marks declarations that resolve but carry no doc
	// comment.
	ErrMissingDoc = errors.New("declaration has no documentation")
)

// Param describes one declared parameter. Default is nil if and only if the
// parameter is required.
type Param struct {
	Name    string
	Default *string
}

// Info is the result of introspecting one object: the first documentation
// paragraph and the declared parameter list.
type Info struct {
	Brief  string
	Params []Param
}

// Inspector indexes the declarations of a parsed source tree and resolves
// runtime objects against them.
type Inspector struct {
	funcs    map[string]*ast.FuncDecl // "name" or "Type.Method"
	typeDocs map[string]*ast.CommentGroup
}

// NewInspector allocates an empty inspector.
func NewInspector() *Inspector {
	return &Inspector{
		funcs:    map[string]*ast.FuncDecl{},
		typeDocs: map[string]*ast.CommentGroup{},
	}
}

// ParseDirectory walks dir recursively and indexes every Go file it finds.
// Test files and vendor directories are skipped.
func (in *Inspector) ParseDirectory(dir string) error {
	fset := token.NewFileSet()
	return filepath.WalkDir(dir, func(path string, de os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			if de.Name() == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		name := de.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		in.indexFile(file)
		return nil
	})
}

func (in *Inspector) indexFile(file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch decl := n.(type) {
		case *ast.FuncDecl:
			in.funcs[funcKey(decl)] = decl
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				return true
			}
			for _, spec := range decl.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil {
					doc = decl.Doc
				}
				if doc != nil {
					in.typeDocs[ts.Name.Name] = doc
				}
			}
		}
		return true
	})
}

func funcKey(decl *ast.FuncDecl) string {
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return decl.Name.Name
	}
	return recvTypeName(decl.Recv.List[0].Type) + "." + decl.Name.Name
}

func recvTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return recvTypeName(t.X)
	case *ast.IndexExpr:
		return recvTypeName(t.X)
	default:
		return ""
	}
}

// Inspect resolves obj to its declaration and returns its brief and
// parameter list. Accepted shapes: a *engine.Builtin (unwrapped, declared
// defaults merged in), a reflect.Type of a constructible value (initializer
// semantics), a reflect.Value or plain value of func kind.
func (in *Inspector) Inspect(obj any) (Info, error) {
	switch o := obj.(type) {
	case nil:
		return Info{}, fmt.Errorf("nil object: %w", ErrNotIntrospectable)
	case *engine.Builtin:
		return in.inspectEntry(o)
	case reflect.Type:
		return in.inspectType(o, nil)
	case reflect.Value:
		return in.inspectFunc(o, nil)
	default:
		rv := reflect.ValueOf(obj)
		if rv.Kind() == reflect.Func {
			return in.inspectFunc(rv, nil)
		}
		return Info{}, fmt.Errorf("%T: %w", obj, ErrNotIntrospectable)
	}
}

func (in *Inspector) inspectEntry(b *engine.Builtin) (Info, error) {
	if t, ok := b.Fn.(reflect.Type); ok {
		return in.inspectType(t, b)
	}
	rv := reflect.ValueOf(b.Fn)
	if rv.Kind() != reflect.Func {
		return Info{}, fmt.Errorf("entry %q holds %T: %w", b.Name, b.Fn, ErrNotIntrospectable)
	}
	return in.inspectFunc(rv, b)
}

// inspectType applies constructing-callable semantics: documentation comes
// from the type itself, the parameter list from its New<Type> constructor.
func (in *Inspector) inspectType(t reflect.Type, b *engine.Builtin) (Info, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || t.Name() == "" {
		return Info{}, fmt.Errorf("type %s: %w", t, ErrNotIntrospectable)
	}
	ctor, ok := in.funcs["New"+t.Name()]
	if !ok {
		return Info{}, fmt.Errorf("type %s has no constructor: %w", t.Name(), ErrNotIntrospectable)
	}
	doc, ok := in.typeDocs[t.Name()]
	if !ok {
		return Info{}, fmt.Errorf("type %s: %w", t.Name(), ErrMissingDoc)
	}
	return Info{Brief: brief(doc), Params: in.declParams(ctor, b)}, nil
}

func (in *Inspector) inspectFunc(rv reflect.Value, b *engine.Builtin) (Info, error) {
	if rv.Kind() != reflect.Func {
		return Info{}, fmt.Errorf("%s: %w", rv.Kind(), ErrNotIntrospectable)
	}
	sym := runtime.FuncForPC(rv.Pointer())
	if sym == nil {
		return Info{}, fmt.Errorf("no symbol for func: %w", ErrNotIntrospectable)
	}
	key, err := declKey(sym.Name())
	if err != nil {
		return Info{}, err
	}
	decl, ok := in.funcs[key]
	if !ok {
		return Info{}, fmt.Errorf("no declaration for %s: %w", key, ErrNotIntrospectable)
	}
	if decl.Doc == nil {
		return Info{}, fmt.Errorf("%s: %w", key, ErrMissingDoc)
	}
	return Info{Brief: brief(decl.Doc), Params: in.declParams(decl, b)}, nil
}

// declKey turns a runtime symbol name into the index key of its
// declaration: "path/to/pkg.filterUpper" becomes "filterUpper",
// "path/to/pkg.(*List).First" becomes "List.First".
func declKey(symbol string) (string, error) {
	name := symbol
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("symbol %q: %w", symbol, ErrNotIntrospectable)
	}
	parts = parts[1:] // drop the package name
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(strings.TrimPrefix(p, "(*"), ")")
	}
	if isAnonymous(parts[len(parts)-1]) {
		return "", fmt.Errorf("anonymous func %q: %w", symbol, ErrNotIntrospectable)
	}
	return strings.Join(parts, "."), nil
}

// isAnonymous matches the funcN suffix the runtime gives closures.
func isAnonymous(name string) bool {
	if !strings.HasPrefix(name, "func") {
		return false
	}
	rest := name[len("func"):]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (in *Inspector) declParams(decl *ast.FuncDecl, b *engine.Builtin) []Param {
	params := []Param{}
	if decl.Type.Params == nil {
		return params
	}
	for _, field := range decl.Type.Params.List {
		for _, id := range field.Names {
			p := Param{Name: id.Name}
			if b != nil {
				if dv, ok := b.DefaultFor(id.Name); ok {
					lit := engine.Literal(dv)
					p.Default = &lit
				}
			}
			params = append(params, p)
		}
	}
	return params
}

// brief extracts the first documentation paragraph: text up to the first
// blank line, with remaining line breaks collapsed to single spaces.
func brief(doc *ast.CommentGroup) string {
	text := strings.TrimSpace(doc.Text())
	if i := strings.Index(text, "\n\n"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
}
