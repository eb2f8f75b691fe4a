package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// TypeKind classifies a parsed type expression.
type TypeKind uint8

// Type expression kinds.
const (
	KindBasic     TypeKind = iota + 1 // predeclared: int, string, any, error...
	KindNamed                         // Point, time.Time, Pair[int, string]
	KindTypeParam                     // a type parameter of the declaring type
	KindSlice                         // []E
	KindArray                         // [N]E
	KindMap                           // map[K]V
	KindPointer                       // *E
	KindUnion                         // A | B, bounds only
	KindApprox                        // ~E, bounds only
	KindRaw                           // func, chan, interface and struct literals
)

var kindNames = [...]string{
	KindBasic:     "basic",
	KindNamed:     "named",
	KindTypeParam: "type parameter",
	KindSlice:     "slice",
	KindArray:     "array",
	KindMap:       "map",
	KindPointer:   "pointer",
	KindUnion:     "union",
	KindApprox:    "approx",
	KindRaw:       "raw",
}

// String returns the kind name.
func (k TypeKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// TypeExpr is a parsed Go type expression.
type TypeExpr struct {
	Kind TypeKind
	// Name of a basic, named or type parameter type.
	Name string
	// Path is the import path of a qualified named type.
	Path string
	// Len is the array length expression.
	Len string
	// Key is the key type of a map.
	Key *TypeExpr
	// Elem is the element type of slices, arrays, maps, pointers and approx terms.
	Elem *TypeExpr
	// Args are the type arguments of a named type or the terms of a union.
	Args []*TypeExpr
	// Src is the source text of the expression.
	Src string
}

// String returns the source form of the expression.
func (t *TypeExpr) String() string { return t.Src }

// Code returns the jennifer code rendering the type.
func (t *TypeExpr) Code() jen.Code {
	switch t.Kind {
	case KindBasic, KindTypeParam:
		return jen.Id(t.Name)
	case KindNamed:
		var s *jen.Statement
		if t.Path != "" {
			s = jen.Qual(t.Path, t.Name)
		} else {
			s = jen.Id(t.Name)
		}
		if len(t.Args) > 0 {
			s = s.Types(codes(t.Args)...)
		}
		return s
	case KindSlice:
		return jen.Index().Add(t.Elem.Code())
	case KindArray:
		return jen.Index(jen.Id(t.Len)).Add(t.Elem.Code())
	case KindMap:
		return jen.Map(t.Key.Code()).Add(t.Elem.Code())
	case KindPointer:
		return jen.Op("*").Add(t.Elem.Code())
	case KindUnion:
		return jen.Union(codes(t.Args)...)
	case KindApprox:
		return jen.Op("~").Add(t.Elem.Code())
	default:
		return jen.Op(t.Src)
	}
}

func codes(ts []*TypeExpr) []jen.Code {
	cs := make([]jen.Code, len(ts))
	for i, t := range ts {
		cs[i] = t.Code()
	}
	return cs
}

// IsBasic reports whether t is one of the given predeclared types.
func (t *TypeExpr) IsBasic(names ...string) bool {
	if t.Kind != KindBasic {
		return false
	}
	for _, n := range names {
		if t.Name == n {
			return true
		}
	}
	return false
}

// Float reports whether t is float32 or float64.
func (t *TypeExpr) Float() bool {
	return t.IsBasic("float32", "float64")
}

// Comparable reports whether values of t can be compared with == while
// keeping value semantics. Floats are excluded so NaN stays equal to itself.
func (t *TypeExpr) Comparable() bool {
	return t.IsBasic(
		"bool", "string",
		"int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		"byte", "rune",
	)
}

// Collection reports whether t is a slice or a map.
func (t *TypeExpr) Collection() bool {
	return t.Kind == KindSlice || t.Kind == KindMap
}

// Errors returned by ParseTypeExpr.
var (
	errUnknownAlias = errors.New("unknown package alias")
	errConstraint   = errors.New("constraint syntax outside of a type parameter bound")
)

// typeParser parses expressions in the scope of one declaration.
type typeParser struct {
	imports map[string]string
	params  map[string]struct{}
	fset    *token.FileSet
}

// ParseTypeExpr parses src as a Go type. imports maps package aliases to
// import paths and params holds the type parameters in scope. Union and
// approximation terms are accepted only when bound is true.
func ParseTypeExpr(src string, imports map[string]string, params []string, bound bool) (*TypeExpr, error) {
	p := &typeParser{
		imports: imports,
		params:  make(map[string]struct{}, len(params)),
		fset:    token.NewFileSet(),
	}
	for _, name := range params {
		p.params[name] = struct{}{}
	}
	x, err := parser.ParseExprFrom(p.fset, "", src, 0)
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", src, err)
	}
	t, err := p.expr(x, bound)
	if err != nil {
		return nil, fmt.Errorf("type %q: %w", src, err)
	}
	return t, nil
}

func (p *typeParser) expr(x ast.Expr, bound bool) (*TypeExpr, error) {
	t := &TypeExpr{Src: p.src(x)}
	switch x := x.(type) {
	case *ast.ParenExpr:
		return p.expr(x.X, bound)
	case *ast.Ident:
		switch _, param := p.params[x.Name]; {
		case param:
			t.Kind, t.Name = KindTypeParam, x.Name
		case isPredeclaredType(x.Name):
			t.Kind, t.Name = KindBasic, x.Name
		default:
			t.Kind, t.Name = KindNamed, x.Name
		}
	case *ast.SelectorExpr:
		alias, ok := x.X.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unexpected selector %s", t.Src)
		}
		path, ok := p.imports[alias.Name]
		if !ok {
			return nil, fmt.Errorf("%w %q", errUnknownAlias, alias.Name)
		}
		t.Kind, t.Name, t.Path = KindNamed, x.Sel.Name, path
	case *ast.IndexExpr:
		return p.instance(t, x.X, []ast.Expr{x.Index})
	case *ast.IndexListExpr:
		return p.instance(t, x.X, x.Indices)
	case *ast.ArrayType:
		elem, err := p.expr(x.Elt, false)
		if err != nil {
			return nil, err
		}
		t.Elem = elem
		switch {
		case x.Len == nil:
			t.Kind = KindSlice
		default:
			if _, ok := x.Len.(*ast.Ellipsis); ok {
				return nil, errors.New("array length must be explicit")
			}
			t.Kind, t.Len = KindArray, p.src(x.Len)
		}
	case *ast.MapType:
		key, err := p.expr(x.Key, false)
		if err != nil {
			return nil, err
		}
		elem, err := p.expr(x.Value, false)
		if err != nil {
			return nil, err
		}
		t.Kind, t.Key, t.Elem = KindMap, key, elem
	case *ast.StarExpr:
		elem, err := p.expr(x.X, false)
		if err != nil {
			return nil, err
		}
		t.Kind, t.Elem = KindPointer, elem
	case *ast.UnaryExpr:
		if x.Op != token.TILDE {
			return nil, fmt.Errorf("unexpected operator %s", x.Op)
		}
		if !bound {
			return nil, errConstraint
		}
		elem, err := p.expr(x.X, false)
		if err != nil {
			return nil, err
		}
		t.Kind, t.Elem = KindApprox, elem
	case *ast.BinaryExpr:
		if x.Op != token.OR {
			return nil, fmt.Errorf("unexpected operator %s", x.Op)
		}
		if !bound {
			return nil, errConstraint
		}
		l, err := p.expr(x.X, true)
		if err != nil {
			return nil, err
		}
		r, err := p.expr(x.Y, true)
		if err != nil {
			return nil, err
		}
		t.Kind = KindUnion
		for _, term := range []*TypeExpr{l, r} {
			if term.Kind == KindUnion {
				t.Args = append(t.Args, term.Args...)
			} else {
				t.Args = append(t.Args, term)
			}
		}
	case *ast.FuncType, *ast.ChanType, *ast.InterfaceType, *ast.StructType:
		t.Kind = KindRaw
	default:
		return nil, fmt.Errorf("unsupported type expression %s", t.Src)
	}
	return t, nil
}

func (p *typeParser) instance(t *TypeExpr, x ast.Expr, args []ast.Expr) (*TypeExpr, error) {
	base, err := p.expr(x, false)
	if err != nil {
		return nil, err
	}
	if base.Kind != KindNamed {
		return nil, fmt.Errorf("%s is not a generic type", base.Src)
	}
	for _, a := range args {
		arg, err := p.expr(a, false)
		if err != nil {
			return nil, err
		}
		base.Args = append(base.Args, arg)
	}
	base.Src = t.Src
	return base, nil
}

func (p *typeParser) src(x ast.Expr) string {
	var b bytes.Buffer
	if err := printer.Fprint(&b, p.fset, x); err != nil {
		return fmt.Sprintf("%T", x)
	}
	return b.String()
}

func isPredeclaredType(name string) bool {
	_, ok := types.Universe.Lookup(name).(*types.TypeName)
	return ok
}
