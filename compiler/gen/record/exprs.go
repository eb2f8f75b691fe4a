package record

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

var (
	// smallInts hash as their int32 value.
	smallInts = []string{"int8", "int16", "int32", "rune", "uint8", "byte", "uint16"}
	// wideInts fold their high bits into the low bits.
	wideInts = []string{"int", "int64", "uint", "uint32", "uint64", "uintptr"}
)

// equalExpr compares a and b, two values of type t, with value semantics.
// a and b must be fresh statements; they are consumed.
func equalExpr(t *gen.TypeExpr, a, b *jen.Statement) *jen.Statement {
	switch {
	case t.Comparable():
		return a.Op("==").Add(b)
	case t.IsBasic("float64"):
		return jen.Qual(gen.RuntimePkg, "Float64Equal").Call(a, b)
	case t.IsBasic("float32"):
		return jen.Qual(gen.RuntimePkg, "Float32Equal").Call(a, b)
	}
	switch t.Kind {
	case gen.KindSlice:
		if t.Elem.Comparable() {
			return jen.Qual("slices", "Equal").Call(a, b)
		}
		return jen.Qual("slices", "EqualFunc").Call(a, b, equalFunc(t.Elem))
	case gen.KindArray:
		if t.Elem.Comparable() {
			return a.Op("==").Add(b)
		}
		return jen.Qual("slices", "EqualFunc").Call(whole(a), whole(b), equalFunc(t.Elem))
	case gen.KindMap:
		if t.Elem.Comparable() {
			return jen.Qual("maps", "Equal").Call(a, b)
		}
		return jen.Qual("maps", "EqualFunc").Call(a, b, equalFunc(t.Elem))
	default:
		return jen.Qual(gen.RuntimePkg, "Equal").Call(a, b)
	}
}

// equalFunc returns the function comparing two elements of type t.
func equalFunc(t *gen.TypeExpr) *jen.Statement {
	switch {
	case t.IsBasic("float64"):
		return jen.Qual(gen.RuntimePkg, "Float64Equal")
	case t.IsBasic("float32"):
		return jen.Qual(gen.RuntimePkg, "Float32Equal")
	default:
		return jen.Qual(gen.RuntimePkg, "Equal").Types(t.Code())
	}
}

// hashExpr hashes v, a value of type t. Slices and arrays use the
// order-sensitive sequence hash.
func hashExpr(t *gen.TypeExpr, v *jen.Statement) *jen.Statement {
	switch t.Kind {
	case gen.KindSlice:
		return jen.Qual(gen.HashingPkg, "Slice").Call(v, hashFunc(t.Elem))
	case gen.KindArray:
		return jen.Qual(gen.HashingPkg, "Slice").Call(whole(v), hashFunc(t.Elem))
	case gen.KindBasic:
		if fn := basicHash(t); fn != "" {
			return jen.Qual(gen.HashingPkg, fn).Call(v)
		}
	}
	return jen.Qual(gen.HashingPkg, "Value").Call(v)
}

// hashFunc returns the function hashing one element of type t.
func hashFunc(t *gen.TypeExpr) *jen.Statement {
	switch fn := basicHash(t); fn {
	case "Int32", "Int64":
		return jen.Qual(gen.HashingPkg, fn).Types(t.Code())
	case "":
		return jen.Qual(gen.HashingPkg, "Value").Types(t.Code())
	default:
		return jen.Qual(gen.HashingPkg, fn)
	}
}

// basicHash returns the hashing function of a predeclared type, or "" when
// the type needs the structural hash.
func basicHash(t *gen.TypeExpr) string {
	switch {
	case t.IsBasic(smallInts...):
		return "Int32"
	case t.IsBasic(wideInts...):
		return "Int64"
	case t.IsBasic("bool"):
		return "Bool"
	case t.IsBasic("string"):
		return "String"
	case t.IsBasic("float64"):
		return "Float64"
	case t.IsBasic("float32"):
		return "Float32"
	default:
		return ""
	}
}

// cloneExpr returns v, a value of type t, copied when t is a slice or a map.
func cloneExpr(t *gen.TypeExpr, v *jen.Statement) *jen.Statement {
	switch t.Kind {
	case gen.KindSlice:
		return jen.Qual("slices", "Clone").Call(v)
	case gen.KindMap:
		return jen.Qual("maps", "Clone").Call(v)
	default:
		return v
	}
}

// emptyExpr returns the empty, non-nil value of a slice or map type.
func emptyExpr(t *gen.TypeExpr) *jen.Statement {
	return jen.Add(t.Code()).Values()
}

// whole slices an array: a[:].
func whole(a *jen.Statement) *jen.Statement {
	return a.Index(jen.Empty(), jen.Empty())
}
