package record

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// Equality emits Equal and Hash over the non-ignored components.
//
//	Equal: component-wise value equality, floats with NaN == NaN
//	Hash:  h = 1; h = 31*h + hash(c) for each component c
//
// With MemoizedHash the hash body is emitted as computeHash and Memoization
// emits the public Hash.
type Equality struct{}

// Name implements gen.SubGenerator.
func (Equality) Name() string { return "equality" }

// Generate implements gen.SubGenerator.
func (Equality) Generate(ctx *gen.Context) gen.Contribution {
	var c gen.Contribution
	if !ctx.Record.Equality {
		return c
	}
	c.Method("Equal", equal(ctx.Type))
	if memoHash(ctx) {
		c.Method("computeHash", hash(ctx.Type, "computeHash", ""))
	} else {
		c.Method("Hash", hash(ctx.Type, "Hash", "Hash returns the hash code of the value."))
	}
	return c
}

func equal(t *gen.Type) jen.Code {
	r := t.Receiver()
	ret := jen.Return()
	comps := t.EqualityComponents()
	if len(comps) == 0 {
		ret.True()
	}
	for i, p := range comps {
		if i > 0 {
			ret.Op("&&").Line()
		}
		ret.Add(equalExpr(p.Type, field(r, p), field("other", p)))
	}
	doc := fmt.Sprintf("Equal reports whether %s and other hold equal values.", r)
	return method(t, "Equal", doc).Params(jen.Id("other").Add(t.TypeRef())).Bool().Block(ret)
}

func hash(t *gen.Type, name, doc string) jen.Code {
	r, h := t.Receiver(), hashLocal(t)
	body := []jen.Code{jen.Id(h).Op(":=").Int32().Call(jen.Lit(1))}
	for _, p := range t.EqualityComponents() {
		body = append(body, jen.Id(h).Op("=").Lit(31).Op("*").Id(h).Op("+").Add(hashExpr(p.Type, field(r, p))))
	}
	body = append(body, jen.Return(jen.Id(h)))
	return method(t, name, doc).Params().Int32().Block(body...)
}
