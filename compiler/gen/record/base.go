package record

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// Base emits the stored fields, the constructor and the component accessors.
// With CopyCollections, slices and maps are copied on the way in and out so
// the value stays immutable.
type Base struct{}

// Name implements gen.SubGenerator.
func (Base) Name() string { return "base" }

// Generate implements gen.SubGenerator.
func (Base) Generate(ctx *gen.Context) gen.Contribution {
	t := ctx.Type
	var c gen.Contribution
	for _, p := range t.Components() {
		c.Field(p.Field(), p.Type.Code(), p.Doc)
	}
	c.Func(constructorName(t), constructor(ctx))
	for _, p := range t.Components() {
		c.Method(p.Accessor(), accessor(ctx, p))
	}
	return c
}

// constructor emits New<T>, taking every component in declaration order.
func constructor(ctx *gen.Context) jen.Code {
	t := ctx.Type
	comps := t.Components()
	lit := t.TypeRef().ValuesFunc(func(g *jen.Group) {
		for _, p := range comps {
			v := jen.Id(p.Param())
			if ctx.Record.CopyCollections {
				v = cloneExpr(p.Type, v)
			}
			g.Id(p.Field()).Op(":").Add(v)
		}
	})
	if hasMemoizers(ctx) {
		lit = lit.Dot("withMemoizers").Call()
	}
	name := constructorName(t)
	return documented(fmt.Sprintf("%s returns a new %s.", name, t.Name),
		t.TypeParams.Declare(jen.Func().Id(name)).ParamsFunc(func(g *jen.Group) {
			for _, p := range comps {
				g.Id(p.Param()).Add(p.Type.Code())
			}
		}).Add(t.TypeRef()).Block(jen.Return(lit)),
	)
}

// accessor emits the getter of a component.
func accessor(ctx *gen.Context, p *gen.Property) jen.Code {
	t := ctx.Type
	v := field(t.Receiver(), p)
	if ctx.Record.CopyCollections {
		v = cloneExpr(p.Type, v)
	}
	doc := fmt.Sprintf("%s returns the %s property.", p.Accessor(), p.Name)
	return method(t, p.Accessor(), doc).Params().Add(p.Type.Code()).Block(jen.Return(v))
}
