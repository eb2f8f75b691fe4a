package record

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// Companion emits the builder of a value type into <type>_builder.go:
// fields mirroring the components, the factory, one setter per component and
// the build method, plus the optional From<T> seeding function, getters and
// Reset selected by the features option.
type Companion struct{}

// Name implements gen.CompanionGenerator.
func (Companion) Name() string { return "companion" }

// Generate implements gen.CompanionGenerator.
func (Companion) Generate(ctx *gen.Context) *gen.OutputDescriptor {
	if !ctx.Record.Builder {
		return nil
	}
	t, opts := ctx.Type, ctx.Builder
	d := &gen.OutputDescriptor{
		Kind:       gen.BuilderDescriptor,
		Name:       ctx.BuilderName(),
		File:       gen.Snake(t.Name) + "_builder.go",
		Package:    t.Package,
		Doc:        fmt.Sprintf("%s builds %s values.", ctx.BuilderName(), t.Name),
		TypeParams: t.TypeParams,
		Aliases:    t.Imports,
		Origin:     t.Pos,
	}
	var c gen.Contribution
	for _, p := range t.Components() {
		c.Field(p.Field(), p.Type.Code(), "")
	}
	factory := opts.FactoryName(t.Name)
	c.Func(factory, documented(
		fmt.Sprintf("%s returns an empty %s.", factory, ctx.BuilderName()),
		t.TypeParams.Declare(jen.Func().Id(factory)).Params().Op("*").Add(builderRef(ctx)).Block(
			jen.Return(jen.Op("&").Add(builderRef(ctx)).Values()),
		),
	))
	if opts.HasFeature(gen.FeatureFrom) {
		from := "From" + t.Name
		c.Func(from, documented(
			fmt.Sprintf("%s returns a %s seeded with v.", from, ctx.BuilderName()),
			t.TypeParams.Declare(jen.Func().Id(from)).Params(jen.Id("v").Add(t.TypeRef())).Op("*").Add(builderRef(ctx)).Block(
				jen.Return(seed(ctx, "v")),
			),
		))
	}
	for _, p := range t.Components() {
		c.Method(opts.SetterName(p), setter(ctx, p))
	}
	if opts.HasFeature(gen.FeatureGetters) {
		for _, p := range t.Components() {
			name := opts.GetterName(p)
			c.Method(name, builderMethod(ctx, name, fmt.Sprintf("%s returns the %s set so far.", name, p.Name)).
				Params().Add(p.Type.Code()).Block(jen.Return(field("b", p))))
		}
	}
	if opts.HasFeature(gen.FeatureReset) {
		c.Method("Reset", builderMethod(ctx, "Reset", "Reset clears every property set so far.").
			Params().Op("*").Add(builderRef(ctx)).Block(
			jen.Op("*").Id("b").Op("=").Add(builderRef(ctx)).Values(),
			jen.Return(jen.Id("b")),
		))
	}
	c.Method(opts.BuildMethodName, build(ctx))
	d.Merge(Companion{}.Name(), c, ctx.Sink)
	return d
}

// builderMethod starts a doc-commented builder method declaration.
func builderMethod(ctx *gen.Context, name, doc string) *jen.Statement {
	return documented(doc, jen.Func().Params(jen.Id("b").Op("*").Add(builderRef(ctx))).Id(name))
}

func setter(ctx *gen.Context, p *gen.Property) jen.Code {
	v := jen.Id("v")
	if ctx.Builder.CopyCollections {
		v = cloneExpr(p.Type, v)
	}
	name := ctx.Builder.SetterName(p)
	return builderMethod(ctx, name, fmt.Sprintf("%s sets the %s property.", name, p.Name)).
		Params(jen.Id("v").Add(p.Type.Code())).Op("*").Add(builderRef(ctx)).Block(
		field("b", p).Op("=").Add(v),
		jen.Return(jen.Id("b")),
	)
}

// build emits the build method. With NilToEmpty, nil slices and maps are
// replaced by empty ones first.
func build(ctx *gen.Context) jen.Code {
	t := ctx.Type
	var body []jen.Code
	if ctx.Builder.NilHandling == gen.NilToEmpty {
		for _, p := range t.Components() {
			if !p.Type.Collection() {
				continue
			}
			body = append(body, jen.If(field("b", p).Op("==").Nil()).Block(
				field("b", p).Op("=").Add(emptyExpr(p.Type)),
			))
		}
	}
	body = append(body, jen.Return(t.TypeParams.Instantiate(jen.Id(constructorName(t))).CallFunc(func(g *jen.Group) {
		for _, p := range t.Components() {
			g.Add(field("b", p))
		}
	})))
	name := ctx.Builder.BuildMethodName
	return builderMethod(ctx, name, fmt.Sprintf("%s returns the %s built so far.", name, t.Name)).
		Params().Add(t.TypeRef()).Block(body...)
}
