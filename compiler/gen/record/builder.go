package record

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// Builder directive names.
const (
	DirectiveBuilder        = "builder"
	DirectiveBuilderOptions = "builder-options"
)

// BuilderIntegration ties the value type to its companion builder: a
// Build<T> entry point, ToBuilder, and the //valgen:builder directives. The
// builder options that differ from their defaults are restated in a
// //valgen:builder-options directive so tools reading the value type see the
// same builder configuration.
type BuilderIntegration struct{}

// Name implements gen.SubGenerator.
func (BuilderIntegration) Name() string { return "builder" }

// Generate implements gen.SubGenerator.
func (BuilderIntegration) Generate(ctx *gen.Context) gen.Contribution {
	var c gen.Contribution
	if !ctx.Record.Builder {
		return c
	}
	t := ctx.Type
	c.Directives = append(c.Directives, gen.Directive{Name: DirectiveBuilder})
	var imports gen.StaticImports
	if diffs := gen.DiffOptions(ctx.Builder.Table(), &imports, ctx.Sink); len(diffs) > 0 {
		c.Directives = append(c.Directives, gen.Directive{Name: DirectiveBuilderOptions, Args: gen.FormatOptions(diffs)})
	}
	c.Imports = append(c.Imports, imports.List()...)

	// Type arguments are restated on the factory call; a call without
	// arguments can not infer them.
	name := "Build" + t.Name
	c.Func(name, documented(
		fmt.Sprintf("%s returns an empty %s.", name, ctx.BuilderName()),
		t.TypeParams.Declare(jen.Func().Id(name)).Params().Op("*").Add(builderRef(ctx)).Block(
			jen.Return(factoryRef(ctx).Call()),
		),
	))
	c.Method("ToBuilder", method(t, "ToBuilder", fmt.Sprintf("ToBuilder returns a %s seeded with the value.", ctx.BuilderName())).
		Params().Op("*").Add(builderRef(ctx)).Block(
		jen.Return(seed(ctx, t.Receiver())),
	))
	return c
}

// builderRef returns the builder type as used in signatures.
func builderRef(ctx *gen.Context) *jen.Statement {
	return ctx.Type.TypeParams.Instantiate(jen.Id(ctx.BuilderName()))
}

// factoryRef returns the builder factory with explicit type arguments.
func factoryRef(ctx *gen.Context) *jen.Statement {
	return ctx.Type.TypeParams.Instantiate(jen.Id(ctx.Builder.FactoryName(ctx.Type.Name)))
}

// seed returns a new builder with every component of src set through the
// setters, ignored components included, in declaration order.
func seed(ctx *gen.Context, src string) *jen.Statement {
	s := factoryRef(ctx).Call()
	for _, p := range ctx.Type.Components() {
		s.Dot(ctx.Builder.SetterName(p)).Call(field(src, p))
	}
	return s
}
