package record

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// Utility emits the utility type of a request: an empty struct with Equal,
// Hash and Clone helpers over slices of every listed value type.
//
//	func (GeoUtils) EqualPoints(a, b []Point) bool
//	func (GeoUtils) HashPoints(s []Point) int32
//	func (GeoUtils) ClonePoints(s []Point) []Point
//
// A listed type that is not a non-generic value type of the round is
// reported and left out.
type Utility struct{}

// Generate implements gen.UtilityGenerator.
func (Utility) Generate(req gen.GenerationRequest, types map[string]*gen.Type, cfg *gen.Config, sink gen.Sink) *gen.OutputDescriptor {
	if err := gen.ValidTypeName(req.ClassName); err != nil {
		gen.Fail(sink, "", gen.NewModelError(req.ClassName, "", "invalid utility class name", err))
		return nil
	}
	d := &gen.OutputDescriptor{
		Kind:   gen.UtilityDescriptor,
		Name:   req.ClassName,
		File:   gen.Snake(req.ClassName) + ".go",
		Origin: req.Origin,
	}
	var (
		c     gen.Contribution
		names []string
	)
	for _, name := range req.Types {
		t, ok := types[name]
		switch {
		case !ok:
			gen.Fail(sink, "", gen.NewModelError(req.ClassName, "", fmt.Sprintf("unknown value type %q", name), nil))
			continue
		case t.Generic():
			gen.Fail(sink, "", gen.NewModelError(req.ClassName, "", fmt.Sprintf("generic type %s needs type arguments", name), nil))
			continue
		}
		if d.Package == "" {
			d.Package = t.Package
		}
		names = append(names, name)
		c.Add(helpers(req.ClassName, t))
	}
	if len(names) > 0 {
		d.Doc = fmt.Sprintf("%s holds slice helpers for %s.", req.ClassName, strings.Join(names, ", "))
	}
	d.Merge("utility", c, sink)
	return d
}

func helpers(class string, t *gen.Type) gen.Contribution {
	var (
		c     gen.Contribution
		slice = func() *jen.Statement { return jen.Index().Id(t.Name) }
		many  = gen.Plural(t.Name)
	)
	equal, hash := jen.Id(t.Name).Dot("Equal"), jen.Id(t.Name).Dot("Hash")
	if !recordOptions(t).Equality {
		equal = jen.Qual(gen.RuntimePkg, "Equal").Types(jen.Id(t.Name))
		hash = jen.Qual(gen.HashingPkg, "Value").Types(jen.Id(t.Name))
	}
	recv := jen.Params(jen.Id(class))

	name := "Equal" + many
	c.Method(name, jen.Commentf("%s reports whether a and b hold equal %s values in the same order.", name, t.Name).Line().
		Func().Add(recv).Id(name).Params(jen.List(jen.Id("a"), jen.Id("b")).Add(slice())).Bool().Block(
		jen.Return(jen.Qual("slices", "EqualFunc").Call(jen.Id("a"), jen.Id("b"), equal)),
	))
	name = "Hash" + many
	c.Method(name, jen.Commentf("%s returns the order-sensitive hash of s.", name).Line().
		Func().Add(recv.Clone()).Id(name).Params(jen.Id("s").Add(slice())).Int32().Block(
		jen.Return(jen.Qual(gen.HashingPkg, "Slice").Call(jen.Id("s"), hash)),
	))
	name = "Clone" + many
	c.Method(name, jen.Commentf("%s returns a copy of s.", name).Line().
		Func().Add(recv.Clone()).Id(name).Params(jen.Id("s").Add(slice())).Add(slice()).Block(
		jen.Return(jen.Qual("slices", "Clone").Call(jen.Id("s"))),
	))
	return c
}

func recordOptions(t *gen.Type) gen.RecordOptions {
	if d := t.Declaration(); d != nil {
		return gen.ResolveRecordOptions(d.Options.Record)
	}
	return gen.DefaultRecordOptions()
}
