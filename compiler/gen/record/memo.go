package record

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// Memoization emits the accessors of memoized properties. Each one owns a
// memo.Memoizer holder running the user-written compute method at most once
// per value; the constructor sets the holders up through withMemoizers.
// Hash and String are wrapped the same way when MemoizedHash and
// MemoizedString are set.
//
// With memoization disabled the accessors call the compute method directly.
type Memoization struct{}

// Name implements gen.SubGenerator.
func (Memoization) Name() string { return "memoization" }

// Generate implements gen.SubGenerator.
func (Memoization) Generate(ctx *gen.Context) gen.Contribution {
	t := ctx.Type
	var c gen.Contribution
	if !ctx.Record.Memoization {
		for _, p := range t.DerivedProperties() {
			doc := fmt.Sprintf("%s returns the %s property.", p.Accessor(), p.Name)
			c.Method(p.Accessor(), method(t, p.Accessor(), doc).Params().Add(p.Type.Code()).Block(
				jen.Return(jen.Id(t.Receiver()).Dot(p.Compute).Call()),
			))
		}
		return c
	}
	var holders []holder
	for _, p := range t.DerivedProperties() {
		h := holder{field: p.MemoizerField(), typ: p.Type.Code(), compute: p.Compute}
		holders = append(holders, h)
		c.Field(h.field, h.decl(), "")
		doc := fmt.Sprintf("%s returns the %s property, computed once.", p.Accessor(), p.Name)
		c.Method(p.Accessor(), h.accessor(t, p.Accessor(), doc, p.Type.Code()))
	}
	if memoHash(ctx) {
		h := holder{field: "hashMemoizer", typ: jen.Int32(), compute: "computeHash"}
		holders = append(holders, h)
		c.Field(h.field, h.decl(), "")
		c.Method("Hash", h.accessor(t, "Hash", "Hash returns the hash code of the value, computed once.", jen.Int32()))
	}
	if memoString(ctx) {
		h := holder{field: "stringMemoizer", typ: jen.String(), compute: "computeString"}
		holders = append(holders, h)
		c.Field(h.field, h.decl(), "")
		c.Method("String", h.accessor(t, "String", "String returns the string form of the value, computed once.", jen.String()))
	}
	if len(holders) > 0 {
		c.Method("withMemoizers", withMemoizers(t, holders))
	}
	return c
}

// holder is one memo.Memoizer field.
type holder struct {
	field   string
	typ     jen.Code
	compute string
}

func (h holder) decl() jen.Code {
	return jen.Op("*").Qual(gen.MemoPkg, "Memoizer").Types(h.typ)
}

func (h holder) accessor(t *gen.Type, name, doc string, result jen.Code) jen.Code {
	r := t.Receiver()
	return method(t, name, doc).Params().Add(result).Block(
		jen.Return(jen.Id(r).Dot(h.field).Dot("ComputeIfAbsent").Call(jen.Id(r).Dot(h.compute))),
	)
}

// withMemoizers returns a copy of the value with fresh holders.
func withMemoizers(t *gen.Type, holders []holder) jen.Code {
	r := t.Receiver()
	body := make([]jen.Code, 0, len(holders)+1)
	for _, h := range holders {
		body = append(body, jen.Id(r).Dot(h.field).Op("=").Qual(gen.MemoPkg, "New").Types(h.typ).Call())
	}
	body = append(body, jen.Return(jen.Id(r)))
	return jen.Func().Params(self(t)).Id("withMemoizers").Params().Add(t.TypeRef()).Block(body...)
}
