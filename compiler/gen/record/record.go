// Package record implements the sub-generators emitting value types with
// jennifer: stored fields, constructor and accessors, Equal and Hash, String,
// memoized properties, builder integration with its companion builder, and
// the utility types of deduplicated requests.
//
// Each generator reads the gen.Context of one type and returns its share of
// the type as a gen.Contribution; the round merges the shares in the order
// returned by Generators.
package record

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// Generators returns the default generator set.
func Generators() gen.Generators {
	return gen.Generators{
		Sub: []gen.SubGenerator{
			Base{},
			Equality{},
			StringForm{},
			Memoization{},
			BuilderIntegration{},
		},
		Companions: []gen.CompanionGenerator{Companion{}},
		Utility:    Utility{},
	}
}

// constructorName returns the name of the value constructor of t.
func constructorName(t *gen.Type) string { return "New" + t.Name }

// self returns the receiver declaration of a value type method, for example
// (p Pair[A, B]).
func self(t *gen.Type) *jen.Statement {
	return jen.Id(t.Receiver()).Add(t.TypeRef())
}

// field returns a fresh reference to a stored field through name.
func field(name string, p *gen.Property) *jen.Statement {
	return jen.Id(name).Dot(p.Field())
}

// method starts a doc-commented value method declaration.
func method(t *gen.Type, name, doc string) *jen.Statement {
	return documented(doc, jen.Func().Params(self(t)).Id(name))
}

// documented prefixes s with a comment line unless doc is empty.
func documented(doc string, s *jen.Statement) *jen.Statement {
	if doc == "" {
		return s
	}
	return jen.Comment(doc).Line().Add(s)
}

// hashLocal returns the name of the running hash variable of Hash. It must
// not be the receiver name.
func hashLocal(t *gen.Type) string {
	if t.Receiver() == "h" {
		return "hc"
	}
	return "h"
}

// memoHash reports whether Hash is memoized.
func memoHash(ctx *gen.Context) bool {
	return ctx.Record.Equality && ctx.Record.Memoization && ctx.Record.MemoizedHash
}

// memoString reports whether String is memoized.
func memoString(ctx *gen.Context) bool {
	return ctx.Record.StringForm && ctx.Record.Memoization && ctx.Record.MemoizedString
}

// hasMemoizers reports whether the value type carries memo holders that the
// constructor has to set up.
func hasMemoizers(ctx *gen.Context) bool {
	if !ctx.Record.Memoization {
		return false
	}
	return len(ctx.Type.DerivedProperties()) > 0 || memoHash(ctx) || memoString(ctx)
}
