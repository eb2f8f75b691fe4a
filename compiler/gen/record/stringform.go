package record

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/gen"
)

// StringForm emits String, rendering Name{a=1, b=[x, y]} over the
// non-ignored components in declaration order.
type StringForm struct{}

// Name implements gen.SubGenerator.
func (StringForm) Name() string { return "string" }

// Generate implements gen.SubGenerator.
func (StringForm) Generate(ctx *gen.Context) gen.Contribution {
	var c gen.Contribution
	if !ctx.Record.StringForm {
		return c
	}
	if memoString(ctx) {
		c.Method("computeString", stringForm(ctx.Type, "computeString", ""))
	} else {
		c.Method("String", stringForm(ctx.Type, "String", "String returns the string form of the value."))
	}
	return c
}

func stringForm(t *gen.Type, name, doc string) jen.Code {
	r := t.Receiver()
	ret := jen.Return()
	prefix := t.Name + "{"
	for i, p := range t.EqualityComponents() {
		if i > 0 {
			prefix = ", "
			ret.Op("+")
		}
		ret.Lit(prefix+p.Name+"=").Op("+").Qual(gen.RuntimePkg, "Format").Call(field(r, p))
	}
	if len(t.EqualityComponents()) == 0 {
		ret.Lit(t.Name + "{}")
	} else {
		ret.Op("+").Lit("}")
	}
	return method(t, name, doc).Params().String().Block(ret)
}
