package gen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
)

// TypeParams is an ordered generic parameter list. It derives the two forms
// a generated declaration needs: the declaration list used where type
// variables are introduced ([K comparable, V any]) and the usage list used
// where they are referenced or restated as explicit type arguments ([K, V]).
type TypeParams []*TypeParam

// Declarations returns the type variable declarations. A parameter with no
// bound is declared as any; several bounds become an interface intersection.
func (ps TypeParams) Declarations() []jen.Code {
	decls := make([]jen.Code, len(ps))
	for i, p := range ps {
		decls[i] = jen.Id(p.Name).Add(p.Constraint())
	}
	return decls
}

// Usages returns the type variables as type arguments.
func (ps TypeParams) Usages() []jen.Code {
	uses := make([]jen.Code, len(ps))
	for i, p := range ps {
		uses[i] = jen.Id(p.Name)
	}
	return uses
}

// VariableNames returns the declarations in source form, for example
// ["K comparable", "V any"].
func (ps TypeParams) VariableNames() []string {
	vars := make([]string, len(ps))
	for i, p := range ps {
		vars[i] = p.Name + " " + p.ConstraintString()
	}
	return vars
}

// UsageNames returns the type variable names, for example ["K", "V"].
func (ps TypeParams) UsageNames() []string {
	uses := make([]string, len(ps))
	for i, p := range ps {
		uses[i] = p.Name
	}
	return uses
}

// Declare appends the declaration list to s. It leaves s untouched for
// non-generic types since jennifer renders an empty list as [].
func (ps TypeParams) Declare(s *jen.Statement) *jen.Statement {
	if len(ps) == 0 {
		return s
	}
	return s.Types(ps.Declarations()...)
}

// Instantiate appends the usage list to s, for example Pair becomes Pair[A, B].
func (ps TypeParams) Instantiate(s *jen.Statement) *jen.Statement {
	if len(ps) == 0 {
		return s
	}
	return s.Types(ps.Usages()...)
}

// Constraint returns the constraint of the parameter.
func (p *TypeParam) Constraint() jen.Code {
	switch len(p.Bounds) {
	case 0:
		return jen.Any()
	case 1:
		return p.Bounds[0].Code()
	default:
		return jen.InterfaceFunc(func(g *jen.Group) {
			for _, b := range p.Bounds {
				g.Add(b.Code())
			}
		})
	}
}

// ConstraintString returns the constraint in source form.
func (p *TypeParam) ConstraintString() string {
	switch len(p.Bounds) {
	case 0:
		return "any"
	case 1:
		return p.Bounds[0].String()
	default:
		bounds := make([]string, len(p.Bounds))
		for i, b := range p.Bounds {
			bounds[i] = b.String()
		}
		return fmt.Sprintf("interface{ %s }", strings.Join(bounds, "; "))
	}
}
