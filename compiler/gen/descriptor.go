package gen

import (
	"fmt"
	"slices"

	"github.com/dave/jennifer/jen"
)

// DescriptorKind tells what a descriptor generates.
type DescriptorKind uint8

// Descriptor kinds.
const (
	ValueDescriptor DescriptorKind = iota + 1
	BuilderDescriptor
	UtilityDescriptor
)

// String returns the kind name.
func (k DescriptorKind) String() string {
	switch k {
	case ValueDescriptor:
		return "value"
	case BuilderDescriptor:
		return "builder"
	case UtilityDescriptor:
		return "utility"
	default:
		return fmt.Sprintf("DescriptorKind(%d)", uint8(k))
	}
}

type (
	// StructField is a field of the generated struct.
	StructField struct {
		Name string
		Type jen.Code
		Doc  string
	}

	// Member is a generated declaration attached to the type: a method, or a
	// package-level function when Func is set.
	Member struct {
		Name string
		Func bool
		Code jen.Code
	}

	// Directive is a //valgen:<name> <args> comment attached to the type.
	Directive struct {
		Name string
		Args string
	}

	// Contribution is what one sub-generator adds to a descriptor.
	Contribution struct {
		Fields     []StructField
		Members    []Member
		Directives []Directive
		Imports    []StaticImport
	}

	// OutputDescriptor collects everything generated for one type, in a form
	// independent of how it is rendered. It is not modified after the round
	// hands it to the writer.
	OutputDescriptor struct {
		Kind       DescriptorKind
		Name       string
		File       string
		Package    string
		Doc        string
		TypeParams TypeParams
		Fields     []StructField
		Members    []Member
		Directives []Directive
		Imports    StaticImports
		// Aliases maps the package aliases used by the declaration to
		// import paths.
		Aliases map[string]string
		// Origin is the position of the declaration the descriptor came from.
		Origin string

		names map[string]string
		funcs map[string]string
	}
)

// Empty reports whether the contribution adds nothing.
func (c Contribution) Empty() bool {
	return len(c.Fields) == 0 && len(c.Members) == 0 && len(c.Directives) == 0 && len(c.Imports) == 0
}

// Add appends the members of other to c.
func (c *Contribution) Add(other Contribution) {
	c.Fields = append(c.Fields, other.Fields...)
	c.Members = append(c.Members, other.Members...)
	c.Directives = append(c.Directives, other.Directives...)
	c.Imports = append(c.Imports, other.Imports...)
}

// Method adds a method member.
func (c *Contribution) Method(name string, code jen.Code) {
	c.Members = append(c.Members, Member{Name: name, Code: code})
}

// Func adds a package-level function member.
func (c *Contribution) Func(name string, code jen.Code) {
	c.Members = append(c.Members, Member{Name: name, Func: true, Code: code})
}

// Field adds a struct field.
func (c *Contribution) Field(name string, typ jen.Code, doc string) {
	c.Fields = append(c.Fields, StructField{Name: name, Type: typ, Doc: doc})
}

// Merge adds the contribution of the named generator. Fields and methods
// share one namespace and package-level functions another. A name that is
// already taken is reported to sink and the later declaration is dropped.
func (d *OutputDescriptor) Merge(generator string, c Contribution, sink Sink) {
	if d.names == nil {
		d.names = make(map[string]string)
		d.funcs = make(map[string]string)
	}
	for _, f := range c.Fields {
		if d.claim(d.names, f.Name, generator, sink) {
			d.Fields = append(d.Fields, f)
		}
	}
	for _, m := range c.Members {
		ns := d.names
		if m.Func {
			ns = d.funcs
		}
		if d.claim(ns, m.Name, generator, sink) {
			d.Members = append(d.Members, m)
		}
	}
	for _, dir := range c.Directives {
		if !slices.Contains(d.Directives, dir) {
			d.Directives = append(d.Directives, dir)
		}
	}
	for _, imp := range c.Imports {
		d.Imports.Add(imp.Type, imp.Const)
	}
}

func (d *OutputDescriptor) claim(ns map[string]string, name, generator string, sink Sink) bool {
	if owner, ok := ns[name]; ok {
		Fail(sink, "", NewGenerationError(generator, d.File,
			fmt.Sprintf("%s.%s already declared by %s generator", d.Name, name, owner), nil))
		return false
	}
	ns[name] = generator
	return true
}

// Member returns the member with the given name.
func (d *OutputDescriptor) Member(name string) (Member, bool) {
	for _, m := range d.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}

// MemberNames returns the member names in merge order.
func (d *OutputDescriptor) MemberNames() []string {
	out := make([]string, len(d.Members))
	for i, m := range d.Members {
		out[i] = m.Name
	}
	return out
}

// Directive returns the arguments of the named directive.
func (d *OutputDescriptor) Directive(name string) (string, bool) {
	for _, dir := range d.Directives {
		if dir.Name == name {
			return dir.Args, true
		}
	}
	return "", false
}
