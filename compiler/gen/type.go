package gen

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/valgen/compiler/load"
)

// Marker is a set of capability flags attached to a property.
type Marker uint8

// Property markers.
const (
	// Ignored excludes a component from Equal, Hash and String.
	Ignored Marker = 1 << iota
	// Memoized turns a property into a derived value computed once per instance.
	Memoized
)

// Has reports whether all flags in f are set.
func (m Marker) Has(f Marker) bool { return m&f == f }

// PropertyKind is the role a property plays in the generated type.
type PropertyKind uint8

// Property kinds.
const (
	// Component is a stored field taking part in Equal, Hash and String.
	Component PropertyKind = iota + 1
	// IgnoredComponent is a stored field left out of Equal, Hash and String.
	IgnoredComponent
	// Derived is a memoized value computed from the components.
	Derived
)

// methods generated on every value type. Accessors must not shadow them.
var generatedMethods = names("Equal", "Hash", "String", "ToBuilder")

// The following types and their exported methods are used by the
// sub-generators to emit the value types.
type (
	// Type is the canonical read-only model of one declared value type.
	Type struct {
		// Name holds the type name.
		Name string
		// Package is the Go package name of the generated code.
		Package string
		// Doc is the type documentation.
		Doc string
		// TypeParams holds the generic parameters in declaration order.
		TypeParams TypeParams
		// Properties holds all properties in declaration order.
		Properties []*Property
		// Imports maps package aliases to import paths.
		Imports map[string]string
		// Pos is the position of the declaration in its description file.
		Pos string

		decl *load.Declaration
	}

	// Property is one named, typed member of a value type.
	Property struct {
		// Name is the declared property name.
		Name string
		// Type is the parsed property type.
		Type *TypeExpr
		// Markers holds the capability flags.
		Markers Marker
		// Compute names the method computing a memoized value.
		Compute string
		// Doc is the property documentation.
		Doc string
	}

	// TypeParam is one generic parameter of a value type.
	TypeParam struct {
		Name string
		// Bounds are intersected. No bound means any.
		Bounds []*TypeExpr
	}
)

// NewType builds the model of a declared type. It returns a ModelError if the
// declaration can not be generated at all. Problems local to one property
// are reported to sink and the property is dropped.
func NewType(decl *load.Declaration, sink Sink) (*Type, error) {
	if sink == nil {
		sink = Discard
	}
	if err := ValidTypeName(decl.Name); err != nil {
		return nil, NewModelError(decl.Name, "", "invalid type name", err)
	}
	t := &Type{
		Name:       decl.Name,
		Package:    decl.Package,
		Doc:        decl.Doc,
		Imports:    decl.Imports,
		Pos:        decl.Pos,
		Properties: make([]*Property, 0, len(decl.Properties)),
		decl:       decl,
	}
	params := make([]string, 0, len(decl.TypeParams))
	for _, tp := range decl.TypeParams {
		if !token.IsIdentifier(tp.Name) {
			return nil, NewModelError(t.Name, "", fmt.Sprintf("invalid type parameter name %q", tp.Name), nil)
		}
		params = append(params, tp.Name)
	}
	for _, tp := range decl.TypeParams {
		p := &TypeParam{Name: tp.Name}
		for _, b := range tp.Bounds {
			bound, err := ParseTypeExpr(b, t.Imports, params, true)
			if err != nil {
				return nil, NewModelError(t.Name, "", fmt.Sprintf("malformed bound of type parameter %s", tp.Name), err)
			}
			p.Bounds = append(p.Bounds, bound)
		}
		t.TypeParams = append(t.TypeParams, p)
	}
	accessors := make(map[string]string, len(decl.Properties))
	for _, lp := range decl.Properties {
		p, err := t.newProperty(lp, params)
		if err != nil {
			return nil, err
		}
		if prev, ok := accessors[p.Accessor()]; ok {
			return nil, NewModelError(t.Name, p.Name, fmt.Sprintf("accessor %s already declared by property %s", p.Accessor(), prev), nil)
		}
		if p.Markers.Has(Memoized) && p.Compute == "" {
			Warn(sink, p.Name, NewModelError(t.Name, p.Name, "memoized property has no compute method", nil))
			continue
		}
		accessors[p.Accessor()] = p.Name
		t.Properties = append(t.Properties, p)
	}
	return t, nil
}

func (t *Type) newProperty(lp *load.Property, params []string) (*Property, error) {
	if !token.IsIdentifier(lp.Name) {
		return nil, NewModelError(t.Name, lp.Name, "property name is not a Go identifier", nil)
	}
	if lp.Compute != "" && !token.IsIdentifier(lp.Compute) {
		return nil, NewModelError(t.Name, lp.Name, fmt.Sprintf("compute method %q is not a Go identifier", lp.Compute), nil)
	}
	typ, err := ParseTypeExpr(lp.Type, t.Imports, params, false)
	if err != nil {
		return nil, NewModelError(t.Name, lp.Name, "malformed type", err)
	}
	p := &Property{
		Name:    lp.Name,
		Type:    typ,
		Compute: lp.Compute,
		Doc:     lp.Doc,
	}
	for _, m := range lp.Markers {
		switch m {
		case load.MarkerIgnored:
			p.Markers |= Ignored
		case load.MarkerMemoized:
			p.Markers |= Memoized
		default:
			return nil, NewModelError(t.Name, lp.Name, fmt.Sprintf("unknown marker %q", m), nil)
		}
	}
	if _, ok := generatedMethods[p.Accessor()]; ok {
		return nil, NewModelError(t.Name, lp.Name, fmt.Sprintf("accessor %s collides with a generated method", p.Accessor()), nil)
	}
	return p, nil
}

// ValidTypeName reports an error if name can not be used as a generated type name.
func ValidTypeName(name string) error {
	switch {
	case name == "":
		return errors.New("type name cannot be empty")
	case !token.IsIdentifier(name):
		return fmt.Errorf("type name %q is not a valid Go identifier", name)
	case !token.IsExported(name):
		return fmt.Errorf("type name %q must be exported", name)
	}
	return nil
}

// Declaration returns the front-end declaration the type was built from.
func (t *Type) Declaration() *load.Declaration { return t.decl }

// Receiver returns the receiver name used by generated methods.
func (t *Type) Receiver() string { return receiver(t.Name) }

// Generic reports whether the type has type parameters.
func (t *Type) Generic() bool { return len(t.TypeParams) > 0 }

// TypeRef returns the type as used in signatures, for example Pair[A, B].
func (t *Type) TypeRef() *jen.Statement {
	return t.TypeParams.Instantiate(jen.Id(t.Name))
}

// Components returns the stored properties (ignored ones included).
func (t *Type) Components() []*Property {
	return t.PropertiesBy(func(p *Property) bool { return p.Kind() != Derived })
}

// EqualityComponents returns the components taking part in Equal, Hash and String.
func (t *Type) EqualityComponents() []*Property {
	return t.PropertiesBy(func(p *Property) bool { return p.Kind() == Component })
}

// DerivedProperties returns the memoized properties.
func (t *Type) DerivedProperties() []*Property {
	return t.PropertiesBy(func(p *Property) bool { return p.Kind() == Derived })
}

// PropertiesBy returns the properties matching fn in declaration order.
func (t *Type) PropertiesBy(fn func(*Property) bool) []*Property {
	var ps []*Property
	for _, p := range t.Properties {
		if fn(p) {
			ps = append(ps, p)
		}
	}
	return ps
}

// Property returns the property with the given name.
func (t *Type) Property(name string) (*Property, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// FileName returns the base name of the file holding the generated type.
func (t *Type) FileName() string { return Snake(t.Name) + ".go" }

// Kind returns the role of the property.
func (p *Property) Kind() PropertyKind {
	switch {
	case p.Markers.Has(Memoized):
		return Derived
	case p.Markers.Has(Ignored):
		return IgnoredComponent
	default:
		return Component
	}
}

// Accessor returns the exported accessor method name.
func (p *Property) Accessor() string { return pascal(p.Name) }

// Field returns the unexported struct field name.
func (p *Property) Field() string { return safeIdent(camel(p.Name)) }

// Param returns the parameter name used by constructors.
func (p *Property) Param() string { return p.Field() }

// MemoizerField returns the name of the memo holder of a derived property.
func (p *Property) MemoizerField() string { return camel(p.Name) + "Memoizer" }
