package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/valgen/compiler/load"
)

func shapeDecl() *load.Declaration {
	return &load.Declaration{
		Name:    "Shape",
		Package: "geo",
		Imports: map[string]string{"time": "time"},
		Pos:     "geo.yaml:types[0]",
		Properties: []*load.Property{
			{Name: "side", Type: "float64"},
			{Name: "label", Type: "string", Markers: []string{load.MarkerIgnored}},
			{Name: "area", Type: "float64", Markers: []string{load.MarkerMemoized}, Compute: "computeArea"},
			{Name: "created_at", Type: "time.Time"},
		},
	}
}

func TestNewType(t *testing.T) {
	typ, err := NewType(shapeDecl(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Shape", typ.Name)
	assert.Equal(t, "geo", typ.Package)
	assert.Equal(t, "s", typ.Receiver())
	assert.Equal(t, "shape.go", typ.FileName())
	assert.False(t, typ.Generic())
	assert.Equal(t, "geo.yaml:types[0]", typ.Pos)
	require.Len(t, typ.Properties, 4)

	names := func(ps []*Property) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"side", "label", "created_at"}, names(typ.Components()))
	assert.Equal(t, []string{"side", "created_at"}, names(typ.EqualityComponents()))
	assert.Equal(t, []string{"area"}, names(typ.DerivedProperties()))

	p, ok := typ.Property("created_at")
	require.True(t, ok)
	assert.Equal(t, Component, p.Kind())
	assert.Equal(t, "CreatedAt", p.Accessor())
	assert.Equal(t, "createdAt", p.Field())
	assert.Equal(t, "time", p.Type.Path)

	p, _ = typ.Property("label")
	assert.Equal(t, IgnoredComponent, p.Kind())
	assert.True(t, p.Markers.Has(Ignored))

	p, _ = typ.Property("area")
	assert.Equal(t, Derived, p.Kind())
	assert.Equal(t, "areaMemoizer", p.MemoizerField())
	assert.Equal(t, "computeArea", p.Compute)

	_, ok = typ.Property("missing")
	assert.False(t, ok)
}

func TestNewType_Generic(t *testing.T) {
	decl := &load.Declaration{
		Name: "Pair",
		TypeParams: []*load.TypeParam{
			{Name: "K", Bounds: []string{"comparable"}},
			{Name: "V"},
		},
		Properties: []*load.Property{
			{Name: "key", Type: "K"},
			{Name: "values", Type: "[]V"},
		},
	}
	typ, err := NewType(decl, nil)
	require.NoError(t, err)
	assert.True(t, typ.Generic())
	assert.Equal(t, []string{"K comparable", "V any"}, typ.TypeParams.VariableNames())
	assert.Contains(t, render(typ.TypeRef()), "var _ Pair[K, V]")
	p, _ := typ.Property("values")
	assert.Equal(t, KindTypeParam, p.Type.Elem.Kind)
}

func TestNewType_Errors(t *testing.T) {
	tests := []struct {
		name   string
		decl   *load.Declaration
		substr string
	}{
		{
			name:   "unexported name",
			decl:   &load.Declaration{Name: "point"},
			substr: "must be exported",
		},
		{
			name:   "invalid name",
			decl:   &load.Declaration{Name: "Po int"},
			substr: "not a valid Go identifier",
		},
		{
			name:   "invalid type parameter",
			decl:   &load.Declaration{Name: "Box", TypeParams: []*load.TypeParam{{Name: "1T"}}},
			substr: "invalid type parameter name",
		},
		{
			name:   "malformed bound",
			decl:   &load.Declaration{Name: "Box", TypeParams: []*load.TypeParam{{Name: "T", Bounds: []string{"~"}}}},
			substr: "malformed bound",
		},
		{
			name:   "invalid property name",
			decl:   &load.Declaration{Name: "Box", Properties: []*load.Property{{Name: "a b", Type: "int"}}},
			substr: "not a Go identifier",
		},
		{
			name: "duplicate accessor",
			decl: &load.Declaration{Name: "Box", Properties: []*load.Property{
				{Name: "user_name", Type: "int"},
				{Name: "userName", Type: "int"},
			}},
			substr: "already declared",
		},
		{
			name:   "generated method collision",
			decl:   &load.Declaration{Name: "Box", Properties: []*load.Property{{Name: "hash", Type: "int"}}},
			substr: "collides with a generated method",
		},
		{
			name:   "malformed type",
			decl:   &load.Declaration{Name: "Box", Properties: []*load.Property{{Name: "v", Type: "map[int"}}},
			substr: "malformed type",
		},
		{
			name:   "unknown alias",
			decl:   &load.Declaration{Name: "Box", Properties: []*load.Property{{Name: "at", Type: "time.Time"}}},
			substr: "unknown package alias",
		},
		{
			name:   "unknown marker",
			decl:   &load.Declaration{Name: "Box", Properties: []*load.Property{{Name: "v", Type: "int", Markers: []string{"lazy"}}}},
			substr: `unknown marker "lazy"`,
		},
		{
			name:   "invalid compute",
			decl:   &load.Declaration{Name: "Box", Properties: []*load.Property{{Name: "v", Type: "int", Compute: "x.y"}}},
			substr: "is not a Go identifier",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewType(tt.decl, nil)
			require.Error(t, err)
			assert.True(t, IsModelError(err))
			assert.ErrorIs(t, err, ErrInvalidModel)
			assert.Contains(t, err.Error(), tt.substr)
		})
	}
}

func TestNewType_MemoizedWithoutCompute(t *testing.T) {
	decl := shapeDecl()
	decl.Properties[2].Compute = ""
	var c Collector
	typ, err := NewType(decl, &c)
	require.NoError(t, err)
	assert.Empty(t, typ.DerivedProperties())
	assert.Len(t, typ.Properties, 3)

	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "area", diags[0].Property)
	assert.False(t, c.HasErrors())
}

func TestValidTypeName(t *testing.T) {
	assert.NoError(t, ValidTypeName("Point"))
	assert.Error(t, ValidTypeName(""))
	assert.Error(t, ValidTypeName("point"))
	assert.Error(t, ValidTypeName("func"))
}

func TestMarker(t *testing.T) {
	m := Ignored | Memoized
	assert.True(t, m.Has(Ignored))
	assert.True(t, m.Has(Ignored|Memoized))
	assert.False(t, Ignored.Has(Memoized))
}
