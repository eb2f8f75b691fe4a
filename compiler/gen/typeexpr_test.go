package gen

import (
	"fmt"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// render returns the source of a type expression, declared in a file that
// imports aliased packages by the given names.
func render(c jen.Code, aliases ...map[string]string) string {
	f := jen.NewFile("p")
	for _, m := range aliases {
		for name, path := range m {
			f.ImportAlias(path, name)
		}
	}
	f.Var().Id("_").Add(c)
	return fmt.Sprintf("%#v", f)
}

func TestParseTypeExpr(t *testing.T) {
	imports := map[string]string{"time": "time", "money": "github.com/acme/money/v2"}
	params := []string{"K", "V"}
	tests := []struct {
		src  string
		kind TypeKind
		name string
		path string
		code string
	}{
		{"int", KindBasic, "int", "", "int"},
		{"any", KindBasic, "any", "", "any"},
		{"K", KindTypeParam, "K", "", "K"},
		{"Point", KindNamed, "Point", "", "Point"},
		{"time.Time", KindNamed, "Time", "time", "time.Time"},
		{"money.Amount", KindNamed, "Amount", "github.com/acme/money/v2", "money.Amount"},
		{"Pair[int, V]", KindNamed, "Pair", "", "Pair[int, V]"},
		{"[]string", KindSlice, "", "", "[]string"},
		{"[3]float64", KindArray, "", "", "[3]float64"},
		{"map[K][]V", KindMap, "", "", "map[K][]V"},
		{"*Point", KindPointer, "", "", "*Point"},
		{"(int)", KindBasic, "int", "", "int"},
		{"func(int) error", KindRaw, "", "", "func(int) error"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			typ, err := ParseTypeExpr(tt.src, imports, params, false)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, typ.Kind)
			assert.Equal(t, tt.name, typ.Name)
			assert.Equal(t, tt.path, typ.Path)
			assert.Contains(t, render(typ.Code(), imports), "var _ "+tt.code)
		})
	}

	t.Run("nested elements", func(t *testing.T) {
		typ, err := ParseTypeExpr("map[string][]*time.Time", imports, nil, false)
		require.NoError(t, err)
		require.Equal(t, KindMap, typ.Kind)
		assert.True(t, typ.Key.IsBasic("string"))
		assert.Equal(t, KindSlice, typ.Elem.Kind)
		assert.Equal(t, KindPointer, typ.Elem.Elem.Kind)
		assert.Equal(t, "time", typ.Elem.Elem.Elem.Path)
		assert.Equal(t, "map[string][]*time.Time", typ.String())
	})

	t.Run("bounds", func(t *testing.T) {
		typ, err := ParseTypeExpr("~int | ~string | float64", nil, nil, true)
		require.NoError(t, err)
		require.Equal(t, KindUnion, typ.Kind)
		require.Len(t, typ.Args, 3)
		assert.Equal(t, KindApprox, typ.Args[0].Kind)
		assert.True(t, typ.Args[0].Elem.IsBasic("int"))
		assert.True(t, typ.Args[2].IsBasic("float64"))
		assert.Contains(t, render(jen.Interface(typ.Code())), "~int | ~string | float64")
	})
}

func TestParseTypeExpr_Errors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		bound bool
		err   error
	}{
		{"syntax", "map[string", false, nil},
		{"unknown alias", "uuid.UUID", false, errUnknownAlias},
		{"union outside bound", "int | string", false, errConstraint},
		{"approx outside bound", "~int", false, errConstraint},
		{"implicit array length", "[...]int", false, nil},
		{"not generic", "[]int[string]", false, nil},
		{"value expression", "1 + 2", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTypeExpr(tt.src, nil, nil, tt.bound)
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestTypeExprPredicates(t *testing.T) {
	parse := func(src string) *TypeExpr {
		typ, err := ParseTypeExpr(src, nil, []string{"T"}, false)
		require.NoError(t, err)
		return typ
	}
	t.Run("comparable", func(t *testing.T) {
		for _, src := range []string{"int", "uint8", "rune", "string", "bool"} {
			assert.True(t, parse(src).Comparable(), src)
		}
		for _, src := range []string{"float64", "float32", "T", "Point", "[]int", "any"} {
			assert.False(t, parse(src).Comparable(), src)
		}
	})
	t.Run("float", func(t *testing.T) {
		assert.True(t, parse("float32").Float())
		assert.False(t, parse("int").Float())
	})
	t.Run("collections", func(t *testing.T) {
		assert.True(t, parse("[]int").Collection())
		assert.True(t, parse("map[string]int").Collection())
		assert.False(t, parse("[2]int").Collection())
		assert.False(t, parse("*int").Collection())
	})
	assert.Equal(t, "type parameter", KindTypeParam.String())
	assert.Equal(t, "kind(99)", TypeKind(99).String())
}
