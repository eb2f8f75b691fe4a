package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeParams(t *testing.T, params map[string][]string, order ...string) TypeParams {
	t.Helper()
	var ps TypeParams
	for _, name := range order {
		p := &TypeParam{Name: name}
		for _, b := range params[name] {
			bound, err := ParseTypeExpr(b, map[string]string{"fmt": "fmt"}, order, true)
			require.NoError(t, err)
			p.Bounds = append(p.Bounds, bound)
		}
		ps = append(ps, p)
	}
	return ps
}

func TestTypeParams(t *testing.T) {
	t.Run("declaration and usage forms", func(t *testing.T) {
		ps := typeParams(t, map[string][]string{"K": {"comparable"}}, "K", "V")
		assert.Equal(t, []string{"K comparable", "V any"}, ps.VariableNames())
		assert.Equal(t, []string{"K", "V"}, ps.UsageNames())
		assert.Len(t, ps.Declarations(), 2)
		assert.Len(t, ps.Usages(), 2)
	})

	t.Run("intersection of bounds", func(t *testing.T) {
		ps := typeParams(t, map[string][]string{"T": {"fmt.Stringer", "comparable"}}, "T")
		assert.Equal(t, []string{"T interface{ fmt.Stringer; comparable }"}, ps.VariableNames())
		src := ps.Declare(jen.Func().Id("F")).Params().Block().GoString()
		assert.Contains(t, src, "func F[T interface {")
		assert.Contains(t, src, "fmt.Stringer")
	})

	t.Run("union bound", func(t *testing.T) {
		ps := typeParams(t, map[string][]string{"N": {"~int | ~int64"}}, "N")
		assert.Equal(t, []string{"N ~int | ~int64"}, ps.VariableNames())
		src := ps.Declare(jen.Func().Id("Sum")).Params(jen.Id("n").Index().Id("N")).Block().GoString()
		assert.Contains(t, src, "func Sum[N ~int | ~int64](n []N) {")
	})

	t.Run("instantiate", func(t *testing.T) {
		ps := typeParams(t, nil, "A", "B")
		assert.Contains(t, render(ps.Instantiate(jen.Id("Pair"))), "var _ Pair[A, B]")
		assert.Contains(t, ps.Declare(jen.Type().Id("Pair")).Struct().GoString(), "type Pair[A any, B any] struct{}")
	})

	t.Run("non-generic leaves statements untouched", func(t *testing.T) {
		var ps TypeParams
		assert.Empty(t, ps.VariableNames())
		assert.Empty(t, ps.UsageNames())
		assert.Contains(t, render(ps.Instantiate(jen.Id("Point"))), "var _ Point")
		assert.NotContains(t, render(ps.Instantiate(jen.Id("Point"))), "[")
	})
}
