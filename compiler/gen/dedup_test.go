package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/valgen/hashing"
)

func TestGenerationRequest(t *testing.T) {
	ab := GenerationRequest{ClassName: "GeoUtils", Types: []string{"A", "B"}, Origin: "a.yaml:utilities[0]"}
	ab2 := GenerationRequest{ClassName: "GeoUtils", Types: []string{"A", "B"}, Origin: "b.yaml:utilities[3]"}
	ba := GenerationRequest{ClassName: "GeoUtils", Types: []string{"B", "A"}}
	other := GenerationRequest{ClassName: "MathUtils", Types: []string{"A", "B"}}

	t.Run("equality is structural and order sensitive", func(t *testing.T) {
		assert.True(t, ab.Equal(ab2))
		assert.Equal(t, ab.Hash(), ab2.Hash())
		assert.False(t, ab.Equal(ba))
		assert.False(t, ab.Equal(other))
		assert.NotEqual(t, ab.Hash(), ba.Hash())
	})

	t.Run("hash folds types into the class name hash", func(t *testing.T) {
		want := 31*(31*hashing.String("GeoUtils")+hashing.String("A")) + hashing.String("B")
		assert.Equal(t, want, ab.Hash())
	})

	t.Run("empty type list", func(t *testing.T) {
		empty := GenerationRequest{ClassName: "GeoUtils"}
		assert.Equal(t, hashing.String("GeoUtils"), empty.Hash())
		assert.True(t, empty.Equal(GenerationRequest{ClassName: "GeoUtils", Types: []string{}}))
		assert.Equal(t, "GeoUtils[]", empty.String())
	})

	assert.Equal(t, "GeoUtils[A, B]", ab.String())
}

func TestRegistry(t *testing.T) {
	var c Collector
	r := NewRegistry()
	ab := GenerationRequest{ClassName: "GeoUtils", Types: []string{"A", "B"}}

	assert.True(t, r.Add(ab, &c))
	assert.False(t, r.Add(GenerationRequest{ClassName: "GeoUtils", Types: []string{"A", "B"}}, &c))
	assert.True(t, r.Contains(ab))
	assert.Equal(t, 1, r.Len())
	assert.Empty(t, c.Diagnostics())

	ba := GenerationRequest{ClassName: "GeoUtils", Types: []string{"B", "A"}, Origin: "geo.yaml:utilities[2]"}
	assert.True(t, r.Add(ba, &c))
	assert.True(t, r.Add(GenerationRequest{ClassName: "MathUtils"}, &c))
	assert.Equal(t, 3, r.Len())

	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "geo.yaml:utilities[2]", diags[0].Pos)
	var cerr *ConflictError
	require.ErrorAs(t, diags[0].Err, &cerr)
	assert.Equal(t, []string{"A", "B"}, cerr.First)
	assert.Equal(t, []string{"B", "A"}, cerr.Second)

	got := r.Requests()
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(ab))
	assert.True(t, got[1].Equal(ba))
	assert.Equal(t, "MathUtils", got[2].ClassName)
}

func TestRegistry_Isolated(t *testing.T) {
	req := GenerationRequest{ClassName: "GeoUtils", Types: []string{"A"}}
	first := NewRegistry()
	first.Add(req, nil)
	second := NewRegistry()
	assert.False(t, second.Contains(req))
	assert.True(t, second.Add(req, nil))
}
