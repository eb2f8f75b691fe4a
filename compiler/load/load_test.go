package load

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	in, err := Load(afero.NewOsFs(), "testdata/geo.yaml", "testdata/extra.yaml")
	require.NoError(t, err)
	require.Equal(t, "geo", in.Package)
	require.Len(t, in.Declarations, 3)
	require.Len(t, in.Utilities, 1)

	point := in.Declarations[0]
	assert.Equal(t, "Point", point.Name)
	assert.Equal(t, "geo", point.Package)
	assert.Equal(t, "testdata/geo.yaml:types[0]", point.Pos)
	assert.Equal(t, map[string]string{"time": "time"}, point.Imports)
	require.Len(t, point.Properties, 3)
	assert.Equal(t, []string{MarkerIgnored}, point.Properties[2].Markers)
	assert.Empty(t, point.Properties[0].Markers)
	require.NotNil(t, point.Options.Record.Builder)
	assert.True(t, *point.Options.Record.Builder, "file default applied")
	assert.Equal(t, "With", point.Options.Builder["setterPrefix"])

	pair := in.Declarations[1]
	require.Len(t, pair.TypeParams, 2)
	assert.Equal(t, []string{"~int | ~string"}, pair.TypeParams[1].Bounds)
	require.NotNil(t, pair.Options.Record.Builder)
	assert.False(t, *pair.Options.Record.Builder, "explicit option wins over default")

	span := in.Declarations[2]
	assert.Equal(t, "testdata/extra.yaml:types[0]", span.Pos)
	assert.Nil(t, span.Options.Record.Builder)

	u := in.Utilities[0]
	assert.Equal(t, "GeoUtils", u.ClassName)
	assert.Equal(t, []string{"Point"}, u.Types)
	assert.Equal(t, "testdata/geo.yaml:utilities[0]", u.Pos)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("no files", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs())
		require.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "nope.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.yaml")
	})
	t.Run("package mismatch", func(t *testing.T) {
		_, err := Load(afero.NewOsFs(), "testdata/geo.yaml", "testdata/other.yaml")
		require.ErrorIs(t, err, ErrPackageMismatch)
	})
	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(afero.NewOsFs(), "testdata/unknown.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "colour")
	})
	t.Run("validation", func(t *testing.T) {
		_, err := Load(afero.NewOsFs(), "testdata/invalid.yaml")
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		tags := make([]string, 0, len(verrs))
		for _, e := range verrs {
			tags = append(tags, e.Tag())
		}
		assert.ElementsMatch(t, []string{"goident", "oneof"}, tags)
	})
}

func TestLoad_MemFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.yaml", []byte(`
package: p
defaults:
  builder:
    suffix: Maker
types:
  - name: A
    properties:
      - {name: n, type: int}
    options:
      builder:
        suffix: Factory
`), 0o644))
	in, err := Load(fsys, "a.yaml")
	require.NoError(t, err)
	require.Len(t, in.Declarations, 1)
	assert.Equal(t, "Factory", in.Declarations[0].Options.Builder["suffix"], "declaration options are not overridden by defaults")
}

func TestLoad_ExplicitFalseWins(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "a.yaml", []byte(`
package: p
defaults:
  record:
    builder: true
    copy_collections: true
  builder:
    copyCollections: true
types:
  - name: A
    properties:
      - {name: n, type: int}
    options:
      record:
        builder: false
      builder:
        copyCollections: false
  - name: B
    properties:
      - {name: n, type: int}
`), 0o644))
	in, err := Load(fsys, "a.yaml")
	require.NoError(t, err)
	require.Len(t, in.Declarations, 2)

	a := in.Declarations[0].Options
	require.NotNil(t, a.Record.Builder)
	assert.False(t, *a.Record.Builder)
	require.NotNil(t, a.Record.CopyCollections)
	assert.True(t, *a.Record.CopyCollections, "unset option falls back to the file default")
	assert.Equal(t, false, a.Builder["copyCollections"])

	b := in.Declarations[1].Options
	require.NotNil(t, b.Record.Builder)
	assert.True(t, *b.Record.Builder)
	assert.Equal(t, true, b.Builder["copyCollections"])
}

func TestParse_Empty(t *testing.T) {
	f, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, f.Types)
}
