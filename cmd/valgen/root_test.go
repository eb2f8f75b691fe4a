package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/valgen/compiler/gen"
)

const geoYAML = `package: geo
types:
  - name: Point
    properties:
      - {name: x, type: int}
      - {name: y, type: int}
utilities:
  - class_name: GeoUtils
    types: [Point]
`

func execute(t *testing.T, fs afero.Fs, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(newApp(fs, &out, environ()))
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateCmd(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "geo.yaml", []byte(geoYAML), 0o644))

	out, err := execute(t, fs, "generate", "--target", "geo", "--workers", "2", "geo.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "generated")

	for _, name := range []string{"point.go", "geo_utils.go", gen.SnapshotFile} {
		ok, err := afero.Exists(fs, filepath.Join("geo", name))
		require.NoError(t, err)
		assert.True(t, ok, name)
	}
	data, err := afero.ReadFile(fs, filepath.Join("geo", "point.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "func NewPoint(x int, y int) Point")
}

func TestGenerateCmd_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := execute(t, fs, "generate")
	assert.Error(t, err)

	_, err = execute(t, fs, "generate", "missing.yaml")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("package: geo\ntypes:\n  - name: point\n"), 0o644))
	out, err := execute(t, fs, "generate", "--target", "geo", "bad.yaml")
	assert.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, out, "must be exported")

	_, err = execute(t, fs, "generate", "--log-level", "loud", "bad.yaml")
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	abs, err := filepath.Abs("geo.yaml")
	require.NoError(t, err)
	watched := map[string]bool{abs: true}

	assert.True(t, relevant(fsnotify.Event{Name: "geo.yaml", Op: fsnotify.Write}, watched))
	assert.True(t, relevant(fsnotify.Event{Name: abs, Op: fsnotify.Create}, watched))
	assert.True(t, relevant(fsnotify.Event{Name: abs, Op: fsnotify.Rename}, watched))
	assert.False(t, relevant(fsnotify.Event{Name: abs, Op: fsnotify.Chmod}, watched))
	assert.False(t, relevant(fsnotify.Event{Name: "other.yaml", Op: fsnotify.Write}, watched))
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	desc := filepath.Join(dir, "geo.yaml")
	target := filepath.Join(dir, "geo")
	require.NoError(t, os.WriteFile(desc, []byte(geoYAML), 0o644))

	var out bytes.Buffer
	a := newApp(afero.NewOsFs(), &out, environ())
	a.settings = &Settings{Target: target, Header: gen.DefaultHeader, Workers: 1, Snapshot: true, Debounce: 10 * time.Millisecond}
	a.logger = newLogger(&out, "error")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, []string{desc}) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(target, "point.go"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	updated := geoYAML + "  - class_name: MoreUtils\n    types: [Point]\n"
	require.NoError(t, os.WriteFile(desc, []byte(updated), 0o644))
	require.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(target, "more_utils.go"))
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
