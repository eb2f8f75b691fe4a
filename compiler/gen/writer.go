package gen

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"sync"

	"github.com/dave/jennifer/jen"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Import paths of the runtime packages used by generated code.
const (
	RuntimePkg = "github.com/syssam/valgen"
	HashingPkg = "github.com/syssam/valgen/hashing"
	MemoPkg    = "github.com/syssam/valgen/memo"
)

// Writer renders descriptors and writes them to the target directory with
// parallel execution bounded by the configured workers.
type Writer struct {
	cfg *Config

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation output.
type WriterMetrics struct {
	FilesGenerated int
	FilesRemoved   int
	TotalBytes     int64
}

// NewWriter creates a new writer for cfg.
func NewWriter(cfg *Config) *Writer {
	return &Writer{cfg: cfg, metrics: &WriterMetrics{}}
}

// Metrics returns the generation metrics.
func (w *Writer) Metrics() *WriterMetrics {
	return w.metrics
}

// fileTask represents a single file generation task.
type fileTask struct {
	name  string // output file name (relative to Target)
	descs []*OutputDescriptor
}

// Write renders the descriptors of res, one file per descriptor File, and
// returns the written file names. With snapshots enabled, generated files of
// the previous run that are no longer produced are removed.
func (w *Writer) Write(ctx context.Context, res *Result) ([]string, error) {
	if err := w.cfg.Validate(); err != nil {
		return nil, err
	}
	fs := w.cfg.Fs
	if err := fs.MkdirAll(w.cfg.Target, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	tasks := groupFiles(res.Descriptors)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.cfg.Workers)
	for _, task := range tasks {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeFile(task)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	written := make([]string, len(tasks))
	for i, task := range tasks {
		written[i] = task.name
	}
	if w.cfg.Snapshot {
		removed, err := syncSnapshot(fs, w.cfg.Target, w.cfg.Header, res.Round, written)
		if err != nil {
			return nil, err
		}
		w.metrics.FilesRemoved += len(removed)
	}
	return written, nil
}

// groupFiles groups descriptors by file, keeping the order of first appearance.
func groupFiles(ds []*OutputDescriptor) []fileTask {
	var tasks []fileTask
	index := make(map[string]int)
	for _, d := range ds {
		i, ok := index[d.File]
		if !ok {
			i = len(tasks)
			index[d.File] = i
			tasks = append(tasks, fileTask{name: d.File})
		}
		tasks[i].descs = append(tasks[i].descs, d)
	}
	return tasks
}

// writeFile renders and writes a single file.
func (w *Writer) writeFile(task fileTask) error {
	fs := w.cfg.Fs
	// 1. Render descriptors
	var buf bytes.Buffer
	if err := Render(w.cfg, task.descs...).Render(&buf); err != nil {
		return NewGenerationError("render", task.name, "render descriptors", err)
	}

	// 2. Format using goimports
	fullPath := filepath.Join(w.cfg.Target, task.name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := fullPath + ".error"
		_ = afero.WriteFile(fs, debugPath, buf.Bytes(), 0o644)
		return NewGenerationError("format", task.name, fmt.Sprintf("unformatted written to %s", debugPath), err)
	}

	// 3. Write file
	if err := afero.WriteFile(fs, fullPath, formatted, 0o644); err != nil {
		return NewGenerationError("write", task.name, "write file", err)
	}

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.mu.Unlock()
	return nil
}

// Render turns descriptors that share a file into a jennifer file. Enum
// constants referenced by option markers are listed once each as
// //valgen:enum header lines.
func Render(cfg *Config, ds ...*OutputDescriptor) *jen.File {
	pkg := ""
	if len(ds) > 0 {
		pkg = ds[0].Package
	}
	var f *jen.File
	if cfg != nil && cfg.Package != "" {
		f = jen.NewFilePathName(cfg.Package, pkg)
	} else {
		f = jen.NewFile(pkg)
	}
	for _, p := range []string{RuntimePkg, HashingPkg, MemoPkg, "maps", "slices"} {
		f.ImportName(p, path.Base(p))
	}
	for _, d := range ds {
		for alias, p := range d.Aliases {
			if alias == path.Base(p) {
				f.ImportName(p, alias)
			} else {
				f.ImportAlias(p, alias)
			}
		}
	}
	if cfg != nil && cfg.Header != "" {
		f.HeaderComment(cfg.Header)
	}
	var enums StaticImports
	for _, d := range ds {
		for _, imp := range d.Imports.List() {
			enums.Add(imp.Type, imp.Const)
		}
	}
	for _, imp := range enums.List() {
		f.HeaderComment("//valgen:enum " + imp.String())
	}
	for i, d := range ds {
		if i > 0 {
			f.Line()
		}
		renderDescriptor(f, d)
	}
	return f
}

func renderDescriptor(f *jen.File, d *OutputDescriptor) {
	if d.Doc != "" {
		f.Comment(d.Doc)
	}
	for _, dir := range d.Directives {
		line := "//valgen:" + dir.Name
		if dir.Args != "" {
			line += " " + dir.Args
		}
		f.Comment(line)
	}
	f.Add(d.TypeParams.Declare(jen.Type().Id(d.Name)).StructFunc(func(g *jen.Group) {
		for _, fd := range d.Fields {
			if fd.Doc != "" {
				g.Comment(fd.Doc)
			}
			g.Id(fd.Name).Add(fd.Type)
		}
	}))
	for _, m := range d.Members {
		f.Line()
		f.Add(m.Code)
	}
}
