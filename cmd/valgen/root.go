package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/syssam/valgen/compiler/gen"
	"github.com/syssam/valgen/compiler/gen/record"
	"github.com/syssam/valgen/compiler/load"
)

// errDiagnostics is returned when a round reported errors.
var errDiagnostics = errors.New("generation reported errors")

// app carries the dependencies shared by the commands.
type app struct {
	fs      afero.Fs
	out     io.Writer
	environ func() []string

	settings *Settings
	logger   *charmlog.Logger
}

func newApp(fs afero.Fs, out io.Writer, environ func() []string) *app {
	return &app{fs: fs, out: out, environ: environ}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "valgen",
		Short:         "Generate immutable value types from YAML descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := LoadSettings(a.environ, cmd.Flags())
			if err != nil {
				return err
			}
			a.settings = s
			a.logger = newLogger(a.out, s.LogLevel)
			return nil
		},
	}
	d := DefaultSettings()
	flags := root.PersistentFlags()
	flags.StringP("target", "t", d.Target, "directory generated files are written to")
	flags.String("package", d.Package, "import path of the generated package")
	flags.String("header", d.Header, "comment placed at the top of generated files")
	flags.Int("workers", d.Workers, "files written in parallel")
	flags.Bool("snapshot", d.Snapshot, "remove generated files of types that no longer exist")
	flags.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	root.AddCommand(newGenerateCmd(a), newWatchCmd(a))
	return root
}

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <description.yaml>...",
		Short: "Generate value types once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := a.generate(cmd.Context(), args)
			if err != nil {
				a.logger.Error("generation failed", "err", err)
			}
			return err
		},
	}
}

func newLogger(w io.Writer, level string) *charmlog.Logger {
	l := charmlog.NewWithOptions(w, charmlog.Options{Prefix: "valgen"})
	if lvl, err := charmlog.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

// generate runs one round over the description files at paths.
func (a *app) generate(ctx context.Context, paths []string) error {
	in, err := load.Load(a.fs, paths...)
	if err != nil {
		return err
	}
	var diags gen.Collector
	opts := append(a.settings.Options(), gen.WithFs(a.fs), gen.WithSink(gen.Tee(&diags, gen.NewLogSink(a.logger))))
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	res, err := gen.Generate(ctx, cfg, in, record.Generators())
	if err != nil {
		return err
	}
	a.logger.Info("generated",
		"round", res.Round,
		"types", len(res.Types),
		"descriptors", len(res.Descriptors),
		"target", cfg.Target)
	if diags.HasErrors() {
		var n int
		for _, d := range diags.Diagnostics() {
			if d.Severity == gen.SeverityError {
				n++
			}
		}
		return fmt.Errorf("%w: %d errors", errDiagnostics, n)
	}
	return nil
}
