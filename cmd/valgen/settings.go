package main

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/syssam/valgen/compiler/gen"
)

// envPrefix marks the environment variables read into Settings.
const envPrefix = "VALGEN_"

// Settings holds the CLI configuration. Values are layered: defaults, then
// VALGEN_* environment variables, then explicitly set flags.
type Settings struct {
	Target   string        `koanf:"target" validate:"required"`
	Package  string        `koanf:"package"`
	Header   string        `koanf:"header"`
	Workers  int           `koanf:"workers" validate:"min=1"`
	Snapshot bool          `koanf:"snapshot"`
	LogLevel string        `koanf:"log_level" validate:"oneof=debug info warn error"`
	Debounce time.Duration `koanf:"debounce" validate:"min=0"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Target:   ".",
		Header:   gen.DefaultHeader,
		Workers:  runtime.GOMAXPROCS(0),
		Snapshot: true,
		LogLevel: "info",
		Debounce: 200 * time.Millisecond,
	}
}

// envKey maps VALGEN_LOG_LEVEL to log_level.
func envKey(k, v string) (string, any) {
	return strings.ToLower(strings.TrimPrefix(k, envPrefix)), v
}

// flagKey maps --log-level to log_level.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// LoadSettings reads the layered settings. environ supplies the environment
// and flags the command line; only flags that were set take part.
func LoadSettings(environ func() []string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(DefaultSettings(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        envPrefix,
		TransformFunc: envKey,
		EnvironFunc:   environ,
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}
	var ferr error
	if flags != nil {
		flags.Visit(func(f *pflag.Flag) {
			key := flagKey(f.Name)
			if ferr != nil || !k.Exists(key) {
				return
			}
			ferr = k.Set(key, f.Value.String())
		})
	}
	if ferr != nil {
		return nil, fmt.Errorf("load flags: %w", ferr)
	}
	s := &Settings{}
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	if err := validator.New().Struct(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Options returns the generator options for s.
func (s *Settings) Options() []gen.Option {
	opts := []gen.Option{
		gen.WithTarget(s.Target),
		gen.WithHeader(s.Header),
		gen.WithWorkers(s.Workers),
		gen.WithSnapshot(s.Snapshot),
	}
	if s.Package != "" {
		opts = append(opts, gen.WithPackage(s.Package))
	}
	return opts
}
