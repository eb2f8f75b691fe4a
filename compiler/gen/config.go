package gen

import (
	"runtime"

	"github.com/spf13/afero"
)

// DefaultHeader is written at the top of every generated file.
const DefaultHeader = "// Code generated by valgen, DO NOT EDIT."

// SnapshotFile is the name of the snapshot written into the target directory.
const SnapshotFile = ".valgen.snapshot"

// Config holds the global configuration of a generation round.
type Config struct {
	// Package is the import path of the generated package, for example
	// "github.com/org/project/geo". It is used to tell local type names
	// from qualified ones.
	Package string

	// Target is the directory generated files are written to.
	Target string

	// Header is the comment placed at the top of every generated file.
	Header string

	// Workers bounds the number of files written in parallel.
	Workers int

	// Snapshot enables the generated-files snapshot used to remove stale
	// outputs of types that no longer exist.
	Snapshot bool

	// Fs is the file system generated code is written to.
	Fs afero.Fs

	// Sink receives diagnostics. Defaults to a LogSink.
	Sink Sink
}

// NewConfig returns a Config with defaults applied followed by opts.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Header:   DefaultHeader,
		Workers:  runtime.GOMAXPROCS(0),
		Snapshot: true,
		Fs:       afero.NewOsFs(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if c.Sink == nil {
		c.Sink = NewLogSink(nil)
	}
	return c, nil
}

// Validate reports missing settings required before writing files.
func (c *Config) Validate() error {
	if c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if c.Fs == nil {
		return NewConfigError("Fs", nil, "missing file system in config")
	}
	if c.Workers <= 0 {
		return NewConfigError("Workers", c.Workers, "must be positive")
	}
	return nil
}

// MustNewConfig is like NewConfig but panics on error.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
