// Package load reads value type descriptions from YAML files and turns them
// into the Input of a generation round.
package load

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"io"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrPackageMismatch is returned when description files of one round declare
// different packages.
var ErrPackageMismatch = errors.New("load: description files declare different packages")

// Load reads and validates the given description files from fsys. File
// defaults are merged into every declaration of the same file. All files must
// declare the same package.
func Load(fsys afero.Fs, paths ...string) (*Input, error) {
	if len(paths) == 0 {
		return nil, errors.New("load: no description files")
	}
	v := newValidator()
	in := &Input{}
	for _, path := range paths {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("load: read %s: %w", path, err)
		}
		f, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("load: %s: %w", path, err)
		}
		if err := v.Struct(f); err != nil {
			return nil, fmt.Errorf("load: %s: %w", path, err)
		}
		switch {
		case in.Package == "":
			in.Package = f.Package
		case in.Package != f.Package:
			return nil, fmt.Errorf("%w: %q in %s, want %q", ErrPackageMismatch, f.Package, path, in.Package)
		}
		if err := f.resolve(path); err != nil {
			return nil, fmt.Errorf("load: %s: %w", path, err)
		}
		in.Declarations = append(in.Declarations, f.Types...)
		in.Utilities = append(in.Utilities, f.Utilities...)
	}
	return in, nil
}

// Parse decodes one description file. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	f := &File{}
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return f, nil
}

// resolve merges the file defaults into each declaration and records where
// every declaration came from.
func (f *File) resolve(path string) error {
	for i, d := range f.Types {
		if err := mergo.Merge(&d.Options.Record, f.Defaults.Record, mergo.WithoutDereference); err != nil {
			return fmt.Errorf("merge record defaults into %s: %w", d.Name, err)
		}
		if len(f.Defaults.Builder) > 0 {
			if d.Options.Builder == nil {
				d.Options.Builder = make(map[string]any, len(f.Defaults.Builder))
			}
			if err := mergo.Merge(&d.Options.Builder, f.Defaults.Builder, mergo.WithoutDereference); err != nil {
				return fmt.Errorf("merge builder defaults into %s: %w", d.Name, err)
			}
		}
		d.Package = f.Package
		d.Imports = f.Imports
		d.Pos = fmt.Sprintf("%s:types[%d]", path, i)
	}
	for i, u := range f.Utilities {
		u.Imports = f.Imports
		u.Pos = fmt.Sprintf("%s:utilities[%d]", path, i)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})
	return v
}
