package load

// The following types describe a description file as written by users.
//
//	package: geo
//	imports:
//	  time: time
//	defaults:
//	  record:
//	    builder: true
//	types:
//	  - name: Point
//	    properties:
//	      - {name: x, type: int}
//	      - {name: y, type: int}
//	      - {name: label, type: string, markers: [ignored]}
//	utilities:
//	  - class_name: GeoUtils
//	    types: [Point]
type (
	// File is one description file.
	File struct {
		// Package is the Go package name of the generated code.
		Package string `yaml:"package" validate:"required,goident"`
		// Imports maps package aliases used in type expressions to import paths.
		Imports map[string]string `yaml:"imports,omitempty" validate:"dive,keys,goident,endkeys,required"`
		// Defaults are merged into every declaration's options.
		Defaults Options `yaml:"defaults,omitempty"`
		// Types holds the declared value types in declaration order.
		Types []*Declaration `yaml:"types,omitempty" validate:"dive,required"`
		// Utilities holds the auxiliary utility requests.
		Utilities []*Utility `yaml:"utilities,omitempty" validate:"dive,required"`
	}

	// Declaration describes one value type.
	Declaration struct {
		Name       string       `yaml:"name" validate:"required"`
		Doc        string       `yaml:"doc,omitempty"`
		TypeParams []*TypeParam `yaml:"type_params,omitempty" validate:"dive,required"`
		Properties []*Property  `yaml:"properties,omitempty" validate:"dive,required"`
		Options    Options      `yaml:"options,omitempty"`

		// Filled by the loader.
		Package string            `yaml:"-"`
		Imports map[string]string `yaml:"-"`
		Pos     string            `yaml:"-"`
	}

	// TypeParam is one generic parameter. Several bounds are intersected.
	TypeParam struct {
		Name   string   `yaml:"name" validate:"required"`
		Bounds []string `yaml:"bounds,omitempty"`
	}

	// Property is one accessor of the declared type.
	Property struct {
		Name    string   `yaml:"name" validate:"required"`
		Type    string   `yaml:"type" validate:"required"`
		Markers []string `yaml:"markers,omitempty" validate:"dive,oneof=ignored memoized"`
		// Compute names the zero-argument method producing a memoized value.
		Compute string `yaml:"compute,omitempty"`
		Doc     string `yaml:"doc,omitempty"`
	}

	// Options holds the per-type configuration. Unset record options fall back
	// to the file defaults and then to the generator defaults. Builder options
	// are kept raw; the generator decodes them one by one.
	Options struct {
		Record  RecordOptions  `yaml:"record,omitempty"`
		Builder map[string]any `yaml:"builder,omitempty"`
	}

	// RecordOptions toggles the generated concerns.
	RecordOptions struct {
		Equality        *bool `yaml:"equality,omitempty"`
		StringForm      *bool `yaml:"string_form,omitempty"`
		Memoization     *bool `yaml:"memoization,omitempty"`
		Builder         *bool `yaml:"builder,omitempty"`
		MemoizedHash    *bool `yaml:"memoized_hash,omitempty"`
		MemoizedString  *bool `yaml:"memoized_string,omitempty"`
		CopyCollections *bool `yaml:"copy_collections,omitempty"`
	}

	// Utility requests a utility type named ClassName with helpers for Types.
	Utility struct {
		ClassName string   `yaml:"class_name" validate:"required"`
		Types     []string `yaml:"types,omitempty"`

		// Filled by the loader.
		Imports map[string]string `yaml:"-"`
		Pos     string            `yaml:"-"`
	}

	// Input is what the front-end hands to one generation round.
	Input struct {
		Package      string
		Declarations []*Declaration
		Utilities    []*Utility
	}
)

// Marker names accepted in Property.Markers.
const (
	MarkerIgnored  = "ignored"
	MarkerMemoized = "memoized"
)
