// Package gen generates the implementation of immutable value types from
// their declarations.
//
// A declaration lists the properties of a type. The generator derives a
// struct with one field per component property, a constructor, accessors,
// structural equality, a hash, a string form and, on request, memoized
// derived properties, a companion builder and utility types holding slice
// helpers for several value types.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Description files (*.yaml)
//	        ↓
//	   load.Input (declarations + utility requests)
//	        ↓
//	   Round: Type models, one Context per type
//	        ↓
//	   Sub-generators → merged OutputDescriptor
//	        ↓
//	   Writer (jennifer + goimports, parallel)
//	        ↓
//	   Generated code + snapshot
//
// # Key Types
//
//   - Type: the model of one declared type, with its type parameters and
//     properties in declaration order
//   - Context: the per-type view shared by the generators of one round
//   - OutputDescriptor: everything generated for one type, independent of
//     rendering
//   - GenerationRequest and Registry: deduplication of utility requests
//   - Config: global configuration of a round
//
// # Generator Interfaces
//
//	SubGenerator       (one concern merged into the value type)
//	CompanionGenerator (a separate type next to the value type)
//	UtilityGenerator   (one type per distinct utility request)
//
// The record package provides the standard set; see record.Generators.
//
// # Diagnostics
//
// Problems with one declaration never stop a round. They are reported to
// the configured Sink as warnings or errors and the declaration, property or
// option is skipped:
//
//   - ModelError: malformed declarations
//   - OptionError: builder options that can not be decoded
//   - ConflictError: utility requests sharing a class name
//   - GenerationError: member collisions and rendering failures
//   - ConfigError: invalid configuration, returned instead of reported
//
// # Configuration
//
// Configuration uses the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithTarget("./geo"),
//	    gen.WithPackage("github.com/org/project/geo"),
//	    gen.WithWorkers(4),
//	)
//	in, err := load.Load(afero.NewOsFs(), "geo.yaml")
//	res, err := gen.Generate(ctx, cfg, in, record.Generators())
//
// # Generated Output
//
//	{target}/
//	├── .valgen.snapshot    // files written by the last round
//	├── {type}.go           // value type
//	├── {type}_builder.go   // companion builder, if enabled
//	└── {utility}.go        // utility type per request
package gen
