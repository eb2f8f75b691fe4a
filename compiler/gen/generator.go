package gen

// =============================================================================
// Interface Segregation: one small interface per generation concern
// =============================================================================

// SubGenerator contributes one concern (equality, string form, memoization,
// builder integration...) to the descriptor of a value type. Sub-generators
// read the Context and never modify it; what they add is returned as a
// Contribution the round merges in order.
type SubGenerator interface {
	// Name identifies the generator in diagnostics.
	Name() string
	// Generate returns the members for the type held by ctx. A generator
	// whose concern is disabled returns an empty contribution.
	Generate(ctx *Context) Contribution
}

// CompanionGenerator emits a separate type next to the value type, such as
// its builder.
type CompanionGenerator interface {
	Name() string
	// Generate returns the companion descriptor or nil when the companion
	// is not requested for this type.
	Generate(ctx *Context) *OutputDescriptor
}

// UtilityGenerator emits the utility type of one deduplicated request.
type UtilityGenerator interface {
	// Generate returns the descriptor for req. types holds the value types
	// of the round by name; a listed type missing from it is reported to sink.
	Generate(req GenerationRequest, types map[string]*Type, cfg *Config, sink Sink) *OutputDescriptor
}

// Generators is the set of generators a round runs. For every value type
// the sub-generators run in order and their contributions are merged into
// one descriptor, then each companion generator may add a descriptor of its
// own. Utility generation runs once per distinct request after all types.
type Generators struct {
	Sub        []SubGenerator
	Companions []CompanionGenerator
	Utility    UtilityGenerator
}
