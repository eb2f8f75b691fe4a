package gen

// Context is everything the generators know about one value type during one
// round. It is created by the round, shared read-only by the generators of
// the type and dropped once they finish.
type Context struct {
	// Type is the model of the declared type.
	Type *Type
	// Record holds the resolved record options.
	Record RecordOptions
	// Builder holds the resolved builder options.
	Builder BuilderOptions
	// Config is the round configuration.
	Config *Config
	// Sink receives diagnostics attributed to the type.
	Sink Sink
	// Round identifies the generation round.
	Round string
}

// NewContext resolves the options of t and scopes sink to it.
// Unknown builder option names are reported as warnings.
func NewContext(cfg *Config, t *Type, sink Sink) *Context {
	sink = Scope(sink, t.Pos, t.Name)
	ctx := &Context{
		Type:   t,
		Config: cfg,
		Sink:   sink,
		Record: DefaultRecordOptions(),
	}
	if d := t.Declaration(); d != nil {
		ctx.Record = ResolveRecordOptions(d.Options.Record)
		var unknown []error
		ctx.Builder, unknown = ResolveBuilderOptions(d.Options.Builder)
		for _, err := range unknown {
			Warn(sink, "", err)
		}
	} else {
		ctx.Builder = DefaultBuilderOptions()
	}
	return ctx
}

// Descriptor returns an empty value descriptor for the type of ctx.
func (ctx *Context) Descriptor() *OutputDescriptor {
	t := ctx.Type
	return &OutputDescriptor{
		Kind:       ValueDescriptor,
		Name:       t.Name,
		File:       t.FileName(),
		Package:    t.Package,
		Doc:        t.Doc,
		TypeParams: t.TypeParams,
		Aliases:    t.Imports,
		Origin:     t.Pos,
	}
}

// BuilderName returns the companion builder type name.
func (ctx *Context) BuilderName() string {
	return ctx.Builder.BuilderName(ctx.Type.Name)
}
