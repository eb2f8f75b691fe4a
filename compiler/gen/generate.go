package gen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/syssam/valgen/compiler/load"
)

// Round is one generation round. It owns the request registry, which starts
// empty and is dropped with the round, so nothing leaks from one round into
// the next. A round is single-threaded: declarations are processed strictly
// in input order.
type Round struct {
	// ID identifies the round in logs and in the snapshot.
	ID string

	cfg      *Config
	gens     Generators
	sink     Sink
	registry *Registry
	used     bool
}

// Result is the outcome of a round.
type Result struct {
	Round string
	// Types holds the models of the declarations that were generated.
	Types []*Type
	// Descriptors holds the generated descriptors in generation order.
	Descriptors []*OutputDescriptor
}

// Descriptor returns the descriptor of the given kind and name.
func (r *Result) Descriptor(kind DescriptorKind, name string) (*OutputDescriptor, bool) {
	for _, d := range r.Descriptors {
		if d.Kind == kind && d.Name == name {
			return d, true
		}
	}
	return nil, false
}

// NewRound creates a round running gens with cfg.
func NewRound(cfg *Config, gens Generators) *Round {
	sink := cfg.Sink
	if sink == nil {
		sink = Discard
	}
	return &Round{
		ID:       uuid.NewString(),
		cfg:      cfg,
		gens:     gens,
		sink:     sink,
		registry: NewRegistry(),
	}
}

// errRoundReused is returned when Run is called twice on the same round.
var errRoundReused = errors.New("valgen: round already ran")

// Run generates the descriptors for in. Declarations that can not be
// modeled are reported and skipped; they never stop the round.
func (r *Round) Run(in *load.Input) (*Result, error) {
	if in == nil {
		return nil, NewConfigError("Input", nil, "missing generation input")
	}
	if r.used {
		return nil, errRoundReused
	}
	r.used = true
	res := &Result{Round: r.ID}
	types := make(map[string]*Type, len(in.Declarations))
	for _, decl := range in.Declarations {
		sink := Scope(r.sink, decl.Pos, decl.Name)
		if _, ok := types[decl.Name]; ok {
			Fail(sink, "", NewModelError(decl.Name, "", "type declared twice", nil))
			continue
		}
		t, err := NewType(decl, sink)
		if err != nil {
			Fail(sink, "", err)
			continue
		}
		types[t.Name] = t
		res.Types = append(res.Types, t)
		res.Descriptors = append(res.Descriptors, r.generate(t)...)
	}
	for _, u := range in.Utilities {
		r.registry.Add(GenerationRequest{ClassName: u.ClassName, Types: u.Types, Origin: u.Pos}, r.sink)
	}
	if r.registry.Len() > 0 && r.gens.Utility == nil {
		return nil, NewConfigError("Utility", nil, "utility requests without a utility generator")
	}
	files := make(map[string]int)
	for _, d := range res.Descriptors {
		files[d.File]++
	}
	for _, req := range r.registry.Requests() {
		d := r.gens.Utility.Generate(req, types, r.cfg, Scope(r.sink, req.Origin, req.ClassName))
		if d == nil {
			continue
		}
		if d.Package == "" {
			d.Package = in.Package
		}
		if n := files[d.File]; n > 0 {
			d.File = fmt.Sprintf("%s_%d.go", strings.TrimSuffix(d.File, ".go"), n+1)
		}
		files[d.File]++
		res.Descriptors = append(res.Descriptors, d)
	}
	return res, nil
}

// generate runs the generators of one type.
func (r *Round) generate(t *Type) []*OutputDescriptor {
	ctx := NewContext(r.cfg, t, r.sink)
	ctx.Round = r.ID
	d := ctx.Descriptor()
	for _, g := range r.gens.Sub {
		d.Merge(g.Name(), g.Generate(ctx), ctx.Sink)
	}
	out := []*OutputDescriptor{d}
	for _, g := range r.gens.Companions {
		if cd := g.Generate(ctx); cd != nil {
			out = append(out, cd)
		}
	}
	return out
}

// Registry returns the request registry of the round.
func (r *Round) Registry() *Registry { return r.registry }

// Generate runs a round over in and writes the result to cfg.Target.
// Diagnostics go to cfg.Sink; only configuration and I/O failures are
// returned as errors.
func Generate(ctx context.Context, cfg *Config, in *load.Input, gens Generators) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res, err := NewRound(cfg, gens).Run(in)
	if err != nil {
		return nil, err
	}
	if _, err := NewWriter(cfg).Write(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}
