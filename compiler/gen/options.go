package gen

import (
	"fmt"
	"slices"
	"sort"

	"github.com/syssam/valgen/compiler/load"
)

// RecordOptions selects the concerns generated for a value type.
type RecordOptions struct {
	Equality        bool
	StringForm      bool
	Memoization     bool
	Builder         bool
	MemoizedHash    bool
	MemoizedString  bool
	CopyCollections bool
}

// DefaultRecordOptions returns the options used when nothing is configured.
func DefaultRecordOptions() RecordOptions {
	return RecordOptions{
		Equality:        true,
		StringForm:      true,
		Memoization:     true,
		CopyCollections: true,
	}
}

// ResolveRecordOptions applies the configured values over the defaults.
func ResolveRecordOptions(o load.RecordOptions) RecordOptions {
	r := DefaultRecordOptions()
	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&r.Equality, o.Equality)
	set(&r.StringForm, o.StringForm)
	set(&r.Memoization, o.Memoization)
	set(&r.Builder, o.Builder)
	set(&r.MemoizedHash, o.MemoizedHash)
	set(&r.MemoizedString, o.MemoizedString)
	set(&r.CopyCollections, o.CopyCollections)
	return r
}

// Enum is implemented by enumerated option values. EnumType names the type
// the constant belongs to.
type Enum interface {
	fmt.Stringer
	EnumType() string
}

// NilHandling controls how the companion builder treats nil collections.
type NilHandling int

// NilHandling values.
const (
	NilAllowed NilHandling = iota
	NilToEmpty
)

var nilHandlingNames = map[NilHandling]string{
	NilAllowed: "NilAllowed",
	NilToEmpty: "NilToEmpty",
}

// String implements fmt.Stringer.
func (n NilHandling) String() string {
	if s, ok := nilHandlingNames[n]; ok {
		return s
	}
	return fmt.Sprintf("NilHandling(%d)", int(n))
}

// EnumType implements Enum.
func (NilHandling) EnumType() string { return "NilHandling" }

// BuilderFeature is an optional part of the companion builder.
type BuilderFeature int

// Builder features.
const (
	// FeatureFrom adds From<T>, a builder factory seeded from a value.
	FeatureFrom BuilderFeature = iota
	// FeatureGetters adds Get<Prop> accessors to the builder.
	FeatureGetters
	// FeatureReset adds Reset, clearing every field of the builder.
	FeatureReset
)

var builderFeatureNames = map[BuilderFeature]string{
	FeatureFrom:    "FeatureFrom",
	FeatureGetters: "FeatureGetters",
	FeatureReset:   "FeatureReset",
}

// String implements fmt.Stringer.
func (f BuilderFeature) String() string {
	if s, ok := builderFeatureNames[f]; ok {
		return s
	}
	return fmt.Sprintf("BuilderFeature(%d)", int(f))
}

// EnumType implements Enum.
func (BuilderFeature) EnumType() string { return "BuilderFeature" }

// BuilderOptions configures the companion builder.
type BuilderOptions struct {
	Suffix            string
	BuilderMethodName string
	BuildMethodName   string
	SetterPrefix      string
	GetterPrefix      string
	CopyCollections   bool
	NilHandling       NilHandling
	Features          []BuilderFeature

	// unreadable holds the options whose configured value could not be decoded.
	unreadable map[string]error
}

// Builder option names.
const (
	OptSuffix            = "suffix"
	OptBuilderMethodName = "builderMethodName"
	OptBuildMethodName   = "buildMethodName"
	OptSetterPrefix      = "setterPrefix"
	OptGetterPrefix      = "getterPrefix"
	OptCopyCollections   = "copyCollections"
	OptNilHandling       = "nilHandling"
	OptFeatures          = "features"
)

// DefaultBuilderOptions returns the builder defaults.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		Suffix:            "Builder",
		BuilderMethodName: "New",
		BuildMethodName:   "Build",
		GetterPrefix:      "Get",
		CopyCollections:   true,
		NilHandling:       NilAllowed,
		Features:          []BuilderFeature{FeatureFrom},
	}
}

// ResolveBuilderOptions decodes raw option values over the defaults. A value
// that can not be decoded leaves the option at its default; the failure is
// kept and surfaces through the option table lookup. Unknown option names are
// returned as errors.
func ResolveBuilderOptions(raw map[string]any) (BuilderOptions, []error) {
	o := DefaultBuilderOptions()
	var unknown []error
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, name := range keys {
		v := raw[name]
		var err error
		switch name {
		case OptSuffix:
			err = decodeString(v, &o.Suffix)
		case OptBuilderMethodName:
			err = decodeString(v, &o.BuilderMethodName)
		case OptBuildMethodName:
			err = decodeString(v, &o.BuildMethodName)
		case OptSetterPrefix:
			err = decodeString(v, &o.SetterPrefix)
		case OptGetterPrefix:
			err = decodeString(v, &o.GetterPrefix)
		case OptCopyCollections:
			err = decodeBool(v, &o.CopyCollections)
		case OptNilHandling:
			err = decodeEnum(v, nilHandlingNames, &o.NilHandling)
		case OptFeatures:
			err = decodeFeatures(v, &o.Features)
		default:
			unknown = append(unknown, NewConfigError(name, v, "unknown builder option"))
			continue
		}
		if err != nil {
			if o.unreadable == nil {
				o.unreadable = make(map[string]error)
			}
			o.unreadable[name] = NewOptionError(name, v, err)
		}
	}
	return o, unknown
}

// HasFeature reports whether f is enabled.
func (o BuilderOptions) HasFeature(f BuilderFeature) bool {
	return slices.Contains(o.Features, f)
}

// BuilderName returns the companion builder type name for a value type.
func (o BuilderOptions) BuilderName(typeName string) string {
	return typeName + o.Suffix
}

// FactoryName returns the companion builder factory function name.
func (o BuilderOptions) FactoryName(typeName string) string {
	return o.BuilderMethodName + o.BuilderName(typeName)
}

// SetterName returns the builder setter name of a property.
func (o BuilderOptions) SetterName(p *Property) string {
	if o.SetterPrefix == "" {
		return p.Accessor()
	}
	return o.SetterPrefix + p.Accessor()
}

// GetterName returns the builder getter name of a property.
func (o BuilderOptions) GetterName(p *Property) string {
	return o.GetterPrefix + p.Accessor()
}

// Table returns the option table compared by the options diff: every option
// with its kind, default value and a lookup of the resolved value.
func (o BuilderOptions) Table() []OptionDef {
	d := DefaultBuilderOptions()
	return []OptionDef{
		o.def(OptSuffix, OptionOther, d.Suffix, o.Suffix),
		o.def(OptBuilderMethodName, OptionOther, d.BuilderMethodName, o.BuilderMethodName),
		o.def(OptBuildMethodName, OptionOther, d.BuildMethodName, o.BuildMethodName),
		o.def(OptSetterPrefix, OptionOther, d.SetterPrefix, o.SetterPrefix),
		o.def(OptGetterPrefix, OptionOther, d.GetterPrefix, o.GetterPrefix),
		o.def(OptCopyCollections, OptionPrimitive, d.CopyCollections, o.CopyCollections),
		o.def(OptNilHandling, OptionEnum, d.NilHandling, o.NilHandling),
		o.def(OptFeatures, OptionArray, toAny(d.Features), toAny(o.Features)),
	}
}

func (o BuilderOptions) def(name string, kind OptionKind, def, actual any) OptionDef {
	err := o.unreadable[name]
	return OptionDef{
		Name:    name,
		Kind:    kind,
		Default: def,
		Lookup: func() (any, error) {
			if err != nil {
				return nil, err
			}
			return actual, nil
		},
	}
}

func toAny[E any](s []E) []any {
	out := make([]any, len(s))
	for i, e := range s {
		out[i] = e
	}
	return out
}

func decodeString(v any, dst *string) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expect string, got %T", v)
	}
	*dst = s
	return nil
}

func decodeBool(v any, dst *bool) error {
	b, ok := v.(bool)
	if !ok {
		return fmt.Errorf("expect bool, got %T", v)
	}
	*dst = b
	return nil
}

func decodeEnum[E comparable](v any, names map[E]string, dst *E) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expect enum name, got %T", v)
	}
	for e, n := range names {
		if n == s {
			*dst = e
			return nil
		}
	}
	return fmt.Errorf("unknown constant %q", s)
}

func decodeFeatures(v any, dst *[]BuilderFeature) error {
	items, ok := v.([]any)
	if !ok {
		return fmt.Errorf("expect list, got %T", v)
	}
	fs := make([]BuilderFeature, 0, len(items))
	for i, item := range items {
		var f BuilderFeature
		if err := decodeEnum(item, builderFeatureNames, &f); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		fs = append(fs, f)
	}
	*dst = fs
	return nil
}
