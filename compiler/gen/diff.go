package gen

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// OptionKind classifies how an option value is compared and rendered.
type OptionKind uint8

// Option kinds.
const (
	// OptionPrimitive values (bool and numbers) compare with == and render as literals.
	OptionPrimitive OptionKind = iota + 1
	// OptionEnum values compare by constant name and render as the bare name.
	OptionEnum
	// OptionArray values compare element-wise and render as {a, b}.
	OptionArray
	// OptionOther values compare structurally and render as quoted strings.
	OptionOther
)

// String returns the kind name.
func (k OptionKind) String() string {
	switch k {
	case OptionPrimitive:
		return "primitive"
	case OptionEnum:
		return "enum"
	case OptionArray:
		return "array"
	case OptionOther:
		return "other"
	default:
		return fmt.Sprintf("OptionKind(%d)", uint8(k))
	}
}

// OptionDef describes one configurable option. Array defaults and values
// are []any. Lookup returns the resolved value or the reason it can not be read.
type OptionDef struct {
	Name    string
	Kind    OptionKind
	Default any
	Lookup  func() (any, error)
}

// OptionDiff is an option whose resolved value differs from its default.
type OptionDiff struct {
	Name  string
	Kind  OptionKind
	Value any
	// Literal is the rendered value: a literal, a bare enum constant name,
	// an array literal or a quoted string depending on Kind.
	Literal string
}

// String renders the diff as name=literal.
func (d OptionDiff) String() string { return d.Name + "=" + d.Literal }

// StaticImport is an enum constant referenced by a rendered option.
type StaticImport struct {
	Type  string
	Const string
}

// String renders the import as Type.Const.
func (i StaticImport) String() string { return i.Type + "." + i.Const }

// StaticImports is an ordered set of enum constant references. Each constant
// is registered once however many options use it.
type StaticImports struct {
	list []StaticImport
	seen map[StaticImport]struct{}
}

// Add registers a constant. It reports whether it was not registered before.
func (s *StaticImports) Add(typ, name string) bool {
	imp := StaticImport{Type: typ, Const: name}
	if _, ok := s.seen[imp]; ok {
		return false
	}
	if s.seen == nil {
		s.seen = make(map[StaticImport]struct{})
	}
	s.seen[imp] = struct{}{}
	s.list = append(s.list, imp)
	return true
}

// List returns the registered constants in registration order.
func (s *StaticImports) List() []StaticImport {
	if s == nil {
		return nil
	}
	return append([]StaticImport(nil), s.list...)
}

// Len returns the number of registered constants.
func (s *StaticImports) Len() int {
	if s == nil {
		return 0
	}
	return len(s.list)
}

// DiffOptions returns the options of table whose value differs from the
// default, in table order. Enum constants used by the rendered values are
// registered in imports. An option whose value can not be read is reported
// to sink as a warning and left out of the diff.
func DiffOptions(table []OptionDef, imports *StaticImports, sink Sink) []OptionDiff {
	if sink == nil {
		sink = Discard
	}
	var diffs []OptionDiff
	for _, opt := range table {
		actual, err := opt.Lookup()
		if err != nil {
			if !IsOptionError(err) {
				err = NewOptionError(opt.Name, nil, err)
			}
			Warn(sink, "", err)
			continue
		}
		if !differs(opt.Kind, opt.Default, actual) {
			continue
		}
		diffs = append(diffs, OptionDiff{
			Name:    opt.Name,
			Kind:    opt.Kind,
			Value:   actual,
			Literal: literal(opt.Kind, actual, imports),
		})
	}
	return diffs
}

func differs(kind OptionKind, def, actual any) bool {
	switch kind {
	case OptionPrimitive:
		return def != actual
	case OptionEnum:
		return enumName(def) != enumName(actual)
	case OptionArray:
		d, a := asSlice(def), asSlice(actual)
		if len(d) != len(a) {
			return true
		}
		for i := range d {
			if !elemEqual(d[i], a[i]) {
				return true
			}
		}
		return false
	default:
		return !reflect.DeepEqual(def, actual)
	}
}

func elemEqual(a, b any) bool {
	ae, aok := a.(Enum)
	be, bok := b.(Enum)
	if aok || bok {
		return aok && bok && ae.EnumType() == be.EnumType() && ae.String() == be.String()
	}
	return reflect.DeepEqual(a, b)
}

func literal(kind OptionKind, v any, imports *StaticImports) string {
	switch kind {
	case OptionPrimitive:
		return fmt.Sprint(v)
	case OptionEnum:
		return enumRef(v, imports)
	case OptionArray:
		items := asSlice(v)
		elems := make([]string, len(items))
		for i, item := range items {
			elems[i] = elemLiteral(item, imports)
		}
		return "{" + strings.Join(elems, ", ") + "}"
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}

func elemLiteral(v any, imports *StaticImports) string {
	switch v := v.(type) {
	case Enum:
		return enumRef(v, imports)
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}

func enumRef(v any, imports *StaticImports) string {
	e, ok := v.(Enum)
	if !ok {
		return fmt.Sprint(v)
	}
	if imports != nil {
		imports.Add(e.EnumType(), e.String())
	}
	return e.String()
}

func enumName(v any) string {
	if e, ok := v.(Enum); ok {
		return e.EnumType() + "." + e.String()
	}
	return fmt.Sprint(v)
}

func asSlice(v any) []any {
	switch v := v.(type) {
	case nil:
		return nil
	case []any:
		return v
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// FormatOptions renders diffs as the space separated name=value list used by
// the builder options marker.
func FormatOptions(diffs []OptionDiff) string {
	parts := make([]string, len(diffs))
	for i, d := range diffs {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}
