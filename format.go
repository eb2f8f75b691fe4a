package valgen

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Format renders a property value for a generated String method. Sequences
// render as [a, b], maps as {k=v, ...} with keys in sorted textual order, nil
// pointers, slices and maps as null, and everything else through fmt, so
// fmt.Stringer implementations (including nested value types) are honored.
func Format(v any) string {
	var b strings.Builder
	format(&b, reflect.ValueOf(v))
	return b.String()
}

func format(b *strings.Builder, v reflect.Value) {
	if !v.IsValid() {
		b.WriteString("null")
		return
	}
	if v.CanInterface() {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
				b.WriteString("null")
				return
			}
			b.WriteString(s.String())
			return
		}
	}
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			b.WriteString("null")
			return
		}
		formatSeq(b, v)
	case reflect.Array:
		formatSeq(b, v)
	case reflect.Map:
		if v.IsNil() {
			b.WriteString("null")
			return
		}
		entries := make([][2]string, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			var k, e strings.Builder
			format(&k, iter.Key())
			format(&e, iter.Value())
			entries = append(entries, [2]string{k.String(), e.String()})
		}
		slices.SortFunc(entries, func(x, y [2]string) int { return strings.Compare(x[0], y[0]) })
		b.WriteByte('{')
		for i, e := range entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(e[0])
			b.WriteByte('=')
			b.WriteString(e[1])
		}
		b.WriteByte('}')
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			b.WriteString("null")
			return
		}
		format(b, v.Elem())
	case reflect.String:
		b.WriteString(v.String())
	case reflect.Bool:
		fmt.Fprint(b, v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		fmt.Fprint(b, v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		fmt.Fprint(b, v.Uint())
	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()))
	default:
		if v.CanInterface() {
			fmt.Fprint(b, v.Interface())
			return
		}
		b.WriteString(v.Type().String())
	}
}

func formatSeq(b *strings.Builder, v reflect.Value) {
	b.WriteByte('[')
	for i := range v.Len() {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, v.Index(i))
	}
	b.WriteByte(']')
}
