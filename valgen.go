// Package valgen is the runtime support for value types generated by the
// valgen compiler. Generated code calls into this package for structural
// equality and string rendering of property values whose static type does not
// allow a direct comparison.
package valgen

import (
	"reflect"
	"time"

	"github.com/syssam/valgen/hashing"
)

var (
	hasherType = reflect.TypeFor[hashing.Hasher]()
	timeType   = reflect.TypeFor[time.Time]()
)

// Equaler is implemented by values with value-semantics equality.
// Generated value types implement Equaler[T] for their own type.
type Equaler[T any] interface {
	Equal(other T) bool
}

// Float64Equal reports whether a and b are the same float value. Unlike ==,
// NaN equals NaN, which keeps generated Equal methods reflexive.
func Float64Equal(a, b float64) bool {
	return a == b || (a != a && b != b)
}

// Float32Equal is Float64Equal for float32 values.
func Float32Equal(a, b float32) bool {
	return a == b || (a != a && b != b)
}

// Equal reports whether a and b hold equal values. Values implementing both
// Equaler[T] and hashing.Hasher decide for themselves, as does time.Time,
// which compares instants; other structs compare field by field so the result
// agrees with hashing.Value. Slices and arrays compare element-wise (a
// nil slice equals an empty one), maps compare by key, and pointers and
// interfaces compare what they point to.
func Equal[T any](a, b T) bool {
	return equal(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func equal(a, b reflect.Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	if ok, eq := callEqual(a, b); ok {
		return eq
	}
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return Float64Equal(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		ac, bc := a.Complex(), b.Complex()
		return Float64Equal(real(ac), real(bc)) && Float64Equal(imag(ac), imag(bc))
	case reflect.String:
		return a.String() == b.String()
	case reflect.Slice, reflect.Array:
		if a.Len() != b.Len() {
			return false
		}
		for i := range a.Len() {
			if !equal(a.Index(i), b.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !equal(iter.Value(), bv) {
				return false
			}
		}
		return true
	case reflect.Pointer:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return a.Pointer() == b.Pointer() || equal(a.Elem(), b.Elem())
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return equal(a.Elem(), b.Elem())
	case reflect.Struct:
		for i := range a.NumField() {
			if !equal(a.Field(i), b.Field(i)) {
				return false
			}
		}
		return true
	default:
		// chan, func and unsafe pointers compare by identity.
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		return a.Pointer() == b.Pointer()
	}
}

// callEqual invokes an Equal(T) bool method when a exposes one and its type
// hashes consistently with it.
func callEqual(a, b reflect.Value) (ok, eq bool) {
	if !a.CanInterface() || !b.CanInterface() || a.Kind() == reflect.Interface {
		return false, false
	}
	if t := a.Type(); t != timeType && !t.Implements(hasherType) {
		return false, false
	}
	if a.Kind() == reflect.Pointer && (a.IsNil() || b.IsNil()) {
		return false, false
	}
	m := a.MethodByName("Equal")
	if !m.IsValid() {
		return false, false
	}
	mt := m.Type()
	if mt.NumIn() != 1 || mt.NumOut() != 1 || mt.In(0) != a.Type() || mt.Out(0).Kind() != reflect.Bool {
		return false, false
	}
	return true, m.Call([]reflect.Value{b})[0].Bool()
}
