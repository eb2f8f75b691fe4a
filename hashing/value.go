package hashing

import (
	"reflect"
	"time"
)

var (
	hasherType = reflect.TypeFor[Hasher]()
	timeType   = reflect.TypeFor[time.Time]()
)

// Value hashes v structurally. Hashers use their own Hash method, a time.Time
// hashes its instant so equal times in different locations agree, slices and
// arrays use the sequence hash, maps sum key/value pair hashes, pointers and
// interfaces hash what they point to (nil hashes as 0), and structs fold their
// fields in declaration order.
func Value[T any](v T) int32 {
	return value(reflect.ValueOf(&v).Elem())
}

func value(v reflect.Value) int32 {
	if v.CanInterface() && v.Type().Implements(hasherType) {
		if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) && v.IsNil() {
			return 0
		}
		return v.Interface().(Hasher).Hash()
	}
	if v.Type() == timeType && v.CanInterface() {
		return Time(v.Interface().(time.Time))
	}
	switch v.Kind() {
	case reflect.Bool:
		return Bool(v.Bool())
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return int32(v.Int())
	case reflect.Uint8, reflect.Uint16:
		return int32(v.Uint())
	case reflect.Int, reflect.Int64:
		return Int64(v.Int())
	case reflect.Uint, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Int64(v.Uint())
	case reflect.Float32:
		return Float32(float32(v.Float()))
	case reflect.Float64:
		return Float64(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return Combine(Float64(real(c)), Float64(imag(c)))
	case reflect.String:
		return String(v.String())
	case reflect.Slice, reflect.Array:
		h := int32(1)
		for i := range v.Len() {
			h = Multiplier*h + value(v.Index(i))
		}
		return h
	case reflect.Map:
		var h int32
		iter := v.MapRange()
		for iter.Next() {
			h += value(iter.Key()) ^ value(iter.Value())
		}
		return h
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return 0
		}
		return value(v.Elem())
	case reflect.Struct:
		h := int32(1)
		for i := range v.NumField() {
			h = Multiplier*h + value(v.Field(i))
		}
		return h
	default:
		// chan, func and unsafe pointers have identity only.
		if v.IsNil() {
			return 0
		}
		return Int64(v.Pointer())
	}
}

// Time hashes the instant t denotes, ignoring its location and monotonic
// clock reading.
func Time(t time.Time) int32 {
	return Combine(Int64(t.Unix()), int32(t.Nanosecond()))
}
