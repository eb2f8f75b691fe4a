// Package hashing provides the hash primitives used by generated value types.
//
// All functions follow the 31-multiplier polynomial convention, and the scalar
// hashes match the JVM's boxed-type hashCode results bit for bit, so a value
// type hashes the same as a Java record with the same components:
//
//	h := int32(1)
//	for _, e := range seq {
//		h = 31*h + hash(e)
//	}
//
// Arithmetic wraps on int32 overflow.
package hashing

import (
	"math"
	"unicode/utf16"
)

// Multiplier is the polynomial combinator used by every sequence hash.
const Multiplier int32 = 31

// Hasher is implemented by values that know their own hash. Generated value
// types implement it.
type Hasher interface {
	Hash() int32
}

// Small is the set of integer types that hash as their int32 value.
type Small interface {
	~int8 | ~int16 | ~int32 | ~uint8 | ~uint16
}

// Wide is the set of integer types that hash by folding the high 32 bits
// into the low 32 bits.
type Wide interface {
	~int | ~int64 | ~uint | ~uint32 | ~uint64 | ~uintptr
}

// Combine folds v into the running hash h.
func Combine(h, v int32) int32 {
	return Multiplier*h + v
}

// Int32 hashes a small integer.
func Int32[T Small](v T) int32 {
	return int32(v)
}

// Int64 hashes a wide integer.
func Int64[T Wide](v T) int32 {
	u := uint64(v)
	return int32(u ^ (u >> 32))
}

// Bool hashes a boolean.
func Bool(v bool) int32 {
	if v {
		return 1231
	}
	return 1237
}

// Float64 hashes a float64. Negative zero hashes as zero and every NaN hashes
// as the canonical NaN, so values equal under valgen.Float64Equal hash alike.
func Float64(v float64) int32 {
	bits := math.Float64bits(v)
	switch {
	case v == 0:
		bits = 0
	case v != v:
		bits = canonicalNaN
	}
	return int32(bits ^ (bits >> 32))
}

const canonicalNaN uint64 = 0x7ff8000000000000

// Float32 hashes a float32 with the same normalization as Float64.
func Float32(v float32) int32 {
	switch {
	case v == 0:
		v = 0
	case v != v:
		return int32(0x7fc00000)
	}
	return int32(math.Float32bits(v))
}

// String hashes s over its UTF-16 code units.
func String(s string) int32 {
	var h int32
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			h = Multiplier*h + int32(hi)
			h = Multiplier*h + int32(lo)
			continue
		}
		h = Multiplier*h + int32(r)
	}
	return h
}

// Slice returns the order-sensitive hash of s. A nil slice hashes like an empty
// one.
func Slice[E any](s []E, hash func(E) int32) int32 {
	return Fold(1, s, hash)
}

// Fold folds every element of s into seed.
func Fold[E any](seed int32, s []E, hash func(E) int32) int32 {
	h := seed
	for _, e := range s {
		h = Multiplier*h + hash(e)
	}
	return h
}

// Strings is Slice specialized for string sequences.
func Strings(s []string) int32 {
	return Slice(s, String)
}
