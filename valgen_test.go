package valgen

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/valgen/hashing"
)

type money struct {
	units int
	cur   string
}

type version struct{ major, minor int }

// Equal ignores the minor component so the test can tell it was called.
func (v version) Equal(other version) bool { return v.major == other.major }

func (v version) Hash() int32 { return int32(v.major) }

// label has an Equal method but no Hash, so it compares field by field.
type label struct{ text string }

func (label) Equal(label) bool { return true }

func (v version) String() string { return "v" + string(rune('0'+v.major)) }

func TestFloatEqual(t *testing.T) {
	nan := math.NaN()
	assert.True(t, Float64Equal(nan, nan))
	assert.True(t, Float64Equal(0, math.Copysign(0, -1)))
	assert.False(t, Float64Equal(1, 2))
	assert.True(t, Float32Equal(float32(nan), float32(nan)))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		eq   bool
		a, b any
	}{
		{"strings", true, "a", "a"},
		{"ints", false, 1, 2},
		{"nil and empty slice", true, []int(nil), []int{}},
		{"element-wise slices", true, []string{"a", "b"}, []string{"a", "b"}},
		{"slice order", false, []string{"a", "b"}, []string{"b", "a"}},
		{"maps", true, map[string]int{"a": 1}, map[string]int{"a": 1}},
		{"map values", false, map[string]int{"a": 1}, map[string]int{"a": 2}},
		{"structs", true, money{1, "EUR"}, money{1, "EUR"}},
		{"struct fields", false, money{1, "EUR"}, money{1, "USD"}},
		{"equaler", true, version{1, 2}, version{1, 9}},
		{"equaler in slice", true, []version{{1, 2}}, []version{{1, 3}}},
		{"equal without hash", false, label{"a"}, label{"b"}},
		{"different dynamic types", false, 1, "1"},
		{"nan", true, math.NaN(), math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eq, Equal(tt.a, tt.b))
			assert.Equal(t, tt.eq, Equal(tt.b, tt.a), "symmetric")
		})
	}
}

func TestEqual_Pointers(t *testing.T) {
	x, y := 1, 1
	assert.True(t, Equal(&x, &y))
	assert.True(t, Equal[*int](nil, nil))
	assert.False(t, Equal(&x, nil))
}

func TestEqual_Time(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	utc := time.Date(2024, 3, 1, 12, 0, 0, 5, time.UTC)
	now := time.Now()

	tests := []struct {
		name string
		eq   bool
		a, b time.Time
	}{
		{"same instant in another location", true, utc, utc.In(cet)},
		{"monotonic reading stripped", true, now, now.Round(0)},
		{"different instants", false, utc, utc.Add(time.Nanosecond)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eq, Equal(tt.a, tt.b))
			if tt.eq {
				assert.Equal(t, hashing.Value(tt.a), hashing.Value(tt.b))
			}
		})
	}

	t.Run("nested", func(t *testing.T) {
		type stamped struct {
			At   time.Time
			Tags []time.Time
		}
		a := stamped{At: utc, Tags: []time.Time{now}}
		b := stamped{At: utc.In(cet), Tags: []time.Time{now.Round(0)}}
		assert.True(t, Equal(a, b))
		assert.Equal(t, hashing.Value(a), hashing.Value(b))
	})
}

func TestEqual_AgreesWithHash(t *testing.T) {
	pairs := [][2]any{
		{version{1, 2}, version{1, 9}},
		{[]version{{1, 2}}, []version{{1, 3}}},
		{map[string]version{"a": {2, 0}}, map[string]version{"a": {2, 1}}},
		{label{"a"}, label{"a"}},
		{math.NaN(), math.NaN()},
		{[]int(nil), []int{}},
	}
	for _, p := range pairs {
		if Equal(p[0], p[1]) {
			assert.Equal(t, hashing.Value(p[0]), hashing.Value(p[1]), "%v", p[0])
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"abc", "abc"},
		{42, "42"},
		{1.5, "1.5"},
		{true, "true"},
		{[]int{1, 2}, "[1, 2]"},
		{[]string(nil), "null"},
		{[2]string{"a", "b"}, "[a, b]"},
		{map[string]int{"b": 2, "a": 1}, "{a=1, b=2}"},
		{version{3, 0}, "v3"},
		{[]version{{1, 0}, {2, 0}}, "[v1, v2]"},
		{(*int)(nil), "null"},
		{nil, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.in))
		})
	}
}
