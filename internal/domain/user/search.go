package user

import (
	"encoding/json"
	"math"
	"reflect"
)

// IsMatchingAllSearchParams reports whether every key in params is present
// in r and holds an equal value. A missing key fails the whole match.
func IsMatchingAllSearchParams(r Record, params SearchParams) bool {
	for key, want := range params {
		got, ok := r.Field(key)
		if !ok || !ValuesEqual(got, want) {
			return false
		}
	}
	return true
}

// ValuesEqual compares two field values. Numbers compare by value whatever
// their Go type, since JSON decoding yields float64 while callers tend to pass
// ints. Integers compare exactly; a float equals an integer only when it is
// integral and converts to it without loss. Strings never equal numbers.
// Anything else falls back to DeepEqual.
func ValuesEqual(a, b interface{}) bool {
	x, aNum := toNumber(a)
	y, bNum := toNumber(b)
	switch {
	case aNum && bNum:
		return x.equal(y)
	case aNum || bNum:
		return false
	}
	return reflect.DeepEqual(a, b)
}

type numKind uint8

const (
	kindInt numKind = iota
	kindUint
	kindFloat
)

type number struct {
	kind numKind
	i    int64
	u    uint64
	f    float64
}

func (n number) equal(o number) bool {
	if n.kind > o.kind {
		n, o = o, n
	}
	switch {
	case n.kind == kindInt && o.kind == kindInt:
		return n.i == o.i
	case n.kind == kindInt && o.kind == kindUint:
		return n.i >= 0 && uint64(n.i) == o.u
	case n.kind == kindUint && o.kind == kindUint:
		return n.u == o.u
	case o.kind == kindFloat && n.kind == kindFloat:
		return n.f == o.f
	}

	// one integer, one float
	f := o.f
	if f != math.Trunc(f) {
		return false
	}
	if n.kind == kindInt {
		return f >= -(1<<63) && f < 1<<63 && int64(f) == n.i
	}
	return f >= 0 && f < 1<<64 && uint64(f) == n.u
}

func toNumber(v interface{}) (number, bool) {
	switch n := v.(type) {
	case int:
		return number{kind: kindInt, i: int64(n)}, true
	case int8:
		return number{kind: kindInt, i: int64(n)}, true
	case int16:
		return number{kind: kindInt, i: int64(n)}, true
	case int32:
		return number{kind: kindInt, i: int64(n)}, true
	case int64:
		return number{kind: kindInt, i: n}, true
	case uint:
		return number{kind: kindUint, u: uint64(n)}, true
	case uint8:
		return number{kind: kindUint, u: uint64(n)}, true
	case uint16:
		return number{kind: kindUint, u: uint64(n)}, true
	case uint32:
		return number{kind: kindUint, u: uint64(n)}, true
	case uint64:
		return number{kind: kindUint, u: n}, true
	case float32:
		return number{kind: kindFloat, f: float64(n)}, true
	case float64:
		return number{kind: kindFloat, f: n}, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return number{kind: kindInt, i: i}, true
		}
		f, err := n.Float64()
		return number{kind: kindFloat, f: f}, err == nil
	}
	return number{}, false
}
