package btree

import (
	"cmp"
	"fmt"
)

// CompareFunc is a total order over keys. It returns a negative number
// when a sorts before b, zero when the keys are equal, and a positive
// number when a sorts after b. A non-nil error (conventionally wrapping
// ErrIncomparableKeys) reports that the operands cannot be ordered;
// the map aborts the running operation without mutating.
type CompareFunc[K any] func(a, b K) (int, error)

// Ordered returns the natural comparison for key types with a built-in
// order. It never fails.
func Ordered[K cmp.Ordered]() CompareFunc[K] {
	return func(a, b K) (int, error) {
		return cmp.Compare(a, b), nil
	}
}

// AnyOrder returns a comparison for dynamically typed keys. Numbers
// (int, int64, float64) compare numerically across types, strings
// compare lexicographically. Every other pairing fails with
// ErrIncomparableKeys, naming both operand types.
//
// Mixed int/float comparisons are carried out in float64.
func AnyOrder() CompareFunc[any] {
	return func(a, b any) (int, error) {
		if af, ai, aexact, ok := anyNumber(a); ok {
			bf, bi, bexact, bok := anyNumber(b)
			if !bok {
				return 0, incomparable(a, b)
			}
			if aexact && bexact {
				return cmp.Compare(ai, bi), nil
			}
			return cmp.Compare(af, bf), nil
		}
		if as, ok := a.(string); ok {
			bs, bok := b.(string)
			if !bok {
				return 0, incomparable(a, b)
			}
			return cmp.Compare(as, bs), nil
		}
		return 0, incomparable(a, b)
	}
}

// anyNumber widens supported numeric key types. exact marks operands
// that are integers, so that two integers compare without a float
// round trip.
func anyNumber(v any) (f float64, i int64, exact bool, ok bool) {
	switch n := v.(type) {
	case int:
		return float64(n), int64(n), true, true
	case int64:
		return float64(n), n, true, true
	case float64:
		return n, 0, false, true
	}
	return 0, 0, false, false
}

func incomparable(a, b any) error {
	return fmt.Errorf("%w: %T vs %T", ErrIncomparableKeys, a, b)
}
