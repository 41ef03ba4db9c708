package mathx

import "golang.org/x/exp/constraints"

// MaxOf returns the largest value representable by the unsigned type T.
func MaxOf[T constraints.Unsigned]() T { return ^T(0) }

// SatInc increments *v by one unless it already holds the type maximum.
// Counters built on it stick at their ceiling instead of wrapping.
func SatInc[T constraints.Unsigned](v *T) {
	if *v != MaxOf[T]() {
		*v++
	}
}

// SatAdd returns a+b, or the type maximum on overflow.
func SatAdd[T constraints.Unsigned](a, b T) T {
	s := a + b
	if s < a {
		return MaxOf[T]()
	}
	return s
}
