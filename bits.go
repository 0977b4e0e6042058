package simple8b

import (
	"math/bits"

	"github.com/arloliu/simple8b/num"
)

// Unsigned is the set of element types the codec packs: plain 64-bit
// integers or two-limb 128-bit integers. Both are comparable value types,
// which the run-length and missing-marker logic relies on.
type Unsigned interface {
	uint64 | num.Uint128
}

// The helpers below dispatch on the concrete element type. The compiler
// instantiates them per type, so the switches collapse to straight-line
// code for each instantiation.

func bitLen[T Unsigned](v T) int {
	switch x := any(v).(type) {
	case uint64:
		return bits.Len64(x)
	case num.Uint128:
		return x.BitLen()
	}

	return 0
}

func trailingZeros[T Unsigned](v T) int {
	switch x := any(v).(type) {
	case uint64:
		return bits.TrailingZeros64(x)
	case num.Uint128:
		return x.TrailingZeros()
	}

	return 0
}

func isZero[T Unsigned](v T) bool {
	var zero T
	return v == zero
}

func shiftRight[T Unsigned](v T, n uint) T {
	switch x := any(v).(type) {
	case uint64:
		if n >= 64 {
			var zero T
			return zero
		}

		return any(x >> n).(T)
	case num.Uint128:
		return any(x.Rsh(n)).(T)
	}

	var zero T

	return zero
}

func shiftLeft[T Unsigned](v T, n uint) T {
	switch x := any(v).(type) {
	case uint64:
		if n >= 64 {
			var zero T
			return zero
		}

		return any(x << n).(T)
	case num.Uint128:
		return any(x.Lsh(n)).(T)
	}

	var zero T

	return zero
}

func fromUint64[T Unsigned](x uint64) T {
	var v T
	switch any(v).(type) {
	case uint64:
		return any(x).(T)
	case num.Uint128:
		return any(num.FromUint64(x)).(T)
	}

	return v
}

// low64 returns the low 64 bits of v. Only called on values already
// known to fit a slot, i.e. at most 60 meaningful bits.
func low64[T Unsigned](v T) uint64 {
	switch x := any(v).(type) {
	case uint64:
		return x
	case num.Uint128:
		return x.Uint64()
	}

	return 0
}

// isMask reports whether v equals 2^n - 1, i.e. whether its n-bit
// representation is all ones.
func isMask[T Unsigned](v T, n int) bool {
	switch x := any(v).(type) {
	case uint64:
		if n >= 64 {
			return x == ^uint64(0)
		}

		return x == (uint64(1)<<uint(n))-1
	case num.Uint128:
		return x == num.Mask(uint(n))
	}

	return false
}

// slotMask returns the all-ones pattern of an n-bit slot, n ≤ 60.
func slotMask(n uint8) uint64 {
	return (uint64(1) << n) - 1
}
