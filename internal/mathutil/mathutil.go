package mathutil

import "math/bits"

// BinaryDigits returns the number of significant bits in value.
// The result is 0 for a zero value.
func BinaryDigits(value uint64) int {
	return bits.Len64(value)
}

// Bitmask returns the mask of the k lowest bits.
// k of zero gives zero, k of 64 or more gives all ones.
func Bitmask(k uint) uint64 {
	if k >= 64 {
		return ^uint64(0)
	}
	return 1<<k - 1
}

// AbsInt64 returns the absolute value of val.
func AbsInt64(val int64) int64 {
	mask := val >> 63
	return (val + mask) ^ mask
}
