package fpy

import "strconv"

// RoundingMode determines which floating-point value is chosen when a real
// value is not representable in the target format.
type RoundingMode uint8

const (
	// ToNearestEven rounds to the nearest value, breaking ties towards the
	// even significand.
	ToNearestEven RoundingMode = iota
	// ToNearestAway rounds to the nearest value, breaking ties away from zero.
	ToNearestAway
	// ToPositiveInf rounds towards positive infinity (ceiling).
	ToPositiveInf
	// ToNegativeInf rounds towards negative infinity (floor).
	ToNegativeInf
	// ToZero rounds towards zero (truncation).
	ToZero
	// AwayFromZero rounds away from zero.
	AwayFromZero
	// ToOdd rounds to the value with an odd significand.
	ToOdd
	// ToEven rounds to the value with an even significand.
	ToEven
)

// RoundingDirection is the direction of a rounding relative to the exact
// value. A RoundingMode maps to a nearest flag and a direction.
type RoundingDirection uint8

const (
	DirToZero RoundingDirection = iota
	DirAwayZero
	DirToEven
	DirToOdd
)

// IsNearest reports whether m is a round-to-nearest mode.
func (m RoundingMode) IsNearest() bool {
	return m == ToNearestEven || m == ToNearestAway
}

// Direction returns the rounding direction of m applied to a value with the
// given sign.
func (m RoundingMode) Direction(neg bool) RoundingDirection {
	switch m {
	case ToNearestEven, ToEven:
		return DirToEven
	case ToNearestAway, AwayFromZero:
		return DirAwayZero
	case ToPositiveInf:
		if neg {
			return DirToZero
		}
		return DirAwayZero
	case ToNegativeInf:
		if neg {
			return DirAwayZero
		}
		return DirToZero
	case ToZero:
		return DirToZero
	case ToOdd:
		return DirToOdd
	default:
		panic("fpy: invalid rounding mode")
	}
}

var modeNames = [...]string{
	ToNearestEven: "ToNearestEven",
	ToNearestAway: "ToNearestAway",
	ToPositiveInf: "ToPositiveInf",
	ToNegativeInf: "ToNegativeInf",
	ToZero:        "ToZero",
	AwayFromZero:  "AwayFromZero",
	ToOdd:         "ToOdd",
	ToEven:        "ToEven",
}

func (m RoundingMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "RoundingMode(" + strconv.Itoa(int(m)) + ")"
}
