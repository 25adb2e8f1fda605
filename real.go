package fpy

import (
	"fmt"
	"math"

	"github.com/bksaiki/fpy/internal/mathutil"
)

// RealFloat is a finite real number of the form
//
//	(-1)^Neg * Mant * 2^Exp
//
// with an unbounded exponent and an integer significand. It is the analytic
// reference representation for rounding: every finite float64 and float32
// decodes into one, and rounding operations return new values.
type RealFloat struct {
	Neg  bool
	Exp  int64
	Mant uint64

	// Inexact records whether the rounding that produced this value
	// discarded non-zero digits.
	Inexact bool
}

// NewReal returns the value (-1)^neg * mant * 2^exp.
func NewReal(neg bool, exp int64, mant uint64) RealFloat {
	return RealFloat{Neg: neg, Exp: exp, Mant: mant}
}

// RealFromFloat64 decodes a finite float64. It panics on NaN or infinity.
// Zeros and subnormals are loaded at the minimum exponent without
// renormalization.
func RealFromFloat64(x float64) RealFloat {
	return realFromBits(math.Float64bits(x), binary64)
}

// RealFromFloat32 decodes a finite float32. It panics on NaN or infinity.
func RealFromFloat32(x float32) RealFloat {
	return realFromBits(uint64(math.Float32bits(x)), binary32)
}

func realFromBits(b uint64, f format) RealFloat {
	sbits := b & f.smask
	ebits := (b & f.emask) >> f.m
	mbits := b & f.mmask

	r := RealFloat{Neg: sbits != 0}
	switch {
	case ebits == 0:
		// zero or subnormal
		r.Exp = f.expmin
		r.Mant = mbits
	case ebits == f.eones:
		panic("fpy: cannot decode NaN or infinity")
	default:
		r.Exp = f.expmin + int64(ebits) - 1
		r.Mant = f.implicit1 | mbits
	}
	return r
}

// Prec returns the effective precision of the significand, 0 for zero.
func (x RealFloat) Prec() uint {
	return uint(mathutil.BinaryDigits(x.Mant))
}

// E returns the normalized exponent of x. For zero this is Exp - 1.
func (x RealFloat) E() int64 {
	return x.Exp + int64(x.Prec()) - 1
}

// N returns the position of the first unrepresentable digit below the
// significant digits. This is always Exp - 1.
func (x RealFloat) N() int64 {
	return x.Exp - 1
}

// IsZero reports whether x is a (signed) zero.
func (x RealFloat) IsZero() bool {
	return x.Mant == 0
}

// Split separates x at digit position n: hi holds the digits strictly above
// n, lo holds the digits at or below n, and hi + lo == x. Neither result
// aliases the receiver.
func (x RealFloat) Split(n int64) (hi, lo RealFloat) {
	switch {
	case x.Mant == 0:
		return NewReal(x.Neg, n+1, 0), NewReal(x.Neg, n, 0)
	case n >= x.E():
		// all digits are in the lower part
		return NewReal(x.Neg, n+1, 0), NewReal(x.Neg, x.Exp, x.Mant)
	case n < x.Exp:
		// all digits are in the upper part
		return NewReal(x.Neg, x.Exp, x.Mant), NewReal(x.Neg, n, 0)
	default:
		k := uint((n + 1) - x.Exp)
		lo = NewReal(x.Neg, x.Exp, x.Mant&mathutil.Bitmask(k))
		hi = NewReal(x.Neg, x.Exp+int64(k), x.Mant>>k)
		return hi, lo
	}
}

// RoundPrec rounds x to at most p bits of precision.
func (x RealFloat) RoundPrec(p uint, rm RoundingMode) RealFloat {
	return x.roundAt(int64(p), x.E()-int64(p), true, rm)
}

// RoundMin discards the digits of x at or below position n.
func (x RealFloat) RoundMin(n int64, rm RoundingMode) RealFloat {
	return x.roundAt(0, n, false, rm)
}

// RoundPrecMin rounds x to at most p bits of precision keeping no digit at
// or below position n, IEEE-754 style.
func (x RealFloat) RoundPrecMin(p uint, n int64, rm RoundingMode) RealFloat {
	return x.roundAt(int64(p), max(n, x.E()-int64(p)), true, rm)
}

func (x RealFloat) roundAt(p, n int64, bounded bool, rm RoundingMode) RealFloat {
	hi, lo := x.Split(n)
	if lo.Mant == 0 {
		hi.Inexact = false
		return hi
	}

	// recover the rounding bits from the discarded digits
	var halfBit, stickyBit bool
	if lo.E() == n {
		// the MSB of lo sits exactly at position n
		halfBit = true
		stickyBit = lo.Mant&mathutil.Bitmask(lo.Prec()-1) != 0
	} else {
		// the MSB of lo is below position n
		halfBit = false
		stickyBit = true
	}

	if hi.roundDir(halfBit, stickyBit, rm) {
		hi.Mant++
		if bounded && int64(hi.Prec()) > p {
			// the increment exceeded the precision limit;
			// the result is a power of two
			hi.Mant >>= 1
			hi.Exp++
		}
	}
	hi.Inexact = true
	return hi
}

// roundDir decides whether rounding away (incrementing the significand of
// the kept part) is required. The receiver is the kept part.
func (x RealFloat) roundDir(halfBit, stickyBit bool, rm RoundingMode) bool {
	dir := rm.Direction(x.Neg)
	if rm.IsNearest() {
		if !halfBit {
			return false
		}
		if stickyBit {
			return true
		}
		// exactly halfway
		switch dir {
		case DirToZero:
			return false
		case DirAwayZero:
			return true
		case DirToEven:
			return x.Mant&1 != 0
		case DirToOdd:
			return x.Mant&1 == 0
		}
		panic("fpy: invalid rounding direction")
	}
	if !halfBit && !stickyBit {
		return false
	}
	switch dir {
	case DirToZero:
		return false
	case DirAwayZero:
		return true
	case DirToEven:
		return x.Mant&1 != 0
	case DirToOdd:
		return x.Mant&1 == 0
	}
	panic("fpy: invalid rounding direction")
}

// Float64 packs x into a float64. The value must fit the normal range of
// binary64: Float64 panics when the normalized exponent overflows it or
// falls into the subnormal range. A zero packs as a signed zero.
func (x RealFloat) Float64() float64 {
	if x.Mant == 0 {
		if x.Neg {
			return math.Copysign(0, -1)
		}
		return 0
	}

	e := x.E()
	if e > binary64.emax {
		panic("fpy: cannot pack float64: overflow")
	}
	if e < binary64.emin {
		panic("fpy: cannot pack float64: underflow")
	}

	p := x.Prec()
	if p > binary64.p {
		panic("fpy: cannot pack float64: precision loss")
	}
	mbits := x.Mant << (binary64.p - p) & binary64.mmask
	ebits := uint64(e - binary64.emin + 1)

	b := ebits<<binary64.m | mbits
	if x.Neg {
		b |= binary64.smask
	}
	return math.Float64frombits(b)
}

// GoString returns a debug representation of x as a (sign, exp, mant) triple.
func (x RealFloat) GoString() string {
	s := 0
	if x.Neg {
		s = 1
	}
	return fmt.Sprintf("{%d, %d, %d}", s, x.Exp, x.Mant)
}
