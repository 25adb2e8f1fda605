package fpy

import (
	"math"

	"github.com/bksaiki/fpy/internal/mathutil"
)

// RoundFloat64 rounds x to at most p bits of significand precision under rm.
// The result is the float64 nearest to the true rounding at that precision.
// For p >= 53 the input is returned unchanged, as are non-finite inputs and
// zeros. Correct for any finite x; when x is a round-to-odd intermediate
// carrying at least p+2 bits, the result equals the single rounding of the
// exact value.
func RoundFloat64(x float64, p uint, rm RoundingMode) float64 {
	return roundFloat64(x, p, 0, false, rm)
}

// RoundFloat64Min is like RoundFloat64 with a minimum unbiased exponent n:
// no digit at or below position n survives, so small results lose precision
// gradually the way IEEE-754 subnormals do.
func RoundFloat64Min(x float64, p uint, n int64, rm RoundingMode) float64 {
	return roundFloat64(x, p, n, true, rm)
}

func roundFloat64(x float64, p uint, n int64, haveN bool, rm RoundingMode) float64 {
	if rm > ToEven {
		panic("fpy: invalid rounding mode")
	}
	if p >= binary64.p {
		return x
	}
	if math.IsInf(x, 0) || math.IsNaN(x) || x == 0 {
		return x
	}

	b := math.Float64bits(x)
	neg := b&binary64.smask != 0
	ebits := (b & binary64.emask) >> binary64.m
	mbits := b & binary64.mmask

	// decode into a full-width significand and its normalized exponent
	var e int64
	var c uint64
	if ebits == 0 {
		// subnormal
		lz := binary64.p - uint(mathutil.BinaryDigits(mbits))
		e = binary64.emin - int64(lz)
		c = mbits << lz
	} else {
		e = int64(ebits) - binary64.bias
		c = binary64.implicit1 | mbits
	}

	// precision may be limited further by subnormalization
	overshift := false
	if haveN {
		nx := e - int64(p)
		offset := n - nx
		if offset > 0 {
			// overshift means every significant digit is discarded;
			// e is pinned to n so an increment lands on the minimum
			// subnormal rather than below it
			overshift = offset > int64(p)
			if overshift {
				p = 0
				e = n
			} else {
				p -= uint(offset)
			}
		}
	}

	// split off the discarded bits
	pLost := binary64.p - p
	mask := mathutil.Bitmask(pLost)
	cLost := c & mask
	if cLost == 0 {
		return x
	}
	c &^= mask

	// value of the LSB at precision p
	one := uint64(1) << pLost

	var increment bool
	if rm.IsNearest() {
		// -1: below halfway, 0: exactly halfway, 1: above halfway
		halfway := uint64(1) << (pLost - 1)
		var cmp int
		switch {
		case cLost > halfway:
			cmp = 1
		case cLost < halfway:
			cmp = -1
		}
		if overshift {
			// overshift implies below halfway
			cmp = -1
		}
		if cmp == 0 {
			switch rm {
			case ToZero:
				increment = false
			case AwayFromZero, ToNearestAway:
				increment = true
			case ToPositiveInf:
				increment = !neg
			case ToNegativeInf:
				increment = neg
			case ToNearestEven, ToEven:
				increment = c&one != 0
			case ToOdd:
				increment = c&one == 0
			default:
				panic("fpy: invalid rounding mode")
			}
		} else {
			increment = cmp > 0
		}
	} else {
		switch rm {
		case ToZero:
			increment = false
		case AwayFromZero:
			increment = true
		case ToPositiveInf:
			increment = !neg
		case ToNegativeInf:
			increment = neg
		case ToEven:
			increment = c&one != 0
		case ToOdd:
			increment = c&one == 0
		default:
			panic("fpy: invalid rounding mode")
		}
	}

	if increment {
		c += one
	}
	// mantissa carry
	if c >= binary64.implicit1<<1 {
		c >>= 1
		e++
	}

	var ebits2, mbits2 uint64
	switch {
	case c == 0:
		// subnormalization underflowed to zero
	case e < binary64.emin:
		// subnormal result
		mbits2 = c >> uint(binary64.emin-e)
	default:
		ebits2 = uint64(e + binary64.bias)
		mbits2 = c & binary64.mmask
	}

	b2 := ebits2<<binary64.m | mbits2
	if neg {
		b2 |= binary64.smask
	}
	return math.Float64frombits(b2)
}
