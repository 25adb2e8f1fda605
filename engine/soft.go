package engine

import (
	"math"
	"math/bits"

	"github.com/bksaiki/fpy/internal/arch"
)

// Software kernels: truncate-toward-zero with sticky detection, used where
// no control-register window exists and to cross-check the hardware path.
// The structure follows the Go runtime's softfloat64 and the math package's
// portable FMA: unpack into normalized integer significands, operate with
// guard bits in 64 or 128 bits, collapse discarded bits into a sticky flag.
//
// Results that overflow, or that fall into the subnormal range inexactly,
// report overflow or underflow through the same flag encoding as the
// hardware path; exact subnormal results raise no flag. NaN and infinity
// operands fall through to the native operation.

const (
	softMantBits = 52
	softBias     = 1023
	softEmin     = -1022
	softEmax     = 1023
	softImplicit = uint64(1) << softMantBits
)

func nonfinite(x float64) bool {
	return math.IsNaN(x) || math.IsInf(x, 0)
}

// unpack decodes a finite nonzero float64 into a 53-bit significand with
// its top bit at position 52 and the normalized unbiased exponent.
// Subnormals are normalized.
func unpack(x float64) (neg bool, e int, m uint64) {
	b := math.Float64bits(x)
	neg = b>>63 != 0
	ebits := int(b >> softMantBits & 0x7ff)
	mbits := b & (softImplicit - 1)
	if ebits == 0 {
		lz := 53 - bits.Len64(mbits)
		return neg, softEmin - lz, mbits << uint(lz)
	}
	return neg, ebits - softBias, softImplicit | mbits
}

// packRTZ encodes (-1)^neg * m * 2^exp truncated toward zero to 53 bits of
// precision; sticky carries bits the caller already discarded. The returned
// flags mirror the hardware exception flags.
func packRTZ(neg bool, m uint64, exp int, sticky bool) (float64, uint32) {
	if m == 0 {
		if neg {
			return math.Copysign(0, -1), 0
		}
		return 0, 0
	}

	if w := bits.Len64(m); w > 53 {
		drop := uint(w - 53)
		if m&(1<<drop-1) != 0 {
			sticky = true
		}
		m >>= drop
		exp += int(drop)
	}
	e := exp + bits.Len64(m) - 1

	if e > softEmax {
		return 0, arch.ExceptOverflow | arch.ExceptInexact
	}
	if e < softEmin {
		// subnormal: representable only when no digit falls below the
		// minimum position
		drop := uint(softEmin - e)
		var lost uint64
		if drop >= 64 {
			lost, m = m, 0
		} else {
			lost = m & (1<<drop - 1)
			m >>= drop
			exp += int(drop)
		}
		if lost != 0 || sticky {
			return 0, arch.ExceptUnderflow | arch.ExceptInexact
		}
		b := m << uint(exp-(softEmin-softMantBits))
		if neg {
			b |= 1 << 63
		}
		return math.Float64frombits(b), 0
	}

	m <<= uint(53 - bits.Len64(m))
	var flags uint32
	if sticky {
		flags = arch.ExceptInexact
	}
	b := uint64(e+softBias)<<softMantBits | m&(softImplicit-1)
	if neg {
		b |= 1 << 63
	}
	return math.Float64frombits(b), flags
}

func softAdd(x, y float64) (float64, uint32) {
	if nonfinite(x) || nonfinite(y) || x == 0 || y == 0 {
		return x + y, 0
	}

	xn, xe, xm := unpack(x)
	yn, ye, ym := unpack(y)
	if xe < ye {
		xn, yn = yn, xn
		xe, ye = ye, xe
		xm, ym = ym, xm
	}

	// integer-significand exponents; give the larger operand guard bits
	const guard = 9
	xI := xe - 52 - guard
	yI := ye - 52
	xm <<= guard

	// align the smaller operand, collapsing shifted-out bits into sticky
	var sticky bool
	if d := xI - yI; d > 0 {
		if d >= 64 {
			sticky = ym != 0
			ym = 0
		} else {
			sticky = ym&(1<<uint(d)-1) != 0
			ym >>= uint(d)
		}
	} else {
		ym <<= uint(-d)
	}

	var m uint64
	var neg bool
	if xn == yn {
		m = xm + ym
		neg = xn
	} else {
		if xm >= ym {
			m = xm - ym
			neg = xn
		} else {
			m = ym - xm
			neg = yn
		}
		if sticky {
			// borrow the shifted-out tail so truncation lands below
			// the exact difference
			m--
		}
	}
	if m == 0 && !sticky {
		// exact cancellation is +0 toward zero
		return 0, 0
	}
	return packRTZ(neg, m, xI, sticky)
}

func softSub(x, y float64) (float64, uint32) {
	return softAdd(x, -y)
}

func softMul(x, y float64) (float64, uint32) {
	if nonfinite(x) || nonfinite(y) || x == 0 || y == 0 {
		return x * y, 0
	}

	xn, xe, xm := unpack(x)
	yn, ye, ym := unpack(y)
	neg := xn != yn
	exp := (xe - 52) + (ye - 52)

	hi, lo := bits.Mul64(xm, ym)
	if hi == 0 {
		return packRTZ(neg, lo, exp, false)
	}
	s := uint(bits.Len64(hi))
	m := hi<<(64-s) | lo>>s
	sticky := lo<<(64-s) != 0
	return packRTZ(neg, m, exp+int(s), sticky)
}

func softDiv(x, y float64) (float64, uint32) {
	if nonfinite(x) || nonfinite(y) || x == 0 || y == 0 {
		return x / y, 0
	}

	xn, xe, xm := unpack(x)
	yn, ye, ym := unpack(y)
	neg := xn != yn

	// scale the dividend so the quotient has at least 62 bits
	q, r := bits.Div64(xm>>1, xm<<63, ym)
	return packRTZ(neg, q, xe-ye-63, r != 0)
}

func softSqrt(x float64) (float64, uint32) {
	if nonfinite(x) || x == 0 || x < 0 {
		return math.Sqrt(x), 0
	}

	_, e, m := unpack(x)
	exp := e - 52

	// even the exponent while pushing the significand to 107 or 108 bits,
	// giving a 54-bit root with a remainder for sticky
	shift := 54
	if (exp-shift)&1 != 0 {
		shift = 55
	}
	hi, lo := m>>uint(64-shift), m<<uint(shift)
	root, rem := sqrt128(hi, lo)
	return packRTZ(false, root, (exp-shift)/2, rem)
}

// sqrt128 returns the integer square root of hi<<64 | lo and whether a
// non-zero remainder was left. Restoring digit-by-digit method.
func sqrt128(hi, lo uint64) (root uint64, inexact bool) {
	var resHi, resLo uint64
	bitHi := uint64(1) << 62

	// align the probe bit with the operand
	var bitLo uint64
	for bitHi > hi || (bitHi == hi && bitLo > lo) {
		bitLo = bitHi<<62 | bitLo>>2
		bitHi >>= 2
		if bitHi == 0 && bitLo == 0 {
			break
		}
	}

	for bitHi != 0 || bitLo != 0 {
		tLo, carry := bits.Add64(resLo, bitLo, 0)
		tHi := resHi + bitHi + carry
		if tHi < hi || (tHi == hi && tLo <= lo) {
			lo, carry = bits.Sub64(lo, tLo, 0)
			hi = hi - tHi - carry
			resLo = resLo>>1 | resHi<<63
			resHi >>= 1
			resLo, carry = bits.Add64(resLo, bitLo, 0)
			resHi += bitHi + carry
		} else {
			resLo = resLo>>1 | resHi<<63
			resHi >>= 1
		}
		bitLo = bitHi<<62 | bitLo>>2
		bitHi >>= 2
	}
	return resLo, hi != 0 || lo != 0
}

func softFMA(x, y, z float64) (float64, uint32) {
	if nonfinite(x) || nonfinite(y) || nonfinite(z) {
		return math.FMA(x, y, z), 0
	}
	if x == 0 || y == 0 {
		return softAdd(x*y, z)
	}
	if z == 0 {
		return softMul(x, y)
	}

	xn, xe, xm := unpack(x)
	yn, ye, ym := unpack(y)
	zn, ze, zm := unpack(z)

	pn := xn != yn
	phi, plo := bits.Mul64(xm, ym) // 105 or 106 bits
	base := (xe - 52) + (ye - 52)
	zI := ze - 52

	// align the addend with the product in 128 bits; bits shifted below
	// the window survive as a sticky marker in the lowest bit
	var zhi, zlo uint64
	d := zI - base
	switch {
	case d > 74:
		// addend far above the product: rebase at the addend and push
		// the product down
		zhi, zlo = zm, 0
		base = zI - 64
		srsh := uint(d - 64)
		switch {
		case srsh >= 128:
			phi, plo = 0, 1
		case srsh >= 64:
			t := phi >> (srsh - 64)
			if plo != 0 || phi<<(128-srsh) != 0 {
				t |= 1
			}
			phi, plo = 0, t
		default:
			t := phi<<(64-srsh) | plo>>srsh
			if plo<<(64-srsh) != 0 {
				t |= 1
			}
			phi, plo = phi>>srsh, t
		}
	case d >= 64:
		zhi, zlo = zm<<uint(d-64), 0
	case d > 0:
		zhi, zlo = zm>>uint(64-d), zm<<uint(d)
	case d == 0:
		zhi, zlo = 0, zm
	default:
		// addend below the product
		srsh := uint(-d)
		switch {
		case srsh >= 64:
			zhi, zlo = 0, 1
		default:
			zlo = zm >> srsh
			if zm<<(64-srsh) != 0 {
				zlo |= 1
			}
		}
	}

	var neg bool
	var hi, lo uint64
	if pn == zn {
		var carry uint64
		lo, carry = bits.Add64(plo, zlo, 0)
		hi = phi + zhi + carry
		neg = pn
	} else {
		if phi > zhi || (phi == zhi && plo >= zlo) {
			var borrow uint64
			lo, borrow = bits.Sub64(plo, zlo, 0)
			hi = phi - zhi - borrow
			neg = pn
		} else {
			var borrow uint64
			lo, borrow = bits.Sub64(zlo, plo, 0)
			hi = zhi - phi - borrow
			neg = zn
		}
	}

	if hi == 0 && lo == 0 {
		// exact cancellation is +0 toward zero
		return 0, 0
	}
	if hi == 0 {
		return packRTZ(neg, lo, base, false)
	}
	s := uint(bits.Len64(hi))
	m := hi<<(64-s) | lo>>s
	if lo<<(64-s) != 0 {
		m |= 1
	}
	return packRTZ(neg, m, base+int(s), false)
}
