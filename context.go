package fpy

import "math"

// Context is a rounding context: a rounding operation from real numbers to a
// floating-point representation.
type Context interface {
	// RoundPrec returns the minimum round-to-odd precision required to
	// drive Round without double-rounding error.
	RoundPrec() uint
	// Round rounds x according to the context.
	Round(x float64) float64
}

// PrecContext rounds to a fixed significand precision with an unbounded
// exponent range.
type PrecContext struct {
	prec uint
	mode RoundingMode
}

// PrecisionOnly returns a context with significand precision p and rounding
// mode rm. It panics if p is zero.
func PrecisionOnly(p uint, rm RoundingMode) PrecContext {
	if p == 0 {
		panic("fpy: context precision must be positive")
	}
	return PrecContext{prec: p, mode: rm}
}

// Prec returns the significand precision of the context.
func (c PrecContext) Prec() uint { return c.prec }

// Mode returns the rounding mode of the context.
func (c PrecContext) Mode() RoundingMode { return c.mode }

func (c PrecContext) RoundPrec() uint { return c.prec }

func (c PrecContext) Round(x float64) float64 {
	return RoundFloat64(x, c.prec, c.mode)
}

// SubnormalContext rounds to a fixed significand precision with a minimum
// unbiased exponent; below it results lose precision gradually like IEEE-754
// subnormals.
type SubnormalContext struct {
	prec uint
	emin int64
	mode RoundingMode
}

// PrecisionSubnormal returns a context with significand precision p, minimum
// unbiased exponent emin, and rounding mode rm. It panics if p is zero or
// emin exceeds the binary64 maximum exponent.
func PrecisionSubnormal(p uint, emin int64, rm RoundingMode) SubnormalContext {
	if p == 0 {
		panic("fpy: context precision must be positive")
	}
	if emin > binary64.emax {
		panic("fpy: context emin out of range")
	}
	return SubnormalContext{prec: p, emin: emin, mode: rm}
}

// Prec returns the significand precision of the context.
func (c SubnormalContext) Prec() uint { return c.prec }

// Mode returns the rounding mode of the context.
func (c SubnormalContext) Mode() RoundingMode { return c.mode }

// Emin returns the minimum unbiased exponent of the context.
func (c SubnormalContext) Emin() int64 { return c.emin }

// N returns the position of the first digit the context cannot represent,
// one below the minimum subnormal digit position emin - prec + 1.
func (c SubnormalContext) N() int64 {
	return c.emin - int64(c.prec)
}

func (c SubnormalContext) RoundPrec() uint { return c.prec }

func (c SubnormalContext) Round(x float64) float64 {
	return RoundFloat64Min(x, c.prec, c.N(), c.mode)
}

// BoundedContext is a SubnormalContext with a largest finite value. Results
// whose magnitude exceeds it saturate at the maximum value or round to
// infinity, depending on the rounding direction and the parity of the
// maximum value's last digit.
type BoundedContext struct {
	sub       SubnormalContext
	maxval    float64
	maxvalOdd bool
}

// Bounded returns a context with significand precision p, minimum unbiased
// exponent emin, rounding mode rm, and largest finite value maxval. maxval
// must be finite and exactly representable under (p, emin); Bounded panics
// otherwise.
func Bounded(p uint, emin int64, rm RoundingMode, maxval float64) BoundedContext {
	sub := PrecisionSubnormal(p, emin, rm)
	if math.IsInf(maxval, 0) || math.IsNaN(maxval) {
		panic("fpy: maxval must be finite")
	}
	if sub.Round(maxval) != maxval {
		panic("fpy: maxval not representable in this context")
	}

	// parity of maxval's significand at precision p
	var odd bool
	if pos := int64(binary64.m) - int64(p) + 1; pos >= 0 {
		odd = math.Float64bits(maxval)>>uint(pos)&1 != 0
	}
	return BoundedContext{sub: sub, maxval: maxval, maxvalOdd: odd}
}

// Prec returns the significand precision of the context.
func (c BoundedContext) Prec() uint { return c.sub.prec }

// Mode returns the rounding mode of the context.
func (c BoundedContext) Mode() RoundingMode { return c.sub.mode }

// Emin returns the minimum unbiased exponent of the context.
func (c BoundedContext) Emin() int64 { return c.sub.emin }

// MaxVal returns the largest finite value of the context.
func (c BoundedContext) MaxVal() float64 { return c.maxval }

func (c BoundedContext) RoundPrec() uint { return c.sub.prec }

func (c BoundedContext) Round(x float64) float64 {
	x = c.sub.Round(x)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}
	if math.Abs(x) > c.maxval {
		if overflowToInf(c.sub.mode, math.Signbit(x), c.maxvalOdd) {
			return math.Copysign(math.Inf(1), x)
		}
		return math.Copysign(c.maxval, x)
	}
	return x
}

// overflowToInf reports whether an overflowing result rounds to infinity
// rather than saturating at the maximum value.
func overflowToInf(rm RoundingMode, neg, maxvalOdd bool) bool {
	switch rm.Direction(neg) {
	case DirToZero:
		return false
	case DirAwayZero:
		return true
	case DirToEven:
		// round to infinity if maxval is odd
		return maxvalOdd
	case DirToOdd:
		// round to infinity if maxval is even
		return !maxvalOdd
	}
	panic("fpy: invalid rounding direction")
}
