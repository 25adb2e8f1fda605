// Package engine computes double-precision primitives under round-to-odd.
//
// Each operation executes once on the host FPU with the rounding mode forced
// to truncate-toward-zero, then forces the low significand bit of the result
// when the hardware reports inexactness. The resulting 53-bit round-to-odd
// value can be re-rounded to any precision at most two bits narrower under
// any rounding mode without double-rounding error.
//
// The control-register window is opened and closed inside a single function
// body per primitive, with the goroutine pinned to its OS thread for the
// duration: the register is thread-local and the scheduler may otherwise
// migrate the goroutine mid-window. On architectures without register
// access, portable software kernels compute the same truncated result and
// sticky flag.
//
// The engine is not for the denormal or overflow regimes: an operation
// whose result overflows, or falls into the subnormal range inexactly,
// panics. Exact subnormal results are returned as they are.
package engine

import (
	"math"

	"github.com/bksaiki/fpy/internal/arch"
)

const debugEngine = true

// maxPrec is the precision a double-precision primitive can guarantee.
const maxPrec = 53

var useHardware = arch.Supported()

// Hardware reports whether results are produced by hardware rounding-mode
// windows rather than the software kernels.
func Hardware() bool { return useHardware }

func checkPrec(name string, p uint) {
	if p > maxPrec {
		panic("fpy/engine: " + name + ": requested precision exceeds double precision")
	}
}

// finalize validates the flag snapshot of a primitive and synthesizes
// round-to-odd by forcing the low significand bit when it was inexact.
func finalize(name string, r float64, flags uint32) float64 {
	if flags&(arch.ExceptOverflow|arch.ExceptUnderflow) != 0 {
		panic("fpy/engine: " + name + ": result left the normal range")
	}
	if flags&arch.ExceptInexact != 0 {
		r = math.Float64frombits(math.Float64bits(r) | 1)
	}
	return r
}

// Add computes x + y using round-to-odd arithmetic, keeping at least p bits
// of the exact sum. It panics if p > 53 or if the sum overflows or
// underflows.
func Add(x, y float64, p uint) float64 {
	checkPrec("add", p)
	var r float64
	var flags uint32
	if useHardware {
		r, flags = hardAdd(x, y)
	} else {
		r, flags = softAdd(x, y)
	}
	return finalize("add", r, flags)
}

// Sub computes x - y using round-to-odd arithmetic. It panics if p > 53 or
// if the difference overflows or underflows.
func Sub(x, y float64, p uint) float64 {
	checkPrec("sub", p)
	var r float64
	var flags uint32
	if useHardware {
		r, flags = hardSub(x, y)
	} else {
		r, flags = softSub(x, y)
	}
	return finalize("sub", r, flags)
}

// Mul computes x * y using round-to-odd arithmetic. It panics if p > 53 or
// if the product overflows or underflows.
func Mul(x, y float64, p uint) float64 {
	checkPrec("mul", p)
	var r float64
	var flags uint32
	if useHardware {
		r, flags = hardMul(x, y)
	} else {
		r, flags = softMul(x, y)
	}
	return finalize("mul", r, flags)
}

// Div computes x / y using round-to-odd arithmetic. It panics if p > 53 or
// if the quotient leaves the normal range of float64.
func Div(x, y float64, p uint) float64 {
	checkPrec("div", p)
	var r float64
	var flags uint32
	if useHardware {
		r, flags = hardDiv(x, y)
	} else {
		r, flags = softDiv(x, y)
	}
	return finalize("div", r, flags)
}

// Sqrt computes the square root of x using round-to-odd arithmetic. It
// panics if p > 53.
func Sqrt(x float64, p uint) float64 {
	checkPrec("sqrt", p)
	var r float64
	var flags uint32
	if useHardware {
		r, flags = hardSqrt(x)
	} else {
		r, flags = softSqrt(x)
	}
	return finalize("sqrt", r, flags)
}

// FMA computes x*y + z using round-to-odd arithmetic with a single
// truncation of the exact result. It panics if p > 53 or if the result
// overflows or underflows.
func FMA(x, y, z float64, p uint) float64 {
	checkPrec("fma", p)
	var r float64
	var flags uint32
	if useHardware && arch.HasHardFMA {
		r, flags = hardFMA(x, y, z)
	} else {
		r, flags = softFMA(x, y, z)
	}
	return finalize("fma", r, flags)
}

// AddExact computes x + y assuming the sum is exactly representable. It
// executes without a rounding-mode window; when debug checks are enabled it
// panics if the sum was inexact or overflowed.
func AddExact(x, y float64, p uint) float64 {
	checkPrec("add_exact", p)
	if debugEngine {
		if _, flags := softAdd(x, y); flags&(arch.ExceptInexact|arch.ExceptOverflow) != 0 {
			panic("fpy/engine: add_exact: addition was not exact")
		}
	}
	return x + y
}

// SubExact computes x - y assuming the difference is exactly representable.
func SubExact(x, y float64, p uint) float64 {
	checkPrec("sub_exact", p)
	if debugEngine {
		if _, flags := softSub(x, y); flags&(arch.ExceptInexact|arch.ExceptOverflow) != 0 {
			panic("fpy/engine: sub_exact: subtraction was not exact")
		}
	}
	return x - y
}

// MulExact computes x * y assuming the product is exactly representable.
func MulExact(x, y float64, p uint) float64 {
	checkPrec("mul_exact", p)
	if debugEngine {
		if _, flags := softMul(x, y); flags&(arch.ExceptInexact|arch.ExceptOverflow) != 0 {
			panic("fpy/engine: mul_exact: multiplication was not exact")
		}
	}
	return x * y
}
