// Package fpy implements correctly rounded arithmetic over IEEE-754 double
// precision values at reduced precision.
//
// An operation computes its result as if in unbounded precision and then
// rounds once to a target format described by a Context: a significand
// precision, an optional minimum exponent with IEEE-style subnormals, and an
// optional largest finite value with an overflow-to-infinity policy. Eight
// rounding modes are supported, including the non-standard round-to-odd and
// round-to-even directed modes.
//
// Binary and ternary operations run on the host FPU under a round-to-odd
// window (see the engine package) and are then re-rounded by the context;
// the composition is exact because a round-to-odd intermediate two bits
// wider than the target re-rounds without double-rounding error. Contexts
// therefore require RoundPrec() <= 51 for engine-backed operations, and
// <= 53 for rounding-only paths.
package fpy

import (
	"math"

	"github.com/bksaiki/fpy/engine"
)

// Round rounds x according to ctx. NaN and infinities pass through
// unchanged.
func Round(x float64, ctx Context) float64 {
	return ctx.Round(x)
}

// Neg computes -x rounded by ctx. Negation itself is exact; NaN passes
// through unchanged.
func Neg(x float64, ctx Context) float64 {
	return ctx.Round(-x)
}

// Abs computes |x| rounded by ctx. Taking the absolute value is exact.
func Abs(x float64, ctx Context) float64 {
	return ctx.Round(math.Abs(x))
}

// Add computes x + y rounded by ctx. ctx.RoundPrec() must be at most 51.
func Add(x, y float64, ctx Context) float64 {
	return ctx.Round(engine.Add(x, y, ctx.RoundPrec()+2))
}

// Sub computes x - y rounded by ctx. ctx.RoundPrec() must be at most 51.
func Sub(x, y float64, ctx Context) float64 {
	return ctx.Round(engine.Sub(x, y, ctx.RoundPrec()+2))
}

// Mul computes x * y rounded by ctx. ctx.RoundPrec() must be at most 51.
func Mul(x, y float64, ctx Context) float64 {
	return ctx.Round(engine.Mul(x, y, ctx.RoundPrec()+2))
}

// Div computes x / y rounded by ctx. ctx.RoundPrec() must be at most 51.
func Div(x, y float64, ctx Context) float64 {
	return ctx.Round(engine.Div(x, y, ctx.RoundPrec()+2))
}

// Sqrt computes the square root of x rounded by ctx. ctx.RoundPrec() must be
// at most 51.
func Sqrt(x float64, ctx Context) float64 {
	return ctx.Round(engine.Sqrt(x, ctx.RoundPrec()+2))
}

// FMA computes x*y + z with a single rounding by ctx. ctx.RoundPrec() must
// be at most 51.
func FMA(x, y, z float64, ctx Context) float64 {
	return ctx.Round(engine.FMA(x, y, z, ctx.RoundPrec()+2))
}

// AddExact computes x + y rounded by ctx, assuming the sum is exactly
// representable as a float64. It selects the exact engine, which skips the
// rounding-mode window.
func AddExact(x, y float64, ctx Context) float64 {
	return ctx.Round(engine.AddExact(x, y, ctx.RoundPrec()+2))
}

// SubExact computes x - y rounded by ctx, assuming the difference is exactly
// representable as a float64.
func SubExact(x, y float64, ctx Context) float64 {
	return ctx.Round(engine.SubExact(x, y, ctx.RoundPrec()+2))
}

// MulExact computes x * y rounded by ctx, assuming the product is exactly
// representable as a float64.
func MulExact(x, y float64, ctx Context) float64 {
	return ctx.Round(engine.MulExact(x, y, ctx.RoundPrec()+2))
}
