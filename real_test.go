package fpy

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// realDecimal converts a RealFloat to its exact decimal value. Every finite
// binary value mant*2^exp is a finite decimal since 2^-k = 5^k * 10^-k.
func realDecimal(x RealFloat) decimal.Decimal {
	mant := new(big.Int).SetUint64(x.Mant)
	var d decimal.Decimal
	if x.Exp >= 0 {
		d = decimal.NewFromBigInt(new(big.Int).Lsh(mant, uint(x.Exp)), 0)
	} else {
		k := int64(-x.Exp)
		mant.Mul(mant, new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil))
		d = decimal.NewFromBigInt(mant, int32(x.Exp))
	}
	if x.Neg {
		d = d.Neg()
	}
	return d
}

func TestRealFromFloat64(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x    float64
		neg  bool
		exp  int64
		mant uint64
	}{
		{0, false, -1074, 0},
		{math.Copysign(0, -1), true, -1074, 0},
		{1, false, -52, 1 << 52},
		{-1, true, -52, 1 << 52},
		{2, false, -51, 1 << 52},
		{0.5, false, -53, 1 << 52},
		{33, false, -47, 33 << 47},
		{1.5, false, -52, 3 << 51},
		{5e-324, false, -1074, 1}, // minimum subnormal, loaded as-is
		{math.MaxFloat64, false, 971, 1<<53 - 1},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r := RealFromFloat64(test.x)
			a.Equal(test.neg, r.Neg)
			a.Equal(test.exp, r.Exp)
			a.Equal(test.mant, r.Mant)
		})
	}
	a.Panics(func() { RealFromFloat64(math.NaN()) })
	a.Panics(func() { RealFromFloat64(math.Inf(1)) })
	a.Panics(func() { RealFromFloat64(math.Inf(-1)) })
}

func TestRealFromFloat32(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x    float32
		neg  bool
		exp  int64
		mant uint64
	}{
		{0, false, -149, 0},
		{1, false, -23, 1 << 23},
		{-2, true, -22, 1 << 23},
		{1.5, false, -23, 3 << 22},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			r := RealFromFloat32(test.x)
			a.Equal(test.neg, r.Neg)
			a.Equal(test.exp, r.Exp)
			a.Equal(test.mant, r.Mant)
		})
	}
	a.Panics(func() { RealFromFloat32(float32(math.NaN())) })
}

func TestRealDerived(t *testing.T) {
	a := assert.New(t)
	x := NewReal(false, -3, 9) // 9 * 2^-3 = 1.125
	a.Equal(uint(4), x.Prec())
	a.Equal(int64(0), x.E())
	a.Equal(int64(-4), x.N())
	a.False(x.IsZero())
	a.True(NewReal(true, 5, 0).IsZero())
	a.Equal("{0, -3, 9}", x.GoString())
}

func TestRealSplit(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		x  RealFloat
		n  int64
		hi RealFloat
		lo RealFloat
	}{
		// zero
		{NewReal(false, 0, 0), 3, NewReal(false, 4, 0), NewReal(false, 3, 0)},
		// all digits below the split
		{NewReal(false, -3, 9), 5, NewReal(false, 6, 0), NewReal(false, -3, 9)},
		// all digits above the split
		{NewReal(false, -3, 9), -4, NewReal(false, -3, 9), NewReal(false, -4, 0)},
		// split inside the significand
		{NewReal(false, -3, 9), -2, NewReal(false, -1, 2), NewReal(false, -3, 1)},
		{NewReal(true, -3, 15), -3, NewReal(true, -2, 7), NewReal(true, -3, 1)},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			hi, lo := test.x.Split(test.n)
			a.Equal(test.hi, hi)
			a.Equal(test.lo, lo)
		})
	}
}

func TestRealSplitReconstructs(t *testing.T) {
	a := assert.New(t)
	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 2000; i++ {
		x := NewReal(rnd.Intn(2) == 0, int64(rnd.Intn(64)-32), rnd.Uint64()>>uint(rnd.Intn(64)))
		n := int64(rnd.Intn(80) - 40)
		hi, lo := x.Split(n)
		sum := realDecimal(hi).Add(realDecimal(lo))
		a.True(sum.Equal(realDecimal(x)), "x=%#v n=%d hi=%#v lo=%#v", x, n, hi, lo)
		// lo holds only digits at or below n
		if !lo.IsZero() {
			a.True(lo.E() <= n)
		}
		// hi holds only digits above n
		if !hi.IsZero() {
			a.True(hi.Exp > n)
		}
	}
}

func TestRealRoundPrec(t *testing.T) {
	a := assert.New(t)
	all := []RoundingMode{
		ToNearestEven, ToNearestAway, ToPositiveInf,
		ToNegativeInf, ToZero, AwayFromZero, ToOdd, ToEven,
	}
	up := func(modes ...RoundingMode) map[RoundingMode]bool {
		m := make(map[RoundingMode]bool)
		for _, rm := range modes {
			m[rm] = true
		}
		return m
	}
	tests := []struct {
		exp  int64
		mant uint64
		// modes rounding 1 ULP away from zero; the rest round down
		up map[RoundingMode]bool
		// exactly representable
		exact bool
	}{
		{-3, 8, up(), true},
		{-3, 9, up(ToPositiveInf, AwayFromZero, ToOdd), false},
		{-3, 10, up(ToNearestAway, ToPositiveInf, AwayFromZero, ToOdd), false},
		{-3, 11, up(ToNearestEven, ToNearestAway, ToPositiveInf, AwayFromZero, ToOdd), false},
		{-3, 12, up(), true},
	}
	for i, test := range tests {
		for _, rm := range all {
			t.Run(fmt.Sprintf("%d/%v", i, rm), func(t *testing.T) {
				x := NewReal(false, test.exp, test.mant)
				got := x.RoundPrec(2, rm)
				down := NewReal(false, -1, test.mant>>2)
				if test.exact {
					a.Equal(down.Exp, got.Exp)
					a.Equal(down.Mant, got.Mant)
					a.False(got.Inexact)
					return
				}
				want := down
				if test.up[rm] {
					want = NewReal(false, -1, down.Mant+1)
				}
				a.Equal(want.Exp, got.Exp, "mode %v", rm)
				a.Equal(want.Mant, got.Mant, "mode %v", rm)
				a.True(got.Inexact)
			})
		}
	}
}

func TestRealRoundCarry(t *testing.T) {
	a := assert.New(t)
	// 15 * 2^-3 rounds up at precision 2 and carries into a power of two
	got := NewReal(false, -3, 15).RoundPrec(2, ToNearestEven)
	a.Equal(int64(0), got.Exp)
	a.Equal(uint64(2), got.Mant)
	a.True(got.Inexact)
}

func TestRealRoundMin(t *testing.T) {
	a := assert.New(t)
	// discard digits at or below position -1: 1.125 -> 1.0
	got := NewReal(false, -3, 9).RoundMin(-1, ToZero)
	a.Equal(uint64(1), got.Mant)
	a.Equal(int64(0), got.Exp)
	a.True(got.Inexact)
	// all digits lie above the cutoff: the value is returned exactly
	got = NewReal(false, -3, 15).RoundMin(-4, ToZero)
	a.Equal(uint64(15), got.Mant)
	a.False(got.Inexact)
}

func TestRealRoundPrecMin(t *testing.T) {
	a := assert.New(t)
	// the cutoff dominates the precision: IEEE-style subnormal rounding
	x := NewReal(false, -8, 9) // 9 * 2^-8
	got := x.RoundPrecMin(4, -6, ToNearestEven)
	// only the digit above the cutoff survives; the tail is below halfway
	a.Equal(int64(-5), got.Exp)
	a.Equal(uint64(1), got.Mant)
	a.True(got.Inexact)
}

func TestRealFloat64(t *testing.T) {
	a := assert.New(t)
	values := []float64{
		0, 1, -1, 0.5, 33, -33, 1.125, 4096,
		math.MaxFloat64, 0x1p-1022,
	}
	for i, x := range values {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(x, RealFromFloat64(x).Float64())
		})
	}
	// negative zero keeps its sign
	a.True(math.Signbit(RealFromFloat64(math.Copysign(0, -1)).Float64()))
	// overflow, underflow and precision loss are rejected
	a.Panics(func() { NewReal(false, 1024, 1).Float64() })
	a.Panics(func() { NewReal(false, -1080, 1).Float64() })
	a.Panics(func() { NewReal(false, 0, 1<<54|1).Float64() })
}

func TestRealRoundAgainstRounder(t *testing.T) {
	a := assert.New(t)
	modes := []RoundingMode{
		ToNearestEven, ToNearestAway, ToPositiveInf,
		ToNegativeInf, ToZero, AwayFromZero, ToOdd, ToEven,
	}
	rnd := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		x := math.Float64frombits(rnd.Uint64()&0x000fffffffffffff | uint64(rnd.Intn(2000)+24)<<52)
		if rnd.Intn(2) == 0 {
			x = -x
		}
		p := uint(rnd.Intn(52) + 1)
		rm := modes[rnd.Intn(len(modes))]
		want := RealFromFloat64(x).RoundPrec(p, rm).Float64()
		got := RoundFloat64(x, p, rm)
		a.Equal(want, got, "x=%x p=%d rm=%v", x, p, rm)
	}
}
