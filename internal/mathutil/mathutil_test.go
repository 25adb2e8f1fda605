package mathutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryDigits(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		v uint64
		d int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{1 << 52, 53},
		{math.MaxUint64, 64},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			a.Equal(test.d, BinaryDigits(test.v))
		})
	}
}

func TestBitmask(t *testing.T) {
	a := assert.New(t)
	a.Equal(uint64(0), Bitmask(0))
	a.Equal(uint64(1), Bitmask(1))
	a.Equal(uint64(0x7f), Bitmask(7))
	a.Equal(uint64(1)<<53-1, Bitmask(53))
	a.Equal(^uint64(0), Bitmask(64))
	a.Equal(^uint64(0), Bitmask(100))
}

func TestAbsInt64(t *testing.T) {
	a := assert.New(t)
	a.Equal(int64(0), AbsInt64(0))
	a.Equal(int64(5), AbsInt64(5))
	a.Equal(int64(5), AbsInt64(-5))
	a.Equal(int64(math.MaxInt64), AbsInt64(math.MinInt64+1))
}
