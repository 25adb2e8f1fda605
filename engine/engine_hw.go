//go:build amd64 || arm64

package engine

import (
	"runtime"

	"github.com/bksaiki/fpy/internal/arch"
)

// The primitives are implemented in assembly so the compiler cannot hoist
// the arithmetic out of the control-register window.

func opAdd(x, y float64) float64
func opSub(x, y float64) float64
func opMul(x, y float64) float64
func opDiv(x, y float64) float64
func opSqrt(x float64) float64
func opFMA(x, y, z float64) float64

func hardAdd(x, y float64) (float64, uint32) {
	runtime.LockOSThread()
	old := arch.PrepareRTO()
	r := opAdd(x, y)
	flags := arch.RTOStatus(old)
	runtime.UnlockOSThread()
	return r, flags
}

func hardSub(x, y float64) (float64, uint32) {
	runtime.LockOSThread()
	old := arch.PrepareRTO()
	r := opSub(x, y)
	flags := arch.RTOStatus(old)
	runtime.UnlockOSThread()
	return r, flags
}

func hardMul(x, y float64) (float64, uint32) {
	runtime.LockOSThread()
	old := arch.PrepareRTO()
	r := opMul(x, y)
	flags := arch.RTOStatus(old)
	runtime.UnlockOSThread()
	return r, flags
}

func hardDiv(x, y float64) (float64, uint32) {
	runtime.LockOSThread()
	old := arch.PrepareRTO()
	r := opDiv(x, y)
	flags := arch.RTOStatus(old)
	runtime.UnlockOSThread()
	return r, flags
}

func hardSqrt(x float64) (float64, uint32) {
	runtime.LockOSThread()
	old := arch.PrepareRTO()
	r := opSqrt(x)
	flags := arch.RTOStatus(old)
	runtime.UnlockOSThread()
	return r, flags
}

func hardFMA(x, y, z float64) (float64, uint32) {
	runtime.LockOSThread()
	old := arch.PrepareRTO()
	r := opFMA(x, y, z)
	flags := arch.RTOStatus(old)
	runtime.UnlockOSThread()
	return r, flags
}
