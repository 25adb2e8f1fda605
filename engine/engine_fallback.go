//go:build !amd64 && !arm64

package engine

// Stubs for architectures without control-register access. Supported is
// false there, so these are never reached.

func hardAdd(x, y float64) (float64, uint32) { panic("fpy/engine: no hardware path") }

func hardSub(x, y float64) (float64, uint32) { panic("fpy/engine: no hardware path") }

func hardMul(x, y float64) (float64, uint32) { panic("fpy/engine: no hardware path") }

func hardDiv(x, y float64) (float64, uint32) { panic("fpy/engine: no hardware path") }

func hardSqrt(x float64) (float64, uint32) { panic("fpy/engine: no hardware path") }

func hardFMA(x, y, z float64) (float64, uint32) { panic("fpy/engine: no hardware path") }
