//go:build amd64

package arch

import "golang.org/x/sys/cpu"

// MXCSR layout: rounding control in bits 13-14, exception flags in bits 0-5.
const (
	ExceptInvalid   = 0x01
	ExceptDenormal  = 0x02
	ExceptDivZero   = 0x04
	ExceptOverflow  = 0x08
	ExceptUnderflow = 0x10
	ExceptInexact   = 0x20

	exceptMask = 0x3f
	rcMask     = 0x6000
	rcToZero   = 0x3 << 13
)

// HasHardFMA reports whether math.FMA compiles to a fused instruction that
// honors the MXCSR rounding control. Without FMA support the math package
// falls back to software that ignores the control register, so callers must
// use a software kernel instead.
var HasHardFMA = cpu.X86.HasFMA

// Supported reports whether hardware rounding-mode windows are available.
// SSE2 is part of the amd64 baseline.
func Supported() bool { return true }

// GetCSR returns the MXCSR register.
func GetCSR() uint32

// SetCSR writes the MXCSR register.
func SetCSR(csr uint32)

// ClearExceptions zeroes the exception flags.
func ClearExceptions() {
	SetCSR(GetCSR() &^ exceptMask)
}

// Exceptions returns the currently raised exception flags.
func Exceptions() uint32 {
	return GetCSR() & exceptMask
}

// PrepareRTO sets the rounding control to truncate-toward-zero, clears the
// exception flags, and returns the previous rounding-control bits.
func PrepareRTO() uint32 {
	csr := GetCSR()
	old := csr & rcMask
	SetCSR(csr&^(rcMask|exceptMask) | rcToZero)
	return old
}

// RTOStatus returns the exception flags raised since PrepareRTO, restores
// the saved rounding-control bits, and clears the flags so that no state
// leaks out of the window.
func RTOStatus(old uint32) uint32 {
	csr := GetCSR()
	flags := csr & exceptMask
	SetCSR(csr&^(rcMask|exceptMask) | old)
	return flags
}
