//go:build arm64

package arch

import "golang.org/x/sys/cpu"

// FPCR holds the rounding mode in bits 22-23; FPSR holds the cumulative
// exception flags.
const (
	ExceptInvalid   = 0x01
	ExceptDivZero   = 0x02
	ExceptOverflow  = 0x04
	ExceptUnderflow = 0x08
	ExceptInexact   = 0x10
	ExceptDenormal  = 0x80

	exceptMask = 0x9f
	rmMask     = 0xc00000
	rmToZero   = 0x3 << 22
)

// HasHardFMA reports whether math.FMA compiles to a fused instruction that
// honors the FPCR rounding mode. FMADD is part of the arm64 baseline.
var HasHardFMA = true

// Supported reports whether hardware rounding-mode windows are available.
func Supported() bool { return cpu.ARM64.HasFP }

func getFPCR() uint32
func setFPCR(v uint32)
func getFPSR() uint32
func setFPSR(v uint32)

// GetCSR returns the floating-point control register.
func GetCSR() uint32 { return getFPCR() }

// SetCSR writes the floating-point control register.
func SetCSR(csr uint32) { setFPCR(csr) }

// ClearExceptions zeroes the exception flags.
func ClearExceptions() { setFPSR(0) }

// Exceptions returns the currently raised exception flags.
func Exceptions() uint32 {
	return getFPSR() & exceptMask
}

// PrepareRTO sets the rounding mode to truncate-toward-zero, clears the
// exception flags, and returns the previous rounding-mode bits.
func PrepareRTO() uint32 {
	fpcr := getFPCR()
	old := fpcr & rmMask
	setFPCR(fpcr&^rmMask | rmToZero)
	setFPSR(0)
	return old
}

// RTOStatus returns the exception flags raised since PrepareRTO, restores
// the saved rounding-mode bits, and clears the flags so that no state leaks
// out of the window.
func RTOStatus(old uint32) uint32 {
	flags := getFPSR() & exceptMask
	setFPCR(getFPCR()&^rmMask | old)
	setFPSR(0)
	return flags
}
