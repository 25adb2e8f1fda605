//go:build !amd64 && !arm64

package arch

// No control-register access on this architecture. The flag values mirror
// the arm64 layout so software kernels can report a uniform encoding.
const (
	ExceptInvalid   = 0x01
	ExceptDivZero   = 0x02
	ExceptOverflow  = 0x04
	ExceptUnderflow = 0x08
	ExceptInexact   = 0x10
	ExceptDenormal  = 0x80
)

// HasHardFMA is false: math.FMA may not honor any rounding control here.
var HasHardFMA = false

// Supported reports whether hardware rounding-mode windows are available.
func Supported() bool { return false }

func GetCSR() uint32 { return 0 }

func SetCSR(csr uint32) {}

func ClearExceptions() {}

func Exceptions() uint32 { return 0 }

func PrepareRTO() uint32 { return 0 }

func RTOStatus(old uint32) uint32 { return 0 }
