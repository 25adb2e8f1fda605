// Package arch provides access to the host floating-point control and
// status registers: reading and writing the register, clearing exception
// flags, and opening a round-toward-zero window for round-to-odd synthesis.
//
// The register accessors are tiny NOSPLIT leaf functions so that no
// scheduling point falls between a register write and the arithmetic it
// governs. The control register is per OS thread on every supported
// architecture; callers must pin the goroutine to its thread for the
// duration of a PrepareRTO/RTOStatus window.
//
// On architectures without register access, Supported reports false and the
// accessors are no-ops; callers use the software kernels instead.
package arch
