// Package safeconv provides integer conversion guards that panic on
// overflow. Use them only where an overflow is logically impossible and
// would therefore indicate a bug.
package safeconv

import "math"

// MaxInt is the maximum value for the int type (platform-dependent).
const MaxInt = int(^uint(0) >> 1)

// MustIntToUint32 converts int to uint32, panicking on bounds violation.
func MustIntToUint32(v int) uint32 {
	if v < 0 || v > int(uint32(math.MaxUint32)) {
		panic("safeconv: int to uint32 out of bounds")
	}

	return uint32(v)
}

// MustUintToInt converts uint to int, panicking on overflow.
func MustUintToInt(v uint) int {
	if v > uint(MaxInt) {
		panic("safeconv: uint to int overflow")
	}

	return int(v)
}
