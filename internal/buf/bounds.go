// Package buf contains overflow-checked size arithmetic for layout computation.
package buf

import (
	"fmt"
	"math"
	"math/bits"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow uintptr.
func AddOverflowSafe(a, b uintptr) (uintptr, bool) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || sum > uint64(^uintptr(0)) {
		return 0, false
	}
	return uintptr(sum), true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow uintptr.
// This is essential for count * elementSize calculations in array layouts.
func MulOverflowSafe(a, b uintptr) (uintptr, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > uint64(^uintptr(0)) {
		return 0, false
	}
	return uintptr(lo), true
}

// AlignUp rounds n up to the next multiple of align, which must be a power of two.
// Returns ok = false when rounding would overflow.
func AlignUp(n, align uintptr) (uintptr, bool) {
	if align == 0 || align&(align-1) != 0 {
		return 0, false
	}
	sum, ok := AddOverflowSafe(n, align-1)
	if !ok {
		return 0, false
	}
	return sum &^ (align - 1), true
}

// ArraySize validates that count elements of elemSize bytes form a block whose
// size fits in both uintptr and int (so it can back a Go slice). Returns the
// total size, or an error describing the specific failure.
//
//	size, err := buf.ArraySize(unsafe.Sizeof(x), n)
//	if err != nil {
//	    return fmt.Errorf("array: %w", err)
//	}
func ArraySize(elemSize uintptr, count int) (uintptr, error) {
	if count < 0 {
		return 0, fmt.Errorf("negative count: %d", count)
	}
	total, ok := MulOverflowSafe(elemSize, uintptr(count))
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * elemSize=%d", count, elemSize)
	}
	if total > math.MaxInt {
		return 0, fmt.Errorf("overflow: size=%d exceeds max int", total)
	}
	return total, nil
}
