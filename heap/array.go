package heap

import (
	"unsafe"
)

// AllocateArray reserves zeroed memory for count elements of T. A negative
// count or a block size that overflows is fatal.
func AllocateArray[T any](a Allocator, count int) *T {
	return (*T)(a.Allocate(arrayLayout[T]("allocate", count)))
}

// FreeArray finalizes the first logical elements at p, then frees the block
// with the layout of reserved elements, which must be the count it was
// allocated with. logical > reserved is fatal.
func FreeArray[T any](a Allocator, p *T, logical, reserved int) {
	if logical < 0 {
		Fatalf(InvariantNegativeCount, "free array: negative logical count %d", logical)
	}
	if logical > reserved {
		Fatalf(InvariantCountExceedsReserved, "free array: logical count %d exceeds reserved count %d", logical, reserved)
	}
	l := arrayLayout[T]("free", reserved)
	if logical > 0 && NeedsDrop[T]() {
		elems := unsafe.Slice(p, logical)
		for i := range elems {
			DropInPlace(&elems[i])
		}
	}
	a.Free(unsafe.Pointer(p), l)
}

// AllocateBytes reserves n zeroed bytes.
func AllocateBytes(a Allocator, n int) []byte {
	p := AllocateArray[byte](a, n)
	return unsafe.Slice(p, n)
}

// FreeBytes releases a block from AllocateBytes. b must have the capacity it
// was returned with.
func FreeBytes(a Allocator, b []byte) {
	FreeArray(a, unsafe.SliceData(b), 0, cap(b))
}

func arrayLayout[T any](op string, count int) Layout {
	if count < 0 {
		Fatalf(InvariantNegativeCount, "%s array: negative count %d", op, count)
	}
	l, err := ArrayLayout(LayoutOf[T](), count)
	if err != nil {
		Fatalf(InvariantLayoutOverflow, "%s array: %v", op, err)
	}
	return l
}
