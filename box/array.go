package box

import (
	"unsafe"

	"github.com/joshuapare/heapbox/heap"
)

// Array owns a block reserved for Cap elements of T, of which the first Len
// are initialized. Only those are finalized on Drop; the block is always
// freed at its reserved size.
type Array[T any] struct {
	noCopy noCopy

	p        *T
	len, cap int
	a        heap.Allocator
	state    State
}

// NewArray reserves room for reserved elements from the default allocator.
func NewArray[T any](reserved int) *Array[T] {
	return NewArrayIn[T](heap.Default(), reserved)
}

// NewArrayIn reserves room for reserved elements from a.
func NewArrayIn[T any](a heap.Allocator, reserved int) *Array[T] {
	p := heap.AllocateArray[T](a, reserved)
	return &Array[T]{p: p, cap: reserved, a: a}
}

// FromRawArray adopts a block from IntoRaw backed by the default allocator.
func FromRawArray[T any](p *T, length, capacity int) *Array[T] {
	return FromRawArrayIn(heap.Default(), p, length, capacity)
}

// FromRawArrayIn adopts a block of capacity elements whose first length are
// initialized, freeing through a.
func FromRawArrayIn[T any](a heap.Allocator, p *T, length, capacity int) *Array[T] {
	if length < 0 || capacity < 0 {
		heap.Fatalf(heap.InvariantNegativeCount, "box: FromRawArray with length %d, capacity %d", length, capacity)
	}
	if length > capacity {
		heap.Fatalf(heap.InvariantCountExceedsReserved, "box: FromRawArray length %d exceeds capacity %d", length, capacity)
	}
	if p == nil {
		heap.Fatalf(heap.InvariantNilAddress, "box: FromRawArray of nil *%s", typeName[T]())
	}
	return &Array[T]{p: p, len: length, cap: capacity, a: a}
}

// Len is the number of initialized elements.
func (r *Array[T]) Len() int { return r.len }

// Cap is the number of reserved elements.
func (r *Array[T]) Cap() int { return r.cap }

// Push moves v into the next reserved slot. Pushing into a full array is fatal.
func (r *Array[T]) Push(v T) {
	r.mustBeLive("Push")
	if r.len == r.cap {
		heap.Fatalf(heap.InvariantCountExceedsReserved, "box: Push onto full Array[%s] of %d", typeName[T](), r.cap)
	}
	unsafe.Slice(r.p, r.cap)[r.len] = v
	r.len++
}

// At returns the address of element i, which must be below Len.
func (r *Array[T]) At(i int) *T {
	return &r.Slice()[i]
}

// Slice views the initialized elements. Its capacity is clipped to Len so
// append never writes into the reserved tail.
func (r *Array[T]) Slice() []T {
	r.mustBeLive("Slice")
	if r.len == 0 {
		return nil
	}
	return unsafe.Slice(r.p, r.len)[:r.len:r.len]
}

// Truncate finalizes the elements from n to Len and shrinks Len to n.
func (r *Array[T]) Truncate(n int) {
	r.mustBeLive("Truncate")
	if n < 0 {
		heap.Fatalf(heap.InvariantNegativeCount, "box: Truncate to %d", n)
	}
	if n > r.len {
		heap.Fatalf(heap.InvariantCountExceedsLen, "box: Truncate to %d beyond length %d", n, r.len)
	}
	tail := unsafe.Slice(r.p, r.len)[n:]
	var zero T
	for i := range tail {
		heap.DropInPlace(&tail[i])
		tail[i] = zero
	}
	r.len = n
}

// Unbox copies the initialized elements into a new Go slice and frees the
// block without finalizing them.
func (r *Array[T]) Unbox() []T {
	out := append([]T(nil), r.Slice()...)
	p, capacity := r.p, r.cap
	r.end(Consumed)
	heap.FreeArray(r.a, p, 0, capacity)
	return out
}

// IntoRaw disarms the array and returns its block and counts.
func (r *Array[T]) IntoRaw() (p *T, length, capacity int) {
	r.mustBeLive("IntoRaw")
	p, length, capacity = r.p, r.len, r.cap
	r.end(Disarmed)
	return p, length, capacity
}

// Drop finalizes the initialized elements and frees the reserved block.
func (r *Array[T]) Drop() {
	r.mustBeLive("Drop")
	p, length, capacity := r.p, r.len, r.cap
	r.end(Freed)
	heap.FreeArray(r.a, p, length, capacity)
}

// IsLive reports whether the array still owns its block.
func (r *Array[T]) IsLive() bool { return r != nil && r.state == Live }

// State reports the lifecycle state.
func (r *Array[T]) State() State { return r.state }

func (r *Array[T]) end(s State) {
	r.state = s
	r.p = nil
	r.len, r.cap = 0, 0
}

func (r *Array[T]) mustBeLive(op string) {
	if r == nil {
		heap.Fatalf(heap.InvariantNilAddress, "box: %s on nil *Array[%s]", op, typeName[T]())
	}
	if r.state != Live {
		heap.Fatalf(heap.InvariantUseAfterConsume, "box: %s on %s Array[%s]", op, r.state, typeName[T]())
	}
}
