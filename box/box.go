package box

import (
	"reflect"

	"github.com/joshuapare/heapbox/handle"
	"github.com/joshuapare/heapbox/heap"
)

// Box is a single-owner pointer to a heap-allocated T.
//
// A box ends exactly one way: Drop (finalize in place, then free), Unbox
// (move the value out, free without finalizing) or IntoRaw (hand the address
// to the caller, who must rebuild a box with FromRaw or free it). Every
// operation on a box that has ended is fatal.
//
// Pass *Box values around; never copy a Box struct. go vet reports copies.
type Box[T any] struct {
	noCopy noCopy

	h     handle.Unique[T]
	a     heap.Allocator
	state State
}

// New moves v into memory from the default allocator.
func New[T any](v T) *Box[T] {
	return NewIn(heap.Default(), v)
}

// NewIn moves v into memory from a.
func NewIn[T any](a heap.Allocator, v T) *Box[T] {
	p := heap.Alloc[T](a)
	*p = v
	return &Box[T]{h: handle.New(p), a: a}
}

// FromRaw adopts p, which must come from IntoRaw on a box of the same T
// backed by the default allocator, or otherwise be a single initialized T
// exclusively owned by the caller and freeable by that allocator.
func FromRaw[T any](p *T) *Box[T] {
	return FromRawIn(heap.Default(), p)
}

// FromRawIn adopts p with the same contract as FromRaw, freeing through a.
func FromRawIn[T any](a heap.Allocator, p *T) *Box[T] {
	if p == nil {
		heap.Fatalf(heap.InvariantNilAddress, "box: FromRaw of nil *%s", typeName[T]())
	}
	return &Box[T]{h: handle.New(p), a: a}
}

// Borrow returns the address of the value for reading. It is valid until
// the box ends.
func (b *Box[T]) Borrow() *T {
	b.mustBeLive("Borrow")
	return b.h.Ptr()
}

// BorrowMut returns the address of the value for writing. It is valid until
// the box ends.
func (b *Box[T]) BorrowMut() *T {
	b.mustBeLive("BorrowMut")
	return b.h.MutPtr()
}

// IntoRaw disarms the box and returns its address. The caller now owns the
// value and its memory.
func (b *Box[T]) IntoRaw() *T {
	b.mustBeLive("IntoRaw")
	p := b.h.MutPtr()
	b.end(Disarmed)
	return p
}

// Unbox moves the value out and frees the memory without finalizing it.
func (b *Box[T]) Unbox() T {
	b.mustBeLive("Unbox")
	p := b.h.MutPtr()
	b.end(Consumed)
	v := *p
	heap.Free(b.a, p)
	return v
}

// Drop finalizes the value in place and frees the memory. Use it where the
// box leaves scope:
//
//	b := box.New(v)
//	defer b.Drop()
func (b *Box[T]) Drop() {
	b.mustBeLive("Drop")
	p := b.h.MutPtr()
	b.end(Freed)
	heap.DropInPlace(p)
	heap.Free(b.a, p)
}

// IsLive reports whether the box still owns its value.
func (b *Box[T]) IsLive() bool { return b != nil && b.state == Live }

// State reports the lifecycle state.
func (b *Box[T]) State() State { return b.state }

func (b *Box[T]) String() string {
	return "Box[" + typeName[T]() + "](" + b.state.String() + ")"
}

// end moves the box to a terminal state before any finalizer runs, so a
// value that reaches its own box during Drop cannot end it twice.
func (b *Box[T]) end(s State) {
	b.state = s
	b.h = handle.Unique[T]{}
}

func (b *Box[T]) mustBeLive(op string) {
	if b == nil {
		heap.Fatalf(heap.InvariantNilAddress, "box: %s on nil *Box[%s]", op, typeName[T]())
	}
	if b.state != Live {
		heap.Fatalf(heap.InvariantUseAfterConsume, "box: %s on %s Box[%s]", op, b.state, typeName[T]())
	}
}

// noCopy makes go vet's copylocks check report copies of the owning types.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

func typeName[T any]() string { return reflect.TypeFor[T]().String() }
