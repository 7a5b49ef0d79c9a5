// Package box provides Box, a single-owner heap pointer, and Array, its
// fixed-capacity array counterpart.
//
// # Ownership
//
// A box owns one value in memory obtained from a heap.Allocator. It is ended
// exactly once:
//
//	b := box.New(1234)
//	v := b.Unbox()         // value moved out, memory freed
//
//	b = box.New(1234)
//	p := b.IntoRaw()       // b is disarmed; the caller owns p
//	b = box.FromRaw(p)     // a new box owns p again
//	b.Drop()               // finalize and free, once
//
// Go has no destructors, so falling out of scope is spelled Drop, usually
// deferred. A box that is never ended leaks; a checked allocator shows it in
// its Stats. Any use of an ended box is fatal rather than undefined.
//
// Finalization runs heap.DropInPlace on the value. *Box and *Array implement
// heap.Owner, so boxes nested inside a boxed value are dropped with it.
//
// # Backends
//
// New and FromRaw use heap.Default(); NewIn and FromRawIn take an explicit
// allocator. A raw address must be rebuilt with the allocator that produced
// it. Off-heap allocators only accept pointer-free types.
//
// # Thread Safety
//
// Boxes are not synchronized. Moving a box to another goroutine is fine;
// using one box from two goroutines at once is not.
package box
