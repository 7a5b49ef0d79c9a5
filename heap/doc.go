// Package heap provides raw allocation primitives beneath the owning box.
//
// # Overview
//
// The package hands out untyped blocks described by a Layout and takes them
// back. It never finalizes values on its own; owners decide when a value
// ends and call DropInPlace, or FreeArray for arrays, before freeing.
//
// # Allocator Interface
//
//   - Allocate(layout): reserve a zeroed block
//   - Free(ptr, layout): release it, with the same layout
//   - Name(): the backend name
//
// Typed helpers sit on top: Alloc/Free for one T, AllocateArray/FreeArray
// for arrays with a reserved count and a logical count, and
// AllocateBytes/FreeBytes for byte blocks.
//
// # Implementations
//
// GoHeap: checked backend over garbage-collected memory (the default)
//
//   - Typed allocation, so values may hold Go pointers
//   - Double free, foreign free and layout mismatch are fatal
//   - Stats for leak checks
//
// Pages: checked off-heap backend
//
//   - One anonymous mapping per block
//   - Pointer-free types only
//
// Malloc: unchecked backend over the C heap (cgo)
//
//   - calloc/free with no bookkeeping
//   - Out of memory yields a nil address, unchecked
//   - Pointer-free types only
//
// Instrumented: prometheus wrapper for any backend
//
// # Array Sizing
//
// An array block is always freed with the layout of its reserved count, the
// count it was allocated with. Only the logical prefix is finalized:
//
//	p := heap.AllocateArray[item](a, 64)
//	// initialize the first n items...
//	heap.FreeArray(a, p, n, 64)
//
// # Fatal Errors
//
// Broken invariants (layout overflow, logical count above reserved, double
// free, and so on) are not reported as errors. They are logged and raised
// as a panic carrying *FatalError, which terminates the process unless a
// caller deliberately recovers it.
//
// # Thread Safety
//
// Backends may be used from several goroutines at once. Values stored in
// allocated memory are not synchronized.
package heap
