//go:build cgo

package heap

// #include <stdlib.h>
import "C"

import "unsafe"

// Malloc is the unchecked backend over the C heap. It keeps no bookkeeping:
// double frees, foreign frees and layout mismatches go straight to libc.
//
// calloc's result is not checked. When the C heap is exhausted Allocate
// returns nil and the caller's first write through it faults.
//
// Types containing Go pointers are rejected, as cgo forbids storing Go
// pointers in C memory.
type Malloc struct{}

// NewMalloc returns the C heap backend.
func NewMalloc() *Malloc {
	Logger().Debug("heap: backend created", "backend", BackendMalloc, "cgo", true)
	return &Malloc{}
}

func (*Malloc) Name() string { return BackendMalloc }

func (*Malloc) Allocate(l Layout) unsafe.Pointer {
	if l.Size == 0 {
		return zeroSized()
	}
	if l.HasPointers() {
		Fatalf(InvariantPointersOffHeap, "%s: %s holds Go pointers", BackendMalloc, l)
	}
	return C.calloc(1, C.size_t(l.Size))
}

func (*Malloc) Free(p unsafe.Pointer, l Layout) {
	if l.Size == 0 {
		return
	}
	C.free(p)
}
