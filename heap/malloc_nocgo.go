//go:build !cgo

package heap

import (
	"unsafe"

	"github.com/joshuapare/heapbox/internal/buf"
)

// Malloc is the unchecked backend. Without cgo it hands out untracked,
// word-aligned Go memory that the collector reclaims once the last pointer to
// it is gone; Free does nothing.
//
// Types containing Go pointers are rejected so that code behaves the same
// whichever way the module is built.
type Malloc struct{}

// NewMalloc returns the unchecked backend.
func NewMalloc() *Malloc {
	Logger().Debug("heap: backend created", "backend", BackendMalloc, "cgo", false)
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
	size, ok := buf.AlignUp(l.Size, 8)
	if !ok {
		Fatalf(InvariantLayoutOverflow, "%s: %s rounded to words", BackendMalloc, l)
	}
	words := make([]uint64, size/8)
	return unsafe.Pointer(unsafe.SliceData(words))
}

func (*Malloc) Free(unsafe.Pointer, Layout) {}
