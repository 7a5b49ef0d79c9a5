package heap

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"unsafe"

	"github.com/joshuapare/heapbox/internal/buf"
)

// Layout describes a block of memory: its size and alignment in bytes, the
// element type it holds, and how many elements. Single objects have Count 1.
//
// Backends free with the layout the block was allocated with. For arrays
// that is always the reserved count, never the logical one.
type Layout struct {
	Size  uintptr
	Align uintptr
	Elem  reflect.Type
	Count int
}

// LayoutOf describes a single T.
func LayoutOf[T any]() Layout {
	var zero T
	return Layout{
		Size:  unsafe.Sizeof(zero),
		Align: unsafe.Alignof(zero),
		Elem:  reflect.TypeFor[T](),
		Count: 1,
	}
}

// ArrayLayout describes count contiguous elements of elem, which must be a
// single-object layout. It fails when count is negative or the block size
// overflows.
func ArrayLayout(elem Layout, count int) (Layout, error) {
	if elem.Count != 1 || elem.Elem == nil {
		return Layout{}, fmt.Errorf("array of %s: element layout must describe one typed object", elem)
	}
	size, err := buf.ArraySize(elem.Size, count)
	if err != nil {
		return Layout{}, fmt.Errorf("array of %d x %s: %w", count, elem.Elem, err)
	}
	return Layout{Size: size, Align: elem.Align, Elem: elem.Elem, Count: count}, nil
}

// BytesLayout describes an untyped block of n bytes.
func BytesLayout(n int) (Layout, error) {
	return ArrayLayout(LayoutOf[byte](), n)
}

// Type returns the Go type a block with this layout holds: Elem for single
// objects, [Count]Elem for arrays.
func (l Layout) Type() reflect.Type {
	if l.Count == 1 {
		return l.Elem
	}
	return reflect.ArrayOf(l.Count, l.Elem)
}

// HasPointers reports whether the element type contains Go pointers. Such
// values may only live in memory the garbage collector scans.
func (l Layout) HasPointers() bool {
	if l.Elem == nil {
		return false
	}
	return typeHasPointers(l.Elem)
}

// validate checks the fields agree with each other.
func (l Layout) validate() error {
	if l.Elem == nil {
		return fmt.Errorf("layout %s has no element type", l)
	}
	if l.Count < 0 {
		return fmt.Errorf("layout %s has negative count", l)
	}
	want, ok := buf.MulOverflowSafe(l.Elem.Size(), uintptr(l.Count))
	if !ok || want > math.MaxInt || want != l.Size {
		return fmt.Errorf("layout %s does not match %d x %d bytes", l, l.Count, l.Elem.Size())
	}
	return nil
}

func (l Layout) String() string {
	if l.Elem == nil {
		return fmt.Sprintf("{size=%d align=%d}", l.Size, l.Align)
	}
	if l.Count == 1 {
		return fmt.Sprintf("{%s size=%d align=%d}", l.Elem, l.Size, l.Align)
	}
	return fmt.Sprintf("{[%d]%s size=%d align=%d}", l.Count, l.Elem, l.Size, l.Align)
}

var pointerCache sync.Map // reflect.Type -> bool

func typeHasPointers(t reflect.Type) bool {
	if v, ok := pointerCache.Load(t); ok {
		return v.(bool)
	}
	has := computeHasPointers(t)
	pointerCache.Store(t, has)
	return has
}

func computeHasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan,
		reflect.Func, reflect.Interface, reflect.Slice, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && computeHasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if computeHasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// zeroBase is the address handed out for zero-sized blocks. It has a size so
// that its address is distinct from every other variable.
var zeroBase uint64

func zeroSized() unsafe.Pointer { return unsafe.Pointer(&zeroBase) }
