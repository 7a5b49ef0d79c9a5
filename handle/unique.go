// Package handle provides Unique, a typed raw address with no lifetime of its own.
package handle

import (
	"fmt"
	"reflect"
)

// Unique holds one typed address. It does not own the pointee and copies are
// not tracked; whoever holds it must ensure the address is still allocated
// and that nobody else mutates through it concurrently.
type Unique[T any] struct {
	ptr *T
}

// New wraps p without validation.
func New[T any](p *T) Unique[T] { return Unique[T]{ptr: p} }

// Ptr returns the address for reading.
func (u Unique[T]) Ptr() *T { return u.ptr }

// MutPtr returns the address for writing.
func (u Unique[T]) MutPtr() *T { return u.ptr }

// IsNil reports whether the handle holds no address.
func (u Unique[T]) IsNil() bool { return u.ptr == nil }

func (u Unique[T]) String() string {
	return fmt.Sprintf("Unique[%s](%p)", reflect.TypeFor[T](), u.ptr)
}
