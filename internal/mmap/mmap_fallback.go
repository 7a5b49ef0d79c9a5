//go:build !unix

// Package mmap provides page-granular anonymous memory for the Pages backend.
package mmap

import (
	"fmt"
	"os"
	"unsafe"
)

// Anon allocates size zeroed bytes when anonymous mappings are not available.
// The result is page aligned so callers see the same alignment on every platform.
func Anon(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap: invalid mapping size %d", size)
	}
	page := PageSize()
	raw := make([]byte, size+page)
	shift := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(page)); rem != 0 {
		shift = page - rem
	}
	return raw[shift : shift+size : shift+size], nil
}

// Release drops the reference; the collector reclaims the block.
func Release(data []byte) error { return nil }

// PageSize reports the system page size.
func PageSize() int { return os.Getpagesize() }

// OffHeap reports whether Anon returns memory the Go garbage collector does not manage.
const OffHeap = false
