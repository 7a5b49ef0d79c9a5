//go:build unix

// Package mmap provides page-granular anonymous memory for the Pages backend.
package mmap

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Anon maps size bytes of private, zero-filled, read-write memory.
// The mapping is page aligned and lives outside the Go heap.
func Anon(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mmap: invalid mapping size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: map %d bytes: %w", size, err)
	}
	return data, nil
}

// Release unmaps a mapping returned by Anon.
func Release(data []byte) error {
	if data == nil {
		return nil
	}
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		return fmt.Errorf("mmap: release of unmapped region: %w", err)
	}
	return err
}

// PageSize reports the system page size.
func PageSize() int { return unix.Getpagesize() }

// OffHeap reports whether Anon returns memory the Go garbage collector does not manage.
const OffHeap = true
