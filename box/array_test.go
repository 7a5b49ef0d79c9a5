package box

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapbox/heap"
)

// TestArray_PushDrop tests that Drop finalizes only the logical prefix.
func TestArray_PushDrop(t *testing.T) {
	h := heap.NewGoHeap()
	c := &counter{}

	r := NewArrayIn[tracked](h, 10)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 10, r.Cap())

	for i := range 4 {
		r.Push(tracked{id: i, c: c})
	}
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, 2, r.At(2).id)
	assert.Len(t, r.Slice(), 4)
	assert.Equal(t, 4, cap(r.Slice()), "slice must not expose the reserved tail")

	r.Drop()
	assert.Equal(t, 4, c.drops)
	assert.Equal(t, Freed, r.State())
	assert.False(t, h.Stats().Leaked())
}

// TestArray_PushFull tests that pushing beyond the reservation is fatal.
func TestArray_PushFull(t *testing.T) {
	h := heap.NewGoHeap()
	r := NewArrayIn[int](h, 2)
	r.Push(1)
	r.Push(2)
	requireFatal(t, heap.InvariantCountExceedsReserved, func() { r.Push(3) })

	r.Drop()
	assert.False(t, h.Stats().Leaked())
}

// TestArray_Truncate tests that truncation finalizes the tail once.
func TestArray_Truncate(t *testing.T) {
	h := heap.NewGoHeap()
	c := &counter{}

	r := NewArrayIn[tracked](h, 8)
	for i := range 8 {
		r.Push(tracked{id: i, c: c})
	}
	r.Truncate(3)
	assert.Equal(t, 5, c.drops)
	assert.Equal(t, 3, r.Len())

	requireFatal(t, heap.InvariantCountExceedsLen, func() { r.Truncate(4) })
	requireFatal(t, heap.InvariantNegativeCount, func() { r.Truncate(-1) })

	r.Push(tracked{id: 99, c: c})
	r.Drop()
	assert.Equal(t, 5+4, c.drops)
	assert.False(t, h.Stats().Leaked())
}

// TestArray_Unbox tests moving the elements out.
func TestArray_Unbox(t *testing.T) {
	h := heap.NewGoHeap()
	c := &counter{}

	r := NewArrayIn[tracked](h, 5)
	r.Push(tracked{id: 1, c: c})
	r.Push(tracked{id: 2, c: c})

	out := r.Unbox()
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[1].id)
	assert.Zero(t, c.drops)
	assert.Equal(t, Consumed, r.State())
	assert.False(t, h.Stats().Leaked())
}

// TestArray_RawRoundTrip tests IntoRaw/FromRawArray.
func TestArray_RawRoundTrip(t *testing.T) {
	h := heap.NewGoHeap()
	c := &counter{}

	r := NewArrayIn[tracked](h, 6)
	for i := range 3 {
		r.Push(tracked{id: i, c: c})
	}
	p, length, capacity := r.IntoRaw()
	assert.Equal(t, 3, length)
	assert.Equal(t, 6, capacity)
	assert.Equal(t, Disarmed, r.State())
	requireFatal(t, heap.InvariantUseAfterConsume, func() { r.Drop() })

	rebuilt := FromRawArrayIn(h, p, length, capacity)
	assert.Equal(t, 1, rebuilt.At(1).id)
	rebuilt.Drop()

	assert.Equal(t, 3, c.drops)
	assert.False(t, h.Stats().Leaked())
}

// TestArray_FromRawValidation tests the count checks on adoption.
func TestArray_FromRawValidation(t *testing.T) {
	h := heap.NewGoHeap()
	r := NewArrayIn[int](h, 4)
	p, _, capacity := r.IntoRaw()

	requireFatal(t, heap.InvariantCountExceedsReserved, func() { FromRawArrayIn(h, p, capacity+1, capacity) })
	requireFatal(t, heap.InvariantNegativeCount, func() { FromRawArrayIn(h, p, -1, capacity) })
	requireFatal(t, heap.InvariantNilAddress, func() { FromRawArrayIn[int](h, nil, 0, capacity) })

	FromRawArrayIn(h, p, 0, capacity).Drop()
	assert.False(t, h.Stats().Leaked())
}

// TestArray_Empty tests a zero-capacity array.
func TestArray_Empty(t *testing.T) {
	useDefault(t, heap.NewGoHeap())

	r := NewArray[int](0)
	assert.Nil(t, r.Slice())
	requireFatal(t, heap.InvariantCountExceedsReserved, func() { r.Push(1) })
	r.Drop()
}

// TestArray_NestedInBox tests arrays owned by a boxed value.
func TestArray_NestedInBox(t *testing.T) {
	h := heap.NewGoHeap()
	c := &counter{}

	type table struct {
		rows []*Array[tracked]
	}
	var tb table
	for range 10 {
		r := NewArrayIn[tracked](h, 10)
		for j := range 10 {
			r.Push(tracked{id: j, c: c})
		}
		tb.rows = append(tb.rows, r)
	}

	NewIn(h, tb).Drop()
	assert.Equal(t, 100, c.drops)
	assert.False(t, h.Stats().Leaked())
}

// TestArray_OffHeap tests arrays on the off-heap backends.
func TestArray_OffHeap(t *testing.T) {
	for _, name := range []string{heap.BackendPages, heap.BackendMalloc} {
		t.Run(name, func(t *testing.T) {
			if name == heap.BackendPages && testing.Short() {
				t.Skip("skipping mmap test in short mode")
			}
			a, err := heap.Open(heap.Config{Backend: name})
			require.NoError(t, err)

			r := NewArrayIn[point](a, 100)
			for i := range 100 {
				r.Push(point{X: int64(i), Y: int64(-i)})
			}
			assert.Equal(t, point{X: 42, Y: -42}, *r.At(42))
			r.Drop()
		})
	}
}
