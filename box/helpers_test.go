package box

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapbox/heap"
)

// requireFatal runs fn and requires it to raise the fatal path for inv.
func requireFatal(t testing.TB, inv heap.Invariant, fn func()) {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	require.NotNil(t, recovered, "expected fatal %s", inv)
	fe, ok := recovered.(*heap.FatalError)
	require.True(t, ok, "panic value %T (%v) is not *heap.FatalError", recovered, recovered)
	require.Equal(t, inv, fe.Invariant, "unexpected invariant: %s", fe.Msg)
}

// useDefault installs a as the default allocator for the rest of the test.
func useDefault[A heap.Allocator](t testing.TB, a A) A {
	t.Helper()
	prev := heap.SetDefault(a)
	t.Cleanup(func() { heap.SetDefault(prev) })
	return a
}

type counter struct{ drops int }

type tracked struct {
	id int
	c  *counter
}

func (t *tracked) Drop() { t.c.drops++ }

type point struct{ X, Y int64 }

// wrapped embeds a box, so it inherits Drop and IsLive from it.
type wrapped struct {
	*Box[tracked]
	name string
}

type wrappedArray struct {
	*Array[tracked]
	name string
}

type sample struct {
	ID   int64
	Name string
	Tags []uint16
	Pos  point
}
