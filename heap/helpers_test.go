package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// requireFatal runs fn and requires it to raise the fatal path for inv.
func requireFatal(t testing.TB, inv Invariant, fn func()) {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	require.NotNil(t, recovered, "expected fatal %s", inv)
	fe, ok := recovered.(*FatalError)
	require.True(t, ok, "panic value %T (%v) is not *FatalError", recovered, recovered)
	require.Equal(t, inv, fe.Invariant, "unexpected invariant: %s", fe.Msg)
}

// counter counts Drop calls across values.
type counter struct{ drops int }

// tracked is a value whose Drop is observable.
type tracked struct {
	id int
	c  *counter
}

func (t *tracked) Drop() { t.c.drops++ }

// plain is a pointer-free value for the off-heap backends.
type plain struct {
	A int64
	B [3]uint32
	C float64
}
