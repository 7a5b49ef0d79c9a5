package heap

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownBackend indicates a backend name that Open does not recognise.
	ErrUnknownBackend = errors.New("heap: unknown backend")

	// ErrInvalidConfig indicates a Config that cannot be opened.
	ErrInvalidConfig = errors.New("heap: invalid config")
)

// Invariant names the rule a fatal error reports as violated.
type Invariant string

const (
	InvariantLayoutOverflow       Invariant = "layout-overflow"
	InvariantNegativeCount        Invariant = "negative-count"
	InvariantCountExceedsReserved Invariant = "count-exceeds-reserved"
	InvariantCountExceedsLen      Invariant = "count-exceeds-len"
	InvariantDoubleFree           Invariant = "double-free"
	InvariantForeignFree          Invariant = "foreign-free"
	InvariantLayoutMismatch       Invariant = "layout-mismatch"
	InvariantOutOfMemory          Invariant = "out-of-memory"
	InvariantReleaseFailed        Invariant = "release-failed"
	InvariantPointersOffHeap      Invariant = "pointers-off-heap"
	InvariantUseAfterConsume      Invariant = "use-after-consume"
	InvariantNilAddress           Invariant = "nil-address"
)

// FatalError is the panic value of the fatal path. Nothing in this module
// recovers it; an unrecovered FatalError terminates the process with its
// message.
type FatalError struct {
	Invariant Invariant
	Msg       string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("heap: fatal: %s: %s", e.Invariant, e.Msg)
}

// Fatalf logs the violated invariant and panics with a *FatalError.
func Fatalf(inv Invariant, format string, args ...any) {
	fe := &FatalError{Invariant: inv, Msg: fmt.Sprintf(format, args...)}
	Logger().Error("heap: fatal", "invariant", string(inv), "msg", fe.Msg)
	panic(fe)
}
