package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnique(t *testing.T) {
	x := 7
	u := New(&x)

	assert.False(t, u.IsNil())
	assert.Same(t, &x, u.Ptr())
	assert.Same(t, &x, u.MutPtr())

	*u.MutPtr() = 9
	assert.Equal(t, 9, *u.Ptr())

	// Copies alias the same address.
	v := u
	*v.MutPtr() = 11
	assert.Equal(t, 11, x)
	assert.Contains(t, u.String(), "Unique[int]")
}

func TestUniqueZero(t *testing.T) {
	var u Unique[string]
	assert.True(t, u.IsNil())
	assert.Nil(t, u.Ptr())
}
