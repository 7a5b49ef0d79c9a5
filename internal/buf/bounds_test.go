package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(^uintptr(0), 1); ok {
		t.Fatalf("expected overflow when adding to max uintptr")
	}
}

func TestMulOverflowSafe(t *testing.T) {
	if p, ok := MulOverflowSafe(8, 100); !ok || p != 800 {
		t.Fatalf("MulOverflowSafe(8,100)=%d,%v want 800,true", p, ok)
	}
	if p, ok := MulOverflowSafe(0, ^uintptr(0)); !ok || p != 0 {
		t.Fatalf("MulOverflowSafe with zero should be 0,true; got %d,%v", p, ok)
	}
	if _, ok := MulOverflowSafe(^uintptr(0)/2+1, 2); ok {
		t.Fatalf("expected overflow for half-max * 2")
	}
}

func TestAlignUp(t *testing.T) {
	cases := []struct {
		n, align, want uintptr
	}{
		{0, 8, 0},
		{1, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{4095, 4096, 4096},
	}
	for _, tc := range cases {
		got, ok := AlignUp(tc.n, tc.align)
		if !ok || got != tc.want {
			t.Fatalf("AlignUp(%d,%d)=%d,%v want %d", tc.n, tc.align, got, ok, tc.want)
		}
	}
	if _, ok := AlignUp(10, 3); ok {
		t.Fatalf("AlignUp should reject non power-of-two alignment")
	}
	if _, ok := AlignUp(^uintptr(0), 8); ok {
		t.Fatalf("AlignUp should report overflow")
	}
}

func TestArraySize(t *testing.T) {
	size, err := ArraySize(8, 100)
	if err != nil || size != 800 {
		t.Fatalf("ArraySize(8,100)=%d,%v want 800,nil", size, err)
	}
	if _, err := ArraySize(8, -1); err == nil {
		t.Fatalf("ArraySize should reject negative count")
	}
	if _, err := ArraySize(16, math.MaxInt); err == nil {
		t.Fatalf("ArraySize should report overflow")
	}
	if size, err := ArraySize(0, math.MaxInt); err != nil || size != 0 {
		t.Fatalf("zero-size elements should give size 0, got %d,%v", size, err)
	}
}
