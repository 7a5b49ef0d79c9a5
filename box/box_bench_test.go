package box

import (
	"testing"

	"github.com/joshuapare/heapbox/heap"
)

// BenchmarkBox_NewUnbox measures the shortest box lifecycle.
func BenchmarkBox_NewUnbox(b *testing.B) {
	h := heap.NewGoHeap()

	b.ResetTimer()
	b.ReportAllocs()

	for i := range b.N {
		if NewIn(h, i).Unbox() != i {
			b.Fatal("unbox returned a different value")
		}
	}
}

// BenchmarkBox_NewDrop measures drop glue on a pointer-free value.
func BenchmarkBox_NewDrop(b *testing.B) {
	h := heap.NewGoHeap()

	b.ResetTimer()
	b.ReportAllocs()

	for range b.N {
		NewIn(h, point{X: 1, Y: 2}).Drop()
	}
}

// BenchmarkBox_DropNested measures finalizing 100x100 tracked values.
func BenchmarkBox_DropNested(b *testing.B) {
	h := heap.NewGoHeap()
	c := &counter{}

	b.ReportAllocs()

	for range b.N {
		b.StopTimer()
		outer := make([][]tracked, 100)
		for i := range outer {
			outer[i] = make([]tracked, 100)
			for j := range outer[i] {
				outer[i][j].c = c
			}
		}
		b.StartTimer()
		NewIn(h, outer).Drop()
	}
}
