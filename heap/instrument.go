package heap

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
)

// Instrumented wraps an Allocator with prometheus metrics. All series carry a
// constant "backend" label naming the wrapped backend.
type Instrumented struct {
	next Allocator

	allocations    prometheus.Counter
	frees          prometheus.Counter
	bytesAllocated prometheus.Counter
	liveBytes      prometheus.Gauge
	blockSize      prometheus.Histogram
}

// Instrument wraps next. When reg is non-nil the collectors are registered
// with it; registering two wrappers of the same backend on one registry
// panics, as with any duplicate prometheus registration.
func Instrument(next Allocator, reg prometheus.Registerer) *Instrumented {
	labels := prometheus.Labels{"backend": next.Name()}
	in := &Instrumented{
		next: next,
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "heapbox",
			Name:        "allocations_total",
			Help:        "Blocks allocated",
			ConstLabels: labels,
		}),
		frees: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "heapbox",
			Name:        "frees_total",
			Help:        "Blocks freed",
			ConstLabels: labels,
		}),
		bytesAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "heapbox",
			Name:        "allocated_bytes_total",
			Help:        "Bytes allocated, including zero-sized blocks as 0",
			ConstLabels: labels,
		}),
		liveBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "heapbox",
			Name:        "live_bytes",
			Help:        "Bytes allocated and not yet freed",
			ConstLabels: labels,
		}),
		blockSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "heapbox",
			Name:        "block_size_bytes",
			Help:        "Size of allocated blocks",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(8, 4, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(in.allocations, in.frees, in.bytesAllocated, in.liveBytes, in.blockSize)
	}
	return in
}

func (in *Instrumented) Name() string { return in.next.Name() }

func (in *Instrumented) Allocate(l Layout) unsafe.Pointer {
	p := in.next.Allocate(l)
	in.allocations.Inc()
	in.bytesAllocated.Add(float64(l.Size))
	in.liveBytes.Add(float64(l.Size))
	in.blockSize.Observe(float64(l.Size))
	return p
}

func (in *Instrumented) Free(p unsafe.Pointer, l Layout) {
	in.next.Free(p, l)
	in.frees.Inc()
	in.liveBytes.Sub(float64(l.Size))
}

// Unwrap returns the wrapped allocator.
func (in *Instrumented) Unwrap() Allocator { return in.next }
