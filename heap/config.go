package heap

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Backend names accepted by ParseBackend.
const (
	BackendGo     = "go"
	BackendPages  = "pages"
	BackendMalloc = "malloc"
)

// Backends lists the backend names in order of preference.
func Backends() []string {
	return []string{BackendGo, BackendPages, BackendMalloc}
}

// Config selects and decorates a backend.
type Config struct {
	// Backend is one of Backends(). Empty selects BackendGo.
	Backend string `mapstructure:"backend" yaml:"backend" json:"backend"`

	// Instrument wraps the backend with prometheus metrics.
	Instrument bool `mapstructure:"instrument" yaml:"instrument" json:"instrument"`

	// Registerer receives the metrics when Instrument is set. Nil leaves
	// them unregistered.
	Registerer prometheus.Registerer `mapstructure:"-" yaml:"-" json:"-"`
}

// ParseBackend normalises a backend name.
func ParseBackend(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return BackendGo, nil
	}
	for _, b := range Backends() {
		if n == b {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
}

// Open builds the allocator described by cfg.
func Open(cfg Config) (Allocator, error) {
	name, err := ParseBackend(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if cfg.Registerer != nil && !cfg.Instrument {
		return nil, fmt.Errorf("%w: registerer set without instrument", ErrInvalidConfig)
	}

	var a Allocator
	switch name {
	case BackendPages:
		a = NewPages()
	case BackendMalloc:
		a = NewMalloc()
	default:
		a = NewGoHeap()
	}
	if cfg.Instrument {
		a = Instrument(a, cfg.Registerer)
	}
	Logger().Info("heap: allocator opened", "backend", name, "instrumented", cfg.Instrument)
	return a, nil
}
