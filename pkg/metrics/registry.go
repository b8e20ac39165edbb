// Package metrics defines the counters/gauges/histograms the §7 error
// taxonomy and the SPF/flooding hot paths are observed through, and the
// constructor indirection (pkg/metrics/prometheus) that keeps this package
// free of a direct client_golang dependency.
//
// Grounded on the teacher's pkg/metrics/{cache,s3,nfs}.go split: an
// interface here, a concrete Prometheus-backed implementation one level
// down, wired together through a package-level constructor variable set by
// the prometheus subpackage's init(), so importing pkg/metrics/prometheus
// (for its side effect) is the only thing a binary's main.go needs to do.
package metrics

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	enabled  atomic.Bool
	mu       sync.Mutex
	registry *prometheus.Registry
)

// InitRegistry creates the process-wide Prometheus registry and marks
// metrics as enabled. Idempotent: calling it twice returns the existing
// registry. Must be called before any NewXMetrics constructor if metrics
// are wanted; otherwise those constructors return nil and every recorder
// in this package is a no-op (matching the teacher's zero-overhead-when-
// disabled contract).
func InitRegistry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		registry = prometheus.NewRegistry()
		enabled.Store(true)
	}
	return registry
}

// GetRegistry returns the process-wide registry, creating it if necessary.
func GetRegistry() *prometheus.Registry {
	if r := getRegistryIfSet(); r != nil {
		return r
	}
	return InitRegistry()
}

func getRegistryIfSet() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// IsEnabled reports whether InitRegistry has been called.
func IsEnabled() bool {
	return enabled.Load()
}
