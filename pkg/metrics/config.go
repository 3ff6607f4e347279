package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to use. If nil, uses prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Registry: prometheus.DefaultRegisterer,
	}
}

// RegistryFor resolves the registry to use for the given configuration.
// Disabled metrics return nil; instrumented wrappers treat a nil registry
// as a no-op.
func RegistryFor(config Config) *Registry {
	if !config.Enabled {
		return nil
	}
	if config.Registry == nil {
		return DefaultRegistry
	}
	return NewRegistry(config.Registry)
}
