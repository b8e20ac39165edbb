package config

import (
	"time"

	"github.com/routeflow/ribd/internal/bytesize"
	"github.com/routeflow/ribd/pkg/config/store"
)

// GetDefaultConfig returns a Config populated entirely with default values,
// suitable for a freshly initialized installation before any YAML file
// exists on disk.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in any zero-valued fields of cfg with sensible
// defaults. It is applied after unmarshaling a (possibly partial)
// configuration file, so every field the user did omit ends up with a
// usable value before Validate runs.
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyNorthboundDefaults(&cfg.Northbound)
	applyDatabaseDefaults(&cfg.Database)
	applyOSPFDefaults(cfg.OSPF)
	applyISISDefaults(cfg.ISIS)
	applyBGPDefaults(&cfg.BGP)
	applySegmentRoutingDefaults(&cfg.SegmentRouting)

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
}

func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stdout"
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "localhost:4317"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 1.0
	}
	applyProfilingDefaults(&cfg.Profiling)
}

func applyProfilingDefaults(cfg *ProfilingConfig) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "http://localhost:4040"
	}
	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = []string{"cpu", "alloc_objects", "alloc_space"}
	}
}

func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Port == 0 {
		cfg.Port = 9100
	}
}

func applyNorthboundDefaults(cfg *NorthboundConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8443
	}
	if cfg.JWTSecretEnv == "" {
		cfg.JWTSecretEnv = EnvNorthboundJWTSecret
	}
}

func applyDatabaseDefaults(cfg *store.Config) {
	cfg.ApplyDefaults()
}

func applyOSPFDefaults(instances []OSPFInstanceConfig) {
	for i := range instances {
		if instances[i].Version == "" {
			instances[i].Version = "ospfv2"
		}
		for a := range instances[i].Areas {
			for j := range instances[i].Areas[a].Interfaces {
				iface := &instances[i].Areas[a].Interfaces[j]
				if iface.HelloInterval == 0 {
					iface.HelloInterval = 10 * time.Second
				}
				if iface.DeadInterval == 0 {
					iface.DeadInterval = 4 * iface.HelloInterval
				}
				if iface.Priority == 0 {
					iface.Priority = 1
				}
				if iface.Cost == 0 {
					iface.Cost = 10
				}
			}
		}
	}
}

func applyISISDefaults(instances []ISISInstanceConfig) {
	for i := range instances {
		if instances[i].Levels == "" {
			instances[i].Levels = "level-1-2"
		}
		for j := range instances[i].Interfaces {
			iface := &instances[i].Interfaces[j]
			if iface.CircuitType == "" {
				iface.CircuitType = "broadcast"
			}
			if iface.HelloInterval == 0 {
				iface.HelloInterval = 10 * time.Second
			}
			if iface.HoldTime == 0 {
				iface.HoldTime = 3 * iface.HelloInterval
			}
			if iface.Metric == 0 {
				iface.Metric = 10
			}
		}
	}
}

func applyBGPDefaults(cfg *BGPConfig) {
	if cfg.MaxMessageSize == 0 {
		cfg.MaxMessageSize = bytesize.ByteSize(4096)
	}
	for i := range cfg.Neighbors {
		if cfg.Neighbors[i].HoldTime == 0 {
			cfg.Neighbors[i].HoldTime = 90 * time.Second
		}
	}
}

func applySegmentRoutingDefaults(cfg *SegmentRoutingConfig) {
	if cfg.Enabled && cfg.GlobalBlock.Start == 0 && cfg.GlobalBlock.End == 0 {
		cfg.GlobalBlock.Start = 16000
		cfg.GlobalBlock.End = 23999
	}
}

// EnvNorthboundJWTSecret is the default environment variable name holding
// the bearer-token signing secret for the northbound API, set by `ribd init`.
const EnvNorthboundJWTSecret = "RIBD_NORTHBOUND_JWT_SECRET"
