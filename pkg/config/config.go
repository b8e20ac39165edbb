package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/routeflow/ribd/internal/bytesize"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the ribd daemon configuration.
//
// This structure captures the static, restart-time configuration of the
// daemon: logging, telemetry, the northbound API, the control-plane
// persistence backend, and the initial set of protocol instances to bring
// up. Once running, protocol instance state (neighbors, LSDB contents,
// Adj-RIB entries) is reachable only through the northbound API/ibus, never
// through this struct.
//
// Configuration sources (in order of precedence):
//  1. CLI flags (highest priority)
//  2. Environment variables (RIBD_*)
//  3. Configuration file (YAML)
//  4. Default values (lowest priority)
type Config struct {
	// Logging controls log output behavior.
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`

	// Telemetry controls OpenTelemetry distributed tracing and profiling.
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`

	// ShutdownTimeout is the maximum time to wait for graceful shutdown,
	// including draining in-flight graceful-restart helpers.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required,gt=0" yaml:"shutdown_timeout"`

	// Metrics contains Prometheus metrics server configuration.
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`

	// Northbound contains the northbound configuration/state API server
	// configuration (the YANG-northbound HTTP stand-in).
	Northbound NorthboundConfig `mapstructure:"northbound" yaml:"northbound"`

	// Database configures the control-plane persistence backend (SQLite or
	// PostgreSQL) used for keychains, segment-routing label-range bindings,
	// and static routes.
	Database store.Config `mapstructure:"database" yaml:"database"`

	// RouterID is the default router identifier (dotted-quad form) used by
	// OSPF and BGP instances that don't override it.
	RouterID string `mapstructure:"router_id" validate:"required,ipv4" yaml:"router_id"`

	// OSPF lists the OSPFv2/OSPFv3 instances to bring up at startup.
	OSPF []OSPFInstanceConfig `mapstructure:"ospf" yaml:"ospf,omitempty"`

	// ISIS lists the IS-IS instances to bring up at startup.
	ISIS []ISISInstanceConfig `mapstructure:"isis" yaml:"isis,omitempty"`

	// BGP configures the BGP speaker, if enabled.
	BGP BGPConfig `mapstructure:"bgp" yaml:"bgp,omitempty"`

	// SegmentRouting configures the SR global block and per-instance label
	// ranges shared across protocols via the keychain/SR ibus snapshot.
	SegmentRouting SegmentRoutingConfig `mapstructure:"segment_routing" yaml:"segment_routing,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	// Level is the minimum log level to output.
	// Valid values: DEBUG, INFO, WARN, ERROR (case-insensitive, normalized to uppercase).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error" yaml:"level"`

	// Format specifies the log output format.
	// Valid values: text, json.
	Format string `mapstructure:"format" validate:"required,oneof=text json" yaml:"format"`

	// Output specifies where logs are written.
	// Valid values: stdout, stderr, or a file path.
	Output string `mapstructure:"output" validate:"required" yaml:"output"`
}

// TelemetryConfig controls OpenTelemetry distributed tracing.
// When enabled, one span is emitted per PDU processed and per SPF run,
// exported to an OTLP-compatible collector.
type TelemetryConfig struct {
	// Enabled controls whether distributed tracing is enabled.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Endpoint is the OTLP collector endpoint (host:port).
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`

	// Insecure controls whether to use an insecure (non-TLS) connection.
	Insecure bool `mapstructure:"insecure" yaml:"insecure"`

	// SampleRate controls the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" validate:"omitempty,gte=0,lte=1" yaml:"sample_rate"`

	// Profiling contains Pyroscope continuous profiling configuration.
	Profiling ProfilingConfig `mapstructure:"profiling" yaml:"profiling"`
}

// ProfilingConfig controls Pyroscope continuous profiling.
type ProfilingConfig struct {
	Enabled      bool     `mapstructure:"enabled" yaml:"enabled"`
	Endpoint     string   `mapstructure:"endpoint" yaml:"endpoint"`
	ProfileTypes []string `mapstructure:"profile_types" yaml:"profile_types"`
}

// MetricsConfig configures the Prometheus metrics HTTP server.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`
}

// NorthboundConfig configures the northbound REST API server.
type NorthboundConfig struct {
	// Enabled controls whether the northbound API server is started.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Port is the HTTP port for the northbound API.
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535" yaml:"port"`

	// JWTSecretEnv is the name of the environment variable holding the
	// bearer-token signing secret. Never stored in the config file itself.
	JWTSecretEnv string `mapstructure:"jwt_secret_env" yaml:"jwt_secret_env"`

	// JWTSharedSecretHashEnv is the name of the environment variable
	// holding a bcrypt hash (api.HashSharedSecret) of the secret clients
	// present to /auth/token. Optional: when unset, clients present the
	// signing secret itself (JWTSecretEnv) and it is compared directly.
	// Setting this lets the pre-shared client secret be rotated or be a
	// different value than the signing key, without storing it in
	// cleartext next to it.
	JWTSharedSecretHashEnv string `mapstructure:"jwt_shared_secret_hash_env" yaml:"jwt_shared_secret_hash_env,omitempty"`

	// ConfigFile, if set, is watched by pkg/northbound/file via fsnotify
	// and its changes are ingested as the same ordered (path, op, value)
	// delta stream the REST surface produces.
	ConfigFile string `mapstructure:"config_file" yaml:"config_file,omitempty"`
}

// OSPFInstanceConfig configures a single OSPFv2 or OSPFv3 instance.
type OSPFInstanceConfig struct {
	// Name identifies the instance (VRF-scoped in a future multi-VRF build).
	Name string `mapstructure:"name" validate:"required" yaml:"name"`

	// Version selects ospfv2 or ospfv3.
	Version string `mapstructure:"version" validate:"required,oneof=ospfv2 ospfv3" yaml:"version"`

	// RouterID overrides Config.RouterID for this instance, if set.
	RouterID string `mapstructure:"router_id" validate:"omitempty,ipv4" yaml:"router_id,omitempty"`

	// Areas lists the areas this instance participates in.
	Areas []OSPFAreaConfig `mapstructure:"areas" yaml:"areas"`
}

// OSPFAreaConfig configures a single OSPF area and its interfaces.
type OSPFAreaConfig struct {
	ID         string               `mapstructure:"id" validate:"required" yaml:"id"`
	Stub       bool                 `mapstructure:"stub" yaml:"stub,omitempty"`
	Interfaces []OSPFInterfaceConfig `mapstructure:"interfaces" yaml:"interfaces"`
}

// OSPFInterfaceConfig configures a single OSPF-enabled interface.
type OSPFInterfaceConfig struct {
	Name           string        `mapstructure:"name" validate:"required" yaml:"name"`
	HelloInterval  time.Duration `mapstructure:"hello_interval" yaml:"hello_interval,omitempty"`
	DeadInterval   time.Duration `mapstructure:"dead_interval" yaml:"dead_interval,omitempty"`
	Priority       uint8         `mapstructure:"priority" yaml:"priority,omitempty"`
	Cost           uint16        `mapstructure:"cost" yaml:"cost,omitempty"`
	Passive        bool          `mapstructure:"passive" yaml:"passive,omitempty"`
	AuthKeychain   string        `mapstructure:"auth_keychain" yaml:"auth_keychain,omitempty"`
}

// ISISInstanceConfig configures a single IS-IS instance.
type ISISInstanceConfig struct {
	Name       string              `mapstructure:"name" validate:"required" yaml:"name"`
	SystemID   string              `mapstructure:"system_id" validate:"required" yaml:"system_id"`
	Levels     string              `mapstructure:"levels" validate:"required,oneof=level-1 level-2 level-1-2" yaml:"levels"`
	AreaAddrs  []string            `mapstructure:"area_addresses" validate:"required,min=1" yaml:"area_addresses"`
	Interfaces []ISISInterfaceConfig `mapstructure:"interfaces" yaml:"interfaces"`
}

// ISISInterfaceConfig configures a single IS-IS-enabled interface.
type ISISInterfaceConfig struct {
	Name           string        `mapstructure:"name" validate:"required" yaml:"name"`
	CircuitType    string        `mapstructure:"circuit_type" validate:"omitempty,oneof=broadcast point-to-point" yaml:"circuit_type,omitempty"`
	HelloInterval  time.Duration `mapstructure:"hello_interval" yaml:"hello_interval,omitempty"`
	HoldTime       time.Duration `mapstructure:"hold_time" yaml:"hold_time,omitempty"`
	Metric         uint32        `mapstructure:"metric" yaml:"metric,omitempty"`
	Passive        bool          `mapstructure:"passive" yaml:"passive,omitempty"`
	AuthKeychain   string        `mapstructure:"auth_keychain" yaml:"auth_keychain,omitempty"`
}

// BGPConfig configures the BGP speaker.
type BGPConfig struct {
	Enabled         bool               `mapstructure:"enabled" yaml:"enabled"`
	LocalAS         uint32             `mapstructure:"local_as" yaml:"local_as,omitempty"`
	RouterID        string             `mapstructure:"router_id" validate:"omitempty,ipv4" yaml:"router_id,omitempty"`
	MaxMessageSize  bytesize.ByteSize  `mapstructure:"max_message_size" yaml:"max_message_size,omitempty"`
	Neighbors       []BGPNeighborConfig `mapstructure:"neighbors" yaml:"neighbors,omitempty"`
}

// BGPNeighborConfig configures a single BGP neighbor.
type BGPNeighborConfig struct {
	Address       string        `mapstructure:"address" validate:"required,ip" yaml:"address"`
	PeerAS        uint32        `mapstructure:"peer_as" yaml:"peer_as"`
	HoldTime      time.Duration `mapstructure:"hold_time" yaml:"hold_time,omitempty"`
	AuthKeychain  string        `mapstructure:"auth_keychain" yaml:"auth_keychain,omitempty"`
	AllowASIn     int           `mapstructure:"allow_as_in" yaml:"allow_as_in,omitempty"`
}

// SegmentRoutingConfig configures the SR global block shared via the ibus
// keychain/SR snapshot.
type SegmentRoutingConfig struct {
	Enabled     bool               `mapstructure:"enabled" yaml:"enabled"`
	GlobalBlock SRLabelRangeConfig `mapstructure:"global_block" yaml:"global_block,omitempty"`
}

// SRLabelRangeConfig configures a single MPLS label range.
type SRLabelRangeConfig struct {
	Start uint32 `mapstructure:"start" validate:"omitempty,min=16" yaml:"start,omitempty"`
	End   uint32 `mapstructure:"end" yaml:"end,omitempty"`
}

// Load loads configuration from file, environment, and defaults.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (RIBD_*)
//  2. Configuration file
//  3. Default values
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setupViper(v, configPath)

	configFileFound, err := readConfigFile(v)
	if err != nil {
		return nil, err
	}

	if !configFileFound {
		cfg := GetDefaultConfig()
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(configDecodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration with helpful error messages, checking whether
// the config file exists first.
func MustLoad(configPath string) (*Config, error) {
	if configPath == "" {
		if !DefaultConfigExists() {
			return nil, fmt.Errorf("no configuration file found at default location: %s\n\n"+
				"Please initialize a configuration file first:\n"+
				"  ribd init\n\n"+
				"Or specify a custom config file:\n"+
				"  ribd <command> --config /path/to/config.yaml",
				GetDefaultConfigPath())
		}
		configPath = GetDefaultConfigPath()
	} else {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s\n\n"+
				"Please create the configuration file:\n"+
				"  ribd init --config %s",
				configPath, configPath)
		}
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to the specified file path in YAML form.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setupViper configures viper with environment variable and config file settings.
func setupViper(v *viper.Viper, configPath string) {
	// Environment variables use the RIBD_ prefix, e.g. RIBD_LOGGING_LEVEL=DEBUG.
	v.SetEnvPrefix("RIBD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		configDir := getConfigDir()
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
}

// readConfigFile reads the configuration file if it exists.
func readConfigFile(v *viper.Viper) (bool, error) {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return false, nil
		}
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config file: %w", err)
	}

	return true, nil
}

// configDecodeHooks returns the combined decode hook for custom types.
func configDecodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		byteSizeDecodeHook(),
		durationDecodeHook(),
	)
}

// byteSizeDecodeHook converts strings/numbers to bytesize.ByteSize, enabling
// human-readable sizes like "1400" or "9000" (bytes) for BGP's max message size.
func byteSizeDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(bytesize.ByteSize(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return bytesize.ParseByteSize(v)
		case int:
			return bytesize.ByteSize(v), nil
		case int64:
			return bytesize.ByteSize(v), nil
		case uint64:
			return bytesize.ByteSize(v), nil
		case float64:
			return bytesize.ByteSize(v), nil
		default:
			return data, nil
		}
	}
}

// durationDecodeHook converts strings to time.Duration, e.g. "30s", "5m", "1h".
func durationDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			return time.ParseDuration(v)
		case int:
			return time.Duration(v), nil
		case int64:
			return time.Duration(v), nil
		case float64:
			return time.Duration(v), nil
		default:
			return data, nil
		}
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "ribd")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "ribd")
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() string {
	return filepath.Join(getConfigDir(), "config.yaml")
}

// DefaultConfigExists checks if a config file exists at the default location.
func DefaultConfigExists() bool {
	path := GetDefaultConfigPath()
	_, err := os.Stat(path)
	return err == nil
}

// GetConfigDir returns the configuration directory path (exposed for the init command).
func GetConfigDir() string {
	return getConfigDir()
}
