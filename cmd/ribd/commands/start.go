package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/routeflow/ribd/internal/logger"
	"github.com/routeflow/ribd/internal/telemetry"
	"github.com/routeflow/ribd/pkg/config"
	"github.com/routeflow/ribd/pkg/config/store"
	"github.com/routeflow/ribd/pkg/metrics"
	"github.com/routeflow/ribd/pkg/northbound"
	"github.com/routeflow/ribd/pkg/northbound/api"
	"github.com/routeflow/ribd/pkg/northbound/file"

	// Import prometheus metrics to register init() functions.
	_ "github.com/routeflow/ribd/pkg/metrics/prometheus"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ribd daemon",
	Long: `Start ribd: the control-plane store, the northbound API server and
(if configured) the on-disk config file watcher.

By default the daemon runs in the background. Use --foreground to run
under a process supervisor or for debugging.

Examples:
  # Start in background (default)
  ribd start

  # Start in foreground
  ribd start --foreground

  # Start with a custom config file
  ribd start --config /etc/ribd/config.yaml

  # Start with environment variable overrides
  RIBD_LOGGING_LEVEL=DEBUG ribd start --foreground`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "path to PID file (default: $XDG_STATE_HOME/ribd/ribd.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "path to log file for daemon mode (default: $XDG_STATE_HOME/ribd/ribd.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetryCfg := telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "ribd",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	telemetryShutdown, err := telemetry.Init(ctx, telemetryCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	profilingCfg := telemetry.ProfilingConfig{
		Enabled:        cfg.Telemetry.Profiling.Enabled,
		ServiceName:    "ribd",
		ServiceVersion: Version,
		Endpoint:       cfg.Telemetry.Profiling.Endpoint,
		ProfileTypes:   cfg.Telemetry.Profiling.ProfileTypes,
	}
	profilingShutdown, err := telemetry.InitProfiling(profilingCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	logger.Info("ribd starting", "version", Version, "commit", Commit)
	logger.Info("configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("telemetry disabled")
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		registry := metrics.InitRegistry()
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
		logger.Info("metrics server listening", "port", cfg.Metrics.Port)
	} else {
		logger.Info("metrics collection disabled")
	}

	cpStore, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize control-plane store: %w", err)
	}
	defer func() { _ = cpStore.Close() }()
	logger.Info("control-plane store ready", "type", cfg.Database.Type)

	registry := northbound.NewRegistry()

	var tree api.ConfigTree = configSnapshot{cfg: cfg}
	var watcher *file.Watcher
	if cfg.Northbound.ConfigFile != "" {
		watcher, err = file.NewWatcher(cfg.Northbound.ConfigFile, registry)
		if err != nil {
			return fmt.Errorf("failed to initialize config file watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start config file watcher: %w", err)
		}
		defer watcher.Stop()
		tree = watcher
		logger.Info("watching config file", "path", cfg.Northbound.ConfigFile)
	}

	var httpServer *http.Server
	if cfg.Northbound.Enabled {
		var jwtSvc *api.JWTService
		secret := os.Getenv(cfg.Northbound.JWTSecretEnv)
		if secret != "" {
			var sharedSecretHash string
			if cfg.Northbound.JWTSharedSecretHashEnv != "" {
				sharedSecretHash = os.Getenv(cfg.Northbound.JWTSharedSecretHashEnv)
			}
			jwtSvc, err = api.NewJWTService(api.JWTConfig{
				Secret:           secret,
				Issuer:           "ribd",
				SharedSecretHash: sharedSecretHash,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize JWT service: %w", err)
			}
		} else {
			logger.Warn("northbound JWT secret env var unset, API will run without bearer auth",
				"env", cfg.Northbound.JWTSecretEnv)
		}

		handler := api.NewRouter(api.Router{
			Registry:   registry,
			Tree:       tree,
			JWT:        jwtSvc,
			SchemaType: &config.Config{},
			StartedAt:  time.Now(),
		})

		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Northbound.Port),
			Handler: handler,
		}
		go func() {
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("northbound API server error", "error", err)
			}
		}()
		logger.Info("northbound API server listening", "port", cfg.Northbound.Port)
	} else {
		logger.Info("northbound API server disabled")
	}

	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("ribd is running, press Ctrl+C to stop")
	<-sigChan
	signal.Stop(sigChan)
	logger.Info("shutdown signal received, initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("northbound API server shutdown error", "error", err)
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", "error", err)
		}
	}

	logger.Info("ribd stopped gracefully")
	return nil
}

// configSnapshot is the ConfigTree fallback used when no on-disk config
// file watcher is running: it serves the loaded static configuration as
// its own /api/v1/config read, with no delta ingestion.
type configSnapshot struct {
	cfg *config.Config
}

func (c configSnapshot) Snapshot() any { return c.cfg }

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}

// startDaemon starts the daemon as a detached background process.
func startDaemon() error {
	stateDir := GetDefaultStateDir()
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	pidPath := pidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	if _, err := os.Stat(pidPath); err == nil {
		pidData, err := os.ReadFile(pidPath)
		if err == nil {
			var pid int
			if _, err := fmt.Sscanf(string(pidData), "%d", &pid); err == nil {
				if process, err := os.FindProcess(pid); err == nil {
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("ribd is already running (PID %d)\nUse 'ribd stop' to stop the running instance", pid)
					}
				}
			}
		}
		_ = os.Remove(pidPath)
	}

	logPath := logFile
	if logPath == "" {
		logPath = GetDefaultLogFile()
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}

	cmd := exec.Command(executable, daemonArgs...)

	logFileHandle, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	cmd.Stdout = logFileHandle
	cmd.Stderr = logFileHandle
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		_ = logFileHandle.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}
	_ = logFileHandle.Close()

	fmt.Printf("ribd started in background (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)
	fmt.Println("\nUse 'ribd stop' to stop the daemon")
	fmt.Println("Use 'ribd status' to check daemon status")

	return nil
}
