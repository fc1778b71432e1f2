// Command enstoctl is an interactive shell for Ensto BLE thermostats.
//
// It scans for devices, pairs with a thermostat in pairing mode
// (BLE reset pressed until the blue LED blinks), and then exposes the
// device's settings, calendar, vacation window and consumption history
// as shell commands. Pairing credentials persist across runs, so a
// device only needs its pairing button once.
//
// Usage:
//
//	enstoctl [flags]
//
// Flags:
//
//	-config string        Configuration file path (YAML)
//	-address string       Device address to connect to on startup
//	-state string         Credential store path (default ~/.enstoctl/devices.json)
//	-protocol-log string  Write protocol events to this file (CBOR)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-scan-timeout duration  Device discovery window (default 10s)
//
// Examples:
//
//	# Scan for thermostats and work interactively
//	enstoctl
//
//	# Connect straight to a known device with protocol logging
//	enstoctl -address 90:FD:9F:12:34:56 -protocol-log session.elog
//
//	# Load everything from a config file
//	enstoctl -config ~/.enstoctl/config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ensto-ble/ensto-go/cmd/enstoctl/interactive"
	"github.com/ensto-ble/ensto-go/pkg/log"
	"github.com/ensto-ble/ensto-go/pkg/persistence"
	"github.com/ensto-ble/ensto-go/pkg/transport"
)

// Config holds the shell configuration, from flags or a YAML file.
// Flags win over file values.
type Config struct {
	Address     string        `yaml:"address"`
	StatePath   string        `yaml:"state"`
	ProtocolLog string        `yaml:"protocol_log"`
	LogLevel    string        `yaml:"log_level"`
	ScanTimeout time.Duration `yaml:"scan_timeout"`
}

func main() {
	var (
		configFile  = flag.String("config", "", "Configuration file path (YAML)")
		address     = flag.String("address", "", "Device address to connect to on startup")
		statePath   = flag.String("state", "", "Credential store path")
		protocolLog = flag.String("protocol-log", "", "Write protocol events to this file (CBOR)")
		logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error")
		scanTimeout = flag.Duration("scan-timeout", 0, "Device discovery window")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "enstoctl: %v\n", err)
		os.Exit(1)
	}
	if *address != "" {
		cfg.Address = *address
	}
	if *statePath != "" {
		cfg.StatePath = *statePath
	}
	if *protocolLog != "" {
		cfg.ProtocolLog = *protocolLog
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *scanTimeout > 0 {
		cfg.ScanTimeout = *scanTimeout
	}
	applyDefaults(&cfg)

	logger := newLogger(cfg.LogLevel)

	var protocol log.Logger = log.NoopLogger{}
	if cfg.ProtocolLog != "" {
		fileLogger, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "enstoctl: open protocol log: %v\n", err)
			os.Exit(1)
		}
		defer fileLogger.Close()
		protocol = fileLogger
	}

	adapter := transport.NewBluetoothAdapter()
	if err := adapter.Enable(); err != nil {
		fmt.Fprintf(os.Stderr, "enstoctl: enable bluetooth adapter: %v\n", err)
		os.Exit(1)
	}

	store := persistence.NewFileStore(cfg.StatePath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	shell, err := interactive.New(interactive.Config{
		Adapter:        adapter,
		Credentials:    store,
		Logger:         logger,
		ProtocolLogger: protocol,
		ScanTimeout:    cfg.ScanTimeout,
		InitialAddress: cfg.Address,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "enstoctl: %v\n", err)
		os.Exit(1)
	}
	defer shell.Close()

	if err := shell.Run(ctx, cancel); err != nil {
		fmt.Fprintf(os.Stderr, "enstoctl: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the YAML configuration file, if one was given.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.StatePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.StatePath = filepath.Join(home, ".enstoctl", "devices.json")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ScanTimeout <= 0 {
		cfg.ScanTimeout = 10 * time.Second
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
