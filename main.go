package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/neoxid-es/pyspectator/api"
	"github.com/neoxid-es/pyspectator/internal/config"
	"github.com/neoxid-es/pyspectator/internal/disk"
	"github.com/neoxid-es/pyspectator/internal/memory"
	"github.com/neoxid-es/pyspectator/internal/monitor"
	"github.com/neoxid-es/pyspectator/internal/platform"
	"github.com/neoxid-es/pyspectator/internal/sysstats"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to YAML config file")
	bind := flag.String("bind", "", "Override bind address")
	port := flag.Int("port", 0, "Override port")
	interval := flag.Duration("interval", 0, "Override sampling interval")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *bind != "" {
		cfg.Bind = *bind
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *interval != 0 {
		cfg.Interval = *interval
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Validate platform support
	if err := platform.ValidateSupport(); err != nil {
		log.Fatalf("Platform validation failed: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	monitors, err := startMonitors(cfg, sysstats.NewProvider(), logger)
	if err != nil {
		logger.Fatal("failed to start monitors", zap.Error(err))
	}

	server := api.NewServer(monitors, logger)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		if err := server.Shutdown(); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
		logger.Sync()
		os.Exit(0)
	}()

	if err := server.Start(cfg.Address()); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func startMonitors(cfg *config.Config, provider sysstats.Provider, logger *zap.Logger) (api.Monitors, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := []monitor.Option{
		monitor.WithLogger(logger),
		monitor.WithTickTimeout(cfg.TickTimeout),
	}

	var monitors api.Monitors
	var err error

	monitors.Virtual, err = memory.NewVirtual(ctx, provider, cfg.Interval, opts...)
	if err != nil {
		return monitors, err
	}

	if cfg.Swap {
		monitors.Swap, err = memory.NewSwap(ctx, provider, cfg.Interval, opts...)
		if err != nil {
			monitors.Stop()
			return api.Monitors{}, err
		}
	}

	if len(cfg.Devices) == 0 {
		monitors.Disks, err = disk.ConnectedDevices(ctx, provider, cfg.Interval, opts...)
		if err != nil {
			monitors.Stop()
			return api.Monitors{}, err
		}
	} else {
		for _, device := range cfg.Devices {
			m, err := disk.New(ctx, provider, cfg.Interval, device, opts...)
			if err != nil {
				monitors.Stop()
				return api.Monitors{}, err
			}
			monitors.Disks = append(monitors.Disks, m)
		}
	}

	logger.Info("monitors started",
		zap.Duration("interval", cfg.Interval),
		zap.Bool("swap", monitors.Swap != nil),
		zap.Int("disks", len(monitors.Disks)),
	)
	return monitors, nil
}
