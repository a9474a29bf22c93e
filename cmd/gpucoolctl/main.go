package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/avhel/gpucoolctl/internal/config"
	"codeberg.org/avhel/gpucoolctl/internal/cooling"
	"codeberg.org/avhel/gpucoolctl/internal/governor"
	"codeberg.org/avhel/gpucoolctl/internal/gpufreq"
	"codeberg.org/avhel/gpucoolctl/internal/idpool"
	"codeberg.org/avhel/gpucoolctl/internal/logger"
	"codeberg.org/avhel/gpucoolctl/internal/pid"
	"codeberg.org/avhel/gpucoolctl/internal/registry"
	"codeberg.org/avhel/gpucoolctl/internal/telemetry"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer pid.Remove()

	provider, err := gpufreq.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize GPU frequency provider")
	}
	defer provider.Shutdown()

	cooling.InstallFrequencyCallback(provider.CurrentClock)

	registrar := cooling.NewRegistrar(registry.NewDeviceRegistry(), idpool.New(idpool.DefaultCapacity))
	device := cooling.NewDevice(provider.Callbacks())
	if err := registrar.Register(device); err != nil {
		logger.Fatal().Err(err).Msg("failed to register cooling device")
	}
	defer registrar.Unregister(device)

	gov, err := governor.New(cfg.Thresholds, cfg.Hysteresis)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize governor")
	}

	collector, err := telemetry.NewService(telemetry.Config{
		Enabled: cfg.Telemetry,
		DBPath:  cfg.TelemetryDB,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer collector.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := loop(ctx, device, provider, gov, collector); err != nil {
		logger.Error().Err(err).Msg("error in control loop")
	}
	logger.Info().Msg("Exiting...")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func loop(
	ctx context.Context,
	device *cooling.Device,
	provider *gpufreq.Provider,
	gov *governor.Governor,
	collector telemetry.Collector,
) error {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if cfg.Monitor {
		logger.Info().Msg("Monitor mode activated. Logging GPU status...")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := tick(ctx, device, provider, gov, collector); err != nil {
				return err
			}
		}
	}
}

func tick(
	ctx context.Context,
	device *cooling.Device,
	provider *gpufreq.Provider,
	gov *governor.Governor,
	collector telemetry.Collector,
) error {
	temperature, err := provider.Temperature()
	if err != nil {
		return err
	}

	state := gov.Observe(temperature)
	if !cfg.Monitor {
		if err := device.SetState(state); err != nil {
			return err
		}
	}

	maxState, err := device.MaxState()
	if err != nil {
		return err
	}

	level := maxState - 1 - state
	if level < 0 || level > maxState {
		level = -1
	}

	frequency, hasFrequency := cooling.CurrentFrequency()

	logger.Info().
		Int("temperature", temperature).
		Int("state", state).
		Int("level", level).
		Int("frequency", frequency).
		Msg("GPU status")

	snapshot := &telemetry.Snapshot{
		Timestamp:      time.Now(),
		Device:         device.Name(),
		Temperature:    temperature,
		RequestedState: state,
		MaxState:       maxState,
		Level:          level,
		Frequency:      frequency,
		HasFrequency:   hasFrequency,
	}
	if err := collector.Record(ctx, snapshot); err != nil {
		logger.Warn().Err(err).Msg("failed to record telemetry")
	}

	return nil
}
