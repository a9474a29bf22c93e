package gpufreq

import (
	"codeberg.org/avhel/gpucoolctl/internal/cooling"
	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"codeberg.org/avhel/gpucoolctl/internal/logger"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	// levelCount is the number of discrete frequency levels exposed to
	// the cooling device.
	levelCount = 8
	// minClockMHz is the lowest clock any level locks to. Conservative
	// floor across GeForce generations.
	minClockMHz = 300
)

// Provider exposes the GPU's graphics clock range as a discrete
// frequency-level table and implements the cooling callbacks over it.
// Level 0 is the lowest clock; higher levels mean higher performance.
type Provider struct {
	device nvml.Device
	clocks []uint32 // ascending MHz, level i runs at clocks[i]
}

func New() (*Provider, error) {
	errFactory := errors.New()

	if ret := nvml.Init(); !IsNVMLSuccess(ret) {
		return nil, errFactory.Wrap(ErrInitFailed, newNVMLError(ret))
	}

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if !IsNVMLSuccess(ret) {
		nvml.Shutdown()
		return nil, errFactory.Wrap(ErrDeviceNotFound, newNVMLError(ret))
	}

	if name, ret := device.GetName(); IsNVMLSuccess(ret) {
		logger.Info().Msgf("Detected GPU: %v", name)
	} else {
		logger.Warn().Msgf("Failed to get GPU name: %v", nvml.ErrorString(ret))
	}

	p := &Provider{device: device}
	if err := p.initLevels(); err != nil {
		nvml.Shutdown()
		return nil, err
	}

	return p, nil
}

func (p *Provider) initLevels() error {
	errFactory := errors.New()

	maxClock, ret := p.device.GetMaxClockInfo(nvml.CLOCK_GRAPHICS)
	if !IsNVMLSuccess(ret) {
		return errFactory.Wrap(ErrClockTableFailed, newNVMLError(ret))
	}
	if maxClock <= minClockMHz {
		return errFactory.WithData(ErrNoLevels, maxClock)
	}

	p.clocks = buildLevelTable(minClockMHz, maxClock, levelCount)

	logger.Debug().Msgf("Frequency levels: %d (%d-%d MHz)",
		len(p.clocks), p.clocks[0], p.clocks[len(p.clocks)-1])

	return nil
}

// Shutdown releases any clock lock and tears down NVML.
func (p *Provider) Shutdown() error {
	errFactory := errors.New()

	if ret := p.device.ResetGpuLockedClocks(); !IsNVMLSuccess(ret) {
		logger.Warn().Msgf("Failed to reset locked clocks: %v", nvml.ErrorString(ret))
	}

	if ret := nvml.Shutdown(); !IsNVMLSuccess(ret) {
		return errFactory.Wrap(ErrShutdownFailed, newNVMLError(ret))
	}

	return nil
}

// Callbacks wires the provider into a cooling device.
func (p *Provider) Callbacks() cooling.Callbacks {
	return cooling.Callbacks{
		MaxLevel:     p.MaxLevel,
		CurrentLevel: p.CurrentLevel,
		SetLevel:     p.SetLevel,
	}
}

// MaxLevel returns the number of frequency levels.
func (p *Provider) MaxLevel() int {
	return len(p.clocks)
}

// CurrentLevel maps the current graphics clock to the nearest level.
func (p *Provider) CurrentLevel() int {
	clock, ret := p.device.GetClockInfo(nvml.CLOCK_GRAPHICS)
	if !IsNVMLSuccess(ret) {
		logger.Warn().Msgf("Failed to read graphics clock: %v", nvml.ErrorString(ret))
		return 0
	}

	return nearestLevel(p.clocks, clock)
}

// SetLevel locks the GPU to the clock at the given level. Out-of-table
// levels are clamped; the cooling device already drops requests outside
// the shared index space.
func (p *Provider) SetLevel(level int) {
	if len(p.clocks) == 0 {
		return
	}
	if level < 0 {
		level = 0
	}
	if level > len(p.clocks)-1 {
		level = len(p.clocks) - 1
	}

	clock := p.clocks[level]
	if ret := p.device.SetGpuLockedClocks(clock, clock); !IsNVMLSuccess(ret) {
		logger.Warn().Msgf("Failed to lock clocks to %d MHz: %v", clock, nvml.ErrorString(ret))
		return
	}

	logger.Debug().Msgf("Locked clocks: level %d (%d MHz)", level, clock)
}

// CurrentClock returns the current graphics clock in MHz, for the ambient
// frequency-callback slot.
func (p *Provider) CurrentClock() int {
	clock, ret := p.device.GetClockInfo(nvml.CLOCK_GRAPHICS)
	if !IsNVMLSuccess(ret) {
		return 0
	}

	return int(clock)
}

// Temperature returns the GPU core temperature in Celsius.
func (p *Provider) Temperature() (int, error) {
	errFactory := errors.New()

	temp, ret := p.device.GetTemperature(nvml.TEMPERATURE_GPU)
	if !IsNVMLSuccess(ret) {
		return 0, errFactory.Wrap(ErrTemperatureReadFailed, newNVMLError(ret))
	}

	return int(temp), nil
}
