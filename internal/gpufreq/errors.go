package gpufreq

import (
	"codeberg.org/avhel/gpucoolctl/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

const (
	// Initialization and lifecycle errors
	ErrInitFailed     = errors.ErrorCode("gpufreq_init_failed")
	ErrDeviceNotFound = errors.ErrorCode("gpufreq_device_not_found")
	ErrShutdownFailed = errors.ErrorCode("gpufreq_shutdown_failed")

	// Clock table errors
	ErrClockTableFailed = errors.ErrorCode("gpufreq_clock_table_failed")
	ErrNoLevels         = errors.ErrorCode("gpufreq_no_levels")

	// Temperature errors
	ErrTemperatureReadFailed = errors.ErrorCode("gpufreq_temperature_read_failed")
)

// nvmlError represents an NVML-specific error
type nvmlError struct {
	ret nvml.Return
}

func (e *nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

// newNVMLError creates an error from an NVML return code
func newNVMLError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}

	return &nvmlError{ret: ret}
}

// IsNVMLSuccess checks if a Return value indicates success
func IsNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}
