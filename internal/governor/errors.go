package governor

import "codeberg.org/avhel/gpucoolctl/internal/errors"

const (
	ErrNoThresholds           = errors.ErrorCode("governor_no_thresholds")
	ErrThresholdsNotAscending = errors.ErrorCode("governor_thresholds_not_ascending")
	ErrInvalidHysteresis      = errors.ErrorCode("governor_invalid_hysteresis")
)
