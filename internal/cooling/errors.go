package cooling

import "codeberg.org/avhel/gpucoolctl/internal/errors"

const (
	// Registration errors
	ErrNilDevice         = errors.ErrorCode("cooling_nil_device")
	ErrAlreadyRegistered = errors.ErrorCode("cooling_already_registered")
	ErrRegisterFailed    = errors.ErrorCode("cooling_register_failed")
	ErrPublishFailed     = errors.ErrorCode("cooling_publish_failed")

	// State query errors
	ErrStateUnsupported = errors.ErrorCode("cooling_state_query_unsupported")
)
