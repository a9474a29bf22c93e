package registry

import "codeberg.org/avhel/gpucoolctl/internal/errors"

const (
	ErrEmptyName     = errors.ErrorCode("registry_empty_name")
	ErrNilController = errors.ErrorCode("registry_nil_controller")
	ErrDuplicateName = errors.ErrorCode("registry_duplicate_name")
	ErrUnknownDevice = errors.ErrorCode("registry_unknown_device")
	ErrInvalidHandle = errors.ErrorCode("registry_invalid_handle")
)
