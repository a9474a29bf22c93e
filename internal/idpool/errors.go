package idpool

import "codeberg.org/avhel/gpucoolctl/internal/errors"

const (
	// ErrExhausted is reported when every identifier in the pool is in use.
	ErrExhausted = errors.ErrorCode("idpool_exhausted")
)
