package patrol

import "errors"

// ErrInvalidConfig is wrapped by every configuration rejection from New.
var ErrInvalidConfig = errors.New("invalid patrol config")

// IsInvalidConfig reports whether err came from configuration validation.
func IsInvalidConfig(err error) bool { return errors.Is(err, ErrInvalidConfig) }
