package application

import "errors"

// ErrInvalidConfig wraps validation failures of submitted settings.
var ErrInvalidConfig = errors.New("invalid app config")
