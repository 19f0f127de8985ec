package core

import (
	"errors"
)

var (
	ErrPipelineShuttingDown = errors.New("pipeline is shutting down, no further work accepted")
	ErrUnknown              = errors.New("unknown")
)
