package async

import "errors"

var (
	ErrTimeout   = errors.New("async: operation timed out waiting for future completion")
	ErrPanic     = errors.New("async: computation panicked")
	ErrNilFuture = errors.New("async: nil future")
)
