package validator

import "errors"

var (
	// ErrUnknownPattern is returned by Pattern for a name that is not registered.
	ErrUnknownPattern = errors.New("validator: unknown pattern")

	// ErrUnknownKind is returned by ParseKind for an unsupported type name.
	ErrUnknownKind = errors.New("validator: unknown kind")
)
