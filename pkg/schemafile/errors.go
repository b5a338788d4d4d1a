package schemafile

import "errors"

var (
	ErrUnknownRule      = errors.New("unknown rule")
	ErrInvalidArgs      = errors.New("invalid rule arguments")
	ErrInvalidSchema    = errors.New("invalid schema definition")
	ErrDuplicateSchema  = errors.New("duplicate schema name")
	ErrDuplicateRule    = errors.New("duplicate rule builder")
	ErrInvalidDocument  = errors.New("document must be a JSON or YAML object")
	ErrNoLookupBackends = errors.New("lookup rule used without a configured backend")
)
