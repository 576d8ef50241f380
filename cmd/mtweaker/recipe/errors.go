package recipe

import "errors"

var (
	ErrEmptyDocument   = errors.New("no scripts defined")
	ErrUnknownKind     = errors.New("unknown statement kind")
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidField    = errors.New("invalid field value")
	ErrDuplicateScript = errors.New("duplicate script name")
)
