package errs

import "errors"

var (
	ErrMissingField    = errors.New("missing 'name' or 'score' in request")
	ErrInvalidScore    = errors.New("invalid data format for 'score' or request body")
	ErrScoreOutOfRange = errors.New("score out of range")
)
