package errs

import "errors"

var (
	ErrValidateBadRequest error = errors.New("struct validation error")
)
