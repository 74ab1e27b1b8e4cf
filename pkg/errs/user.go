package errs

import "errors"

var (
	ErrUserNotFound       error = errors.New("user not found")
	ErrUserAlreadyExists  error = errors.New("user already exists")
	ErrInvalidCredentials error = errors.New("invalid credentials")
	ErrForbidden          error = errors.New("operation not allowed for this role")
)
