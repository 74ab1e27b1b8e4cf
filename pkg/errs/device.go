package errs

import "errors"

var (
	ErrDeviceNotFound       error = errors.New("device not found")
	ErrDeviceAlreadyExists  error = errors.New("device already exists")
	ErrDeviceAlreadyClaimed error = errors.New("device already claimed by another account")
	ErrDeviceNotClaimed     error = errors.New("device is not claimed")
)
