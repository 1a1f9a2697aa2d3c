package errors

import "errors"

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrOfferingNotFound = errors.New("offering not found")
	ErrInvalidID        = errors.New("invalid id format")
)
