package errors

import "errors"

var (
	ErrTemplateNotFound = errors.New("availability template not found")

	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)
