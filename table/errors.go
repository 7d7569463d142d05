package table

import "errors"

// Common errors
var (
	ErrHeaderMismatch = errors.New("table header mismatch")
	ErrInvalidRow     = errors.New("invalid table row")
	ErrInvalidInput   = errors.New("invalid input")
)
