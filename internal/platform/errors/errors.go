package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDatabaseUnavailable = errors.New("database unavailable")
	ErrUnsupportedDriver   = errors.New("unsupported database driver")
)
