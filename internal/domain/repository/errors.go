package repository

import "errors"

// Repository-layer sentinel errors, checked with errors.Is by callers that
// need to distinguish "not found" from other storage failures.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrDuplicateKey     = errors.New("duplicate key constraint")
	ErrInvalidInput     = errors.New("invalid input data")
	ErrConnectionFailed = errors.New("database connection failed")
)
