package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrNoInput         = errors.New("no input records")
	ErrMalformedRecord = errors.New("malformed record")
	ErrEmptyGeneration = errors.New("empty generation")
	ErrTooShort        = errors.New("text too short")
	ErrExtractorFailed = errors.New("extractor failed")
)
