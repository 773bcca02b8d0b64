package config

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidBuildspec  = errors.New("buildspec object cannot be serialized")
	ErrUnsupportedFormat = errors.New("unsupported config file format")
	ErrBuildspecType     = errors.New("buildspec must be a string or an object")
)

// FieldError names the option that failed validation or resolution.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}
