package router

import "errors"

// Sentinel kinds for route declaration and request decoding.
var (
	ErrValidation     = errors.New("request validation failed")
	ErrInvalidRoute   = errors.New("invalid route")
	ErrDuplicateRoute = errors.New("duplicate route")
)
