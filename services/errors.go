package services

import "errors"

// Sentinel errors shared by every service. Controllers map them to HTTP
// status codes with errors.Is; anything else is treated as a 500.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)
