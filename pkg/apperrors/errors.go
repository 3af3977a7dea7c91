package apperrors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrInvalidCard           = errors.New("invalid card")
	ErrNoProviderConfigured  = errors.New("no text provider configured")
	ErrAllProvidersExhausted = errors.New("all text providers exhausted")
)
