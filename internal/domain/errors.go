package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrProviderFailure   = errors.New("provider failure")
	ErrParseFailed       = errors.New("parse failed")
	ErrPersistenceFailed = errors.New("persistence failed")
	ErrUnsupportedModel  = errors.New("unsupported model")
)
