// Package apperr holds the sentinel errors shared by the server app layers.
package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("invalid request")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrInvalidToken       = errors.New("could not validate credentials")
)
