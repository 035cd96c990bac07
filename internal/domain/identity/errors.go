package identity

import "errors"

var (
	ErrMissingIdentity = errors.New("please log in to continue")
	ErrInvalidRole     = errors.New("role is not allowed to use the time tracker")
)
