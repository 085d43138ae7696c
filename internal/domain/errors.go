package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateName  = errors.New("name already exists")
	ErrDuplicatePhone = errors.New("phone already exists")
	ErrUnauthorized   = errors.New("unauthorized")
)
