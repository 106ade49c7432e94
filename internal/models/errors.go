package models

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrEmailTaken    = errors.New("email already exists")
	ErrInvalidAccess = errors.New("unknown destination in access list")
)
