package domain

import "errors"

var (
	ErrNotFound    = errors.New("venue not found")
	ErrNameTaken   = errors.New("venue name already taken")
	ErrInvalidName = errors.New("invalid_name")
)
