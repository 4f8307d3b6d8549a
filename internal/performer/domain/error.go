package domain

import "errors"

var (
	ErrNotFound         = errors.New("performer not found")
	ErrInvalidStageName = errors.New("invalid_stage_name")
)
