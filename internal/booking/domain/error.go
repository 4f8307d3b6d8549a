package domain

import "errors"

var (
	ErrNotFound          = errors.New("booking not found")
	ErrSlotUnavailable   = errors.New("slot is no longer available")
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrNotParticipant    = errors.New("booking belongs to another party")
	ErrNotYetPerformed   = errors.New("booking date has not passed")
)
