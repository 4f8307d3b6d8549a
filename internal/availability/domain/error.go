package domain

import "errors"

var (
	ErrSlotNotFound  = errors.New("availability slot not found")
	ErrSlotInPast    = errors.New("slot date is in the past")
	ErrSlotOverlap   = errors.New("slot overlaps an existing slot")
	ErrInvalidWindow = errors.New("invalid slot window")
	ErrSlotBooked    = errors.New("slot is no longer open")
	ErrNotSlotOwner  = errors.New("slot belongs to another performer")
)
