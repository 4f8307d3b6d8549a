package domain

import "errors"

var (
	ErrNotFound         = errors.New("review not found")
	ErrAlreadyReviewed  = errors.New("booking already reviewed")
	ErrBookingNotDone   = errors.New("booking is not completed")
	ErrNotBookingVenue  = errors.New("booking belongs to another venue")
	ErrRatingOutOfRange = errors.New("rating_out_of_range")
)
