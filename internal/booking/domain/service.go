package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// BookSlot places a pending booking against an open slot and closes
	// the slot in the same transaction.
	BookSlot(ctx context.Context, venueID, slotID snowflake.ID) (*Booking, error)
	// Confirm and Decline are performer actions on a pending booking.
	// Declining reopens the slot.
	Confirm(ctx context.Context, performerID, bookingID snowflake.ID) (*Booking, error)
	Decline(ctx context.Context, performerID, bookingID snowflake.ID) (*Booking, error)
	// Complete marks a confirmed booking as performed once its date has
	// passed. Either party may complete.
	Complete(ctx context.Context, userSide Side, partyID, bookingID snowflake.ID) (*Booking, error)
	// Cancel aborts a pending or confirmed booking and reopens the slot.
	Cancel(ctx context.Context, userSide Side, partyID, bookingID snowflake.ID) (*Booking, error)
	ByID(ctx context.Context, id snowflake.ID) (*Booking, error)
	ListForVenue(ctx context.Context, venueID snowflake.ID) ([]Booking, error)
	ListForPerformer(ctx context.Context, performerID snowflake.ID) ([]Booking, error)
}

// Side identifies which party of a booking is acting.
type Side string

const (
	SideVenue     Side = "venue"
	SidePerformer Side = "performer"
)
