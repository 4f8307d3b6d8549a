package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	CreateSlot(ctx context.Context, req CreateSlotRequest) (*Slot, error)
	// CreateRecurring publishes one slot per week on the given weekday,
	// starting from the first occurrence on or after From.
	CreateRecurring(ctx context.Context, req CreateRecurringRequest) ([]Slot, error)
	DeleteSlot(ctx context.Context, performerID, slotID snowflake.ID) error
	ListByPerformer(ctx context.Context, performerID snowflake.ID, includeBooked bool) ([]Slot, error)
	SearchOpen(ctx context.Context, filter SlotSearchFilter) ([]Slot, error)
}

type CreateSlotRequest struct {
	PerformerID snowflake.ID
	SlotDate    string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	RatePerHour int64
}

type CreateRecurringRequest struct {
	PerformerID snowflake.ID
	Weekday     string // e.g. "friday"
	From        string // YYYY-MM-DD, first date considered
	Weeks       int    // number of weekly occurrences, capped by the service
	StartTime   string
	EndTime     string
	RatePerHour int64
}

type SlotSearchFilter struct {
	Date     string // exact date, YYYY-MM-DD
	FromDate string // inclusive lower bound when Date is empty
	ToDate   string // inclusive upper bound when Date is empty
	Limit    int
}
