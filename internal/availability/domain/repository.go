package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, slot *Slot) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Slot, error)
	ListByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID, openOnly bool) ([]Slot, error)
	ListOverlapping(ctx context.Context, db *gorm.DB, performerID snowflake.ID, slotDate, startTime, endTime string) ([]Slot, error)
	SearchOpen(ctx context.Context, db *gorm.DB, filter SlotSearchFilter) ([]Slot, error)
	// SetOpen flips the open flag. When expectOpen is non-nil the update
	// is conditional on the current value, so callers can close a slot
	// exactly once even under concurrent bookings.
	SetOpen(ctx context.Context, db *gorm.DB, id snowflake.ID, open bool, expectOpen *bool) (int64, error)
}
