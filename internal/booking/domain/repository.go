package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, booking *Booking) error
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to Status) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Booking, error)
	ListByVenue(ctx context.Context, db *gorm.DB, venueID snowflake.ID) ([]Booking, error)
	ListByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID) ([]Booking, error)
}
