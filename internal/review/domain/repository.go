package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, review *Review) error
	FindByBookingID(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*Review, error)
	ListByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID) ([]Review, error)
	SummaryByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID) (*Summary, error)
}
