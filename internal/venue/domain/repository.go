package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, venue *Venue) error
	Update(ctx context.Context, db *gorm.DB, venue *Venue) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Venue, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Venue, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Venue, error)
}
