package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, performer *Performer) error
	Update(ctx context.Context, db *gorm.DB, performer *Performer) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID snowflake.ID) (*Performer, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Performer, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Performer, error)
	Search(ctx context.Context, db *gorm.DB, filter SearchFilter) ([]Performer, error)
}
