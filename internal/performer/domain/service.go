package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreatePerformerRequest) (*Performer, error)
	Update(ctx context.Context, userID snowflake.ID, req UpdatePerformerRequest) (*Performer, error)
	ByUserID(ctx context.Context, userID snowflake.ID) (*Performer, error)
	BySlug(ctx context.Context, slug string) (*Performer, error)
	Search(ctx context.Context, filter SearchFilter) ([]Performer, error)
}

type CreatePerformerRequest struct {
	UserID      snowflake.ID
	StageName   string
	Genre       string
	Bio         string
	City        string
	RatePerHour int64
}

type UpdatePerformerRequest struct {
	StageName   *string
	Genre       *string
	Bio         *string
	City        *string
	RatePerHour *int64
}

// SearchFilter narrows the public performer listing. Zero values match
// everything.
type SearchFilter struct {
	Genre   string
	City    string
	MaxRate int64
	Limit   int
}
