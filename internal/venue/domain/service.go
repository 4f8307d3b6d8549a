package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateVenueRequest) (*Venue, error)
	Update(ctx context.Context, userID snowflake.ID, req UpdateVenueRequest) (*Venue, error)
	ByUserID(ctx context.Context, userID snowflake.ID) (*Venue, error)
	BySlug(ctx context.Context, slug string) (*Venue, error)
}

type CreateVenueRequest struct {
	UserID       snowflake.ID
	Name         string
	City         string
	Address      string
	Capacity     int
	Description  string
	ContactEmail string
}

type UpdateVenueRequest struct {
	Name         *string
	City         *string
	Address      *string
	Capacity     *int
	Description  *string
	ContactEmail *string
}
