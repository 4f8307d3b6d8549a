package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Create(ctx context.Context, req CreateReviewRequest) (*Review, error)
	ListForPerformer(ctx context.Context, performerID snowflake.ID) ([]Review, error)
	SummaryForPerformer(ctx context.Context, performerID snowflake.ID) (*Summary, error)
}

type CreateReviewRequest struct {
	VenueID             snowflake.ID
	BookingID           snowflake.ID
	OverallRating       int16
	StagePresenceRating int16
	SongSelectionRating int16
	Comment             string
}
