package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
	reviewdomain "github.com/stagelink/stagelink/internal/review/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Repo     reviewdomain.Repository
	Bookings bookingdomain.Repository
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	repo     reviewdomain.Repository
	bookings bookingdomain.Repository
}

func NewService(p Params) reviewdomain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("review.service"),
		genID:    p.GenID,
		repo:     p.Repo,
		bookings: p.Bookings,
	}
}

func (s *service) Create(ctx context.Context, req reviewdomain.CreateReviewRequest) (*reviewdomain.Review, error) {
	for _, rating := range []int16{req.OverallRating, req.StagePresenceRating, req.SongSelectionRating} {
		if rating < 1 || rating > 5 {
			return nil, reviewdomain.ErrRatingOutOfRange
		}
	}

	booking, err := s.bookings.FindByID(ctx, s.db, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, bookingdomain.ErrNotFound
	}
	if booking.VenueID != req.VenueID {
		return nil, reviewdomain.ErrNotBookingVenue
	}
	if booking.Status != bookingdomain.StatusCompleted {
		return nil, reviewdomain.ErrBookingNotDone
	}

	existing, err := s.repo.FindByBookingID(ctx, s.db, req.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, reviewdomain.ErrAlreadyReviewed
	}

	review := &reviewdomain.Review{
		ID:                  s.genID.Generate(),
		BookingID:           req.BookingID,
		VenueID:             booking.VenueID,
		PerformerID:         booking.PerformerID,
		OverallRating:       req.OverallRating,
		StagePresenceRating: req.StagePresenceRating,
		SongSelectionRating: req.SongSelectionRating,
		Comment:             strings.TrimSpace(req.Comment),
		CreatedAt:           time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *service) ListForPerformer(ctx context.Context, performerID snowflake.ID) ([]reviewdomain.Review, error) {
	return s.repo.ListByPerformer(ctx, s.db, performerID)
}

func (s *service) SummaryForPerformer(ctx context.Context, performerID snowflake.ID) (*reviewdomain.Summary, error) {
	return s.repo.SummaryByPerformer(ctx, s.db, performerID)
}
