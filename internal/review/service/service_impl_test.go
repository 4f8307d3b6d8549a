package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
	bookingrepo "github.com/stagelink/stagelink/internal/booking/repository"
	reviewdomain "github.com/stagelink/stagelink/internal/review/domain"
	reviewrepo "github.com/stagelink/stagelink/internal/review/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type reviewFixture struct {
	svc      reviewdomain.Service
	db       *gorm.DB
	bookings bookingdomain.Repository
	genID    *snowflake.Node
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&bookingdomain.Booking{}, &reviewdomain.Review{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	bookings := bookingrepo.Provide()
	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Repo:     reviewrepo.Provide(),
		Bookings: bookings,
	})
	return &reviewFixture{svc: svc, db: db, bookings: bookings, genID: node}
}

func (f *reviewFixture) insertBooking(t *testing.T, venueID, performerID snowflake.ID, status bookingdomain.Status) *bookingdomain.Booking {
	t.Helper()
	now := time.Now().UTC()
	booking := &bookingdomain.Booking{
		ID:          f.genID.Generate(),
		VenueID:     venueID,
		PerformerID: performerID,
		BookingDate: "2026-01-10",
		StartTime:   "20:00",
		EndTime:     "23:00",
		BookingRate: 10000,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.bookings.Insert(context.Background(), f.db, booking))
	return booking
}

func TestCreateReview(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	venueID := f.genID.Generate()
	performerID := f.genID.Generate()
	booking := f.insertBooking(t, venueID, performerID, bookingdomain.StatusCompleted)

	review, err := f.svc.Create(ctx, reviewdomain.CreateReviewRequest{
		BookingID:           booking.ID,
		VenueID:             venueID,
		OverallRating:       5,
		StagePresenceRating: 4,
		SongSelectionRating: 3,
		Comment:             "  great set  ",
	})
	require.NoError(t, err)
	assert.Equal(t, performerID, review.PerformerID)
	assert.Equal(t, "great set", review.Comment)

	// A booking carries at most one review.
	_, err = f.svc.Create(ctx, reviewdomain.CreateReviewRequest{
		BookingID:           booking.ID,
		VenueID:             venueID,
		OverallRating:       2,
		StagePresenceRating: 2,
		SongSelectionRating: 2,
	})
	assert.True(t, errors.Is(err, reviewdomain.ErrAlreadyReviewed))
}

func TestCreateReviewRatingBounds(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	venueID := f.genID.Generate()
	booking := f.insertBooking(t, venueID, f.genID.Generate(), bookingdomain.StatusCompleted)

	for _, rating := range []int16{0, 6, -1} {
		_, err := f.svc.Create(ctx, reviewdomain.CreateReviewRequest{
			BookingID:           booking.ID,
			VenueID:             venueID,
			OverallRating:       rating,
			StagePresenceRating: 3,
			SongSelectionRating: 3,
		})
		assert.True(t, errors.Is(err, reviewdomain.ErrRatingOutOfRange), "rating %d", rating)
	}
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	venueID := f.genID.Generate()
	for _, status := range []bookingdomain.Status{
		bookingdomain.StatusPending,
		bookingdomain.StatusConfirmed,
		bookingdomain.StatusDeclined,
		bookingdomain.StatusCanceled,
	} {
		booking := f.insertBooking(t, venueID, f.genID.Generate(), status)
		_, err := f.svc.Create(ctx, reviewdomain.CreateReviewRequest{
			BookingID:           booking.ID,
			VenueID:             venueID,
			OverallRating:       4,
			StagePresenceRating: 4,
			SongSelectionRating: 4,
		})
		assert.True(t, errors.Is(err, reviewdomain.ErrBookingNotDone), "status %s", status)
	}
}

func TestCreateReviewWrongVenue(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	booking := f.insertBooking(t, f.genID.Generate(), f.genID.Generate(), bookingdomain.StatusCompleted)
	_, err := f.svc.Create(ctx, reviewdomain.CreateReviewRequest{
		BookingID:           booking.ID,
		VenueID:             f.genID.Generate(),
		OverallRating:       4,
		StagePresenceRating: 4,
		SongSelectionRating: 4,
	})
	assert.True(t, errors.Is(err, reviewdomain.ErrNotBookingVenue))
}

func TestCreateReviewUnknownBooking(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.svc.Create(context.Background(), reviewdomain.CreateReviewRequest{
		BookingID:           f.genID.Generate(),
		VenueID:             f.genID.Generate(),
		OverallRating:       4,
		StagePresenceRating: 4,
		SongSelectionRating: 4,
	})
	assert.True(t, errors.Is(err, bookingdomain.ErrNotFound))
}

func TestSummaryForPerformer(t *testing.T) {
	f := newReviewFixture(t)
	ctx := context.Background()

	venueID := f.genID.Generate()
	performerID := f.genID.Generate()

	ratings := [][3]int16{{5, 4, 3}, {3, 2, 5}}
	for _, r := range ratings {
		booking := f.insertBooking(t, venueID, performerID, bookingdomain.StatusCompleted)
		_, err := f.svc.Create(ctx, reviewdomain.CreateReviewRequest{
			BookingID:           booking.ID,
			VenueID:             venueID,
			OverallRating:       r[0],
			StagePresenceRating: r[1],
			SongSelectionRating: r[2],
		})
		require.NoError(t, err)
	}

	summary, err := f.svc.SummaryForPerformer(ctx, performerID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.ReviewCount)
	assert.InDelta(t, 4.0, summary.AvgOverall, 0.001)
	assert.InDelta(t, 3.0, summary.AvgStagePresence, 0.001)
	assert.InDelta(t, 4.0, summary.AvgSongSelection, 0.001)

	empty, err := f.svc.SummaryForPerformer(ctx, f.genID.Generate())
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.ReviewCount)
}
