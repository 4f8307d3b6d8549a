package service

import (
	"context"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	analyticsdomain "github.com/stagelink/stagelink/internal/analytics/domain"
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
	Bookings bookingdomain.Repository
	Reviews  reviewdomain.Repository
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	bookings bookingdomain.Repository
	reviews  reviewdomain.Repository
}

func NewService(p Params) analyticsdomain.Service {
	return &service{
		db:       p.DB,
		log:      p.Log.Named("analytics.service"),
		bookings: p.Bookings,
		reviews:  p.Reviews,
	}
}

func (s *service) VenueSpending(ctx context.Context, venueID snowflake.ID) (*analyticsdomain.VenueSpending, error) {
	bookings, err := s.bookings.ListByVenue(ctx, s.db, venueID)
	if err != nil {
		return nil, err
	}

	out := &analyticsdomain.VenueSpending{
		VenueID:        venueID,
		CountsByStatus: map[string]int64{},
	}
	buckets := map[string]*analyticsdomain.MonthlyAmount{}
	for _, b := range bookings {
		out.CountsByStatus[string(b.Status)]++
		if b.Status != bookingdomain.StatusCompleted {
			continue
		}
		amount := bookingAmount(b)
		out.TotalSpent += amount
		out.CompletedCount++
		addMonthly(buckets, b.BookingDate, amount)
	}
	out.Monthly = sortedMonthly(buckets)
	return out, nil
}

func (s *service) PerformerEarnings(ctx context.Context, performerID snowflake.ID) (*analyticsdomain.PerformerEarnings, error) {
	bookings, err := s.bookings.ListByPerformer(ctx, s.db, performerID)
	if err != nil {
		return nil, err
	}
	summary, err := s.reviews.SummaryByPerformer(ctx, s.db, performerID)
	if err != nil {
		return nil, err
	}

	out := &analyticsdomain.PerformerEarnings{
		PerformerID:      performerID,
		ReviewCount:      summary.ReviewCount,
		AvgOverall:       summary.AvgOverall,
		AvgStagePresence: summary.AvgStagePresence,
		AvgSongSelection: summary.AvgSongSelection,
	}
	buckets := map[string]*analyticsdomain.MonthlyAmount{}
	for _, b := range bookings {
		if b.Status != bookingdomain.StatusCompleted {
			continue
		}
		amount := bookingAmount(b)
		out.TotalEarned += amount
		out.CompletedCount++
		addMonthly(buckets, b.BookingDate, amount)
	}
	out.Monthly = sortedMonthly(buckets)
	return out, nil
}

// bookingAmount prices a booking as rate per hour times the booked
// window, rounded to the nearest unit.
func bookingAmount(b bookingdomain.Booking) int64 {
	start, err1 := time.Parse("15:04", b.StartTime)
	end, err2 := time.Parse("15:04", b.EndTime)
	if err1 != nil || err2 != nil || !start.Before(end) {
		return b.BookingRate
	}
	minutes := int64(end.Sub(start) / time.Minute)
	return (b.BookingRate*minutes + 30) / 60
}

func addMonthly(buckets map[string]*analyticsdomain.MonthlyAmount, bookingDate string, amount int64) {
	month := bookingDate
	if len(month) >= 7 {
		month = month[:7]
	}
	bucket, ok := buckets[month]
	if !ok {
		bucket = &analyticsdomain.MonthlyAmount{Month: month}
		buckets[month] = bucket
	}
	bucket.Amount += amount
	bucket.Count++
}

func sortedMonthly(buckets map[string]*analyticsdomain.MonthlyAmount) []analyticsdomain.MonthlyAmount {
	out := make([]analyticsdomain.MonthlyAmount, 0, len(buckets))
	for _, bucket := range buckets {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
