package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
	"github.com/stagelink/stagelink/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    bookingdomain.Repository
	Slots   availdomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    bookingdomain.Repository
	slots   availdomain.Repository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(p Params) bookingdomain.Service {
	return &service{
		db:      p.DB,
		log:     p.Log.Named("booking.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		slots:   p.Slots,
		metrics: p.Metrics,
		now:     time.Now,
	}
}

func (s *service) BookSlot(ctx context.Context, venueID, slotID snowflake.ID) (*bookingdomain.Booking, error) {
	slot, err := s.slots.FindByID(ctx, s.db, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil || !slot.Open {
		return nil, bookingdomain.ErrSlotUnavailable
	}

	now := s.now().UTC()
	booking := &bookingdomain.Booking{
		ID:          s.genID.Generate(),
		VenueID:     venueID,
		PerformerID: slot.PerformerID,
		SlotID:      &slot.ID,
		BookingDate: slot.SlotDate,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		BookingRate: slot.RatePerHour,
		Status:      bookingdomain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		open := true
		affected, err := s.slots.SetOpen(ctx, tx, slot.ID, false, &open)
		if err != nil {
			return err
		}
		if affected == 0 {
			return bookingdomain.ErrSlotUnavailable
		}
		return s.repo.Insert(ctx, tx, booking)
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.log.Info("booking created",
		zap.Int64("booking_id", booking.ID.Int64()),
		zap.Int64("venue_id", venueID.Int64()),
		zap.Int64("performer_id", slot.PerformerID.Int64()),
	)
	return booking, nil
}

func (s *service) Confirm(ctx context.Context, performerID, bookingID snowflake.ID) (*bookingdomain.Booking, error) {
	return s.performerTransition(ctx, performerID, bookingID, bookingdomain.StatusConfirmed, false)
}

func (s *service) Decline(ctx context.Context, performerID, bookingID snowflake.ID) (*bookingdomain.Booking, error) {
	return s.performerTransition(ctx, performerID, bookingID, bookingdomain.StatusDeclined, true)
}

func (s *service) performerTransition(ctx context.Context, performerID, bookingID snowflake.ID, to bookingdomain.Status, reopenSlot bool) (*bookingdomain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, s.db, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, bookingdomain.ErrNotFound
	}
	if booking.PerformerID != performerID {
		return nil, bookingdomain.ErrNotParticipant
	}
	if booking.Status != bookingdomain.StatusPending {
		return nil, bookingdomain.ErrInvalidTransition
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.UpdateStatus(ctx, tx, bookingID, bookingdomain.StatusPending, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return bookingdomain.ErrInvalidTransition
		}
		if reopenSlot && booking.SlotID != nil {
			if _, err := s.slots.SetOpen(ctx, tx, *booking.SlotID, true, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = to
	s.countTransition(to)
	return booking, nil
}

func (s *service) Complete(ctx context.Context, userSide bookingdomain.Side, partyID, bookingID snowflake.ID) (*bookingdomain.Booking, error) {
	booking, err := s.participantBooking(ctx, userSide, partyID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != bookingdomain.StatusConfirmed {
		return nil, bookingdomain.ErrInvalidTransition
	}
	date, err := time.Parse(dateLayout, booking.BookingDate)
	if err == nil && !date.Before(s.today()) {
		return nil, bookingdomain.ErrNotYetPerformed
	}

	affected, err := s.repo.UpdateStatus(ctx, s.db, bookingID, bookingdomain.StatusConfirmed, bookingdomain.StatusCompleted)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, bookingdomain.ErrInvalidTransition
	}
	booking.Status = bookingdomain.StatusCompleted
	s.countTransition(bookingdomain.StatusCompleted)
	return booking, nil
}

func (s *service) Cancel(ctx context.Context, userSide bookingdomain.Side, partyID, bookingID snowflake.ID) (*bookingdomain.Booking, error) {
	booking, err := s.participantBooking(ctx, userSide, partyID, bookingID)
	if err != nil {
		return nil, err
	}
	from := booking.Status
	if from != bookingdomain.StatusPending && from != bookingdomain.StatusConfirmed {
		return nil, bookingdomain.ErrInvalidTransition
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.UpdateStatus(ctx, tx, bookingID, from, bookingdomain.StatusCanceled)
		if err != nil {
			return err
		}
		if affected == 0 {
			return bookingdomain.ErrInvalidTransition
		}
		if booking.SlotID != nil {
			if _, err := s.slots.SetOpen(ctx, tx, *booking.SlotID, true, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	booking.Status = bookingdomain.StatusCanceled
	s.countTransition(bookingdomain.StatusCanceled)
	return booking, nil
}

func (s *service) ByID(ctx context.Context, id snowflake.ID) (*bookingdomain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, bookingdomain.ErrNotFound
	}
	return booking, nil
}

func (s *service) ListForVenue(ctx context.Context, venueID snowflake.ID) ([]bookingdomain.Booking, error) {
	return s.repo.ListByVenue(ctx, s.db, venueID)
}

func (s *service) ListForPerformer(ctx context.Context, performerID snowflake.ID) ([]bookingdomain.Booking, error) {
	return s.repo.ListByPerformer(ctx, s.db, performerID)
}

func (s *service) participantBooking(ctx context.Context, userSide bookingdomain.Side, partyID, bookingID snowflake.ID) (*bookingdomain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, s.db, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, bookingdomain.ErrNotFound
	}
	switch userSide {
	case bookingdomain.SideVenue:
		if booking.VenueID != partyID {
			return nil, bookingdomain.ErrNotParticipant
		}
	case bookingdomain.SidePerformer:
		if booking.PerformerID != partyID {
			return nil, bookingdomain.ErrNotParticipant
		}
	default:
		return nil, bookingdomain.ErrNotParticipant
	}
	return booking, nil
}

func (s *service) countTransition(to bookingdomain.Status) {
	if s.metrics != nil {
		s.metrics.BookingTransitions.WithLabelValues(string(to)).Inc()
	}
}

func (s *service) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
