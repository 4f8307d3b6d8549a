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

	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
	availrepo "github.com/stagelink/stagelink/internal/availability/repository"
	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
	bookingrepo "github.com/stagelink/stagelink/internal/booking/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type bookingFixture struct {
	svc   *service
	db    *gorm.DB
	slots availdomain.Repository
	genID *snowflake.Node
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&availdomain.Slot{}, &bookingdomain.Booking{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	slots := availrepo.Provide()
	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  bookingrepo.Provide(),
		Slots: slots,
	}).(*service)

	return &bookingFixture{svc: svc, db: db, slots: slots, genID: node}
}

func (f *bookingFixture) insertSlot(t *testing.T, performerID snowflake.ID, date string) *availdomain.Slot {
	t.Helper()
	now := time.Now().UTC()
	slot := &availdomain.Slot{
		ID:          f.genID.Generate(),
		PerformerID: performerID,
		SlotDate:    date,
		StartTime:   "20:00",
		EndTime:     "23:00",
		RatePerHour: 12000,
		Open:        true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.slots.Insert(context.Background(), f.db, slot))
	return slot
}

func (f *bookingFixture) slotOpen(t *testing.T, id snowflake.ID) bool {
	t.Helper()
	slot, err := f.slots.FindByID(context.Background(), f.db, id)
	require.NoError(t, err)
	require.NotNil(t, slot)
	return slot.Open
}

func TestBookSlotClosesSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	performerID := f.genID.Generate()
	venueID := f.genID.Generate()
	slot := f.insertSlot(t, performerID, "2030-06-01")

	booking, err := f.svc.BookSlot(ctx, venueID, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingdomain.StatusPending, booking.Status)
	assert.Equal(t, performerID, booking.PerformerID)
	assert.Equal(t, slot.SlotDate, booking.BookingDate)
	assert.Equal(t, slot.RatePerHour, booking.BookingRate)
	assert.False(t, f.slotOpen(t, slot.ID))

	// The slot is closed now, so a second venue cannot take it.
	_, err = f.svc.BookSlot(ctx, f.genID.Generate(), slot.ID)
	assert.True(t, errors.Is(err, bookingdomain.ErrSlotUnavailable))
}

func TestBookSlotUnknownSlot(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.BookSlot(context.Background(), f.genID.Generate(), f.genID.Generate())
	assert.True(t, errors.Is(err, bookingdomain.ErrSlotUnavailable))
}

func TestConfirmBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	performerID := f.genID.Generate()
	slot := f.insertSlot(t, performerID, "2030-06-01")
	booking, err := f.svc.BookSlot(ctx, f.genID.Generate(), slot.ID)
	require.NoError(t, err)

	confirmed, err := f.svc.Confirm(ctx, performerID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingdomain.StatusConfirmed, confirmed.Status)
	assert.False(t, f.slotOpen(t, slot.ID))

	// Confirming twice is not a valid transition.
	_, err = f.svc.Confirm(ctx, performerID, booking.ID)
	assert.True(t, errors.Is(err, bookingdomain.ErrInvalidTransition))
}

func TestConfirmByWrongPerformer(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	slot := f.insertSlot(t, f.genID.Generate(), "2030-06-01")
	booking, err := f.svc.BookSlot(ctx, f.genID.Generate(), slot.ID)
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, f.genID.Generate(), booking.ID)
	assert.True(t, errors.Is(err, bookingdomain.ErrNotParticipant))
}

func TestDeclineReopensSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	performerID := f.genID.Generate()
	slot := f.insertSlot(t, performerID, "2030-06-01")
	booking, err := f.svc.BookSlot(ctx, f.genID.Generate(), slot.ID)
	require.NoError(t, err)

	declined, err := f.svc.Decline(ctx, performerID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingdomain.StatusDeclined, declined.Status)
	assert.True(t, f.slotOpen(t, slot.ID))
}

func TestCompleteRequiresPastDate(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	performerID := f.genID.Generate()
	venueID := f.genID.Generate()
	slot := f.insertSlot(t, performerID, "2030-06-01")
	booking, err := f.svc.BookSlot(ctx, venueID, slot.ID)
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, performerID, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, bookingdomain.SideVenue, venueID, booking.ID)
	assert.True(t, errors.Is(err, bookingdomain.ErrNotYetPerformed))

	// Move the clock past the gig date and try again.
	f.svc.now = func() time.Time { return time.Date(2030, 6, 2, 9, 0, 0, 0, time.UTC) }
	completed, err := f.svc.Complete(ctx, bookingdomain.SideVenue, venueID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingdomain.StatusCompleted, completed.Status)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	venueID := f.genID.Generate()
	slot := f.insertSlot(t, f.genID.Generate(), "2020-01-01")
	booking, err := f.svc.BookSlot(ctx, venueID, slot.ID)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, bookingdomain.SideVenue, venueID, booking.ID)
	assert.True(t, errors.Is(err, bookingdomain.ErrInvalidTransition))
}

func TestCancelPendingReopensSlot(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	venueID := f.genID.Generate()
	slot := f.insertSlot(t, f.genID.Generate(), "2030-06-01")
	booking, err := f.svc.BookSlot(ctx, venueID, slot.ID)
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(ctx, bookingdomain.SideVenue, venueID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingdomain.StatusCanceled, canceled.Status)
	assert.True(t, f.slotOpen(t, slot.ID))
}

func TestCancelByPerformerSide(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	performerID := f.genID.Generate()
	slot := f.insertSlot(t, performerID, "2030-06-01")
	booking, err := f.svc.BookSlot(ctx, f.genID.Generate(), slot.ID)
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, performerID, booking.ID)
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(ctx, bookingdomain.SidePerformer, performerID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingdomain.StatusCanceled, canceled.Status)
	assert.True(t, f.slotOpen(t, slot.ID))
}

func TestCancelCompletedBookingRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	performerID := f.genID.Generate()
	venueID := f.genID.Generate()
	slot := f.insertSlot(t, performerID, "2020-01-01")
	booking, err := f.svc.BookSlot(ctx, venueID, slot.ID)
	require.NoError(t, err)
	_, err = f.svc.Confirm(ctx, performerID, booking.ID)
	require.NoError(t, err)
	_, err = f.svc.Complete(ctx, bookingdomain.SideVenue, venueID, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, bookingdomain.SideVenue, venueID, booking.ID)
	assert.True(t, errors.Is(err, bookingdomain.ErrInvalidTransition))
}

func TestListForVenueAndPerformer(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	performerID := f.genID.Generate()
	venueID := f.genID.Generate()
	first := f.insertSlot(t, performerID, "2030-06-01")
	second := f.insertSlot(t, performerID, "2030-06-08")

	_, err := f.svc.BookSlot(ctx, venueID, first.ID)
	require.NoError(t, err)
	_, err = f.svc.BookSlot(ctx, venueID, second.ID)
	require.NoError(t, err)

	byVenue, err := f.svc.ListForVenue(ctx, venueID)
	require.NoError(t, err)
	assert.Len(t, byVenue, 2)

	byPerformer, err := f.svc.ListForPerformer(ctx, performerID)
	require.NoError(t, err)
	assert.Len(t, byPerformer, 2)

	other, err := f.svc.ListForVenue(ctx, f.genID.Generate())
	require.NoError(t, err)
	assert.Len(t, other, 0)
}
