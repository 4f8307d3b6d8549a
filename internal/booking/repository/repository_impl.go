package repository

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() bookingdomain.Repository {
	return &repo{}
}

const bookingColumns = `id, venue_id, performer_id, slot_id, booking_date, start_time, end_time, booking_rate, status, created_at, updated_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, booking *bookingdomain.Booking) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO bookings (id, venue_id, performer_id, slot_id, booking_date, start_time, end_time, booking_rate, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		booking.ID,
		booking.VenueID,
		booking.PerformerID,
		booking.SlotID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.BookingRate,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	).Error
}

// UpdateStatus transitions only when the row is still in the expected
// state, so concurrent actors cannot double-apply a transition.
func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to bookingdomain.Status) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = ?`,
		to,
		id,
		from,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*bookingdomain.Booking, error) {
	var booking bookingdomain.Booking
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM bookings WHERE id = ?`, bookingColumns),
		id,
	).Scan(&booking).Error
	if err != nil {
		return nil, err
	}
	if booking.ID == 0 {
		return nil, nil
	}
	return &booking, nil
}

func (r *repo) ListByVenue(ctx context.Context, db *gorm.DB, venueID snowflake.ID) ([]bookingdomain.Booking, error) {
	var bookings []bookingdomain.Booking
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM bookings WHERE venue_id = ? ORDER BY booking_date DESC, start_time DESC`, bookingColumns),
		venueID,
	).Scan(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repo) ListByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID) ([]bookingdomain.Booking, error) {
	var bookings []bookingdomain.Booking
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM bookings WHERE performer_id = ? ORDER BY booking_date DESC, start_time DESC`, bookingColumns),
		performerID,
	).Scan(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
