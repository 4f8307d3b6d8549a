// Package domain contains the booking lifecycle models.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// Booking records a venue's request for a performer's slot. Date and
// times are copied from the slot at booking time so later slot edits
// cannot rewrite history.
type Booking struct {
	ID          snowflake.ID  `gorm:"primaryKey"`
	VenueID     snowflake.ID  `gorm:"column:venue_id;not null;index"`
	PerformerID snowflake.ID  `gorm:"column:performer_id;not null;index"`
	SlotID      *snowflake.ID `gorm:"column:slot_id"`
	BookingDate string        `gorm:"column:booking_date;type:text;not null"`
	StartTime   string        `gorm:"column:start_time;type:text;not null"`
	EndTime     string        `gorm:"column:end_time;type:text;not null"`
	BookingRate int64         `gorm:"column:booking_rate;not null"`
	Status      Status        `gorm:"type:text;not null"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Booking) TableName() string { return "bookings" }
