// Package domain contains persistence models for performer availability.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Slot is a bookable window a performer publishes for a given date.
// Times are stored as HH:MM strings in the performer's local time.
type Slot struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	PerformerID snowflake.ID `gorm:"column:performer_id;not null;index"`
	SlotDate    string       `gorm:"column:slot_date;type:text;not null;index"`
	StartTime   string       `gorm:"column:start_time;type:text;not null"`
	EndTime     string       `gorm:"column:end_time;type:text;not null"`
	RatePerHour int64        `gorm:"column:rate_per_hour"`
	Open        bool         `gorm:"not null;default:true"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Slot) TableName() string { return "availability_slots" }
