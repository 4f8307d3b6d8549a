// Package domain contains review models and per-performer aggregates.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Review is a venue's rating of a completed booking. One per booking.
type Review struct {
	ID                  snowflake.ID `gorm:"primaryKey"`
	BookingID           snowflake.ID `gorm:"column:booking_id;not null;uniqueIndex"`
	VenueID             snowflake.ID `gorm:"column:venue_id;not null"`
	PerformerID         snowflake.ID `gorm:"column:performer_id;not null;index"`
	OverallRating       int16        `gorm:"column:overall_rating;not null"`
	StagePresenceRating int16        `gorm:"column:stage_presence_rating;not null"`
	SongSelectionRating int16        `gorm:"column:song_selection_rating;not null"`
	Comment             string       `gorm:"type:text"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Review) TableName() string { return "reviews" }

// Summary aggregates a performer's reviews.
type Summary struct {
	PerformerID      snowflake.ID `gorm:"column:performer_id"`
	ReviewCount      int64        `gorm:"column:review_count"`
	AvgOverall       float64      `gorm:"column:avg_overall"`
	AvgStagePresence float64      `gorm:"column:avg_stage_presence"`
	AvgSongSelection float64      `gorm:"column:avg_song_selection"`
}
