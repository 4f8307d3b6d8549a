// Package domain contains the read models served by the analytics endpoints.
package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

// MonthlyAmount buckets booking amounts by calendar month (YYYY-MM).
type MonthlyAmount struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
	Count  int64  `json:"count"`
}

// VenueSpending summarizes what a venue has paid for completed
// bookings, plus the current pipeline by status.
type VenueSpending struct {
	VenueID        snowflake.ID     `json:"venue_id"`
	TotalSpent     int64            `json:"total_spent"`
	CompletedCount int64            `json:"completed_count"`
	CountsByStatus map[string]int64 `json:"counts_by_status"`
	Monthly        []MonthlyAmount  `json:"monthly"`
}

// PerformerEarnings summarizes a performer's completed bookings and
// review standing.
type PerformerEarnings struct {
	PerformerID      snowflake.ID    `json:"performer_id"`
	TotalEarned      int64           `json:"total_earned"`
	CompletedCount   int64           `json:"completed_count"`
	Monthly          []MonthlyAmount `json:"monthly"`
	ReviewCount      int64           `json:"review_count"`
	AvgOverall       float64         `json:"avg_overall"`
	AvgStagePresence float64         `json:"avg_stage_presence"`
	AvgSongSelection float64         `json:"avg_song_selection"`
}

type Service interface {
	VenueSpending(ctx context.Context, venueID snowflake.ID) (*VenueSpending, error)
	PerformerEarnings(ctx context.Context, performerID snowflake.ID) (*PerformerEarnings, error)
}
