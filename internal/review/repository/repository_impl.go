package repository

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	reviewdomain "github.com/stagelink/stagelink/internal/review/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() reviewdomain.Repository {
	return &repo{}
}

const reviewColumns = `id, booking_id, venue_id, performer_id, overall_rating, stage_presence_rating, song_selection_rating, comment, created_at`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, review *reviewdomain.Review) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO reviews (id, booking_id, venue_id, performer_id, overall_rating, stage_presence_rating, song_selection_rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		review.ID,
		review.BookingID,
		review.VenueID,
		review.PerformerID,
		review.OverallRating,
		review.StagePresenceRating,
		review.SongSelectionRating,
		review.Comment,
		review.CreatedAt,
	).Error
}

func (r *repo) FindByBookingID(ctx context.Context, db *gorm.DB, bookingID snowflake.ID) (*reviewdomain.Review, error) {
	var review reviewdomain.Review
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM reviews WHERE booking_id = ?`, reviewColumns),
		bookingID,
	).Scan(&review).Error
	if err != nil {
		return nil, err
	}
	if review.ID == 0 {
		return nil, nil
	}
	return &review, nil
}

func (r *repo) ListByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID) ([]reviewdomain.Review, error) {
	var reviews []reviewdomain.Review
	err := db.WithContext(ctx).Raw(
		fmt.Sprintf(`SELECT %s FROM reviews WHERE performer_id = ? ORDER BY created_at DESC`, reviewColumns),
		performerID,
	).Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repo) SummaryByPerformer(ctx context.Context, db *gorm.DB, performerID snowflake.ID) (*reviewdomain.Summary, error) {
	var summary reviewdomain.Summary
	err := db.WithContext(ctx).Raw(
		`SELECT
			? AS performer_id,
			COUNT(*) AS review_count,
			COALESCE(AVG(overall_rating), 0) AS avg_overall,
			COALESCE(AVG(stage_presence_rating), 0) AS avg_stage_presence,
			COALESCE(AVG(song_selection_rating), 0) AS avg_song_selection
		 FROM reviews WHERE performer_id = ?`,
		performerID,
		performerID,
	).Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
