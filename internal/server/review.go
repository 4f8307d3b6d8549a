package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	reviewdomain "github.com/stagelink/stagelink/internal/review/domain"
)

type CreateReviewRequest struct {
	BookingID           string `json:"booking_id"`
	OverallRating       int16  `json:"overall_rating"`
	StagePresenceRating int16  `json:"stage_presence_rating"`
	SongSelectionRating int16  `json:"song_selection_rating"`
	Comment             string `json:"comment"`
}

type reviewResponse struct {
	ID                  string    `json:"id"`
	BookingID           string    `json:"booking_id"`
	PerformerID         string    `json:"performer_id"`
	OverallRating       int16     `json:"overall_rating"`
	StagePresenceRating int16     `json:"stage_presence_rating"`
	SongSelectionRating int16     `json:"song_selection_rating"`
	Comment             string    `json:"comment,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

func (s *Server) CreateReview(c *gin.Context) {
	venue, ok := currentVenue(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	bookingID, err := snowflake.ParseString(strings.TrimSpace(req.BookingID))
	if err != nil {
		AbortWithError(c, newValidationError("booking_id", "invalid_booking_id", "invalid value"))
		return
	}

	review, err := s.reviewSvc.Create(c.Request.Context(), reviewdomain.CreateReviewRequest{
		VenueID:             venue.ID,
		BookingID:           bookingID,
		OverallRating:       req.OverallRating,
		StagePresenceRating: req.StagePresenceRating,
		SongSelectionRating: req.SongSelectionRating,
		Comment:             req.Comment,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toReviewResponse(review))
}

func (s *Server) ListPerformerReviews(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	performer, err := s.performerSvc.BySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	reviews, err := s.reviewSvc.ListForPerformer(c.Request.Context(), performer.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	summary, err := s.reviewSvc.SummaryForPerformer(c.Request.Context(), performer.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, toReviewResponse(&reviews[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews": out,
		"summary": gin.H{
			"review_count":       summary.ReviewCount,
			"avg_overall":        summary.AvgOverall,
			"avg_stage_presence": summary.AvgStagePresence,
			"avg_song_selection": summary.AvgSongSelection,
		},
	})
}

func toReviewResponse(review *reviewdomain.Review) reviewResponse {
	return reviewResponse{
		ID:                  review.ID.String(),
		BookingID:           review.BookingID.String(),
		PerformerID:         review.PerformerID.String(),
		OverallRating:       review.OverallRating,
		StagePresenceRating: review.StagePresenceRating,
		SongSelectionRating: review.SongSelectionRating,
		Comment:             review.Comment,
		CreatedAt:           review.CreatedAt,
	}
}
