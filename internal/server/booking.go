package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
)

type CreateBookingRequest struct {
	SlotID string `json:"slot_id"`
}

type bookingResponse struct {
	ID          string `json:"id"`
	VenueID     string `json:"venue_id"`
	PerformerID string `json:"performer_id"`
	SlotID      string `json:"slot_id,omitempty"`
	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	BookingRate int64  `json:"booking_rate"`
	Status      string `json:"status"`
}

func (s *Server) CreateBooking(c *gin.Context) {
	venue, ok := currentVenue(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	slotID, err := snowflake.ParseString(strings.TrimSpace(req.SlotID))
	if err != nil {
		AbortWithError(c, newValidationError("slot_id", "invalid_slot_id", "invalid value"))
		return
	}

	booking, err := s.bookingSvc.BookSlot(c.Request.Context(), venue.ID, slotID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (s *Server) ListVenueBookings(c *gin.Context) {
	venue, ok := currentVenue(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	bookings, err := s.bookingSvc.ListForVenue(c.Request.Context(), venue.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (s *Server) ListPerformerBookings(c *gin.Context) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	bookings, err := s.bookingSvc.ListForPerformer(c.Request.Context(), performer.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": toBookingResponses(bookings)})
}

func (s *Server) ConfirmBooking(c *gin.Context) {
	s.performerBookingAction(c, s.bookingSvc.Confirm)
}

func (s *Server) DeclineBooking(c *gin.Context) {
	s.performerBookingAction(c, s.bookingSvc.Decline)
}

func (s *Server) performerBookingAction(c *gin.Context, action func(ctx context.Context, performerID, bookingID snowflake.ID) (*bookingdomain.Booking, error)) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	bookingID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	booking, err := action(c.Request.Context(), performer.ID, bookingID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (s *Server) CompleteBooking(c *gin.Context) {
	s.partyBookingAction(c, s.bookingSvc.Complete)
}

func (s *Server) CancelBooking(c *gin.Context) {
	s.partyBookingAction(c, s.bookingSvc.Cancel)
}

// partyBookingAction resolves which side of the booking the caller is
// on. Venue and performer routes share the complete/cancel handlers.
func (s *Server) partyBookingAction(c *gin.Context, action func(ctx context.Context, side bookingdomain.Side, partyID, bookingID snowflake.ID) (*bookingdomain.Booking, error)) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	bookingID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	side, partyID, err := s.resolveSide(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	booking, err := action(c.Request.Context(), side, partyID, bookingID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (s *Server) resolveSide(ctx context.Context, userID snowflake.ID) (bookingdomain.Side, snowflake.ID, error) {
	if venue, err := s.venueSvc.ByUserID(ctx, userID); err == nil {
		return bookingdomain.SideVenue, venue.ID, nil
	}
	performer, err := s.performerSvc.ByUserID(ctx, userID)
	if err != nil {
		return "", 0, ErrForbidden
	}
	return bookingdomain.SidePerformer, performer.ID, nil
}

func toBookingResponse(booking *bookingdomain.Booking) bookingResponse {
	out := bookingResponse{
		ID:          booking.ID.String(),
		VenueID:     booking.VenueID.String(),
		PerformerID: booking.PerformerID.String(),
		BookingDate: booking.BookingDate,
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		BookingRate: booking.BookingRate,
		Status:      string(booking.Status),
	}
	if booking.SlotID != nil {
		out.SlotID = booking.SlotID.String()
	}
	return out
}

func toBookingResponses(bookings []bookingdomain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
