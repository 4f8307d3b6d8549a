package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
)

type CreateSlotRequest struct {
	SlotDate    string `json:"slot_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	RatePerHour int64  `json:"rate_per_hour"`
}

type CreateRecurringSlotsRequest struct {
	Weekday     string `json:"weekday"`
	From        string `json:"from"`
	Weeks       int    `json:"weeks"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	RatePerHour int64  `json:"rate_per_hour"`
}

type slotResponse struct {
	ID          string `json:"id"`
	PerformerID string `json:"performer_id"`
	SlotDate    string `json:"slot_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	RatePerHour int64  `json:"rate_per_hour"`
	Open        bool   `json:"open"`
}

func (s *Server) CreateSlot(c *gin.Context) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	slot, err := s.availSvc.CreateSlot(c.Request.Context(), availdomain.CreateSlotRequest{
		PerformerID: performer.ID,
		SlotDate:    strings.TrimSpace(req.SlotDate),
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
		RatePerHour: req.RatePerHour,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSlotResponse(slot))
}

func (s *Server) CreateRecurringSlots(c *gin.Context) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	var req CreateRecurringSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	slots, err := s.availSvc.CreateRecurring(c.Request.Context(), availdomain.CreateRecurringRequest{
		PerformerID: performer.ID,
		Weekday:     req.Weekday,
		From:        req.From,
		Weeks:       req.Weeks,
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
		RatePerHour: req.RatePerHour,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"slots": toSlotResponses(slots)})
}

func (s *Server) DeleteSlot(c *gin.Context) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	slotID, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.availSvc.DeleteSlot(c.Request.Context(), performer.ID, slotID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) ListMySlots(c *gin.Context) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	includeBooked := strings.EqualFold(c.Query("include_booked"), "true")
	slots, err := s.availSvc.ListByPerformer(c.Request.Context(), performer.ID, includeBooked)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": toSlotResponses(slots)})
}

func (s *Server) ListPerformerAvailability(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	performer, err := s.performerSvc.BySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	slots, err := s.availSvc.ListByPerformer(c.Request.Context(), performer.ID, false)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": toSlotResponses(slots)})
}

func (s *Server) SearchOpenSlots(c *gin.Context) {
	filter := availdomain.SlotSearchFilter{
		Date:     strings.TrimSpace(c.Query("date")),
		FromDate: strings.TrimSpace(c.Query("from")),
		ToDate:   strings.TrimSpace(c.Query("to")),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid value"))
			return
		}
		filter.Limit = limit
	}

	slots, err := s.availSvc.SearchOpen(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": toSlotResponses(slots)})
}

func toSlotResponse(slot *availdomain.Slot) slotResponse {
	return slotResponse{
		ID:          slot.ID.String(),
		PerformerID: slot.PerformerID.String(),
		SlotDate:    slot.SlotDate,
		StartTime:   slot.StartTime,
		EndTime:     slot.EndTime,
		RatePerHour: slot.RatePerHour,
		Open:        slot.Open,
	}
}

func toSlotResponses(slots []availdomain.Slot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, toSlotResponse(&slots[i]))
	}
	return out
}
