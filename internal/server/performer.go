package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	performerdomain "github.com/stagelink/stagelink/internal/performer/domain"
)

type CreatePerformerRequest struct {
	StageName   string `json:"stage_name"`
	Genre       string `json:"genre"`
	Bio         string `json:"bio"`
	City        string `json:"city"`
	RatePerHour int64  `json:"rate_per_hour"`
}

type UpdatePerformerRequest struct {
	StageName   *string `json:"stage_name"`
	Genre       *string `json:"genre"`
	Bio         *string `json:"bio"`
	City        *string `json:"city"`
	RatePerHour *int64  `json:"rate_per_hour"`
}

type performerResponse struct {
	ID          string `json:"id"`
	StageName   string `json:"stage_name"`
	Slug        string `json:"slug"`
	Genre       string `json:"genre,omitempty"`
	Bio         string `json:"bio,omitempty"`
	City        string `json:"city,omitempty"`
	RatePerHour int64  `json:"rate_per_hour"`
}

func (s *Server) CreatePerformer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req CreatePerformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	performer, err := s.performerSvc.Create(c.Request.Context(), performerdomain.CreatePerformerRequest{
		UserID:      userID,
		StageName:   req.StageName,
		Genre:       req.Genre,
		Bio:         req.Bio,
		City:        req.City,
		RatePerHour: req.RatePerHour,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPerformerResponse(performer))
}

func (s *Server) UpdatePerformer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req UpdatePerformerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	performer, err := s.performerSvc.Update(c.Request.Context(), userID, performerdomain.UpdatePerformerRequest{
		StageName:   req.StageName,
		Genre:       req.Genre,
		Bio:         req.Bio,
		City:        req.City,
		RatePerHour: req.RatePerHour,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPerformerResponse(performer))
}

func (s *Server) GetMyPerformer(c *gin.Context) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, performerdomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, toPerformerResponse(performer))
}

func (s *Server) GetPerformerBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	performer, err := s.performerSvc.BySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPerformerResponse(performer))
}

func (s *Server) ListPerformers(c *gin.Context) {
	filter := performerdomain.SearchFilter{
		Genre: strings.TrimSpace(c.Query("genre")),
		City:  strings.TrimSpace(c.Query("city")),
	}
	if raw := strings.TrimSpace(c.Query("max_rate")); raw != "" {
		maxRate, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || maxRate < 0 {
			AbortWithError(c, newValidationError("max_rate", "invalid_max_rate", "invalid value"))
			return
		}
		filter.MaxRate = maxRate
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			AbortWithError(c, newValidationError("limit", "invalid_limit", "invalid value"))
			return
		}
		filter.Limit = limit
	}

	performers, err := s.performerSvc.Search(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := make([]performerResponse, 0, len(performers))
	for i := range performers {
		out = append(out, toPerformerResponse(&performers[i]))
	}
	c.JSON(http.StatusOK, gin.H{"performers": out})
}

func toPerformerResponse(performer *performerdomain.Performer) performerResponse {
	return performerResponse{
		ID:          performer.ID.String(),
		StageName:   performer.StageName,
		Slug:        performer.Slug,
		Genre:       performer.Genre,
		Bio:         performer.Bio,
		City:        performer.City,
		RatePerHour: performer.RatePerHour,
	}
}
