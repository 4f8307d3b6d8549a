package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	venuedomain "github.com/stagelink/stagelink/internal/venue/domain"
)

type CreateVenueRequest struct {
	Name         string `json:"name"`
	City         string `json:"city"`
	Address      string `json:"address"`
	Capacity     int    `json:"capacity"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
}

type UpdateVenueRequest struct {
	Name         *string `json:"name"`
	City         *string `json:"city"`
	Address      *string `json:"address"`
	Capacity     *int    `json:"capacity"`
	Description  *string `json:"description"`
	ContactEmail *string `json:"contact_email"`
}

type venueResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	City         string `json:"city"`
	Address      string `json:"address,omitempty"`
	Capacity     int    `json:"capacity,omitempty"`
	Description  string `json:"description,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

func (s *Server) CreateVenue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	venue, err := s.venueSvc.Create(c.Request.Context(), venuedomain.CreateVenueRequest{
		UserID:       userID,
		Name:         req.Name,
		City:         req.City,
		Address:      req.Address,
		Capacity:     req.Capacity,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toVenueResponse(venue))
}

func (s *Server) UpdateVenue(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	venue, err := s.venueSvc.Update(c.Request.Context(), userID, venuedomain.UpdateVenueRequest{
		Name:         req.Name,
		City:         req.City,
		Address:      req.Address,
		Capacity:     req.Capacity,
		Description:  req.Description,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toVenueResponse(venue))
}

func (s *Server) GetMyVenue(c *gin.Context) {
	venue, ok := currentVenue(c)
	if !ok {
		AbortWithError(c, venuedomain.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, toVenueResponse(venue))
}

func (s *Server) GetVenueBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	venue, err := s.venueSvc.BySlug(c.Request.Context(), slug)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVenueResponse(venue))
}

func toVenueResponse(venue *venuedomain.Venue) venueResponse {
	return venueResponse{
		ID:           venue.ID.String(),
		Name:         venue.Name,
		Slug:         venue.Slug,
		City:         venue.City,
		Address:      venue.Address,
		Capacity:     venue.Capacity,
		Description:  venue.Description,
		ContactEmail: venue.ContactEmail,
	}
}
