package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) VenueAnalytics(c *gin.Context) {
	venue, ok := currentVenue(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	spending, err := s.analyticsSvc.VenueSpending(c.Request.Context(), venue.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, spending)
}

func (s *Server) PerformerAnalytics(c *gin.Context) {
	performer, ok := currentPerformer(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	earnings, err := s.analyticsSvc.PerformerEarnings(c.Request.Context(), performer.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, earnings)
}
