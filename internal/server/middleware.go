package server

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	performerdomain "github.com/stagelink/stagelink/internal/performer/domain"
	venuedomain "github.com/stagelink/stagelink/internal/venue/domain"
	"go.uber.org/zap"
)

const (
	contextUserIDKey    = "user_id"
	contextVenueKey     = "venue"
	contextPerformerKey = "performer"
)

// RequestLogger emits one structured line per request after the
// handler chain finishes.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, session.UserID)
		c.Next()
	}
}

// VenueContext resolves the caller's venue profile. Routes behind it
// only make sense for users who completed venue onboarding.
func (s *Server) VenueContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		profile, err := s.venueSvc.ByUserID(c.Request.Context(), userID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextVenueKey, profile)
		c.Next()
	}
}

func (s *Server) PerformerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		profile, err := s.performerSvc.ByUserID(c.Request.Context(), userID)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextPerformerKey, profile)
		c.Next()
	}
}

func (s *Server) LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}
		res, err := s.limiter.AllowLogin(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down should not lock everyone out.
			s.log.Warn("login rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func (s *Server) WebhookRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Enabled() {
			c.Next()
			return
		}
		res, err := s.limiter.AllowWebhook(c.Request.Context(), c.ClientIP())
		if err != nil {
			s.log.Warn("webhook rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}

func currentUserID(c *gin.Context) (snowflake.ID, bool) {
	value, ok := c.Get(contextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(snowflake.ID)
	return id, ok
}

func currentVenue(c *gin.Context) (*venuedomain.Venue, bool) {
	value, ok := c.Get(contextVenueKey)
	if !ok {
		return nil, false
	}
	profile, ok := value.(*venuedomain.Venue)
	return profile, ok
}

func currentPerformer(c *gin.Context) (*performerdomain.Performer, bool) {
	value, ok := c.Get(contextPerformerKey)
	if !ok {
		return nil, false
	}
	profile, ok := value.(*performerdomain.Performer)
	return profile, ok
}
