package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stagelink/stagelink/internal/analytics"
	analyticsdomain "github.com/stagelink/stagelink/internal/analytics/domain"
	"github.com/stagelink/stagelink/internal/auth"
	authdomain "github.com/stagelink/stagelink/internal/auth/domain"
	"github.com/stagelink/stagelink/internal/auth/session"
	"github.com/stagelink/stagelink/internal/availability"
	availdomain "github.com/stagelink/stagelink/internal/availability/domain"
	"github.com/stagelink/stagelink/internal/billing"
	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
	"github.com/stagelink/stagelink/internal/booking"
	bookingdomain "github.com/stagelink/stagelink/internal/booking/domain"
	"github.com/stagelink/stagelink/internal/config"
	"github.com/stagelink/stagelink/internal/performer"
	performerdomain "github.com/stagelink/stagelink/internal/performer/domain"
	"github.com/stagelink/stagelink/internal/ratelimit"
	"github.com/stagelink/stagelink/internal/review"
	reviewdomain "github.com/stagelink/stagelink/internal/review/domain"
	"github.com/stagelink/stagelink/internal/venue"
	venuedomain "github.com/stagelink/stagelink/internal/venue/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	auth.Module,
	session.Module,
	venue.Module,
	performer.Module,
	availability.Module,
	booking.Module,
	review.Module,
	analytics.Module,
	billing.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin() *gin.Engine {
	return NewEngine()
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	db           *gorm.DB
	genID        *snowflake.Node
	sessions     *session.Manager
	authsvc      authdomain.Service
	venueSvc     venuedomain.Service
	performerSvc performerdomain.Service
	availSvc     availdomain.Service
	bookingSvc   bookingdomain.Service
	reviewSvc    reviewdomain.Service
	analyticsSvc analyticsdomain.Service
	billingSvc   billingdomain.Service
	limiter      *ratelimit.RequestLimiter
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	DB           *gorm.DB
	GenID        *snowflake.Node
	Sessions     *session.Manager
	Authsvc      authdomain.Service
	VenueSvc     venuedomain.Service
	PerformerSvc performerdomain.Service
	AvailSvc     availdomain.Service
	BookingSvc   bookingdomain.Service
	ReviewSvc    reviewdomain.Service
	AnalyticsSvc analyticsdomain.Service
	BillingSvc   billingdomain.Service
	Limiter      *ratelimit.RequestLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          p.Log.Named("http.server"),
		db:           p.DB,
		genID:        p.GenID,
		sessions:     p.Sessions,
		authsvc:      p.Authsvc,
		venueSvc:     p.VenueSvc,
		performerSvc: p.PerformerSvc,
		availSvc:     p.AvailSvc,
		bookingSvc:   p.BookingSvc,
		reviewSvc:    p.ReviewSvc,
		analyticsSvc: p.AnalyticsSvc,
		billingSvc:   p.BillingSvc,
		limiter:      p.Limiter,
	}

	svc.engine.Use(RequestLogger(svc.log))
	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.Signup)
	auth.POST("/login", s.LoginRateLimit(), s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.Me)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Public directory --------
	api.GET("/performers", s.ListPerformers)
	api.GET("/performers/:slug", s.GetPerformerBySlug)
	api.GET("/performers/:slug/reviews", s.ListPerformerReviews)
	api.GET("/performers/:slug/availability", s.ListPerformerAvailability)
	api.GET("/availability", s.SearchOpenSlots)
	api.GET("/venues/:slug", s.GetVenueBySlug)

	// -------- Venue profile --------
	api.POST("/venues", s.AuthRequired(), s.CreateVenue)
	api.PATCH("/venues/me", s.AuthRequired(), s.VenueContext(), s.UpdateVenue)
	api.GET("/venues/me", s.AuthRequired(), s.VenueContext(), s.GetMyVenue)

	// -------- Performer profile --------
	api.POST("/performers", s.AuthRequired(), s.CreatePerformer)
	api.PATCH("/performers/me", s.AuthRequired(), s.PerformerContext(), s.UpdatePerformer)
	api.GET("/performers/me/profile", s.AuthRequired(), s.PerformerContext(), s.GetMyPerformer)

	// -------- Availability --------
	api.POST("/availability", s.AuthRequired(), s.PerformerContext(), s.CreateSlot)
	api.POST("/availability/recurring", s.AuthRequired(), s.PerformerContext(), s.CreateRecurringSlots)
	api.DELETE("/availability/:id", s.AuthRequired(), s.PerformerContext(), s.DeleteSlot)
	api.GET("/availability/me", s.AuthRequired(), s.PerformerContext(), s.ListMySlots)

	// -------- Bookings --------
	api.POST("/bookings", s.AuthRequired(), s.VenueContext(), s.CreateBooking)
	api.GET("/bookings/venue", s.AuthRequired(), s.VenueContext(), s.ListVenueBookings)
	api.GET("/bookings/performer", s.AuthRequired(), s.PerformerContext(), s.ListPerformerBookings)
	api.POST("/bookings/:id/confirm", s.AuthRequired(), s.PerformerContext(), s.ConfirmBooking)
	api.POST("/bookings/:id/decline", s.AuthRequired(), s.PerformerContext(), s.DeclineBooking)
	api.POST("/bookings/:id/complete", s.AuthRequired(), s.CompleteBooking)
	api.POST("/bookings/:id/cancel", s.AuthRequired(), s.CancelBooking)

	// -------- Reviews --------
	api.POST("/reviews", s.AuthRequired(), s.VenueContext(), s.CreateReview)

	// -------- Analytics --------
	api.GET("/analytics/venue", s.AuthRequired(), s.VenueContext(), s.VenueAnalytics)
	api.GET("/analytics/performer", s.AuthRequired(), s.PerformerContext(), s.PerformerAnalytics)

	// -------- Billing --------
	// The webhook is unauthenticated on purpose: Stripe proves itself
	// with the signature header.
	api.POST("/billing/webhooks/stripe", s.WebhookRateLimit(), s.HandleStripeWebhook)
	api.GET("/billing/subscription", s.AuthRequired(), s.VenueContext(), s.GetMySubscription)
	api.GET("/billing/plans", s.ListPlans)
}
