package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
	"github.com/stagelink/stagelink/internal/billing/stripe"
	"github.com/stagelink/stagelink/internal/metrics"
	"github.com/stagelink/stagelink/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// inactiveStatuses are the provider subscription statuses that flip a
// venue to inactive. Anything else on an update event is left alone,
// including statuses that look healthy: reactivation goes through a
// fresh checkout, not through this path.
var inactiveStatuses = map[string]struct{}{
	"canceled": {},
	"unpaid":   {},
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	Repo     billingdomain.Repository
	Verifier *stripe.Verifier
	Metrics  *metrics.Metrics          `optional:"true"`
	Limiter  *ratelimit.RequestLimiter `optional:"true"`
}

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     billingdomain.Repository
	verifier *stripe.Verifier
	metrics  *metrics.Metrics
	limiter  *ratelimit.RequestLimiter
	handlers map[string]func(ctx context.Context, event *billingdomain.SubscriptionEvent) error
}

func NewService(p Params) billingdomain.Service {
	s := &service{
		db:       p.DB,
		log:      p.Log.Named("billing.service"),
		repo:     p.Repo,
		verifier: p.Verifier,
		metrics:  p.Metrics,
		limiter:  p.Limiter,
	}
	s.handlers = map[string]func(ctx context.Context, event *billingdomain.SubscriptionEvent) error{
		billingdomain.EventTypeCheckoutCompleted:   s.applyCheckoutCompleted,
		billingdomain.EventTypeSubscriptionUpdated: s.applySubscriptionUpdated,
	}
	return s
}

func (s *service) IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error {
	// Signature first. Nothing is parsed and nothing touches storage
	// until the delivery proves it came from Stripe.
	if err := s.verifier.Verify(payload, headers); err != nil {
		s.count("unknown", "rejected")
		return err
	}

	event, err := s.verifier.Parse(payload)
	if err != nil {
		if errors.Is(err, billingdomain.ErrEventIgnored) {
			s.log.Info("ignoring webhook event type")
			s.count("other", "ignored")
			return nil
		}
		s.count("unknown", "rejected")
		return err
	}

	handler, ok := s.handlers[event.Type]
	if !ok {
		s.count(event.Type, "ignored")
		return nil
	}

	// Serialize concurrent deliveries for the same subscription.
	// Stripe retries on 5xx, so a contended delivery just comes back.
	if s.limiter.Enabled() && event.SubscriptionID != "" {
		token, acquired, err := s.limiter.TryLockSubscription(ctx, event.SubscriptionID)
		if err != nil {
			s.log.Warn("subscription lock unavailable", zap.Error(err))
		} else if !acquired {
			s.count(event.Type, "contended")
			return billingdomain.ErrConcurrentDelivery
		} else {
			defer func() {
				if err := s.limiter.ReleaseSubscription(ctx, event.SubscriptionID, token); err != nil {
					s.log.Warn("subscription lock release failed", zap.Error(err))
				}
			}()
		}
	}

	if err := handler(ctx, event); err != nil {
		s.count(event.Type, "failed")
		return err
	}
	s.count(event.Type, "applied")
	return nil
}

func (s *service) applyCheckoutCompleted(ctx context.Context, event *billingdomain.SubscriptionEvent) error {
	now := time.Now().UTC()
	sub := &billingdomain.VenueSubscription{
		VenueID:              event.VenueID,
		StripeSubscriptionID: &event.SubscriptionID,
		Status:               billingdomain.SubscriptionStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if event.CustomerID != "" {
		sub.StripeCustomerID = &event.CustomerID
	}
	if err := s.repo.UpsertSubscription(ctx, s.db, sub); err != nil {
		s.log.Error("subscription upsert failed",
			zap.String("venue_id", event.VenueID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", billingdomain.ErrSubscriptionStore, err)
	}
	s.log.Info("subscription activated",
		zap.String("venue_id", event.VenueID),
		zap.String("stripe_subscription_id", event.SubscriptionID),
	)
	return nil
}

func (s *service) applySubscriptionUpdated(ctx context.Context, event *billingdomain.SubscriptionEvent) error {
	if _, terminal := inactiveStatuses[event.Status]; !terminal {
		s.log.Info("subscription update left as-is",
			zap.String("stripe_subscription_id", event.SubscriptionID),
			zap.String("status", event.Status),
		)
		return nil
	}

	affected, err := s.repo.UpdateStatusBySubscriptionID(ctx, s.db, event.SubscriptionID, billingdomain.SubscriptionStatusInactive)
	if err != nil {
		s.log.Error("subscription status update failed",
			zap.String("stripe_subscription_id", event.SubscriptionID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", billingdomain.ErrSubscriptionStore, err)
	}
	if affected == 0 {
		// No venue tracks this subscription. The delivery is still
		// acknowledged so Stripe stops retrying it.
		s.log.Info("subscription update matched no venue",
			zap.String("stripe_subscription_id", event.SubscriptionID),
		)
		return nil
	}
	s.log.Info("subscription deactivated",
		zap.String("stripe_subscription_id", event.SubscriptionID),
		zap.String("provider_status", event.Status),
	)
	return nil
}

func (s *service) SubscriptionForVenue(ctx context.Context, venueID string) (*billingdomain.VenueSubscription, error) {
	sub, err := s.repo.FindByVenueID(ctx, s.db, venueID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, billingdomain.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (s *service) Plans(ctx context.Context) ([]billingdomain.Plan, error) {
	return s.repo.ListPlans(ctx, s.db)
}

func (s *service) count(eventType, outcome string) {
	if s.metrics != nil {
		s.metrics.WebhookEvents.WithLabelValues(eventType, outcome).Inc()
	}
}
