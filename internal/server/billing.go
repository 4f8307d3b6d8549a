package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
)

// HandleStripeWebhook mirrors Stripe's delivery contract: 2xx
// acknowledges, 400 tells Stripe the delivery itself was bad, and 5xx
// asks for a retry.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "Webhook Error: unable to read body")
		return
	}

	err = s.billingSvc.IngestWebhook(c.Request.Context(), payload, c.Request.Header)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case errors.Is(err, billingdomain.ErrSubscriptionStore):
		c.JSON(http.StatusBadGateway, gin.H{"error": "subscription store unavailable"})
	case errors.Is(err, billingdomain.ErrConcurrentDelivery):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "delivery in progress, retry"})
	case errors.Is(err, billingdomain.ErrInvalidSignature),
		errors.Is(err, billingdomain.ErrInvalidPayload),
		errors.Is(err, billingdomain.ErrInvalidEvent),
		errors.Is(err, billingdomain.ErrMissingField):
		c.String(http.StatusBadRequest, "Webhook Error: %s", err.Error())
	default:
		AbortWithError(c, err)
	}
}

type subscriptionResponse struct {
	VenueID              string `json:"venue_id"`
	Status               string `json:"status"`
	StripeSubscriptionID string `json:"stripe_subscription_id,omitempty"`
	PlanCode             string `json:"plan_code,omitempty"`
	BillingInterval      string `json:"billing_interval,omitempty"`
	CurrentPeriodEnd     string `json:"current_period_end,omitempty"`
}

func (s *Server) GetMySubscription(c *gin.Context) {
	venue, ok := currentVenue(c)
	if !ok {
		AbortWithError(c, ErrForbidden)
		return
	}

	sub, err := s.billingSvc.SubscriptionForVenue(c.Request.Context(), venue.ID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	out := subscriptionResponse{
		VenueID: sub.VenueID,
		Status:  sub.Status,
	}
	if sub.StripeSubscriptionID != nil {
		out.StripeSubscriptionID = *sub.StripeSubscriptionID
	}
	if sub.PlanCode != nil {
		out.PlanCode = *sub.PlanCode
	}
	if sub.BillingInterval != nil {
		out.BillingInterval = *sub.BillingInterval
	}
	if sub.CurrentPeriodEnd != nil {
		out.CurrentPeriodEnd = sub.CurrentPeriodEnd.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) ListPlans(c *gin.Context) {
	plans, err := s.billingSvc.Plans(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}
