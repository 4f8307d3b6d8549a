package domain

import (
	"context"
	"net/http"
)

type Service interface {
	// IngestWebhook verifies the raw delivery against its signature
	// header, parses it, and applies at most one subscription write.
	// Unknown event types are acknowledged without a write.
	IngestWebhook(ctx context.Context, payload []byte, headers http.Header) error
	SubscriptionForVenue(ctx context.Context, venueID string) (*VenueSubscription, error)
	Plans(ctx context.Context) ([]Plan, error)
}
