package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	// UpsertSubscription inserts the row or, when the venue already has
	// one, overwrites the provider fields and status.
	UpsertSubscription(ctx context.Context, db *gorm.DB, sub *VenueSubscription) error
	// UpdateStatusBySubscriptionID sets the status on the row holding
	// the given provider subscription id. Returns rows affected; zero
	// means no venue is tracking that subscription.
	UpdateStatusBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID, status string) (int64, error)
	FindByVenueID(ctx context.Context, db *gorm.DB, venueID string) (*VenueSubscription, error)
	UpsertPlan(ctx context.Context, db *gorm.DB, plan *Plan) error
	ListPlans(ctx context.Context, db *gorm.DB) ([]Plan, error)
}
