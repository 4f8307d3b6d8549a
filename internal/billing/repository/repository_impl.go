package repository

import (
	"context"

	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() billingdomain.Repository {
	return &repo{}
}

func (r *repo) UpsertSubscription(ctx context.Context, db *gorm.DB, sub *billingdomain.VenueSubscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO venue_subscriptions (venue_id, stripe_subscription_id, stripe_customer_id, status, plan_code, billing_interval, current_period_end, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (venue_id) DO UPDATE SET
			stripe_subscription_id = EXCLUDED.stripe_subscription_id,
			stripe_customer_id = EXCLUDED.stripe_customer_id,
			status = EXCLUDED.status,
			current_period_end = EXCLUDED.current_period_end,
			updated_at = EXCLUDED.updated_at`,
		sub.VenueID,
		sub.StripeSubscriptionID,
		sub.StripeCustomerID,
		sub.Status,
		sub.PlanCode,
		sub.BillingInterval,
		sub.CurrentPeriodEnd,
		sub.CreatedAt,
		sub.UpdatedAt,
	).Error
}

func (r *repo) UpdateStatusBySubscriptionID(ctx context.Context, db *gorm.DB, subscriptionID, status string) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE venue_subscriptions SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE stripe_subscription_id = ?`,
		status,
		subscriptionID,
	)
	return res.RowsAffected, res.Error
}

func (r *repo) FindByVenueID(ctx context.Context, db *gorm.DB, venueID string) (*billingdomain.VenueSubscription, error) {
	var sub billingdomain.VenueSubscription
	err := db.WithContext(ctx).Raw(
		`SELECT venue_id, stripe_subscription_id, stripe_customer_id, status, plan_code, billing_interval, current_period_end, created_at, updated_at
		 FROM venue_subscriptions WHERE venue_id = ?`,
		venueID,
	).Scan(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.VenueID == "" {
		return nil, nil
	}
	return &sub, nil
}

func (r *repo) UpsertPlan(ctx context.Context, db *gorm.DB, plan *billingdomain.Plan) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO plans (code, name, price_amount, currency, billing_interval, stripe_price_id, features)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			price_amount = EXCLUDED.price_amount,
			currency = EXCLUDED.currency,
			billing_interval = EXCLUDED.billing_interval,
			stripe_price_id = EXCLUDED.stripe_price_id,
			features = EXCLUDED.features`,
		plan.Code,
		plan.Name,
		plan.PriceAmount,
		plan.Currency,
		plan.BillingInterval,
		plan.StripePriceID,
		plan.Features,
	).Error
}

func (r *repo) ListPlans(ctx context.Context, db *gorm.DB) ([]billingdomain.Plan, error) {
	var plans []billingdomain.Plan
	err := db.WithContext(ctx).Raw(
		`SELECT code, name, price_amount, currency, billing_interval, stripe_price_id, features
		 FROM plans ORDER BY price_amount ASC, code ASC`,
	).Scan(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}
