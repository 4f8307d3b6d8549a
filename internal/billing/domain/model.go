// Package domain contains the subscription state mirrored from Stripe.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
)

// VenueSubscription is one row per venue mirroring the venue's Stripe
// subscription. The venue key is stored as text: it arrives verbatim
// as the checkout session's client_reference_id.
type VenueSubscription struct {
	VenueID              string     `gorm:"column:venue_id;primaryKey"`
	StripeSubscriptionID *string    `gorm:"column:stripe_subscription_id"`
	StripeCustomerID     *string    `gorm:"column:stripe_customer_id"`
	Status               string     `gorm:"type:text;not null"`
	PlanCode             *string    `gorm:"column:plan_code"`
	BillingInterval      *string    `gorm:"column:billing_interval"`
	CurrentPeriodEnd     *time.Time `gorm:"column:current_period_end"`
	CreatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (VenueSubscription) TableName() string { return "venue_subscriptions" }

// Plan is a purchasable subscription tier. Features holds the
// marketing bullet list as a JSON array of strings.
type Plan struct {
	Code            string         `gorm:"primaryKey" json:"code"`
	Name            string         `gorm:"not null" json:"name"`
	PriceAmount     int64          `gorm:"column:price_amount;not null" json:"price_amount"`
	Currency        string         `gorm:"not null" json:"currency"`
	BillingInterval string         `gorm:"column:billing_interval;not null" json:"billing_interval"`
	StripePriceID   string         `gorm:"column:stripe_price_id;not null" json:"stripe_price_id"`
	Features        datatypes.JSON `gorm:"type:json" json:"features"`
}

// TableName sets the database table name.
func (Plan) TableName() string { return "plans" }

// SubscriptionEvent is the provider-neutral result of parsing a
// webhook payload. Only the fields relevant to the event type are set.
type SubscriptionEvent struct {
	ProviderEventID string
	Type            string
	// VenueID is the checkout session's client_reference_id.
	VenueID string
	// SubscriptionID is the Stripe subscription identifier.
	SubscriptionID string
	CustomerID     string
	// Status is the subscription status reported by the provider.
	Status           string
	CurrentPeriodEnd *time.Time
	OccurredAt       time.Time
	RawPayload       []byte
}

const (
	EventTypeCheckoutCompleted   = "checkout.session.completed"
	EventTypeSubscriptionUpdated = "customer.subscription.updated"
)
