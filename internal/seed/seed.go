// Package seed provisions the rows the application expects at boot.
package seed

import (
	"context"

	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	basicFeatures = datatypes.JSON(`["Unlimited booking requests","Performer search","Email support"]`)
	proFeatures   = datatypes.JSON(`["Everything in Basic","Spending analytics","Priority placement","Phone support"]`)
)

var defaultPlans = []billingdomain.Plan{
	{Code: "basic_monthly", Name: "Basic", PriceAmount: 1900, Currency: "USD", BillingInterval: "monthly", StripePriceID: "price_basic_monthly", Features: basicFeatures},
	{Code: "basic_yearly", Name: "Basic", PriceAmount: 19000, Currency: "USD", BillingInterval: "yearly", StripePriceID: "price_basic_yearly", Features: basicFeatures},
	{Code: "pro_monthly", Name: "Pro", PriceAmount: 4900, Currency: "USD", BillingInterval: "monthly", StripePriceID: "price_pro_monthly", Features: proFeatures},
	{Code: "pro_yearly", Name: "Pro", PriceAmount: 49000, Currency: "USD", BillingInterval: "yearly", StripePriceID: "price_pro_yearly", Features: proFeatures},
}

// EnsureDefaultPlans upserts the built-in plan catalog. Existing rows
// keep their codes and pick up price changes.
func EnsureDefaultPlans(db *gorm.DB, repo billingdomain.Repository) error {
	ctx := context.Background()
	for i := range defaultPlans {
		if err := repo.UpsertPlan(ctx, db, &defaultPlans[i]); err != nil {
			return err
		}
	}
	return nil
}
