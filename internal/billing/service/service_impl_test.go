package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
	billingrepo "github.com/stagelink/stagelink/internal/billing/repository"
	"github.com/stagelink/stagelink/internal/billing/stripe"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testWebhookSecret = "whsec_test"

func newTestService(t *testing.T) (billingdomain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&billingdomain.Plan{},
		&billingdomain.VenueSubscription{},
	))

	verifier, err := stripe.NewVerifier(testWebhookSecret)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:       db,
		Log:      zap.NewNop(),
		Repo:     billingrepo.Provide(),
		Verifier: verifier,
	})
	return svc, db
}

func buildSignatureHeader(secret string, payload []byte, timestamp int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%d.%s", timestamp, string(payload))))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func signedDelivery(t *testing.T, payload []byte) http.Header {
	t.Helper()
	header := http.Header{}
	header.Set("Stripe-Signature", buildSignatureHeader(testWebhookSecret, payload, time.Now().Unix()))
	return header
}

func checkoutPayload(venueID, subscriptionID string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_checkout","type":"checkout.session.completed","data":{"object":{"id":"cs_1","client_reference_id":%q,"customer":"cus_1","subscription":%q}}}`,
		venueID, subscriptionID,
	))
}

func subscriptionUpdatedPayload(subscriptionID, status string) []byte {
	return []byte(fmt.Sprintf(
		`{"id":"evt_sub","type":"customer.subscription.updated","data":{"object":{"customer":%q,"status":%q}}}`,
		subscriptionID, status,
	))
}

func subscriptionCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM venue_subscriptions`).Scan(&count).Error)
	return count
}

func TestCheckoutCompletedActivatesSubscription(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	payload := checkoutPayload("V1", "sub_1")
	require.NoError(t, svc.IngestWebhook(ctx, payload, signedDelivery(t, payload)))

	sub, err := svc.SubscriptionForVenue(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, billingdomain.SubscriptionStatusActive, sub.Status)
	require.NotNil(t, sub.StripeSubscriptionID)
	assert.Equal(t, "sub_1", *sub.StripeSubscriptionID)
	assert.Equal(t, int64(1), subscriptionCount(t, db))
}

func TestCheckoutCompletedReplayIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	payload := checkoutPayload("V1", "sub_1")
	require.NoError(t, svc.IngestWebhook(ctx, payload, signedDelivery(t, payload)))
	require.NoError(t, svc.IngestWebhook(ctx, payload, signedDelivery(t, payload)))

	assert.Equal(t, int64(1), subscriptionCount(t, db))
	sub, err := svc.SubscriptionForVenue(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, billingdomain.SubscriptionStatusActive, sub.Status)
}

func TestCheckoutCompletedReplacesPreviousSubscription(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := checkoutPayload("V1", "sub_1")
	require.NoError(t, svc.IngestWebhook(ctx, first, signedDelivery(t, first)))

	second := checkoutPayload("V1", "sub_2")
	require.NoError(t, svc.IngestWebhook(ctx, second, signedDelivery(t, second)))

	sub, err := svc.SubscriptionForVenue(ctx, "V1")
	require.NoError(t, err)
	require.NotNil(t, sub.StripeSubscriptionID)
	assert.Equal(t, "sub_2", *sub.StripeSubscriptionID)
	assert.Equal(t, billingdomain.SubscriptionStatusActive, sub.Status)
}

func TestSubscriptionUpdatedDeactivates(t *testing.T) {
	for _, status := range []string{"canceled", "unpaid"} {
		t.Run(status, func(t *testing.T) {
			svc, _ := newTestService(t)
			ctx := context.Background()

			checkout := checkoutPayload("V1", "sub_1")
			require.NoError(t, svc.IngestWebhook(ctx, checkout, signedDelivery(t, checkout)))

			update := subscriptionUpdatedPayload("sub_1", status)
			require.NoError(t, svc.IngestWebhook(ctx, update, signedDelivery(t, update)))

			sub, err := svc.SubscriptionForVenue(ctx, "V1")
			require.NoError(t, err)
			assert.Equal(t, billingdomain.SubscriptionStatusInactive, sub.Status)
		})
	}
}

func TestSubscriptionUpdatedHealthyStatusLeavesRowAlone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	checkout := checkoutPayload("V1", "sub_1")
	require.NoError(t, svc.IngestWebhook(ctx, checkout, signedDelivery(t, checkout)))

	update := subscriptionUpdatedPayload("sub_1", "past_due")
	require.NoError(t, svc.IngestWebhook(ctx, update, signedDelivery(t, update)))

	sub, err := svc.SubscriptionForVenue(ctx, "V1")
	require.NoError(t, err)
	assert.Equal(t, billingdomain.SubscriptionStatusActive, sub.Status)
}

func TestSubscriptionUpdatedUnknownSubscriptionIsAcknowledged(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	update := subscriptionUpdatedPayload("sub_missing", "canceled")
	require.NoError(t, svc.IngestWebhook(ctx, update, signedDelivery(t, update)))
	assert.Equal(t, int64(0), subscriptionCount(t, db))
}

func TestInvalidSignatureTouchesNothing(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	payload := checkoutPayload("V1", "sub_1")
	header := http.Header{}
	header.Set("Stripe-Signature", buildSignatureHeader("whsec_wrong", payload, time.Now().Unix()))

	err := svc.IngestWebhook(ctx, payload, header)
	require.True(t, errors.Is(err, billingdomain.ErrInvalidSignature))
	assert.Equal(t, int64(0), subscriptionCount(t, db))
}

func TestUnknownEventTypeIsAcknowledged(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	payload := []byte(`{"id":"evt_other","type":"invoice.paid","data":{"object":{}}}`)
	require.NoError(t, svc.IngestWebhook(ctx, payload, signedDelivery(t, payload)))
	assert.Equal(t, int64(0), subscriptionCount(t, db))
}

func TestCheckoutMissingFieldsRejected(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	payload := []byte(`{"id":"evt_checkout","type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	err := svc.IngestWebhook(ctx, payload, signedDelivery(t, payload))
	require.True(t, errors.Is(err, billingdomain.ErrMissingField))
	assert.Equal(t, int64(0), subscriptionCount(t, db))
}

func TestSubscriptionForVenueNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SubscriptionForVenue(context.Background(), "V404")
	require.True(t, errors.Is(err, billingdomain.ErrSubscriptionNotFound))
}
