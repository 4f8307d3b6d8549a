package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_123","type":"checkout.session.completed","data":{"object":{}}}`)
	timestamp := time.Now().Unix()

	header := buildStripeSignatureHeader(secret, payload, timestamp)
	reqHeader := http.Header{}
	reqHeader.Set("Stripe-Signature", header)

	verifier := &Verifier{webhookSecret: secret}
	if err := verifier.Verify(payload, reqHeader); err != nil {
		t.Fatalf("expected valid signature, got error: %v", err)
	}

	reqHeader.Set("Stripe-Signature", buildStripeSignatureHeader("wrong", payload, timestamp))
	if err := verifier.Verify(payload, reqHeader); !errors.Is(err, billingdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error, got %v", err)
	}

	reqHeader.Del("Stripe-Signature")
	if err := verifier.Verify(payload, reqHeader); !errors.Is(err, billingdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error for missing header, got %v", err)
	}
}

func TestVerifyTamperedPayload(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_123","type":"checkout.session.completed"}`)
	header := buildStripeSignatureHeader(secret, payload, time.Now().Unix())
	reqHeader := http.Header{}
	reqHeader.Set("Stripe-Signature", header)

	verifier := &Verifier{webhookSecret: secret}
	tampered := []byte(`{"id":"evt_123","type":"checkout.session.completed","extra":1}`)
	if err := verifier.Verify(tampered, reqHeader); !errors.Is(err, billingdomain.ErrInvalidSignature) {
		t.Fatalf("expected invalid signature error for tampered payload, got %v", err)
	}
}

func TestParseCheckoutCompleted(t *testing.T) {
	created := time.Now().UTC().Unix()
	payload := mustMarshal(t, map[string]any{
		"id":      "evt_checkout",
		"type":    "checkout.session.completed",
		"created": created,
		"data": map[string]any{
			"object": map[string]any{
				"id":                  "cs_1",
				"client_reference_id": "V1",
				"customer":            "cus_1",
				"subscription":        "sub_1",
				"created":             created,
			},
		},
	})

	verifier := &Verifier{webhookSecret: "whsec_test"}
	event, err := verifier.Parse(payload)
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if event.Type != billingdomain.EventTypeCheckoutCompleted {
		t.Fatalf("expected checkout type, got %s", event.Type)
	}
	if event.VenueID != "V1" {
		t.Fatalf("expected venue V1, got %s", event.VenueID)
	}
	if event.SubscriptionID != "sub_1" {
		t.Fatalf("expected subscription sub_1, got %s", event.SubscriptionID)
	}
	if event.CustomerID != "cus_1" {
		t.Fatalf("expected customer cus_1, got %s", event.CustomerID)
	}
}

func TestParseCheckoutMissingFields(t *testing.T) {
	verifier := &Verifier{webhookSecret: "whsec_test"}

	tests := []struct {
		name   string
		object map[string]any
	}{{
		name:   "missing client_reference_id",
		object: map[string]any{"id": "cs_1", "subscription": "sub_1"},
	}, {
		name:   "missing subscription",
		object: map[string]any{"id": "cs_1", "client_reference_id": "V1"},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := mustMarshal(t, map[string]any{
				"id":   "evt_checkout",
				"type": "checkout.session.completed",
				"data": map[string]any{"object": tt.object},
			})
			_, err := verifier.Parse(payload)
			if !errors.Is(err, billingdomain.ErrMissingField) {
				t.Fatalf("expected missing field error, got %v", err)
			}
		})
	}
}

func TestParseSubscriptionUpdated(t *testing.T) {
	created := time.Now().UTC().Unix()
	periodEnd := created + 30*24*3600
	payload := mustMarshal(t, map[string]any{
		"id":      "evt_sub",
		"type":    "customer.subscription.updated",
		"created": created,
		"data": map[string]any{
			"object": map[string]any{
				"id":                 "sub_1",
				"customer":           "cus_1",
				"status":             "canceled",
				"current_period_end": periodEnd,
				"created":            created,
			},
		},
	})

	verifier := &Verifier{webhookSecret: "whsec_test"}
	event, err := verifier.Parse(payload)
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if event.Type != billingdomain.EventTypeSubscriptionUpdated {
		t.Fatalf("expected subscription update type, got %s", event.Type)
	}
	// The customer field carries the subscription reference on this flow.
	if event.SubscriptionID != "cus_1" {
		t.Fatalf("expected subscription reference cus_1, got %s", event.SubscriptionID)
	}
	if event.Status != "canceled" {
		t.Fatalf("expected status canceled, got %s", event.Status)
	}
	if event.CurrentPeriodEnd == nil || event.CurrentPeriodEnd.Unix() != periodEnd {
		t.Fatalf("expected current period end %d, got %v", periodEnd, event.CurrentPeriodEnd)
	}
}

func TestParseSubscriptionUpdatedFallsBackToObjectID(t *testing.T) {
	payload := mustMarshal(t, map[string]any{
		"id":   "evt_sub",
		"type": "customer.subscription.updated",
		"data": map[string]any{
			"object": map[string]any{"id": "sub_1", "status": "unpaid"},
		},
	})

	verifier := &Verifier{webhookSecret: "whsec_test"}
	event, err := verifier.Parse(payload)
	if err != nil {
		t.Fatalf("parse event: %v", err)
	}
	if event.SubscriptionID != "sub_1" {
		t.Fatalf("expected subscription reference sub_1, got %s", event.SubscriptionID)
	}
}

func TestParseIgnoredAndInvalid(t *testing.T) {
	verifier := &Verifier{webhookSecret: "whsec_test"}

	payload := mustMarshal(t, map[string]any{
		"id":   "evt_other",
		"type": "invoice.paid",
		"data": map[string]any{"object": map[string]any{}},
	})
	if _, err := verifier.Parse(payload); !errors.Is(err, billingdomain.ErrEventIgnored) {
		t.Fatalf("expected ignored event error, got %v", err)
	}

	if _, err := verifier.Parse([]byte("not json")); !errors.Is(err, billingdomain.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}

	payload = mustMarshal(t, map[string]any{"type": "checkout.session.completed"})
	if _, err := verifier.Parse(payload); !errors.Is(err, billingdomain.ErrInvalidEvent) {
		t.Fatalf("expected invalid event error, got %v", err)
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return payload
}

func buildStripeSignatureHeader(secret string, payload []byte, timestamp int64) string {
	signedPayload := fmt.Sprintf("%d.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(signedPayload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("t=%d,v1=%s", timestamp, signature)
}
