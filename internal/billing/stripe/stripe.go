// Package stripe verifies and parses Stripe webhook deliveries.
package stripe

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	billingdomain "github.com/stagelink/stagelink/internal/billing/domain"
)

type Verifier struct {
	webhookSecret string
}

func NewVerifier(webhookSecret string) (*Verifier, error) {
	secret := strings.TrimSpace(webhookSecret)
	if secret == "" {
		return nil, billingdomain.ErrWebhookSecretUnset
	}
	return &Verifier{webhookSecret: secret}, nil
}

// Verify checks the Stripe-Signature header against the raw payload.
// The signed payload is "<timestamp>.<payload>" and any matching v1
// signature passes.
func (v *Verifier) Verify(payload []byte, headers http.Header) error {
	sigHeader := strings.TrimSpace(headers.Get("Stripe-Signature"))
	if sigHeader == "" {
		return billingdomain.ErrInvalidSignature
	}

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return billingdomain.ErrInvalidSignature
	}

	signedPayload := fmt.Sprintf("%s.%s", timestamp, string(payload))
	mac := hmac.New(sha256.New, []byte(v.webhookSecret))
	_, _ = mac.Write([]byte(signedPayload))
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return nil
		}
	}

	return billingdomain.ErrInvalidSignature
}

// Parse extracts the subscription-relevant fields from a webhook
// payload. Event types outside the dispatch set return ErrEventIgnored.
func (v *Verifier) Parse(payload []byte) (*billingdomain.SubscriptionEvent, error) {
	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, billingdomain.ErrInvalidPayload
	}
	if strings.TrimSpace(event.ID) == "" {
		return nil, billingdomain.ErrInvalidEvent
	}

	switch strings.TrimSpace(event.Type) {
	case billingdomain.EventTypeCheckoutCompleted:
		return parseCheckoutSession(event, payload)
	case billingdomain.EventTypeSubscriptionUpdated:
		return parseSubscription(event, payload)
	default:
		return nil, billingdomain.ErrEventIgnored
	}
}

type stripeEvent struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Created int64           `json:"created"`
	Data    stripeEventData `json:"data"`
}

type stripeEventData struct {
	Object json.RawMessage `json:"object"`
}

type stripeCheckoutSession struct {
	ID                string `json:"id"`
	ClientReferenceID string `json:"client_reference_id"`
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`
	Created           int64  `json:"created"`
}

type stripeSubscription struct {
	ID               string `json:"id"`
	Customer         string `json:"customer"`
	Status           string `json:"status"`
	CurrentPeriodEnd int64  `json:"current_period_end"`
	Created          int64  `json:"created"`
}

func parseCheckoutSession(event stripeEvent, payload []byte) (*billingdomain.SubscriptionEvent, error) {
	var session stripeCheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return nil, billingdomain.ErrInvalidPayload
	}

	venueID := strings.TrimSpace(session.ClientReferenceID)
	subscriptionID := strings.TrimSpace(session.Subscription)
	if venueID == "" || subscriptionID == "" {
		return nil, billingdomain.ErrMissingField
	}

	return &billingdomain.SubscriptionEvent{
		ProviderEventID: event.ID,
		Type:            billingdomain.EventTypeCheckoutCompleted,
		VenueID:         venueID,
		SubscriptionID:  subscriptionID,
		CustomerID:      strings.TrimSpace(session.Customer),
		OccurredAt:      timestamp(session.Created, event.Created),
		RawPayload:      payload,
	}, nil
}

func parseSubscription(event stripeEvent, payload []byte) (*billingdomain.SubscriptionEvent, error) {
	var sub stripeSubscription
	if err := json.Unmarshal(event.Data.Object, &sub); err != nil {
		return nil, billingdomain.ErrInvalidPayload
	}

	// Update events reference the stored subscription through the
	// customer field; the object id fills in when it is absent.
	subscriptionID := strings.TrimSpace(sub.Customer)
	if subscriptionID == "" {
		subscriptionID = strings.TrimSpace(sub.ID)
	}
	if subscriptionID == "" {
		return nil, billingdomain.ErrMissingField
	}

	out := &billingdomain.SubscriptionEvent{
		ProviderEventID: event.ID,
		Type:            billingdomain.EventTypeSubscriptionUpdated,
		SubscriptionID:  subscriptionID,
		CustomerID:      strings.TrimSpace(sub.Customer),
		Status:          strings.TrimSpace(sub.Status),
		OccurredAt:      timestamp(sub.Created, event.Created),
		RawPayload:      payload,
	}
	if sub.CurrentPeriodEnd > 0 {
		periodEnd := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		out.CurrentPeriodEnd = &periodEnd
	}
	return out, nil
}

func parseSignatureHeader(header string) (string, []string, error) {
	parts := strings.Split(header, ",")
	var timestamp string
	signatures := []string{}
	for _, part := range parts {
		piece := strings.TrimSpace(part)
		if piece == "" {
			continue
		}
		keyValue := strings.SplitN(piece, "=", 2)
		if len(keyValue) != 2 {
			continue
		}
		key := strings.TrimSpace(keyValue[0])
		value := strings.TrimSpace(keyValue[1])
		if key == "t" {
			timestamp = value
		}
		if key == "v1" {
			signatures = append(signatures, value)
		}
	}
	if timestamp == "" || len(signatures) == 0 {
		return "", nil, errors.New("invalid_signature")
	}
	return timestamp, signatures, nil
}

func timestamp(primary int64, fallback int64) time.Time {
	value := primary
	if value == 0 {
		value = fallback
	}
	if value == 0 {
		return time.Now().UTC()
	}
	return time.Unix(value, 0).UTC()
}
