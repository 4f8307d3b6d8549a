package domain

import "errors"

var (
	ErrInvalidSignature     = errors.New("invalid_signature")
	ErrInvalidPayload       = errors.New("invalid_payload")
	ErrInvalidEvent         = errors.New("invalid_event")
	ErrEventIgnored         = errors.New("event_ignored")
	ErrMissingField         = errors.New("missing_field")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionStore    = errors.New("subscription store unavailable")
	ErrConcurrentDelivery   = errors.New("concurrent delivery in progress")
	ErrWebhookSecretUnset   = errors.New("webhook secret not configured")
)
