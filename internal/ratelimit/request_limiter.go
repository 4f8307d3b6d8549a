package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/stagelink/stagelink/internal/config"
)

const (
	keyWebhookIP        = "webhook:stripe:ip:%s"
	keyLoginIP          = "auth:login:ip:%s"
	keySubscriptionLock = "billing:subscription:lock:%s"
)

// Per-bucket rates. Webhook deliveries are machine traffic and get a
// wider bucket than interactive logins.
const (
	webhookRate  = 20.0
	webhookBurst = 40
	loginRate    = 2.0
	loginBurst   = 10

	subscriptionLockTTL = 10 * time.Second
)

// RequestLimiter throttles inbound traffic per source IP and hands out
// short locks keyed by Stripe subscription so concurrent deliveries
// for the same subscription apply one at a time. Disabled (nil guts)
// when no Redis address is configured; every check then passes.
type RequestLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker
}

func NewRequestLimiter(cfg config.Config) *RequestLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return &RequestLimiter{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})

	return &RequestLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
	}
}

func (l *RequestLimiter) Enabled() bool {
	return l != nil && l.enabled
}

func (l *RequestLimiter) AllowWebhook(ctx context.Context, remoteIP string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyWebhookIP, strings.TrimSpace(remoteIP)), webhookRate, webhookBurst)
}

func (l *RequestLimiter) AllowLogin(ctx context.Context, remoteIP string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyLoginIP, strings.TrimSpace(remoteIP)), loginRate, loginBurst)
}

func (l *RequestLimiter) TryLockSubscription(ctx context.Context, subscriptionID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keySubscriptionLock, strings.TrimSpace(subscriptionID))
	return l.locker.TryLock(ctx, key, subscriptionLockTTL)
}

func (l *RequestLimiter) ReleaseSubscription(ctx context.Context, subscriptionID, token string) error {
	if !l.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keySubscriptionLock, strings.TrimSpace(subscriptionID))
	return l.locker.Release(ctx, key, token)
}
