package billing

import (
	"github.com/stagelink/stagelink/internal/billing/repository"
	"github.com/stagelink/stagelink/internal/billing/service"
	"github.com/stagelink/stagelink/internal/billing/stripe"
	"github.com/stagelink/stagelink/internal/config"
	"go.uber.org/fx"
)

func provideVerifier(cfg config.Config) (*stripe.Verifier, error) {
	return stripe.NewVerifier(cfg.StripeWebhookSecret)
}

var Module = fx.Module("billing.service",
	fx.Provide(provideVerifier),
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
