package auth

import (
	"github.com/stagelink/stagelink/internal/auth/repository"
	"github.com/stagelink/stagelink/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
