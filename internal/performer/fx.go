package performer

import (
	"github.com/stagelink/stagelink/internal/performer/repository"
	"github.com/stagelink/stagelink/internal/performer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("performer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
