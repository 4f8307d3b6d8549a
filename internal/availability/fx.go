package availability

import (
	"github.com/stagelink/stagelink/internal/availability/repository"
	"github.com/stagelink/stagelink/internal/availability/service"
	"go.uber.org/fx"
)

var Module = fx.Module("availability.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
