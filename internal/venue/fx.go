package venue

import (
	"github.com/stagelink/stagelink/internal/venue/repository"
	"github.com/stagelink/stagelink/internal/venue/service"
	"go.uber.org/fx"
)

var Module = fx.Module("venue.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
