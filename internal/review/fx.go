package review

import (
	"github.com/stagelink/stagelink/internal/review/repository"
	"github.com/stagelink/stagelink/internal/review/service"
	"go.uber.org/fx"
)

var Module = fx.Module("review.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
