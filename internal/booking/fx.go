package booking

import (
	"github.com/stagelink/stagelink/internal/booking/repository"
	"github.com/stagelink/stagelink/internal/booking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
