package announcement

import (
	"github.com/smallbiznis/rationbook/internal/announcement/repository"
	"github.com/smallbiznis/rationbook/internal/announcement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("announcement.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
