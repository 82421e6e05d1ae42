package grievance

import (
	"github.com/smallbiznis/rationbook/internal/grievance/repository"
	"github.com/smallbiznis/rationbook/internal/grievance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("grievance.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
