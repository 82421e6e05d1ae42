package report

import (
	"github.com/smallbiznis/rationbook/internal/report/repository"
	"github.com/smallbiznis/rationbook/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
