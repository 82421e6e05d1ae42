package entitlement

import (
	"github.com/smallbiznis/rationbook/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("entitlement",
	fx.Provide(func(cfg config.Config) Calculator {
		return NewCalculator(cfg.RicePerPersonKg)
	}),
)
