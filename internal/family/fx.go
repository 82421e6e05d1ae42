package family

import (
	"github.com/smallbiznis/rationbook/internal/family/repository"
	"github.com/smallbiznis/rationbook/internal/family/service"
	"go.uber.org/fx"
)

var Module = fx.Module("family.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
