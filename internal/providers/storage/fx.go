package storage

import (
	"github.com/smallbiznis/rationbook/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.storage",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	return NewLocal(Config{
		Dir:     cfg.UploadDir,
		BaseURL: cfg.UploadBaseURL,
	})
}
