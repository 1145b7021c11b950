package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/franvarela/lorobot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"LORO_RUNTIME_PATH" envDefault:".lorobot"`

	// Transport flags
	EnableTelegram bool `env:"LORO_ENABLE_TELEGRAM" envDefault:"false"`
	EnableHTTP     bool `env:"LORO_ENABLE_HTTP" envDefault:"true"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "lorobot.db")
}
