package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/franvarela/lorobot/pkg/log"
)

type HTTPConfig struct {
	Addr string `env:"LORO_HTTP_ADDR" envDefault:":8000"`
}

func NewHTTPConfig(ctx context.Context) *HTTPConfig {
	c := &HTTPConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse http config")
	}
	return c
}
