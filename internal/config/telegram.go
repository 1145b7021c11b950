package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/franvarela/lorobot/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"LORO_TELEGRAM_TOKEN,required,notEmpty"`
	// OwnerID gates the operator commands (/stats, /ask); learning itself
	// listens to every chat the bot is in.
	OwnerID int64 `env:"LORO_TELEGRAM_OWNER_ID,required"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse telegram config")
	}
	return c
}
