package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/franvarela/lorobot/pkg/log"
)

// LearningConfig carries the thresholds of the learning engine. The defaults
// match the behavior the system was tuned with: a pattern becomes retrievable
// only after five observations, and fuzzy matches must clear 0.5 similarity.
type LearningConfig struct {
	Enabled            bool    `env:"LORO_LEARNING_ENABLED" envDefault:"true"`
	ContextMessages    int     `env:"LORO_CONTEXT_MESSAGES" envDefault:"10"`
	RelevanceThreshold float64 `env:"LORO_RELEVANCE_THRESHOLD" envDefault:"0.5"`
	FrequencyThreshold int     `env:"LORO_FREQUENCY_THRESHOLD" envDefault:"5"`
}

func NewLearningConfig(ctx context.Context) *LearningConfig {
	c := &LearningConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse learning config")
	}
	return c
}
