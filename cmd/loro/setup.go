package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/franvarela/lorobot/internal/config"
	"github.com/franvarela/lorobot/internal/core"
	"github.com/franvarela/lorobot/internal/language"
	"github.com/franvarela/lorobot/internal/service/learning"
	"github.com/franvarela/lorobot/internal/storage/memstore"
	"github.com/franvarela/lorobot/internal/storage/sqlite"
	"github.com/franvarela/lorobot/internal/transport/httpapi"
	"github.com/franvarela/lorobot/internal/transport/telegram"
	"github.com/franvarela/lorobot/pkg/log"
	"github.com/franvarela/lorobot/pkg/srv"
)

// NewServices wires configuration, storage, the learning engine, and the
// enabled transports into the service list the start command runs.
func NewServices(ctx context.Context, inMemory bool) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	appCfg := config.NewAppConfig(ctx)
	learningCfg := config.NewLearningConfig(ctx)

	engine, cleanup, err := newEngine(ctx, appCfg, learningCfg, inMemory)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	if cleanup != nil {
		services = append(services, srv.NewCleanup(cleanup))
	}

	if appCfg.EnableTelegram {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, engine)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram listener")
		}
		services = append(services, bot)
	}

	if appCfg.EnableHTTP {
		httpCfg := config.NewHTTPConfig(ctx)
		services = append(services, httpapi.NewServer(ctx, httpCfg, engine))
	}

	if len(services) == 0 {
		logger.Fatal().Msg("no transports enabled; set LORO_ENABLE_TELEGRAM or LORO_ENABLE_HTTP")
	}

	return services
}

// newEngine builds the learning engine over sqlite, or over in-memory
// repositories for throwaway runs. The returned cleanup closes the database
// and is nil in memory mode.
func newEngine(ctx context.Context, appCfg *config.AppConfig, learningCfg *config.LearningConfig, inMemory bool) (*learning.Engine, func() error, error) {
	profile := language.Spanish()

	var messages core.MessagesRepository
	var patterns core.PatternsRepository
	var contexts core.ContextsRepository
	var cleanup func() error

	if inMemory {
		messages = memstore.NewMessages()
		patterns = memstore.NewPatterns()
		contexts = memstore.NewContexts()
	} else {
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return nil, nil, err
		}
		messages = sqlite.NewMessagesRepo(db)
		patterns = sqlite.NewPatternsRepo(db)
		contexts = sqlite.NewContextsRepo(db)
		cleanup = db.Close
	}

	return learning.NewEngine(learningCfg, profile, messages, patterns, contexts), cleanup, nil
}

// openEngine is the one-shot variant for the stats/ask/patterns commands:
// sqlite only, caller closes via the returned func.
func openEngine(ctx context.Context) (*learning.Engine, func() error, error) {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, nil, err
	}
	appCfg := config.NewAppConfig(ctx)
	learningCfg := config.NewLearningConfig(ctx)
	return newEngine(ctx, appCfg, learningCfg, false)
}

func initEnv(ctx context.Context, runtimePath string) error {
	envPath := filepath.Join(runtimePath, ".env")
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(envPath); err != nil {
		return err
	}
	log.FromCtx(ctx).Debug().Str("path", envPath).Msg("loaded env file")
	return nil
}
