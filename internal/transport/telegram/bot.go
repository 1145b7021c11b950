package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/franvarela/lorobot/internal/config"
	"github.com/franvarela/lorobot/internal/core"
	"github.com/franvarela/lorobot/internal/service/learning"
	"github.com/franvarela/lorobot/pkg/log"
	"github.com/franvarela/lorobot/pkg/retry"
)

const baseContextKey = "base_context"

// Bot feeds every inbound text message into the learning engine. It never
// sends unsolicited replies; the only outbound traffic are the owner's
// /stats and /ask commands.
type Bot struct {
	bot     *tele.Bot
	engine  *learning.Engine
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	engine *learning.Engine,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	// Bot creation hits the network; ride out transient failures.
	var b *tele.Bot
	err := retry.NewDefaultRetrier().Do(ctx, func() error {
		var err error
		b, err = tele.NewBot(pref)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		engine:  engine,
		ownerID: cfg.OwnerID,
	}

	// Carry the signal-aware context with its logger into handlers.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/stats", bot.handleStats)
	b.Handle("/ask", bot.handleAsk)
	b.Handle(tele.OnText, bot.handleText)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram listener")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// handleText is the learning path: every chat the bot can see, every sender.
func (b *Bot) handleText(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	b.engine.Process(ctx, core.MessageEvent{
		SenderID:  strconv.FormatInt(c.Sender().ID, 10),
		ChatID:    fmt.Sprintf("telegram-%d", c.Chat().ID),
		Text:      c.Text(),
		Timestamp: c.Message().Time(),
	})
	return nil
}

func (b *Bot) handleStats(c tele.Context) error {
	if c.Sender().ID != b.ownerID {
		return nil // silently ignore non-owners
	}
	ctx := c.Get(baseContextKey).(context.Context)

	stats, err := b.engine.Stats(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load stats")
		return c.Send("stats unavailable, try again later")
	}

	return c.Send(fmt.Sprintf(
		"messages: %d\npatterns: %d\nchats: %d",
		stats.Messages, stats.Patterns, stats.Contexts,
	))
}

func (b *Bot) handleAsk(c tele.Context) error {
	if c.Sender().ID != b.ownerID {
		return nil
	}
	ctx := c.Get(baseContextKey).(context.Context)

	query := strings.TrimSpace(c.Message().Payload)
	if query == "" {
		return c.Send("usage: /ask <question>")
	}

	res, err := b.engine.FindBestMatch(ctx, query)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to match query")
		return c.Send("lookup failed, try again later")
	}
	if res == nil {
		return c.Send("no learned pattern matches that yet")
	}

	return c.Send(fmt.Sprintf("%s\n(%s match, confidence %.2f)", res.Answer, res.Kind, res.Confidence))
}
