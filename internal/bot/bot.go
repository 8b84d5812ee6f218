package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	userservice "loyalty-platform-backend/internal/features/user/service"
)

// Bot runs the Telegram long-poll loop and dispatches slash-commands.
type Bot struct {
	api   *tgbotapi.BotAPI
	log   zerolog.Logger
	users userservice.UserService
}

func New(token string, debug bool, users userservice.UserService, log zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug

	return &Bot{
		api:   api,
		log:   log.With().Str("component", "bot").Logger(),
		users: users,
	}, nil
}

func (b *Bot) Run(ctx context.Context) error {
	b.log.Info().Str("username", b.api.Self.UserName).Msg("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case upd := <-updates:
			if upd.Message == nil {
				continue
			}
			reply := b.Dispatch(ctx, upd.Message.Chat.ID, upd.Message.Text)
			if reply == "" {
				continue
			}
			b.send(tgbotapi.NewMessage(upd.Message.Chat.ID, reply))
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Msg("send failed")
	}
}
