package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	userservice "loyalty-platform-backend/internal/features/user/service"
)

const commandList = "Commands:\n/balance — check your points\n/link <code> — link your account"

// Dispatch parses one incoming message and returns the reply text.
// An empty string means no reply; anything that is not a known slash-command
// is silently ignored.
func (b *Bot) Dispatch(ctx context.Context, chatID int64, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	switch fields[0] {
	case "/start":
		return b.handleStart(ctx, chatID)
	case "/link":
		var code string
		if len(fields) > 1 {
			code = fields[1]
		}
		return b.handleLink(ctx, chatID, code)
	case "/balance":
		return b.handleBalance(ctx, chatID)
	default:
		return ""
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) string {
	user, err := b.users.GetUserByTelegramID(ctx, chatIDString(chatID))
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			return "Welcome! Please register on our website first, then link your account with /link <referral code>."
		}
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("start lookup failed")
		return ""
	}

	return fmt.Sprintf("Welcome back %s! Use /balance to check your points.", user.Username)
}

func (b *Bot) handleLink(ctx context.Context, chatID int64, code string) string {
	if code == "" {
		return "Usage: /link <referral code>"
	}

	user, err := b.users.LinkTelegram(ctx, code, chatIDString(chatID))
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrInvalidReferral):
			return "Invalid referral code."
		case errors.Is(err, userservice.ErrAlreadyLinked):
			return "This account is already linked."
		default:
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("link failed")
			return ""
		}
	}

	return fmt.Sprintf("Account linked! Welcome, %s.\n%s", user.Username, commandList)
}

func (b *Bot) handleBalance(ctx context.Context, chatID int64) string {
	user, err := b.users.GetUserByTelegramID(ctx, chatIDString(chatID))
	if err != nil {
		if errors.Is(err, userservice.ErrUserNotFound) {
			return "Please link your account first with /link <referral code>."
		}
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("balance lookup failed")
		return ""
	}

	// Points are reported exactly as stored.
	return fmt.Sprintf("Your current balance: %s points", user.Points)
}

func chatIDString(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
