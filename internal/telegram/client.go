// Package telegram implements the delivery client that sends one formatted
// message per pipeline run to the configured Telegram chat.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dailymentor/dailymentor/internal/errs"
)

// Client defines the interface for quote delivery used by the pipeline.
type Client interface {
	SendQuote(ctx context.Context, text string) error
}

type botClient struct {
	bot    *bot.Bot
	log    *slog.Logger
	token  string
	chatID string
}

// NewClient creates a new Telegram delivery client. Construction is
// network-free (no getMe probe) so credential problems surface on send,
// where the caller's retry policy applies.
func NewClient(token, chatID string, log *slog.Logger) (Client, error) {
	if token == "" {
		return nil, errs.NewConfigError("telegram bot token is required", nil)
	}
	if chatID == "" {
		return nil, errs.NewConfigError("telegram chat ID is required", nil)
	}
	if log == nil {
		log = slog.Default()
	}
	logger := log.With("component", "telegram_client")

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, errs.NewConfigError("failed to create telegram bot", err)
	}

	logger.Info("Telegram client initialized", "token_prefix", tokenPrefix(token), "chat_id", chatID)
	return &botClient{
		bot:    b,
		log:    logger,
		token:  token,
		chatID: chatID,
	}, nil
}

// SendQuote sends exactly one Markdown-formatted message to the configured
// chat. The call is not idempotent on Telegram's side: a successful send
// must not be repeated.
func (c *botClient) SendQuote(ctx context.Context, text string) error {
	c.log.DebugContext(ctx, "Sending message", "chat_id", c.chatID, "length", len(text))

	_, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: models.ParseModeMarkdownV1,
	})
	if err != nil {
		classified := c.classifyError(err)
		c.log.ErrorContext(ctx, "Telegram send failed", "chat_id", c.chatID, "error", classified)
		return classified
	}

	c.log.InfoContext(ctx, "Message sent", "chat_id", c.chatID)
	return nil
}

// classifyError maps Telegram API failures onto the application error
// taxonomy. The raw error is never wrapped: transport errors embed the
// request URL, which contains the bot token, so only a redacted message is
// carried forward.
func (c *botClient) classifyError(err error) error {
	msg := redact(err.Error(), c.token)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "unauthorized"):
		return errs.NewAuthError("telegram rejected the bot token", nil)
	case strings.Contains(lower, "chat not found"),
		strings.Contains(lower, "bot was blocked"),
		strings.Contains(lower, "bot was kicked"),
		strings.Contains(lower, "forbidden"):
		return errs.NewTargetInvalidError(fmt.Sprintf("telegram destination rejected: %s", msg), nil)
	case strings.Contains(lower, "too many requests"):
		return errs.NewUnavailableError("telegram rate limit exceeded", nil)
	default:
		return errs.NewUnavailableError(fmt.Sprintf("telegram send failed: %s", msg), nil)
	}
}

// redact replaces every occurrence of the token in s so it can never reach
// log output through an error message.
func redact(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "***")
}

func tokenPrefix(token string) string {
	if len(token) <= 8 {
		return "..."
	}
	return token[:8] + "..."
}
