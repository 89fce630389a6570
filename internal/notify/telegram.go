package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"

	"github.com/routineboard/routineboard/internal/model"
)

// TelegramForwarder mirrors emitted notifications into an operations
// chat so schedulers see negotiations without polling the UI.
type TelegramForwarder struct {
	bot    *bot.Bot
	chatID string
}

func NewTelegramForwarder(token, chatID string) (*TelegramForwarder, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramForwarder{bot: b, chatID: chatID}, nil
}

func (f *TelegramForwarder) Forward(ctx context.Context, n model.Notification, recipient model.Program) error {
	_, err := f.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: f.chatID,
		Text:   fmt.Sprintf("[%s] to %s: %s", n.Severity, recipient.ProgramCode, n.Message),
	})
	return err
}
