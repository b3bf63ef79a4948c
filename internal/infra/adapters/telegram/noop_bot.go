package telegram

import (
	"context"
	"log"
	"time"

	"telegram-shopping-list/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local/dev testing.
// It logs instead of talking to Telegram.
type NoopBotAdapter struct{}

func NewNoopBotAdapter() *NoopBotAdapter {
	return &NoopBotAdapter{}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, params adapter.SendMessageParams) error {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return ctx.Err()
	}
	log.Printf("[noop-telegram] To chat %d: %s\n", params.ChatID, params.Text)
	return nil
}

func (b *NoopBotAdapter) EditMessageMarkup(ctx context.Context, params adapter.EditMarkupParams) error {
	log.Printf("[noop-telegram] Edit markup chat=%d message=%d rows=%d\n", params.ChatID, params.MessageID, len(params.Buttons))
	return nil
}

func (b *NoopBotAdapter) AnswerCallback(ctx context.Context, callbackID string) error {
	log.Printf("[noop-telegram] Answer callback %s\n", callbackID)
	return nil
}
