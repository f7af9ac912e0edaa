package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"crystal-petrol-bot/internal/domain/ports/adapter"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements the outbound port for local development: it logs
// every send instead of talking to Telegram.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

func NewNoopBotAdapter(logger *zerolog.Logger) *NoopBotAdapter {
	return &NoopBotAdapter{log: logger}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	b.log.Info().Int64("to", tgID).Str("text", text).Msg("noop send")
	return nil
}

func (b *NoopBotAdapter) SendKeyboard(ctx context.Context, tgID int64, text string, rows [][]adapter.KeyboardButton) error {
	b.log.Info().Int64("to", tgID).Str("text", text).Int("rows", len(rows)).Msg("noop send keyboard")
	return nil
}

func (b *NoopBotAdapter) SendDocument(ctx context.Context, tgID int64, path, caption string) error {
	b.log.Info().Int64("to", tgID).Str("path", path).Msg("noop send document")
	return nil
}
