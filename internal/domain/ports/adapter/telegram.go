package adapter

import "context"

// KeyboardButton describes one button of a reply keyboard. RequestContact
// asks the client to share the user's phone number as a contact payload.
type KeyboardButton struct {
	Text           string
	RequestContact bool
}

// TelegramBotAdapter is the outbound messaging port. The conversation engine
// talks to the chat transport only through it.
type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendKeyboard(ctx context.Context, telegramID int64, text string, rows [][]KeyboardButton) error
	SendDocument(ctx context.Context, telegramID int64, path, caption string) error
}
