// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

// Button is a single keyboard button. Data carries callback data for inline
// buttons; reply-keyboard buttons use Text only.
type Button struct {
	Text string
	Data string
	URL  string
}

// ReplyMarkup describes the keyboard attached to an outgoing message.
// IsInline selects an inline keyboard; otherwise Buttons render as a reply
// keyboard. RemoveKeyboard hides a previously shown reply keyboard.
type ReplyMarkup struct {
	Buttons        [][]Button
	IsInline       bool
	Resize         bool
	RemoveKeyboard bool
}

type SendMessageParams struct {
	ChatID      int64
	Text        string
	ParseMode   string
	ReplyMarkup *ReplyMarkup
}

type EditMarkupParams struct {
	ChatID    int64
	MessageID int
	Buttons   [][]Button
}

// IncomingMessage is a transport-neutral view of a text message.
type IncomingMessage struct {
	ChatID int64
	FromID int64
	Text   string
}

// CallbackEvent is a transport-neutral view of an inline button press.
// Keyboard is the current inline keyboard of the originating message.
type CallbackEvent struct {
	ID        string
	Data      string
	ChatID    int64
	FromID    int64
	MessageID int
	Keyboard  [][]Button
}

type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, params SendMessageParams) error
	EditMessageMarkup(ctx context.Context, params EditMarkupParams) error
	AnswerCallback(ctx context.Context, callbackID string) error
}
