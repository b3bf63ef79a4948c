package telegram

import (
	"context"
	"fmt"
	"strings"

	"telegram-shopping-list/internal/application"
	"telegram-shopping-list/internal/domain/ports/adapter"
	"telegram-shopping-list/internal/domain/ports/repository"
	"telegram-shopping-list/internal/infra/metrics"

	"github.com/rs/zerolog"
)

type commandHandler func(ctx context.Context, msg adapter.IncomingMessage) error

// Router dispatches transport-neutral message and callback events to the
// right handler. It is the error boundary for event handling: nothing a
// handler returns escapes past HandleMessage/HandleCallback; failures become
// a single generic error message to the originating chat.
type Router struct {
	bot    adapter.TelegramBotAdapter
	facade *application.BotFacade
	states repository.StateRepository
	log    *zerolog.Logger
}

func NewRouter(bot adapter.TelegramBotAdapter, facade *application.BotFacade, states repository.StateRepository, logger *zerolog.Logger) *Router {
	return &Router{
		bot:    bot,
		facade: facade,
		states: states,
		log:    logger,
	}
}

// commandRoutes maps exact message text to handlers: slash commands first,
// then the menu-item labels. Anything not in the map is free text.
func (r *Router) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"/start": r.handleStartCommand,
		"/stop":  r.handleStopCommand,
		"/help":  r.handleHelpCommand,

		ViewListMenuItem:       r.handleViewListCommand,
		AddItemsMenuItem:       r.handleAddItemsCommand,
		CancelAddItemsMenuItem: r.handleCancelAddItemsCommand,
		DeleteItemsMenuItem:    r.handleDeleteItemsCommand,
		MarkBoughtMenuItem:     r.handleMarkItemsBoughtCommand,
	}
}

// HandleMessage routes one inbound text message. Handler errors are logged,
// counted and converted into a generic error reply; they never propagate.
func (r *Router) HandleMessage(ctx context.Context, msg adapter.IncomingMessage) {
	name := commandName(msg.Text)
	handler, ok := r.commandRoutes()[msg.Text]
	if !ok {
		handler = r.handleFreeTextMessage
	}

	if err := handler(ctx, msg); err != nil {
		metrics.IncCommand(name, "error")
		r.log.Error().Err(err).Int64("tg_id", msg.FromID).Str("command", name).Msg("command handler failed")
		r.sendErrorMessage(ctx, msg.ChatID)
		return
	}
	metrics.IncCommand(name, "ok")
}

// commandName normalizes message text into a low-cardinality metrics label.
func commandName(text string) string {
	switch text {
	case "/start", "/stop", "/help":
		return text
	case ViewListMenuItem:
		return "view_list"
	case AddItemsMenuItem:
		return "add_items"
	case CancelAddItemsMenuItem:
		return "cancel_add_items"
	case DeleteItemsMenuItem:
		return "delete_items"
	case MarkBoughtMenuItem:
		return "mark_bought"
	default:
		return "message"
	}
}

func (r *Router) sendErrorMessage(ctx context.Context, chatID int64) {
	if err := r.bot.SendMessage(ctx, adapter.SendMessageParams{ChatID: chatID, Text: genericErrorText}); err != nil {
		r.log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send error message")
	}
}

func (r *Router) handleStartCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	if err := r.facade.HandleStart(ctx, msg.FromID, ""); err != nil {
		return err
	}
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        welcomeText,
		ParseMode:   "Markdown",
		ReplyMarkup: mainMenu(),
	})
}

func (r *Router) handleStopCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        stopText,
		ReplyMarkup: removeKeyboard(),
	})
}

func (r *Router) handleHelpCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.ChatID, Text: helpText})
}

func (r *Router) handleViewListCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	items, err := r.facade.ListItems(ctx, msg.FromID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return r.bot.SendMessage(ctx, adapter.SendMessageParams{
			ChatID:      msg.ChatID,
			Text:        emptyListText,
			ReplyMarkup: mainMenu(),
		})
	}
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        formatList(items),
		ParseMode:   "Markdown",
		ReplyMarkup: mainMenu(),
	})
}

func (r *Router) handleAddItemsCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	st := &repository.ConversationState{Mode: repository.ModeAddingItems}
	if err := r.states.SetState(ctx, msg.FromID, st); err != nil {
		return err
	}
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        addItemsPromptText,
		ReplyMarkup: addItemsMenu(),
	})
}

// Mode is keyed by Telegram id on both set and clear; cancel needs no
// identity resolution.
func (r *Router) handleCancelAddItemsCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	if err := r.states.ClearState(ctx, msg.FromID); err != nil {
		return err
	}
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        addModeExitedText,
		ReplyMarkup: mainMenu(),
	})
}

func (r *Router) handleDeleteItemsCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	items, err := r.facade.ListItems(ctx, msg.FromID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return r.bot.SendMessage(ctx, adapter.SendMessageParams{
			ChatID:      msg.ChatID,
			Text:        emptyListText,
			ReplyMarkup: mainMenu(),
		})
	}
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        selectDeleteText,
		ReplyMarkup: &adapter.ReplyMarkup{Buttons: deleteKeyboard(items), IsInline: true},
	})
}

func (r *Router) handleMarkItemsBoughtCommand(ctx context.Context, msg adapter.IncomingMessage) error {
	items, err := r.facade.ListUnbought(ctx, msg.FromID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return r.bot.SendMessage(ctx, adapter.SendMessageParams{
			ChatID:      msg.ChatID,
			Text:        allBoughtText,
			ReplyMarkup: mainMenu(),
		})
	}
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        selectItemsText,
		ReplyMarkup: &adapter.ReplyMarkup{Buttons: buyKeyboard(items), IsInline: true},
	})
}

// handleFreeTextMessage interprets plain text while the user is in the
// adding-items mode; otherwise input is ignored. Slash-prefixed text is
// ignored too so unknown commands are not swallowed into the list.
func (r *Router) handleFreeTextMessage(ctx context.Context, msg adapter.IncomingMessage) error {
	st, err := r.states.GetState(ctx, msg.FromID)
	if err != nil {
		return err
	}
	if st == nil || st.Mode != repository.ModeAddingItems {
		return nil
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" || strings.HasPrefix(text, "/") {
		return nil
	}

	item, err := r.facade.AddItem(ctx, msg.FromID, text)
	if err != nil {
		return err
	}

	// Mode stays active so the user can keep adding items.
	return r.bot.SendMessage(ctx, adapter.SendMessageParams{
		ChatID:      msg.ChatID,
		Text:        fmt.Sprintf("✅ *%s* added.\n\nAdd another item or press ❌ Cancel.", item.Name),
		ParseMode:   "Markdown",
		ReplyMarkup: addItemsMenu(),
	})
}
