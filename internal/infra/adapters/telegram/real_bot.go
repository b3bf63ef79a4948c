package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-shopping-list/internal/application"
	"telegram-shopping-list/internal/config"
	"telegram-shopping-list/internal/domain/ports/adapter"
	"telegram-shopping-list/internal/domain/ports/repository"
	"telegram-shopping-list/internal/infra/logging"
	"telegram-shopping-list/internal/infra/metrics"
	red "telegram-shopping-list/internal/infra/redis"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates every
// event to the Router. It also implements the transport port the Router
// sends and edits through.
type RealTelegramBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	router      *Router
	rateLimiter *red.RateLimiter
	log         *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, states repository.StateRepository, rateLimiter *red.RateLimiter, logger *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if states == nil {
		return nil, errors.New("state repository is nil")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	r := &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		rateLimiter:   rateLimiter,
		log:           logger,
		updateWorkers: workers,
	}
	r.router = NewRouter(r, facade, states, logger)
	return r, nil
}

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					r.handleUpdate(ctx, up)
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

// handleUpdate converts one tgbotapi update into a transport-neutral event
// and hands it to the Router. The Router is the error boundary; nothing
// returned from it can crash a worker.
func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx = logging.WithTraceID(ctx, uuid.NewString())

	if update.CallbackQuery != nil {
		r.handleCallbackUpdate(ctx, update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	ctx = logging.WithTgID(ctx, msg.From.ID)

	if !r.allow(ctx, msg.From.ID, limitKeyForText(msg.Text), 20) {
		_ = r.SendMessage(ctx, adapter.SendMessageParams{ChatID: msg.Chat.ID, Text: rateLimitText})
		return
	}

	r.router.HandleMessage(ctx, adapter.IncomingMessage{
		ChatID: msg.Chat.ID,
		FromID: msg.From.ID,
		Text:   msg.Text,
	})
}

func (r *RealTelegramBotAdapter) handleCallbackUpdate(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.From == nil || query.Message == nil {
		return
	}
	ctx = logging.WithTgID(ctx, query.From.ID)

	if !r.allow(ctx, query.From.ID, "callback", 30) {
		_ = r.AnswerCallback(ctx, query.ID)
		return
	}

	ev := adapter.CallbackEvent{
		ID:        query.ID,
		Data:      strings.TrimSpace(query.Data),
		ChatID:    query.Message.Chat.ID,
		FromID:    query.From.ID,
		MessageID: query.Message.MessageID,
		Keyboard:  fromInlineMarkup(query.Message.ReplyMarkup),
	}
	r.router.HandleCallback(ctx, ev)
}

// allow applies a per-user per-command rate limit. A limiter failure never
// blocks the user; it only loses the limit for that event.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, tgID int64, command string, limit int) bool {
	if r.rateLimiter == nil {
		return true
	}
	allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(tgID, command), limit, time.Minute)
	if err != nil {
		r.log.Warn().Err(err).Int64("tg_id", tgID).Msg("rate limiter unavailable")
		return true
	}
	if !allowed {
		metrics.IncRateLimitTriggered()
	}
	return allowed
}

func limitKeyForText(text string) string {
	if strings.HasPrefix(text, "/") {
		if fields := strings.Fields(text); len(fields) > 0 {
			return fields[0]
		}
	}
	return "message"
}

// ---- transport port implementation ----

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, params adapter.SendMessageParams) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(params.ChatID, params.Text)
	msg.ParseMode = params.ParseMode
	if params.ReplyMarkup != nil {
		msg.ReplyMarkup = toMarkup(params.ReplyMarkup)
	}
	_, err := r.bot.Send(msg)
	return err
}

func (r *RealTelegramBotAdapter) EditMessageMarkup(ctx context.Context, params adapter.EditMarkupParams) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(params.ChatID, params.MessageID, toInlineMarkup(params.Buttons))
	_, err := r.bot.Request(edit)
	return err
}

func (r *RealTelegramBotAdapter) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

// ---- markup conversion ----

func toMarkup(m *adapter.ReplyMarkup) interface{} {
	if m.RemoveKeyboard {
		return tgbotapi.NewRemoveKeyboard(false)
	}
	if m.IsInline {
		return toInlineMarkup(m.Buttons)
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(m.Buttons))
	for _, row := range m.Buttons {
		if len(row) == 0 {
			continue
		}
		btns := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, b := range row {
			btns = append(btns, tgbotapi.NewKeyboardButton(b.Text))
		}
		rows = append(rows, btns)
	}
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = m.Resize
	return kb
}

func toInlineMarkup(rows [][]adapter.Button) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			label := strings.TrimSpace(b.Text)
			if label == "" {
				label = "•"
			}
			switch {
			case b.URL != "":
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonURL(label, b.URL))
			case b.Data != "":
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(label, b.Data))
			default:
				// safe fallback: use text as callback data
				btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(label, label))
			}
		}
		kbRows = append(kbRows, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

func fromInlineMarkup(m *tgbotapi.InlineKeyboardMarkup) [][]adapter.Button {
	if m == nil {
		return nil
	}
	rows := make([][]adapter.Button, 0, len(m.InlineKeyboard))
	for _, row := range m.InlineKeyboard {
		btns := make([]adapter.Button, 0, len(row))
		for _, b := range row {
			btn := adapter.Button{Text: b.Text}
			if b.CallbackData != nil {
				btn.Data = *b.CallbackData
			}
			if b.URL != nil {
				btn.URL = *b.URL
			}
			btns = append(btns, btn)
		}
		rows = append(rows, btns)
	}
	return rows
}
