package telegram

import (
	"context"
	"strconv"
	"strings"

	"telegram-shopping-list/internal/domain/ports/adapter"
	"telegram-shopping-list/internal/infra/metrics"
)

type tokenKind int

const (
	tokenUnknown tokenKind = iota
	tokenDisabled
	tokenBuy
	tokenDelete
)

// callbackToken is the decoded form of an inline button's callback data.
// Decoding happens exactly once at the boundary; handlers dispatch on the
// kind and never re-parse the string.
type callbackToken struct {
	kind   tokenKind
	itemID int64
}

func parseCallbackToken(data string) callbackToken {
	if data == DisabledToken {
		return callbackToken{kind: tokenDisabled}
	}
	action, payload, ok := strings.Cut(data, "_")
	if !ok {
		return callbackToken{kind: tokenUnknown}
	}
	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil {
		return callbackToken{kind: tokenUnknown}
	}
	switch action {
	case "buy":
		return callbackToken{kind: tokenBuy, itemID: id}
	case "delete":
		return callbackToken{kind: tokenDelete, itemID: id}
	default:
		return callbackToken{kind: tokenUnknown}
	}
}

func (k tokenKind) String() string {
	switch k {
	case tokenDisabled:
		return "disabled"
	case tokenBuy:
		return "buy"
	case tokenDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// HandleCallback routes one inline button press. Every branch acknowledges
// the callback so the client stops its loading indicator, including error
// branches. Disabled and unknown tokens are acknowledged as already handled:
// no store mutation, no message edit.
func (r *Router) HandleCallback(ctx context.Context, ev adapter.CallbackEvent) {
	defer func() {
		if err := r.bot.AnswerCallback(ctx, ev.ID); err != nil {
			r.log.Warn().Err(err).Str("callback_id", ev.ID).Msg("failed to answer callback")
		}
	}()

	tok := parseCallbackToken(ev.Data)

	var err error
	switch tok.kind {
	case tokenDisabled, tokenUnknown:
		metrics.IncCallback(tok.kind.String(), "ignored")
		return
	case tokenBuy:
		err = r.completeItemAction(ctx, ev, tok.itemID, r.facade.MarkBought, boughtMarker)
	case tokenDelete:
		err = r.completeItemAction(ctx, ev, tok.itemID, r.facade.DeleteItem, deletedMarker)
	}

	if err != nil {
		metrics.IncCallback(tok.kind.String(), "error")
		r.log.Error().Err(err).Int64("item_id", tok.itemID).Str("action", tok.kind.String()).Msg("callback handler failed")
		r.sendErrorMessage(ctx, ev.ChatID)
		return
	}
	metrics.IncCallback(tok.kind.String(), "ok")
}

// completeItemAction applies the store mutation, then flips exactly the
// pressed button to its done marker on the original message. A message
// without a keyboard (stale client) skips the edit.
func (r *Router) completeItemAction(ctx context.Context, ev adapter.CallbackEvent, itemID int64, mutate func(context.Context, int64) error, marker string) error {
	if err := mutate(ctx, itemID); err != nil {
		return err
	}
	if len(ev.Keyboard) == 0 {
		return nil
	}
	return r.bot.EditMessageMarkup(ctx, adapter.EditMarkupParams{
		ChatID:    ev.ChatID,
		MessageID: ev.MessageID,
		Buttons:   disableButton(ev.Keyboard, ev.Data, marker),
	})
}
