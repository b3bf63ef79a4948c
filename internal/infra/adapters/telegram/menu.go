package telegram

import (
	"fmt"
	"strings"

	"telegram-shopping-list/internal/domain/model"
	"telegram-shopping-list/internal/domain/ports/adapter"
)

// Menu-item labels. Incoming text is matched against these exactly, so
// changing one is a user-visible migration (old keyboards keep sending the
// old label until the menu is re-sent).
const (
	ViewListMenuItem       = "📝 View List"
	AddItemsMenuItem       = "➕ Add Items"
	CancelAddItemsMenuItem = "❌ Cancel"
	DeleteItemsMenuItem    = "🗑️ Delete Items"
	MarkBoughtMenuItem     = "✅ Mark Bought"
)

// Callback token scheme: "<action>_<itemId>", plus the sentinel for buttons
// that were already acted on. The renderer and the callback router share this
// as a de facto wire contract.
const (
	buyTokenPrefix    = "buy_"
	deleteTokenPrefix = "delete_"
	DisabledToken     = "disabled"

	boughtMarker  = "✅ Bought"
	deletedMarker = "✅ Deleted"
)

const (
	welcomeText        = "🛒 *Welcome to Shopping List Bot!*\n\nWhat would you like to do?"
	stopText           = "👋 Bot stopped. Use /start to activate again."
	helpText           = "Commands:\n/start - show the menu\n/stop - hide the keyboard\n/help - this message\n\nUse the menu buttons to manage your list."
	emptyListText      = "🛍️ Your list is empty!"
	allBoughtText      = "🎉 All items already bought!"
	selectItemsText    = "Select items:"
	selectDeleteText   = "Select items to delete:"
	addItemsPromptText = "✏️ Send an item name.\n\nYou can add multiple items one by one.\nPress ❌ Cancel when done."
	addModeExitedText  = "✅ Add mode exited."
	genericErrorText   = "⚠️ Something went wrong. Please try again."
	rateLimitText      = "Rate limit exceeded. Please try again later."
)

// mainMenu builds the persistent reply keyboard with the four actions.
// Constructors return fresh values every call so no handler can mutate a
// keyboard another handler is about to send.
func mainMenu() *adapter.ReplyMarkup {
	return &adapter.ReplyMarkup{
		Buttons: [][]adapter.Button{
			{{Text: ViewListMenuItem}, {Text: AddItemsMenuItem}},
			{{Text: MarkBoughtMenuItem}, {Text: DeleteItemsMenuItem}},
		},
		Resize: true,
	}
}

// addItemsMenu shows only the cancel affordance while the user types items.
func addItemsMenu() *adapter.ReplyMarkup {
	return &adapter.ReplyMarkup{
		Buttons: [][]adapter.Button{
			{{Text: CancelAddItemsMenuItem}},
		},
		Resize: true,
	}
}

func removeKeyboard() *adapter.ReplyMarkup {
	return &adapter.ReplyMarkup{RemoveKeyboard: true}
}

// buyKeyboard renders one button per unbought item carrying a buy token.
func buyKeyboard(items []model.Item) [][]adapter.Button {
	rows := make([][]adapter.Button, 0, len(items))
	for _, it := range items {
		rows = append(rows, []adapter.Button{{
			Text: "🛒 " + it.Name,
			Data: fmt.Sprintf("%s%d", buyTokenPrefix, it.ID),
		}})
	}
	return rows
}

// deleteKeyboard renders one button per item carrying a delete token.
func deleteKeyboard(items []model.Item) [][]adapter.Button {
	rows := make([][]adapter.Button, 0, len(items))
	for _, it := range items {
		rows = append(rows, []adapter.Button{{
			Text: "🗑️ " + it.Name,
			Data: fmt.Sprintf("%s%d", deleteTokenPrefix, it.ID),
		}})
	}
	return rows
}

// disableButton returns a deep copy of rows in which exactly the button whose
// callback data equals token is replaced by (marker, DisabledToken). Every
// other button and the row structure are preserved as-is.
func disableButton(rows [][]adapter.Button, token, marker string) [][]adapter.Button {
	out := make([][]adapter.Button, len(rows))
	for i, row := range rows {
		cp := make([]adapter.Button, len(row))
		copy(cp, row)
		for j := range cp {
			if cp[j].Data == token {
				cp[j] = adapter.Button{Text: marker, Data: DisabledToken}
			}
		}
		out[i] = cp
	}
	return out
}

// formatList renders the numbered list with a status glyph per item.
func formatList(items []model.Item) string {
	var b strings.Builder
	b.WriteString("📝 *Your Shopping List:*\n\n")
	for i, it := range items {
		glyph := "🟢"
		if it.Bought {
			glyph = "✅"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, glyph, it.Name)
	}
	return strings.TrimRight(b.String(), "\n")
}
