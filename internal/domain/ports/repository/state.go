package repository

import (
	"context"
)

// Conversation modes. Only one flow exists today; new flows add constants here.
const ModeAddingItems = "adding_items"

// ConversationState holds the user's progress in a multi-step conversation.
// It is keyed by Telegram id everywhere: ephemeral UI state never needs
// identity resolution, and mixing key spaces is how modes get stuck.
type ConversationState struct {
	Mode string `json:"mode"`
}

// StateRepository is the port for managing any user's conversational state.
// Implementations need no durability; a process restart resetting every user
// to idle is acceptable.
type StateRepository interface {
	SetState(ctx context.Context, tgID int64, state *ConversationState) error
	GetState(ctx context.Context, tgID int64) (*ConversationState, error)
	ClearState(ctx context.Context, tgID int64) error
}
