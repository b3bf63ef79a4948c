package repository

import (
	"context"

	"telegram-shopping-list/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	// Save inserts or updates the user; on insert the store-assigned
	// ID is written back into u.
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByTelegramID(ctx context.Context, tx Tx, tgID int64) (*model.User, error)
	FindByID(ctx context.Context, tx Tx, id int64) (*model.User, error)
}

// IdentityResolver maps a Telegram user id to the internal user id,
// creating the user on first contact. Implementations may cache, but the
// mapping they return must always be backed by the store.
type IdentityResolver interface {
	ResolveUserID(ctx context.Context, tgID int64) (int64, error)
}
