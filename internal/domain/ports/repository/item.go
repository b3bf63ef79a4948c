package repository

import (
	"context"

	"telegram-shopping-list/internal/domain/model"
)

// -----------------------------
// Shopping-list items
// -----------------------------

type ItemRepository interface {
	// Save inserts the item; the store-assigned ID is written back into it.
	Save(ctx context.Context, tx Tx, item *model.Item) error
	ListByUser(ctx context.Context, tx Tx, userID int64) ([]model.Item, error)
	ListUnboughtByUser(ctx context.Context, tx Tx, userID int64) ([]model.Item, error)
	MarkBought(ctx context.Context, tx Tx, itemID int64) error
	Delete(ctx context.Context, tx Tx, itemID int64) error
}
