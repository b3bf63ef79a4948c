package usecase

import (
	"context"

	"telegram-shopping-list/internal/domain/model"
	"telegram-shopping-list/internal/domain/ports/repository"
	"telegram-shopping-list/internal/infra/logging"
	"telegram-shopping-list/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ ItemUseCase = (*itemUC)(nil)

// ItemUseCase exposes shopping-list operations keyed by internal user id.
type ItemUseCase interface {
	List(ctx context.Context, userID int64) ([]model.Item, error)
	ListUnbought(ctx context.Context, userID int64) ([]model.Item, error)
	Add(ctx context.Context, userID int64, name string) (*model.Item, error)
	MarkBought(ctx context.Context, itemID int64) error
	Delete(ctx context.Context, itemID int64) error
}

type itemUC struct {
	items repository.ItemRepository
	log   *zerolog.Logger
}

func NewItemUseCase(items repository.ItemRepository, logger *zerolog.Logger) *itemUC {
	return &itemUC{
		items: items,
		log:   logger,
	}
}

func (u *itemUC) List(ctx context.Context, userID int64) ([]model.Item, error) {
	defer logging.TraceDuration(u.log, "ItemUC.List")()
	return u.items.ListByUser(ctx, repository.NoTX, userID)
}

func (u *itemUC) ListUnbought(ctx context.Context, userID int64) ([]model.Item, error) {
	defer logging.TraceDuration(u.log, "ItemUC.ListUnbought")()
	return u.items.ListUnboughtByUser(ctx, repository.NoTX, userID)
}

func (u *itemUC) Add(ctx context.Context, userID int64, name string) (*model.Item, error) {
	defer logging.TraceDuration(u.log, "ItemUC.Add")()
	item, err := model.NewItem(userID, name)
	if err != nil {
		return nil, err
	}
	if err := u.items.Save(ctx, repository.NoTX, item); err != nil {
		return nil, err
	}
	metrics.IncItemAdded()
	return item, nil
}

func (u *itemUC) MarkBought(ctx context.Context, itemID int64) error {
	defer logging.TraceDuration(u.log, "ItemUC.MarkBought")()
	return u.items.MarkBought(ctx, repository.NoTX, itemID)
}

func (u *itemUC) Delete(ctx context.Context, itemID int64) error {
	defer logging.TraceDuration(u.log, "ItemUC.Delete")()
	return u.items.Delete(ctx, repository.NoTX, itemID)
}
